package dto

import (
	"frontdesk/internal/domains/room/model"
	gModel "frontdesk/shared/model"
)

type RoomResponse struct {
	ID         int64  `json:"id"`
	RoomNumber string `json:"room_number"`
	Status     string `json:"status"`
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
}

// RoomListResponse feeds the booking form.
type RoomListResponse struct {
	Rooms        []RoomResponse `json:"rooms"`
	HasAvailable bool           `json:"has_available"`
}

func (r *RoomListResponse) FromModels(models []model.Room) {
	r.Rooms = make([]RoomResponse, len(models))
	r.HasAvailable = false

	for i, mod := range models {
		r.Rooms[i].FromModel(mod)

		if mod.Status == model.StatusAvailable {
			r.HasAvailable = true
		}
	}
}

type CurrentBooking struct {
	ID        int64       `json:"id"`
	GuestName string      `json:"guest_name"`
	CheckIn   gModel.Date `json:"check_in"`
	CheckOut  gModel.Date `json:"check_out"`
	Status    string      `json:"status"`
}

type OccupancyResponse struct {
	RoomResponse
	Booking *CurrentBooking `json:"booking"`
}

func (r *OccupancyResponse) FromModel(model model.Occupancy) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Status = model.Status
	r.Booking = nil

	if model.BookingID == nil {
		return
	}

	booking := &CurrentBooking{ID: *model.BookingID}

	if model.GuestName != nil {
		booking.GuestName = *model.GuestName
	}

	if model.CheckIn != nil {
		booking.CheckIn = *model.CheckIn
	}

	if model.CheckOut != nil {
		booking.CheckOut = *model.CheckOut
	}

	if model.BookingStatus != nil {
		booking.Status = *model.BookingStatus
	}

	r.Booking = booking
}

func FromOccupancies(models []model.Occupancy) []OccupancyResponse {
	res := make([]OccupancyResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type CountsResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Occupied  int `json:"occupied"`
}

func (r *CountsResponse) FromModels(models []model.StatusCount) {
	*r = CountsResponse{}

	for _, mod := range models {
		r.Total += mod.Total

		switch mod.Status {
		case model.StatusAvailable:
			r.Available = mod.Total
		case model.StatusBooked:
			r.Booked = mod.Total
		case model.StatusOccupied:
			r.Occupied = mod.Total
		}
	}
}
