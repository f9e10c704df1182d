package dto

import (
	"fmt"
	"frontdesk/internal/domains/booking/model"
	gModel "frontdesk/shared/model"
	"frontdesk/shared/timezone"
	"strings"
)

// CreateBookingRequest carries the raw form values. Fields stay strings so the
// engine can report blank and malformed input with its own messages.
type CreateBookingRequest struct {
	GuestName string `json:"guest_name" form:"guest_name"`
	RoomID    string `json:"room_id"    form:"room_id"`
	CheckIn   string `json:"check_in"   form:"check_in"`
	CheckOut  string `json:"check_out"  form:"check_out"`
}

// Trim strips surrounding whitespace from every field.
func (c *CreateBookingRequest) Trim() {
	c.GuestName = strings.TrimSpace(c.GuestName)
	c.RoomID = strings.TrimSpace(c.RoomID)
	c.CheckIn = strings.TrimSpace(c.CheckIn)
	c.CheckOut = strings.TrimSpace(c.CheckOut)
}

func (c *CreateBookingRequest) Complete() bool {
	return c.GuestName != "" && c.RoomID != "" && c.CheckIn != "" && c.CheckOut != ""
}

func (c *CreateBookingRequest) ToModel(roomID int64, checkIn, checkOut gModel.Date) model.Booking {
	return model.Booking{
		GuestName: c.GuestName,
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    model.StatusBooked,
		CreatedAt: timezone.Now(),
	}
}

type BookingResponse struct {
	ID         int64       `json:"id"`
	GuestName  string      `json:"guest_name"`
	RoomID     int64       `json:"room_id"`
	RoomNumber string      `json:"room_number"`
	CheckIn    gModel.Date `json:"check_in"`
	CheckOut   gModel.Date `json:"check_out"`
	Status     string      `json:"status"`
}

func (r *BookingResponse) FromModel(model model.Detail) {
	r.ID = model.ID
	r.GuestName = model.GuestName
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.CheckIn = model.CheckIn
	r.CheckOut = model.CheckOut
	r.Status = model.Status
}

// CanCheckIn and CanCheckOut drive the action links of the dashboard.
func (r BookingResponse) CanCheckIn() bool {
	return model.TransitionCheckIn.Allowed(r.Status)
}

func (r BookingResponse) CanCheckOut() bool {
	return model.TransitionCheckOut.Allowed(r.Status)
}

func FromModels(models []model.Detail) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ResultResponse is returned by every successful mutation.
type ResultResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// StatusMismatch is a room whose status disagrees with its active booking.
type StatusMismatch struct {
	RoomNumber    string `json:"room_number"`
	RoomStatus    string `json:"room_status"`
	BookingID     int64  `json:"booking_id,omitempty"`
	BookingStatus string `json:"booking_status,omitempty"`
}

func (m StatusMismatch) String() string {
	if m.BookingID == 0 {
		return fmt.Sprintf("room %s is %s without an active booking", m.RoomNumber, m.RoomStatus)
	}

	return fmt.Sprintf("room %s is %s but booking %d is %s", m.RoomNumber, m.RoomStatus, m.BookingID, m.BookingStatus)
}
