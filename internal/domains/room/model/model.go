package model

import (
	gModel "frontdesk/shared/model"
	"time"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomNumber = "room_number"
	FieldStatus     = "status"
)

// Room statuses. The booking engine is the only writer.
const (
	StatusAvailable = "Available"
	StatusBooked    = "Booked"
	StatusOccupied  = "Occupied"
)

var Statuses = []string{StatusAvailable, StatusBooked, StatusOccupied}

type Room struct {
	ID         int64     `db:"id"`
	RoomNumber string    `db:"room_number"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

// Occupancy is a room with the active booking whose stay covers today, if any.
type Occupancy struct {
	ID            int64        `db:"id"`
	RoomNumber    string       `db:"room_number"`
	Status        string       `db:"status"`
	BookingID     *int64       `db:"booking_id"`
	GuestName     *string      `db:"guest_name"`
	CheckIn       *gModel.Date `db:"check_in"`
	CheckOut      *gModel.Date `db:"check_out"`
	BookingStatus *string      `db:"booking_status"`
}

type StatusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}
