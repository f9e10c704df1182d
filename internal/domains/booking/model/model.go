package model

import (
	gModel "frontdesk/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID       = "id"
	FieldRoomID   = "room_id"
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"
	FieldStatus   = "status"
)

// Booking statuses. A booking only moves forward through them.
const (
	StatusBooked    = "Booked"
	StatusCheckedIn = "Checked In"
	StatusCompleted = "Completed"
)

// ActiveStatuses hold a room.
var ActiveStatuses = []string{StatusBooked, StatusCheckedIn}

type Booking struct {
	ID        int64       `db:"id"`
	GuestName string      `db:"guest_name"`
	RoomID    int64       `db:"room_id"`
	CheckIn   gModel.Date `db:"check_in"`
	CheckOut  gModel.Date `db:"check_out"`
	Status    string      `db:"status"`
	CreatedAt time.Time   `db:"created_at"`
}

// Detail is a booking with the number of its room.
type Detail struct {
	Booking
	RoomNumber string `db:"room_number" table:"rooms"`
}

func (Detail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id"
}

// Transition names a forward move of a booking.
type Transition int

const (
	TransitionCheckIn Transition = iota + 1
	TransitionCheckOut
)

// Allowed reports whether a booking in status may take the transition.
func (t Transition) Allowed(status string) bool {
	switch t {
	case TransitionCheckIn:
		return status == StatusBooked
	case TransitionCheckOut:
		return status == StatusBooked || status == StatusCheckedIn
	default:
		return false
	}
}

// Target is the booking status after the transition.
func (t Transition) Target() string {
	if t == TransitionCheckIn {
		return StatusCheckedIn
	}

	return StatusCompleted
}
