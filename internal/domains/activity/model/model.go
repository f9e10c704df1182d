package model

import "time"

const (
	TableName  = "activity_logs"
	EntityName = "activity"

	FieldID        = "id"
	FieldAction    = "action"
	FieldUser      = "username"
	FieldTimestamp = "timestamp"
)

const (
	ActionLogin          = "Login"
	ActionLogout         = "Logout"
	ActionBookingCreated = "Booking Created"
	ActionCheckIn        = "Check-In"
	ActionCheckOut       = "Check-Out"
	ActionSystem         = "System"
)

// Log is one line of the append-only activity trail.
type Log struct {
	ID        int64     `db:"id"`
	Action    string    `db:"action"`
	Details   string    `db:"details"`
	User      string    `db:"username"`
	Timestamp time.Time `db:"timestamp"`
}
