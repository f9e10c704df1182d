package model

import "time"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"
)

// User is a front desk account. Users are seeded, never edited by the app.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}
