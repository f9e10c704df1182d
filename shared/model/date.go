package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"frontdesk/shared/constant"
	"frontdesk/shared/timezone"
	"time"
)

// Date is a calendar day with no time-of-day component, stored as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate keeps only the year, month and day of t.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, timezone.GetLocation())}
}

// Today returns the current calendar day in the application timezone.
func Today() Date {
	return NewDate(timezone.Now())
}

func ParseDate(value string) (Date, error) {
	t, err := timezone.ParseDate(value)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}

	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return constant.Empty
	}

	return d.Format(constant.DateFormat)
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return NewDate(d.AddDate(0, 0, n))
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}

		return nil
	case time.Time:
		*d = NewDate(v)

		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("unsupported date source %T", src)
	}
}

func (d *Date) scanText(value string) error {
	if len(value) > len(constant.DateFormat) {
		value = value[:len(constant.DateFormat)]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to decode date: %w", err)
	}

	if value == constant.Empty {
		*d = Date{}

		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
