package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// OrderDate is a calendar date stored in a DATE column and rendered as
// YYYY-MM-DD. Values are normalised to midnight UTC so equality filters
// match what was written.
type OrderDate struct {
	datatypes.Date
}

func NewOrderDate(t time.Time) OrderDate {
	y, m, d := t.Date()
	return OrderDate{datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

func ParseOrderDate(s string) (OrderDate, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return OrderDate{}, err
	}
	return NewOrderDate(t), nil
}

func (d OrderDate) Time() time.Time { return time.Time(d.Date) }

func (d OrderDate) String() string { return d.Time().Format(time.DateOnly) }

func (d OrderDate) Equal(o OrderDate) bool { return d.String() == o.String() }

func (d OrderDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *OrderDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseOrderDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
