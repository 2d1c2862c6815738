package customer

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Birthdate Date      `db:"birthdate"`
	State     State     `db:"state"`
}

// State is the lifecycle classification of a customer.
type State int

const (
	Active State = iota
	Locked
	Disabled
)

var ErrInvalidState = errors.New("invalid customer state")

var stateNames = [...]string{"active", "locked", "disabled"}

// States lists every valid state.
func States() []State {
	return []State{Active, Locked, Disabled}
}

func ParseState(s string) (State, error) {
	for i, name := range stateNames {
		if name == s {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidState, s)
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) Valid() bool {
	return s >= Active && s <= Disabled
}

func (s State) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParseState(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *State) Scan(i any) error {
	switch v := i.(type) {
	case string:
		parsed, err := ParseState(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case []byte:
		return s.Scan(string(v))
	}
	return fmt.Errorf("%w: cannot scan %T", ErrInvalidState, i)
}

func (s State) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return s.String(), nil
}

// DateLayout is the ISO-8601 calendar date format used on the wire and in storage.
const DateLayout = time.DateOnly

var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar date without time of day or zone, comparable with ==.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date t falls on in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(i any) error {
	switch v := i.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, i)
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}
