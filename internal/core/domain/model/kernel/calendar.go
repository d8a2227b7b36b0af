package kernel

import (
	"time"
	_ "time/tzdata"
)

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock in UTC.
func SystemClock() Clock {
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}

// BusinessCalendar resolves the business-local calendar day for an instant.
type BusinessCalendar struct {
	clock    Clock
	location *time.Location
}

// NewBusinessCalendar loads timezone (an IANA name). An empty name means UTC.
func NewBusinessCalendar(clock Clock, timezone string) (BusinessCalendar, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return BusinessCalendar{}, err
	}
	return BusinessCalendar{clock: clock, location: location}, nil
}

func (c BusinessCalendar) Now() time.Time {
	return c.clock.Now()
}

// Today returns midnight of the current business day, expressed in UTC so it
// can be stored in a DATE column without shifting.
func (c BusinessCalendar) Today() time.Time {
	return c.DayOf(c.clock.Now())
}

func (c BusinessCalendar) DayOf(t time.Time) time.Time {
	local := t.In(c.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOf returns the instant the business day of date begins. Only the
// year, month and day of date are read.
func (c BusinessCalendar) StartOf(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.location).UTC()
}
