package appointment

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var errClockFormat = errors.New("clock must be HH:MM")

// Clock is a wall-clock time of day in minutes since midnight. It carries
// no date and no timezone.
type Clock int

func ParseClock(s string) (Clock, error) {
	if len(s) != len(ClockLayout) {
		return 0, errClockFormat
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, errClockFormat
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(fmt.Sprintf("appointment: bad clock %q", s))
	}
	return c
}

// ClockOf truncates t to the minute.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseDate accepts only YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, errors.New("date must be YYYY-MM-DD")
	}
	return time.Parse(DateLayout, s)
}
