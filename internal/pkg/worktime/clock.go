package worktime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Clock is a same-day wall-clock time with minute precision.
// The zero value means "not set".
type Clock struct {
	minutes int
	set     bool
}

const minutesPerDay = 24 * 60

// NewClock builds a Clock from hour and minute. It panics on out-of-range
// values and is meant for constants and tests; use ParseClock for input.
func NewClock(hour, minute int) Clock {
	c, err := clockOf(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

func clockOf(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock{minutes: hour*60 + minute, set: true}, nil
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are dropped.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	for _, p := range parts {
		if len(p) != 2 {
			return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	return clockOf(hour, minute)
}

// IsZero reports whether the clock is unset.
func (c Clock) IsZero() bool { return !c.set }

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.minutes }

func (c Clock) Hour() int   { return c.minutes / 60 }
func (c Clock) Minute() int { return c.minutes % 60 }

func (c Clock) Before(o Clock) bool { return c.minutes < o.minutes }
func (c Clock) After(o Clock) bool  { return c.minutes > o.minutes }

func (c Clock) String() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Clock{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidClock, string(data))
	}
	if s == "" {
		*c = Clock{}
		return nil
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
