package value

import (
	"fmt"
	"time"
)

// Temporal is implemented by date and time cell values.
type Temporal interface {
	ISO8601() string
}

// Timestamp is a point in time. Zoned is false for naive timestamps, which
// render without an offset.
type Timestamp struct {
	Time  time.Time
	Zoned bool
}

func (t Timestamp) ISO8601() string {
	s := t.Time.Format("2006-01-02T15:04:05") + fraction(t.Time.Nanosecond())
	if !t.Zoned {
		return s
	}
	return s + t.Time.Format("-07:00")
}

// Date is a calendar day; only the year, month and day of Time are used.
type Date struct {
	Time time.Time
}

func (d Date) ISO8601() string {
	return d.Time.Format("2006-01-02")
}

// TimeOfDay is a wall-clock time measured from midnight.
type TimeOfDay time.Duration

func (t TimeOfDay) ISO8601() string {
	d := time.Duration(t)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s) + fraction(int(d))
}

// fraction renders sub-second precision as microseconds, or nanoseconds when
// the value is not a whole number of microseconds.
func fraction(ns int) string {
	switch {
	case ns == 0:
		return ""
	case ns%1000 == 0:
		return fmt.Sprintf(".%06d", ns/1000)
	default:
		return fmt.Sprintf(".%09d", ns)
	}
}
