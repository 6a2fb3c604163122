package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// ErrInvalidInterval возвращается, когда интервал не может быть построен
var ErrInvalidInterval = errors.New("invalid time interval")

// TimeInterval represents a half-open time range [Start, End) on a calendar
// date. Only the year/month/day part of Date is meaningful. A TimeInterval is
// a value: once constructed it is never mutated, and end > start always holds.
type TimeInterval struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString
}

// NewTimeInterval builds a TimeInterval, rejecting empty or malformed times
// and any range where end <= start. Zero-length intervals are not
// representable.
func NewTimeInterval(date time.Time, start, end types.TimeString) (TimeInterval, error) {
	if date.IsZero() {
		return TimeInterval{}, fmt.Errorf("%w: date is required", ErrInvalidInterval)
	}
	if err := start.Validate(); err != nil {
		return TimeInterval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	if err := end.Validate(); err != nil {
		return TimeInterval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	if !start.IsBefore(end) {
		return TimeInterval{}, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidInterval, end, start)
	}

	return TimeInterval{
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Start: start,
		End:   end,
	}, nil
}

// SameDate reports whether both intervals fall on the same calendar date.
func (i TimeInterval) SameDate(other TimeInterval) bool {
	y1, m1, d1 := i.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps reports whether two intervals on the same date intersect.
// Half-open semantics: an interval ending at 10:00 does not overlap one
// starting at 10:00.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	if !i.SameDate(other) {
		return false
	}
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// DurationMinutes returns the interval length in minutes, always positive
// for a constructed interval.
func (i TimeInterval) DurationMinutes() int {
	return i.Start.MinutesUntil(i.End)
}

// String returns "YYYY-MM-DD HH:MM-HH:MM" for logs and error messages.
func (i TimeInterval) String() string {
	return fmt.Sprintf("%s %s-%s", i.Date.Format(DateFormat), i.Start, i.End)
}
