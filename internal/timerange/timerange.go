package timerange

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("start time must be before end time")

// TimeRange is a half-open interval [Start, End): inclusive of Start,
// exclusive of End. Zero-length ranges are rejected at construction.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains reports whether window fully contains request. Both window
// boundaries are closed: a request may start exactly when the window
// starts and end exactly when it ends.
func Contains(window, request TimeRange) bool {
	return !window.Start.After(request.Start) && !window.End.Before(request.End)
}

// Overlaps reports whether a and b share any instant. Ranges that merely
// touch at a boundary (a.End == b.Start) do not overlap, so back-to-back
// appointments are allowed.
func Overlaps(a, b TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}
