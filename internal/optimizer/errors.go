package optimizer

import (
	"errors"
	"fmt"

	"github.com/zachd/stretch-my-time-off/pkg/dateutil"
)

// ErrInvalidRange is returned when a range starts after it ends
var ErrInvalidRange = errors.New("invalid range: start after end")

// RangeError carries the offending range bounds
type RangeError struct {
	Start dateutil.Date
	End   dateutil.Date
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s is after end %s", e.Start, e.End)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

func checkRange(start, end dateutil.Date) error {
	if start.After(end) {
		return &RangeError{Start: start, End: end}
	}
	return nil
}
