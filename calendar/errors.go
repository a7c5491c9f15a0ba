package calendar

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is the sentinel for ranges with start after end.
// Match with errors.Is; the structured form carries the offending dates.
var ErrInvalidRange = errors.New("invalid range: start after end")

// InvalidRangeError reports which dates violated the start <= end invariant.
type InvalidRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s after end %s", e.Start, e.End)
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}
