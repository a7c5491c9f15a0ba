package calendar

// =============================================================================
// DATE RANGE - Closed interval of calendar days
// =============================================================================

// DateRange is a closed interval: both Start and End are included.
// A one-day range has Start == End.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange builds a validated range.
func NewDateRange(start, end Date) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate rejects ranges whose start falls after their end.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return &InvalidRangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// Days returns the length of the closed interval in days.
// A one-day range returns 1.
func (r DateRange) Days() int { return DaysBetween(r.Start, r.End) + 1 }

// Contains returns true if the date falls within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// EachDay calls fn for every day of the range, in calendar order.
// Day stepping goes through time.Time arithmetic, so leap years and
// month lengths are handled by the real calendar.
func (r DateRange) EachDay(fn func(Date)) {
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		fn(d)
	}
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
