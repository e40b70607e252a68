package period

import (
	"errors"
	"fmt"
)

var (
	ErrFrequencyMismatch = errors.New("range bounds on different frequencies")
	ErrStartAfterEnd     = errors.New("range start is after end")
)

// Range is a closed span [Start, End] of periods on one frequency. Either bound
// may be the zero Period meaning unbounded on that side; the fully open Range{}
// asks a consumer to infer both bounds.
type Range struct {
	Start Period `json:"start"`
	End   Period `json:"end"`
}

// NewRange returns a bounded range. Both bounds must share a frequency and be
// ordered.
func NewRange(start, end Period) (Range, error) {
	if start.Freq() != end.Freq() {
		return Range{}, fmt.Errorf("%s vs %s, %w", start.Freq(), end.Freq(), ErrFrequencyMismatch)
	}
	if start.After(end) {
		return Range{}, fmt.Errorf("%s after %s, %w", start, end, ErrStartAfterEnd)
	}
	return Range{Start: start, End: end}, nil
}

// From returns a range bounded below and open above.
func From(start Period) Range { return Range{Start: start} }

// Until returns a range open below and bounded above.
func Until(end Period) Range { return Range{End: end} }

// Bounded reports whether both ends of the range are set.
func (r Range) Bounded() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// Frequency returns the frequency implied by the start bound, falling back to
// the end bound when the start is open.
func (r Range) Frequency() Frequency {
	if !r.Start.IsZero() {
		return r.Start.Freq()
	}
	return r.End.Freq()
}

// Len returns the number of periods in a bounded range, zero otherwise.
func (r Range) Len() int {
	if !r.Bounded() {
		return 0
	}
	n := r.End.Sub(r.Start) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Periods enumerates the range from start to end inclusive.
func (r Range) Periods() []Period {
	n := r.Len()
	ps := make([]Period, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, r.Start.Add(i))
	}
	return ps
}

// Shift moves both bounds by n periods, leaving open bounds open.
func (r Range) Shift(n int) Range {
	shifted := r
	if !shifted.Start.IsZero() {
		shifted.Start = shifted.Start.Add(n)
	}
	if !shifted.End.IsZero() {
		shifted.End = shifted.End.Add(n)
	}
	return shifted
}

func (r Range) Contains(p Period) bool {
	if !r.Bounded() || p.Freq() != r.Frequency() {
		return false
	}
	return !p.Before(r.Start) && !p.After(r.End)
}

// Union widens the range to cover o. Bounds of o on a different frequency than
// the receiver are ignored; a fully open receiver adopts o's frequency.
func (r Range) Union(o Range) Range {
	freq := r.Frequency()
	if freq == None {
		freq = o.Frequency()
	}
	res := r
	if !o.Start.IsZero() && o.Start.Freq() == freq && (res.Start.IsZero() || o.Start.Before(res.Start)) {
		res.Start = o.Start
	}
	if !o.End.IsZero() && o.End.Freq() == freq && (res.End.IsZero() || o.End.After(res.End)) {
		res.End = o.End
	}
	return res
}

func (r Range) String() string {
	start, end := "..", ".."
	if !r.Start.IsZero() {
		start = r.Start.String()
	}
	if !r.End.IsZero() {
		end = r.End.String()
	}
	return start + ":" + end
}
