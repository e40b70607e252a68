// Package series holds period-indexed numeric data. A Series stores one page of
// values per period; a page may be a single value, a row of alternative columns,
// or a higher-rank block described by a trailing shape. Values outside the
// stored span read back as NaN.
package series

import (
	"errors"
	"fmt"
	"math"

	"github.com/econforge/macrots/period"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoData            = errors.New("no observations")
	ErrUnboundedStart    = errors.New("series start period is unbounded")
	ErrRaggedData        = errors.New("pages have different sizes")
	ErrShapeSizeMismatch = errors.New("data length does not divide into trailing shape")
	ErrLenMismatch       = errors.New("series have different lengths")
	ErrNonPositiveLag    = errors.New("lag must be positive")
)

// Series is a contiguous run of observations starting at a fixed period. Data
// is stored row-major, one page of pageSize values per period.
type Series struct {
	start    period.Period
	trailing []int
	data     []float64
}

// NewVector returns a single-column series starting at the given period.
func NewVector(start period.Period, values []float64) (*Series, error) {
	if start.IsZero() {
		return nil, ErrUnboundedStart
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	data := make([]float64, len(values))
	copy(data, values)
	return &Series{start: start, data: data}, nil
}

// New returns a multi-column series from one row of alternative columns per
// period. Every row must have the same number of columns.
func New(start period.Period, rows [][]float64) (*Series, error) {
	if start.IsZero() {
		return nil, ErrUnboundedStart
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("at row %d, %w", i, ErrRaggedData)
		}
		data = append(data, row...)
	}
	return &Series{start: start, trailing: []int{cols}, data: data}, nil
}

// NewWithShape returns a series whose per-period pages have the given trailing
// shape. The data length must be a multiple of the trailing shape's size.
func NewWithShape(start period.Period, trailing []int, data []float64) (*Series, error) {
	if start.IsZero() {
		return nil, ErrUnboundedStart
	}
	if len(data) == 0 {
		return nil, ErrNoData
	}
	page := pageSize(trailing)
	if page <= 0 || len(data)%page != 0 {
		return nil, fmt.Errorf("%d values with page size %d, %w", len(data), page, ErrShapeSizeMismatch)
	}
	d := make([]float64, len(data))
	copy(d, data)
	t := make([]int, len(trailing))
	copy(t, trailing)
	return &Series{start: start, trailing: t, data: d}, nil
}

func pageSize(trailing []int) int {
	size := 1
	for _, d := range trailing {
		size *= d
	}
	return size
}

func (s *Series) Frequency() period.Frequency { return s.start.Freq() }

// Len returns the number of stored periods.
func (s *Series) Len() int { return len(s.data) / s.PageSize() }

// PageSize returns the flattened number of values per period.
func (s *Series) PageSize() int { return pageSize(s.trailing) }

// Columns returns the number of alternative columns, which for a higher-rank
// series is the flattened trailing size.
func (s *Series) Columns() int { return s.PageSize() }

// Trailing returns a copy of the trailing shape. A single-column series has an
// empty trailing shape.
func (s *Series) Trailing() []int {
	t := make([]int, len(s.trailing))
	copy(t, s.trailing)
	return t
}

// Range returns the stored period span, regardless of missing values.
func (s *Series) Range() period.Range {
	return period.Range{Start: s.start, End: s.start.Add(s.Len() - 1)}
}

// Span returns the range between the first and last period holding at least one
// non-missing value. The second return is false when every value is missing.
func (s *Series) Span() (period.Range, bool) {
	first, last := -1, -1
	for i := 0; i < s.Len(); i++ {
		if !allNaN(s.page(i)) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return period.Range{}, false
	}
	return period.Range{Start: s.start.Add(first), End: s.start.Add(last)}, true
}

// Values extracts one page per period of rng, padding with NaN outside the
// stored span. A range on a different frequency than the series reads back as
// all missing.
func (s *Series) Values(rng period.Range) [][]float64 {
	n := rng.Len()
	page := s.PageSize()
	out := make([][]float64, n)
	sameFreq := rng.Frequency() == s.Frequency()
	for i := 0; i < n; i++ {
		out[i] = nanPage(page)
		if !sameFreq {
			continue
		}
		idx := rng.Start.Add(i).Sub(s.start)
		if idx >= 0 && idx < s.Len() {
			copy(out[i], s.page(idx))
		}
	}
	return out
}

// At returns the page stored for p, or an all-NaN page outside the span.
func (s *Series) At(p period.Period) []float64 {
	out := nanPage(s.PageSize())
	if p.Freq() != s.Frequency() {
		return out
	}
	idx := p.Sub(s.start)
	if idx >= 0 && idx < s.Len() {
		copy(out, s.page(idx))
	}
	return out
}

// Shift relabels the series n periods later (positive) or earlier (negative).
func (s *Series) Shift(n int) *Series {
	out := s.Copy()
	out.start = out.start.Add(n)
	return out
}

// Log returns a new series with the natural log applied elementwise. Values
// that are missing or non-positive come back as NaN.
func (s *Series) Log() *Series {
	out := s.Copy()
	for i, v := range out.data {
		out.data[i] = math.Log(v)
	}
	return out
}

// Diff returns the lag-period difference x(t) - x(t-lag) over the stored range,
// with the first lag pages missing.
func (s *Series) Diff(lag int) (*Series, error) {
	if lag <= 0 {
		return nil, fmt.Errorf("lag %d, %w", lag, ErrNonPositiveLag)
	}
	out := s.Copy()
	page := s.PageSize()
	for i := s.Len() - 1; i >= 0; i-- {
		cur := out.data[i*page : (i+1)*page]
		if i < lag {
			copy(cur, nanPage(page))
			continue
		}
		prev := s.data[(i-lag)*page : (i-lag+1)*page]
		floats.Sub(cur, prev)
	}
	return out, nil
}

// Scale multiplies every value by c in place and returns the receiver.
func (s *Series) Scale(c float64) *Series {
	floats.Scale(c, s.data)
	return s
}

// Add accumulates src into the receiver. Both series must share start, shape,
// and length.
func (s *Series) Add(src *Series) (*Series, error) {
	if len(s.data) != len(src.data) || !s.start.Equal(src.start) {
		return nil, ErrLenMismatch
	}
	floats.Add(s.data, src.data)
	return s, nil
}

func (s *Series) Copy() *Series {
	data := make([]float64, len(s.data))
	copy(data, s.data)
	trailing := make([]int, len(s.trailing))
	copy(trailing, s.trailing)
	return &Series{start: s.start, trailing: trailing, data: data}
}

func (s *Series) page(i int) []float64 {
	page := s.PageSize()
	return s.data[i*page : (i+1)*page]
}

func nanPage(n int) []float64 {
	p := make([]float64, n)
	for i := range p {
		p[i] = math.NaN()
	}
	return p
}

func allNaN(xs []float64) bool {
	for _, v := range xs {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

type seriesJSON struct {
	Start    period.Period `json:"start"`
	Trailing []int         `json:"trailing,omitempty"`
	Data     []*float64    `json:"data"`
}

// MarshalJSON encodes the series with missing values as nulls since NaN has no
// JSON representation.
func (s *Series) MarshalJSON() ([]byte, error) {
	enc := seriesJSON{
		Start:    s.start,
		Trailing: s.trailing,
		Data:     make([]*float64, len(s.data)),
	}
	for i := range s.data {
		if math.IsNaN(s.data[i]) {
			continue
		}
		v := s.data[i]
		enc.Data[i] = &v
	}
	return json.Marshal(enc)
}

func (s *Series) UnmarshalJSON(b []byte) error {
	var dec seriesJSON
	if err := json.Unmarshal(b, &dec); err != nil {
		return err
	}
	data := make([]float64, len(dec.Data))
	for i, v := range dec.Data {
		if v == nil {
			data[i] = math.NaN()
			continue
		}
		data[i] = *v
	}
	parsed, err := NewWithShape(dec.Start, dec.Trailing, data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
