// Package macrots assembles named time series from a keyed database into one
// dense numeric array aligned on a shared period axis, tracking per-name
// inclusion and aggregating categorized diagnostics.
package macrots

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/econforge/macrots/array"
	"github.com/econforge/macrots/database"
	"github.com/econforge/macrots/period"
)

// TimeTrendName is the reserved name that synthesizes a deterministic time
// trend instead of looking up the database.
const TimeTrendName = "!ttrend"

var (
	ErrNilDatabase         = errors.New("nil database")
	ErrUnknownExpandPolicy = errors.New("unknown expand policy")
)

var nameToken = regexp.MustCompile(`!?[A-Za-z_]\w*`)

// SplitNames tokenizes a delimited name list on word boundaries, keeping the
// reserved !ttrend token intact.
func SplitNames(s string) []string {
	return nameToken.FindAllString(s, -1)
}

// Result is the outcome of one assembly call. The flag vectors run parallel to
// Requested; Names is the order-preserving subsequence of Requested that made
// it into the array.
type Result struct {
	Data *array.Dense `json:"-"`

	Requested []string     `json:"requested"`
	Names     []string     `json:"names"`
	Range     period.Range `json:"range"`

	Included     []bool `json:"included"`
	NotFound     []bool `json:"not_found"`
	NonSeries    []bool `json:"non_series"`
	FreqMismatch []bool `json:"freq_mismatch"`
	SizeMismatch []bool `json:"size_mismatch"`

	Diagnostics Diagnostics `json:"diagnostics"`
}

// Assemble collects the named entries of db over rng into a single array with
// periods on the first axis and names on the second. Unbounded bounds of rng
// are inferred from the union observation span of the named entries. Per-entry
// problems never abort the call; they degrade to flags, missing-value
// placeholders, and once-per-call diagnostics. A nil names list defaults to
// every series-typed entry of db. Errors are reserved for caller bugs.
func Assemble(db *database.DB, names []string, rng period.Range, opt *Options) (*Result, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	expand := opt.Expand
	switch expand {
	case "":
		expand = ExpandRepeatLast
	case ExpandRepeatLast, ExpandFillMissing:
	default:
		return nil, fmt.Errorf("%q, %w", opt.Expand, ErrUnknownExpandPolicy)
	}
	if rng.Bounded() && rng.Start.Freq() != rng.End.Freq() {
		return nil, fmt.Errorf("%s vs %s, %w", rng.Start.Freq(), rng.End.Freq(), period.ErrFrequencyMismatch)
	}
	if names == nil {
		names = db.SeriesNames()
	}

	res := &Result{
		Requested:    names,
		Names:        []string{},
		Included:     make([]bool, len(names)),
		NotFound:     make([]bool, len(names)),
		NonSeries:    make([]bool, len(names)),
		FreqMismatch: make([]bool, len(names)),
		SizeMismatch: make([]bool, len(names)),
	}

	resolved, ok := resolveRange(db, names, rng)
	if !ok {
		if opt.Warn.NoRangeFound {
			res.Diagnostics.add(WarnNoRangeFound, nil)
		}
		res.Data, _ = array.NaNs(0, len(names))
		return res, nil
	}
	res.Range = resolved

	acc := newAssembly(resolved.Len(), len(names), expand)
	for i, name := range names {
		if name == TimeTrendName {
			page := timeTrend(resolved.Shift(opt.shift(name)), opt.BaseYear)
			res.Included[i] = acc.insert(i, page, nil)
			if !res.Included[i] {
				res.SizeMismatch[i] = true
			}
			continue
		}

		v, found := db.Get(name)
		if !found {
			res.NotFound[i] = true
			continue
		}
		entry, isSeries := v.(database.Entry)
		if !isSeries {
			res.NonSeries[i] = true
			continue
		}
		if entry.Frequency() != resolved.Frequency() {
			// keep an all-missing placeholder column so the output shape
			// stays consistent
			res.FreqMismatch[i] = true
			continue
		}

		pages := entry.Values(resolved.Shift(opt.shift(name)))
		flat := flatten(pages)
		if opt.logFor(name) {
			for j := range flat {
				flat[j] = math.Log(flat[j])
			}
		}
		if acc.insert(i, flat, entry.Trailing()) {
			res.Included[i] = true
		} else {
			res.SizeMismatch[i] = true
		}
	}

	res.Data = acc.materialize()
	for i, name := range names {
		if res.Included[i] {
			res.Names = append(res.Names, name)
		}
	}

	warn := func(enabled bool, cat WarnCategory, flags []bool) {
		if !enabled {
			return
		}
		var flagged []string
		for i, f := range flags {
			if f {
				flagged = append(flagged, names[i])
			}
		}
		if len(flagged) > 0 {
			res.Diagnostics.add(cat, flagged)
		}
	}
	warn(opt.Warn.NotFound, WarnNotFound, res.NotFound)
	warn(opt.Warn.NonSeries, WarnNonSeries, res.NonSeries)
	warn(opt.Warn.FreqMismatch, WarnFreqMismatch, res.FreqMismatch)
	warn(opt.Warn.SizeMismatch, WarnSizeMismatch, res.SizeMismatch)

	return res, nil
}

// AssembleNames is a convenience wrapper accepting the name list as a single
// delimited string. An empty string defaults to every series-typed entry.
func AssembleNames(db *database.DB, names string, rng period.Range, opt *Options) (*Result, error) {
	return Assemble(db, SplitNames(names), rng, opt)
}

// resolveRange substitutes unbounded bounds of rng with the union observation
// span of the named series. It reports false when no bound can be determined.
func resolveRange(db *database.DB, names []string, rng period.Range) (period.Range, bool) {
	if rng.Bounded() {
		return rng, true
	}
	freq := rng.Frequency()
	var span period.Range
	for _, name := range names {
		if name == TimeTrendName {
			continue
		}
		entry, ok := db.Series(name)
		if !ok {
			continue
		}
		sp, ok := entry.Span()
		if !ok {
			continue
		}
		if freq != period.None && sp.Frequency() != freq {
			continue
		}
		span = span.Union(sp)
	}
	resolved := rng
	if resolved.Start.IsZero() {
		resolved.Start = span.Start
	}
	if resolved.End.IsZero() {
		resolved.End = span.End
	}
	if !resolved.Bounded() || resolved.Start.After(resolved.End) {
		return period.Range{}, false
	}
	return resolved, true
}

// timeTrend synthesizes the !ttrend pseudo-series: the signed period distance
// from the first period of the base year at the range's frequency.
func timeTrend(rng period.Range, baseYear int) []float64 {
	base := period.FirstOfYear(rng.Frequency(), baseYear)
	out := make([]float64, rng.Len())
	for i := range out {
		out[i] = float64(rng.Start.Add(i).Sub(base))
	}
	return out
}

func flatten(pages [][]float64) []float64 {
	if len(pages) == 0 {
		return nil
	}
	flat := make([]float64, 0, len(pages)*len(pages[0]))
	for _, p := range pages {
		flat = append(flat, p...)
	}
	return flat
}

// assembly is the running state of the insertion loop: the trailing shape
// established so far, the per-name pages, and whether the output has degraded
// to plain periods x names x alternatives.
type assembly struct {
	nper   int
	expand ExpandPolicy

	alts     int
	trailing []int
	degraded bool
	pages    [][]float64
}

func newAssembly(nper, nnames int, expand ExpandPolicy) *assembly {
	return &assembly{
		nper:   nper,
		expand: expand,
		pages:  make([][]float64, nnames),
	}
}

// insert reconciles one flattened page block (nper x alternatives) against the
// running trailing shape. Singleton columns broadcast up per the expand
// policy, in either direction. It reports false when the alternative counts
// cannot be reconciled; the entry then keeps its default all-missing column.
func (a *assembly) insert(i int, data []float64, trailing []int) bool {
	alts := prodInt(trailing)
	switch {
	case a.alts == 0:
		a.alts = alts
		a.trailing = normalizeTrailing(trailing)
	case alts == a.alts:
		if !sameShape(normalizeTrailing(trailing), a.trailing) {
			a.degraded = true
		}
	case alts == 1:
		data = a.broadcast(data, a.alts)
	case a.alts == 1:
		for j, p := range a.pages {
			if p != nil {
				a.pages[j] = a.broadcast(p, alts)
			}
		}
		a.alts = alts
		a.trailing = normalizeTrailing(trailing)
	default:
		// shrinking or reshuffling a multi-column entry is unsupported
		return false
	}
	a.pages[i] = data
	return true
}

// broadcast expands a single-column block to n alternatives.
func (a *assembly) broadcast(data []float64, n int) []float64 {
	out := make([]float64, a.nper*n)
	for p := 0; p < a.nper; p++ {
		for k := 0; k < n; k++ {
			if k == 0 || a.expand == ExpandRepeatLast {
				out[p*n+k] = data[p]
			} else {
				out[p*n+k] = math.NaN()
			}
		}
	}
	return out
}

// materialize folds the per-name pages into the output array. With no
// successful insertion the result is an all-missing periods x names matrix;
// without degradation the original trailing dimensionality is restored.
func (a *assembly) materialize() *array.Dense {
	n := len(a.pages)
	if a.alts == 0 {
		d, _ := array.NaNs(a.nper, n)
		return d
	}

	flat := make([]float64, a.nper*n*a.alts)
	for p := 0; p < a.nper; p++ {
		for i := 0; i < n; i++ {
			off := (p*n + i) * a.alts
			pg := a.pages[i]
			if pg == nil {
				for k := 0; k < a.alts; k++ {
					flat[off+k] = math.NaN()
				}
				continue
			}
			copy(flat[off:off+a.alts], pg[p*a.alts:(p+1)*a.alts])
		}
	}

	d, _ := array.NewDense(flat, a.nper, n, a.alts)
	if !a.degraded {
		if a.alts == 1 {
			_ = d.Reshape(a.nper, n)
		} else if len(a.trailing) > 1 {
			_ = d.Reshape(append([]int{a.nper, n}, a.trailing...)...)
		}
	}
	return d
}

func normalizeTrailing(trailing []int) []int {
	if len(trailing) == 0 {
		return []int{1}
	}
	t := make([]int, len(trailing))
	copy(t, trailing)
	return t
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func prodInt(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}
