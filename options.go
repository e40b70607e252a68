package macrots

// ExpandPolicy governs how a single-column entry is broadcast up when it meets
// an entry with more alternative columns.
type ExpandPolicy string

const (
	// ExpandRepeatLast replicates the sole column into every alternative slot.
	ExpandRepeatLast ExpandPolicy = "repeat-last-column"
	// ExpandFillMissing keeps the sole column in the first slot and fills the
	// rest with missing values.
	ExpandFillMissing ExpandPolicy = "fill-with-missing"
)

// DefaultBaseYear anchors the synthetic time trend when no base year is
// configured.
const DefaultBaseYear = 2000

// WarnOptions switches each diagnostic category on or off independently.
type WarnOptions struct {
	NotFound     bool `json:"not_found"`
	NonSeries    bool `json:"non_series"`
	FreqMismatch bool `json:"freq_mismatch"`
	SizeMismatch bool `json:"size_mismatch"`
	NoRangeFound bool `json:"no_range_found"`
}

// Options configures an assembly call. The zero value of each field is usable;
// nil Options at the call site falls back to NewDefaultOptions.
type Options struct {
	// Shifts applies a per-name lag (negative) or lead (positive) to the
	// resolved range before extraction.
	Shifts map[string]int `json:"shifts,omitempty"`

	// Log applies a natural log per name before insertion.
	Log map[string]bool `json:"log,omitempty"`

	Expand ExpandPolicy `json:"expand"`

	// BaseYear anchors the !ttrend pseudo-series.
	BaseYear int `json:"base_year"`

	Warn WarnOptions `json:"warn"`
}

// NewDefaultOptions returns assembly options with every warning enabled, the
// repeat-last-column expand policy, and the default base year.
func NewDefaultOptions() *Options {
	return &Options{
		Expand:   ExpandRepeatLast,
		BaseYear: DefaultBaseYear,
		Warn: WarnOptions{
			NotFound:     true,
			NonSeries:    true,
			FreqMismatch: true,
			SizeMismatch: true,
			NoRangeFound: true,
		},
	}
}

func (o *Options) shift(name string) int {
	return o.Shifts[name]
}

func (o *Options) logFor(name string) bool {
	return o.Log[name]
}
