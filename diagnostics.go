package macrots

import "log/slog"

// WarnCategory identifies one class of recoverable assembly problem.
type WarnCategory string

const (
	WarnNotFound     WarnCategory = "name_not_found"
	WarnNonSeries    WarnCategory = "non_series_entry"
	WarnFreqMismatch WarnCategory = "frequency_mismatch"
	WarnSizeMismatch WarnCategory = "size_mismatch"
	WarnNoRangeFound WarnCategory = "no_range_found"
)

// Warning is one diagnostic category with the names that triggered it. Each
// category appears at most once per assembly call.
type Warning struct {
	Category WarnCategory `json:"category"`
	Names    []string     `json:"names,omitempty"`
}

// Diagnostics aggregates the enabled warnings of a single assembly call.
// Severity is always warning; the caller decides whether to log, raise, or
// ignore.
type Diagnostics struct {
	Warnings []Warning `json:"warnings,omitempty"`
}

func (d *Diagnostics) add(cat WarnCategory, names []string) {
	d.Warnings = append(d.Warnings, Warning{Category: cat, Names: names})
}

func (d Diagnostics) Empty() bool {
	return len(d.Warnings) == 0
}

// Names returns the names flagged under a category, or nil when the category
// did not fire.
func (d Diagnostics) Names(cat WarnCategory) []string {
	for _, w := range d.Warnings {
		if w.Category == cat {
			return w.Names
		}
	}
	return nil
}

// Emit logs every warning through the provided logger, one record per
// category. A nil logger uses slog's default.
func (d Diagnostics) Emit(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range d.Warnings {
		logger.Warn("database to array conversion",
			"category", string(w.Category),
			"names", w.Names,
		)
	}
}
