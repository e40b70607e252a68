// Package database provides the keyed collection the array assembler reads
// from. Entries are arbitrary values; only those satisfying the Entry
// capability participate in series operations.
package database

import (
	"errors"
	"fmt"
	"sort"

	"github.com/econforge/macrots/period"
	"github.com/econforge/macrots/series"
	"github.com/goccy/go-json"
)

var ErrUnsupportedEntry = errors.New("entry type cannot be serialized")

// Entry is the series capability: anything with a frequency, range slicing
// with missing-value padding, an observation span, and a trailing shape.
// *series.Series satisfies it.
type Entry interface {
	Frequency() period.Frequency
	Values(period.Range) [][]float64
	Span() (period.Range, bool)
	Trailing() []int
}

// DB maps names to entries. The zero value is not usable; construct with New.
type DB struct {
	entries map[string]any
}

func New() *DB {
	return &DB{entries: make(map[string]any)}
}

func (db *DB) Set(name string, v any) {
	db.entries[name] = v
}

func (db *DB) Get(name string) (any, bool) {
	v, ok := db.entries[name]
	return v, ok
}

// Series returns the named entry when it satisfies the series capability.
func (db *DB) Series(name string) (Entry, bool) {
	v, ok := db.entries[name]
	if !ok {
		return nil, false
	}
	e, ok := v.(Entry)
	return e, ok
}

func (db *DB) Delete(name string) {
	delete(db.entries, name)
}

func (db *DB) Len() int {
	return len(db.entries)
}

// Names returns every entry name in sorted order.
func (db *DB) Names() []string {
	names := make([]string, 0, len(db.entries))
	for name := range db.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SeriesNames returns the sorted names of entries satisfying the series
// capability. This is the default name list for an assembly call that does not
// name its inputs.
func (db *DB) SeriesNames() []string {
	names := make([]string, 0, len(db.entries))
	for name, v := range db.entries {
		if _, ok := v.(Entry); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

type entryJSON struct {
	Type   string          `json:"type"`
	Series json.RawMessage `json:"series,omitempty"`
	Number *float64        `json:"number,omitempty"`
	String *string         `json:"string,omitempty"`
}

// MarshalJSON serializes series, numeric, and string entries. Any other entry
// type fails with ErrUnsupportedEntry.
func (db *DB) MarshalJSON() ([]byte, error) {
	out := make(map[string]entryJSON, len(db.entries))
	for name, v := range db.entries {
		switch e := v.(type) {
		case *series.Series:
			raw, err := json.Marshal(e)
			if err != nil {
				return nil, fmt.Errorf("series %q, %w", name, err)
			}
			out[name] = entryJSON{Type: "series", Series: raw}
		case float64:
			out[name] = entryJSON{Type: "number", Number: &e}
		case int:
			f := float64(e)
			out[name] = entryJSON{Type: "number", Number: &f}
		case string:
			out[name] = entryJSON{Type: "string", String: &e}
		default:
			return nil, fmt.Errorf("entry %q, %w", name, ErrUnsupportedEntry)
		}
	}
	return json.Marshal(out)
}

func (db *DB) UnmarshalJSON(b []byte) error {
	var raw map[string]entryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	entries := make(map[string]any, len(raw))
	for name, e := range raw {
		switch e.Type {
		case "series":
			var s series.Series
			if err := json.Unmarshal(e.Series, &s); err != nil {
				return fmt.Errorf("series %q, %w", name, err)
			}
			entries[name] = &s
		case "number":
			if e.Number != nil {
				entries[name] = *e.Number
			}
		case "string":
			if e.String != nil {
				entries[name] = *e.String
			}
		default:
			return fmt.Errorf("entry %q of type %q, %w", name, e.Type, ErrUnsupportedEntry)
		}
	}
	db.entries = entries
	return nil
}
