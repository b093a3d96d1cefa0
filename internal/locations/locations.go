// Package locations loads pre-aggregated location collections for the
// globe.
package locations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/litescript/ls-globe/internal/globe"
)

// StdinPath reads the collection from standard input.
const StdinPath = "-"

// document is the wrapped form {"locations": [...]}.
type document struct {
	Locations []*globe.Location `json:"locations"`
}

// Load reads a collection from a file, or from stdin when path is "-".
func Load(path string) ([]*globe.Location, error) {
	if path == StdinPath {
		locs, err := Decode(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read locations from stdin: %w", err)
		}
		return locs, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open locations file: %w", err)
	}
	defer f.Close()

	locs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read locations from %s: %w", path, err)
	}
	return locs, nil
}

// Decode parses either {"locations": [...]} or a bare array. Source order
// is preserved and null entries are dropped.
func Decode(r io.Reader) ([]*globe.Location, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var locs []*globe.Location
	if data[0] == '[' {
		if err := json.Unmarshal(data, &locs); err != nil {
			return nil, fmt.Errorf("decode location array: %w", err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode location document: %w", err)
		}
		locs = doc.Locations
	}

	out := locs[:0]
	for _, l := range locs {
		if l != nil {
			out = append(out, l)
		}
	}
	return out, nil
}

// SortByCount orders locations by descending count, keeping source order
// for ties, so larger pins win overlapping hit tests.
func SortByCount(locs []*globe.Location) {
	sort.SliceStable(locs, func(i, j int) bool {
		return locs[i].Count > locs[j].Count
	})
}

// Total sums positive counts.
func Total(locs []*globe.Location) int {
	total := 0
	for _, l := range locs {
		if l.Count > 0 {
			total += l.Count
		}
	}
	return total
}

// Rendered counts the locations that appear on the globe.
func Rendered(locs []*globe.Location) int {
	n := 0
	for _, l := range locs {
		if l.Count > 0 {
			n++
		}
	}
	return n
}

// EmployeeCount returns the number of entries in a location's employee
// list, or 0 when it is absent or not an array.
func EmployeeCount(l *globe.Location) int {
	if l == nil || len(l.Employees) == 0 {
		return 0
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(l.Employees, &entries); err != nil {
		return 0
	}
	return len(entries)
}
