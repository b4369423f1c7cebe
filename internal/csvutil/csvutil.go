// File: internal/csvutil/csvutil.go
// Brief: CSV reader defaults and header normalisation.

// Package csvutil reads loosely formatted CSV exports.
package csvutil

import (
	"encoding/csv"
	"io"
	"strings"
	"unicode"
)

// NewReader returns a csv.Reader configured the way launchdash reads tabular
// inputs: comma separated, lenient quoting, variable field counts.
func NewReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false
	return reader
}

// NormalizeHeader folds a column title into snake case so "Payload Mass (kg)"
// and "payload_mass_kg" address the same column.
func NormalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// HeaderIndex maps normalized header names to their column positions. When a
// name repeats, the first occurrence wins.
func HeaderIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := NormalizeHeader(name)
		if key == "" {
			continue
		}
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = i
	}
	return index
}
