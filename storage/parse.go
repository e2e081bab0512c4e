package storage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// moneyRegexp captures a numeric amount, with optional thousands
	// separators and decimals.
	moneyRegexp = regexp.MustCompile(`-?[\d,]+(?:\.\d+)?`)

	// Markers used by published rent statistics for suppressed or missing
	// values.
	missingMarkers = map[string]struct{}{
		"": {}, "-": {}, "..": {}, ".": {}, "x": {}, ":": {}, "n/a": {}, "na": {}, "nan": {},
	}
)

// table is a header-indexed view over raw string rows.
type table struct {
	name    string
	headers []string
	index   map[string]int
	rows    [][]string
}

func newTable(name string, rows [][]string) (*table, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: no header row", name)
	}
	t := &table{name: name, index: make(map[string]int), rows: rows[1:]}
	for i, h := range rows[0] {
		h = normaliseText(strings.TrimPrefix(h, "\ufeff"))
		t.headers = append(t.headers, h)
		if h != "" {
			t.index[strings.ToLower(h)] = i
		}
	}
	return t, nil
}

// column returns the index of the first header matching one of names.
func (t *table) column(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := t.index[strings.ToLower(n)]; ok {
			return i, true
		}
	}
	return -1, false
}

func (t *table) mustColumn(names ...string) (int, error) {
	i, ok := t.column(names...)
	if !ok {
		return -1, fmt.Errorf("%s: missing column %q", t.name, names[0])
	}
	return i, nil
}

// cell returns a trimmed cell, or "" for short rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseMoney extracts an amount such as "£1,250" or "950.5". Missing markers
// return nil without error.
func parseMoney(raw string) (*float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if _, missing := missingMarkers[s]; missing {
		return nil, nil
	}
	match := moneyRegexp.FindString(s)
	if match == "" {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return &v, nil
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

func parseCount(raw string) int {
	v, err := parseMoney(raw)
	if err != nil || v == nil {
		return 0
	}
	return int(*v)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
