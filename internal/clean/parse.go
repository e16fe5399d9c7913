package clean

import (
	"strconv"
	"strings"
)

// suppressed reports portal markers for values withheld due to small samples.
func suppressed(s string) bool {
	switch s {
	case "~", "*", "**", ".":
		return true
	}
	return false
}

// parseFloat parses a data value. Empty and suppressed values report ok=false.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || suppressed(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInt parses an integer field, tolerating a float rendering like "2020.0"
// (XLSX exports store numerics as floats).
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || suppressed(s) {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// parseSampleSize parses the optional Sample_Size column; absent or
// unparseable values become zero, never a dropped row.
func parseSampleSize(s string) int {
	v, ok := parseInt(strings.ReplaceAll(s, ",", ""))
	if !ok {
		return 0
	}
	return v
}
