// Package clean implements the cleaning pipeline: it turns a raw BRFSS portal
// export into the cleaned observation file the dashboard consumes.
package clean

import (
	"fmt"
	"strings"
)

// Raw column names as published by the CDC data portal.
const (
	colYearStart     = "YearStart"
	colLocationAbbr  = "LocationAbbr"
	colLocationDesc  = "LocationDesc"
	colClass         = "Class"
	colQuestion      = "Question"
	colQuestionID    = "QuestionID"
	colDataValue     = "Data_Value"
	colStratCategory = "StratificationCategory1"
	colStratValue    = "Stratification1"
	colSampleSize    = "Sample_Size"
	colGeoLocation   = "GeoLocation"
)

// requiredColumns must all be present in the raw header; anything else in the
// extract (confidence limits, footnotes, alternate IDs) is ignored. Class
// never feeds an output field but its absence still marks a foreign extract.
var requiredColumns = []string{
	colYearStart, colLocationAbbr, colLocationDesc, colClass, colQuestion,
	colQuestionID, colDataValue, colStratCategory, colStratValue,
}

// SchemaError reports required raw columns absent from the input header.
// It is fatal: the whole cleaning run aborts.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("raw extract missing required columns: %s", strings.Join(e.Missing, ", "))
}

// normalizeCol lowercases and strips separators for header matching, so
// "Year Start", "yearstart" and "YearStart" all resolve to the same column.
func normalizeCol(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// mapColumns builds a normalized column name → index map and verifies the
// required set, returning a *SchemaError listing every missing column.
func mapColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[normalizeCol(col)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[normalizeCol(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return idx, nil
}

// getCol gets a column value by raw name, empty if absent or out of range.
func getCol(record []string, idx map[string]int, name string) string {
	i, ok := idx[normalizeCol(name)]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
