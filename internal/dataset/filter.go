package dataset

import (
	"sort"

	"github.com/chronicdata/brfss-dash/internal/model"
)

// Criteria selects a subset of the table. Zero values leave a dimension
// unconstrained.
type Criteria struct {
	YearFrom      int
	YearTo        int
	Locations     []string // location codes, ORed
	Topic         model.Topic
	QuestionID    string
	StratCategory model.StratCategory
	StratValue    string
}

// Filter returns the observations matching the criteria, sorted by
// (year, location, stratification value). It is a pure function over the
// immutable table: an absent combination yields an empty slice, never an
// error.
func (t *Table) Filter(c Criteria) []model.Observation {
	locs := make(map[string]struct{}, len(c.Locations))
	for _, l := range c.Locations {
		locs[l] = struct{}{}
	}

	var out []model.Observation
	for _, o := range t.obs {
		if c.YearFrom != 0 && o.Year < c.YearFrom {
			continue
		}
		if c.YearTo != 0 && o.Year > c.YearTo {
			continue
		}
		if len(locs) > 0 {
			if _, ok := locs[o.Location]; !ok {
				continue
			}
		}
		if c.Topic != "" && o.Topic != c.Topic {
			continue
		}
		if c.QuestionID != "" && o.QuestionID != c.QuestionID {
			continue
		}
		if c.StratCategory != "" && o.StratCategory != c.StratCategory {
			continue
		}
		if c.StratValue != "" && o.StratValue != c.StratValue {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.StratValue < b.StratValue
	})

	return out
}

// Stats summarizes the data values of a filtered subset.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes summary statistics over a set of observations. An empty
// input returns a zero Stats.
func Summarize(obs []model.Observation) Stats {
	if len(obs) == 0 {
		return Stats{}
	}

	values := make([]float64, len(obs))
	var sum float64
	for i, o := range obs {
		values[i] = o.DataValue
		sum += o.DataValue
	}
	sort.Float64s(values)

	s := Stats{
		Count: len(values),
		Mean:  sum / float64(len(values)),
		Min:   values[0],
		Max:   values[len(values)-1],
	}
	mid := len(values) / 2
	if len(values)%2 == 0 {
		s.Median = (values[mid-1] + values[mid]) / 2
	} else {
		s.Median = values[mid]
	}
	return s
}
