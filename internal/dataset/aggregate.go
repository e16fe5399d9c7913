package dataset

import (
	"math"
	"sort"

	"github.com/chronicdata/brfss-dash/internal/model"
)

// TrendPoint is one (year, question) mean for the trend view.
type TrendPoint struct {
	Year     int     `json:"year"`
	Location string  `json:"location"`
	Question string  `json:"question"`
	Value    float64 `json:"data_value"`
}

// TrendSeries averages observations per (year, location, question), sorted
// ascending by year. One line per location and question.
func TrendSeries(obs []model.Observation) []TrendPoint {
	type key struct {
		year     int
		location string
		question string
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	names := make(map[key]string)

	for _, o := range obs {
		k := key{o.Year, o.Location, o.QuestionID}
		sums[k] += o.DataValue
		counts[k]++
		names[k] = o.Question
	}

	points := make([]TrendPoint, 0, len(sums))
	for k, sum := range sums {
		points = append(points, TrendPoint{
			Year:     k.year,
			Location: k.location,
			Question: names[k],
			Value:    round1(sum / float64(counts[k])),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Question < b.Question
	})

	return points
}

// LocationValue is one location's mean for the geographic view.
type LocationValue struct {
	Location  string  `json:"location"`
	Name      string  `json:"location_name"`
	Value     float64 `json:"data_value"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// LocationMeans averages observations per location, sorted descending by
// value (ranking order).
func LocationMeans(obs []model.Observation) []LocationValue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	sample := make(map[string]model.Observation)

	for _, o := range obs {
		sums[o.Location] += o.DataValue
		counts[o.Location]++
		sample[o.Location] = o
	}

	out := make([]LocationValue, 0, len(sums))
	for loc, sum := range sums {
		s := sample[loc]
		out = append(out, LocationValue{
			Location:  loc,
			Name:      s.LocationName,
			Value:     round1(sum / float64(counts[loc])),
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Location < out[j].Location
	})

	return out
}

// StratValuePoint is one stratification value's mean for the demographic view.
type StratValuePoint struct {
	Category model.StratCategory `json:"stratification_category"`
	Value    string              `json:"stratification_value"`
	Mean     float64             `json:"data_value"`
	Count    int                 `json:"count"`
}

// StratMeans averages observations per stratification value, ordered by the
// category's enumerated value order (income brackets low to high, etc.).
func StratMeans(obs []model.Observation, category model.StratCategory) []StratValuePoint {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, o := range obs {
		sums[o.StratValue] += o.DataValue
		counts[o.StratValue]++
	}

	var out []StratValuePoint
	for _, v := range model.StratValues(category) {
		if counts[v] == 0 {
			continue
		}
		out = append(out, StratValuePoint{
			Category: category,
			Value:    v,
			Mean:     round1(sums[v] / float64(counts[v])),
			Count:    counts[v],
		})
	}
	return out
}

// CorrPoint pairs two metrics for one location.
type CorrPoint struct {
	Location string  `json:"location"`
	Name     string  `json:"location_name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// PairByLocation joins two observation sets on location, averaging each
// side's values per location first. Locations present on only one side are
// dropped (inner join).
func PairByLocation(xs, ys []model.Observation) []CorrPoint {
	xm := LocationMeans(xs)
	ym := LocationMeans(ys)

	yv := make(map[string]float64, len(ym))
	for _, v := range ym {
		yv[v.Location] = v.Value
	}

	var out []CorrPoint
	for _, v := range xm {
		y, ok := yv[v.Location]
		if !ok {
			continue
		}
		out = append(out, CorrPoint{Location: v.Location, Name: v.Name, X: v.Value, Y: y})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// Pearson computes the Pearson correlation coefficient of the paired points.
// Fewer than two points, or zero variance on either axis, returns NaN.
func Pearson(points []CorrPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return math.NaN()
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for _, p := range points {
		dx, dy := p.X-meanX, p.Y-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// round1 rounds to one decimal, matching the precision the portal publishes.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
