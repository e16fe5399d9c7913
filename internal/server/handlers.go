package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/chronicdata/brfss-dash/internal/dataset"
	"github.com/chronicdata/brfss-dash/internal/model"
)

// badRequest writes a 400 with an error payload.
func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"status": "error", "error": msg})
}

// noData writes the explicit empty-subset state: HTTP 200, no chart.
func noData(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "no_data",
		"message": "No data available for the selected filters.",
	})
}

// chartResponse wraps a Vega-Lite spec for the frontend.
func chartResponse(w http.ResponseWriter, r *http.Request, count int, spec map[string]any) {
	render.JSON(w, r, map[string]any{"status": "ok", "count": count, "spec": spec})
}

// queryYear parses an integer year parameter. ok=false means the parameter
// was present but malformed; absent parameters return (0, true).
func queryYear(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return y, true
}

// queryTopic parses an optional topic parameter.
func queryTopic(r *http.Request) (model.Topic, bool) {
	raw := r.URL.Query().Get("topic")
	if raw == "" {
		return "", true
	}
	return model.ParseTopic(raw)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.table.Meta())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r, "year")
	if !ok {
		badRequest(w, r, "invalid year")
		return
	}
	topic, ok := queryTopic(r)
	if !ok {
		badRequest(w, r, "unknown topic")
		return
	}

	obs := s.table.Filter(dataset.Criteria{YearFrom: year, YearTo: year, Topic: topic})
	if len(obs) == 0 {
		noData(w, r)
		return
	}
	render.JSON(w, r, map[string]any{"status": "ok", "stats": dataset.Summarize(obs)})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	yearFrom, ok := queryYear(r, "year_from")
	if !ok {
		badRequest(w, r, "invalid year_from")
		return
	}
	yearTo, ok := queryYear(r, "year_to")
	if !ok {
		badRequest(w, r, "invalid year_to")
		return
	}
	topic, ok := queryTopic(r)
	if !ok {
		badRequest(w, r, "unknown topic")
		return
	}

	strat := model.StratOverall
	if raw := r.URL.Query().Get("stratification"); raw != "" {
		c, ok := model.ParseStratCategory(raw)
		if !ok {
			badRequest(w, r, "unknown stratification category")
			return
		}
		strat = c
	}

	obs := s.table.Filter(dataset.Criteria{
		YearFrom:      yearFrom,
		YearTo:        yearTo,
		Locations:     r.URL.Query()["location"],
		Topic:         topic,
		StratCategory: strat,
	})
	if len(obs) == 0 {
		noData(w, r)
		return
	}

	points := dataset.TrendSeries(obs)
	chartResponse(w, r, len(points), trendSpec(points))
}

func (s *Server) handleGeo(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r, "year")
	if !ok || year == 0 {
		badRequest(w, r, "year is required")
		return
	}
	topic, ok := queryTopic(r)
	if !ok {
		badRequest(w, r, "unknown topic")
		return
	}
	if topic == "" {
		topic = model.TopicObesity
	}

	obs := s.table.Filter(dataset.Criteria{
		YearFrom:      year,
		YearTo:        year,
		Topic:         topic,
		QuestionID:    r.URL.Query().Get("question_id"),
		StratCategory: model.StratOverall,
	})
	if len(obs) == 0 {
		noData(w, r)
		return
	}

	ranked := dataset.LocationMeans(obs)
	chartResponse(w, r, len(ranked), geoSpec(ranked, year))
}

func (s *Server) handleDemographics(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r, "year")
	if !ok {
		badRequest(w, r, "invalid year")
		return
	}
	topic, ok := queryTopic(r)
	if !ok {
		badRequest(w, r, "unknown topic")
		return
	}
	if topic == "" {
		topic = model.TopicObesity
	}

	category, ok := model.ParseStratCategory(r.URL.Query().Get("category"))
	if !ok || category == model.StratOverall {
		badRequest(w, r, "category must be one of income, education, age, race_ethnicity, sex")
		return
	}

	obs := s.table.Filter(dataset.Criteria{
		YearFrom:      year,
		YearTo:        year,
		Topic:         topic,
		StratCategory: category,
	})
	if len(obs) == 0 {
		noData(w, r)
		return
	}

	points := dataset.StratMeans(obs, category)
	chartResponse(w, r, len(points), demographicsSpec(points, category))
}

// Correlation pairs obesity prevalence (Q036) against no-leisure-activity
// prevalence (Q047) per state for one year.
func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	year, ok := queryYear(r, "year")
	if !ok || year == 0 {
		badRequest(w, r, "year is required")
		return
	}

	base := dataset.Criteria{YearFrom: year, YearTo: year, StratCategory: model.StratOverall}

	obesity := base
	obesity.QuestionID = "Q036"
	inactivity := base
	inactivity.QuestionID = "Q047"

	pairs := dataset.PairByLocation(s.table.Filter(obesity), s.table.Filter(inactivity))
	if len(pairs) < 2 {
		noData(w, r)
		return
	}

	coeff := dataset.Pearson(pairs)
	resp := map[string]any{"status": "ok", "count": len(pairs), "spec": correlationSpec(pairs, year)}
	if !math.IsNaN(coeff) {
		resp["correlation"] = math.Round(coeff*100) / 100
	}
	render.JSON(w, r, resp)
}
