// Package dataset loads the cleaned observation file once and serves
// read-only views of it. The table is immutable after construction, so
// concurrent readers need no locking.
package dataset

import (
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/chronicdata/brfss-dash/internal/model"
)

// Table is the in-memory cleaned dataset. Construct it with Load or New and
// treat it as a value: filtering returns copies, never mutates.
type Table struct {
	obs []model.Observation
}

// Load reads the cleaned file and validates the data-model invariants. Any
// violation is a load failure: the file is the contract boundary with the
// cleaning pipeline and a broken one must not reach Ready.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read cleaned file")
	}

	var obs []model.Observation
	if err := csvutil.Unmarshal(data, &obs); err != nil {
		return nil, eris.Wrap(err, "dataset: decode cleaned file")
	}

	return New(obs)
}

// New builds a Table from observations, enforcing key uniqueness and per-row
// invariants.
func New(obs []model.Observation) (*Table, error) {
	validate := validator.New()
	seen := make(map[model.Key]struct{}, len(obs))

	for i, o := range obs {
		if err := validate.Struct(o); err != nil {
			return nil, eris.Wrapf(err, "dataset: row %d invalid", i+1)
		}
		if err := o.Validate(); err != nil {
			return nil, eris.Wrapf(err, "dataset: row %d invalid", i+1)
		}
		key := o.Key()
		if _, dup := seen[key]; dup {
			return nil, eris.Errorf("dataset: row %d duplicates key %+v", i+1, key)
		}
		seen[key] = struct{}{}
	}

	return &Table{obs: obs}, nil
}

// Len returns the number of observations.
func (t *Table) Len() int { return len(t.obs) }

// Meta describes the filter-control options the dataset supports.
type Meta struct {
	Rows      int         `json:"rows"`
	Years     []int       `json:"years"`
	Locations []Location  `json:"locations"`
	Topics    []TopicMeta `json:"topics"`
	Strats    []StratMeta `json:"stratifications"`
}

// Location pairs a location code with its display name.
type Location struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TopicMeta lists the questions observed under a topic.
type TopicMeta struct {
	Topic     model.Topic `json:"topic"`
	Questions []Question  `json:"questions"`
}

// Question pairs a question code with its text.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// StratMeta lists the enumerated values for a stratification category.
type StratMeta struct {
	Category model.StratCategory `json:"category"`
	Values   []string            `json:"values"`
}

// Meta derives the filter-control options from the loaded data.
func (t *Table) Meta() Meta {
	yearSet := make(map[int]struct{})
	locNames := make(map[string]string)
	questions := make(map[model.Topic]map[string]string)

	for _, o := range t.obs {
		yearSet[o.Year] = struct{}{}
		locNames[o.Location] = o.LocationName
		if questions[o.Topic] == nil {
			questions[o.Topic] = make(map[string]string)
		}
		questions[o.Topic][o.QuestionID] = o.Question
	}

	m := Meta{Rows: len(t.obs)}

	for y := range yearSet {
		m.Years = append(m.Years, y)
	}
	sort.Ints(m.Years)

	for code, name := range locNames {
		m.Locations = append(m.Locations, Location{Code: code, Name: name})
	}
	sort.Slice(m.Locations, func(i, j int) bool { return m.Locations[i].Code < m.Locations[j].Code })

	for _, topic := range model.Topics {
		qs, ok := questions[topic]
		if !ok {
			continue
		}
		tm := TopicMeta{Topic: topic}
		for id, text := range qs {
			tm.Questions = append(tm.Questions, Question{ID: id, Text: text})
		}
		sort.Slice(tm.Questions, func(i, j int) bool { return tm.Questions[i].ID < tm.Questions[j].ID })
		m.Topics = append(m.Topics, tm)
	}

	for _, c := range model.StratCategories {
		m.Strats = append(m.Strats, StratMeta{Category: c, Values: model.StratValues(c)})
	}

	return m
}
