// Package model defines the cleaned-dataset contract shared by the cleaning
// pipeline and the dashboard server.
package model

import (
	"fmt"
	"regexp"
)

// Supported survey year range for the BRFSS extract.
const (
	MinYear = 2011
	MaxYear = 2023
)

// Topic is one of the three tracked health metrics.
type Topic string

const (
	TopicObesity          Topic = "obesity"
	TopicPhysicalActivity Topic = "physical_activity"
	TopicNutrition        Topic = "nutrition"
)

// Topics lists all topics in scope, in display order.
var Topics = []Topic{TopicObesity, TopicPhysicalActivity, TopicNutrition}

// ParseTopic returns the Topic for its string form.
func ParseTopic(s string) (Topic, bool) {
	switch Topic(s) {
	case TopicObesity, TopicPhysicalActivity, TopicNutrition:
		return Topic(s), true
	}
	return "", false
}

// questionTopics maps raw BRFSS question codes to the topics in scope.
// Codes outside this map are discarded during cleaning.
var questionTopics = map[string]Topic{
	"Q036": TopicObesity,          // adults who have obesity
	"Q037": TopicObesity,          // adults who are overweight
	"Q043": TopicPhysicalActivity, // aerobic activity guideline
	"Q044": TopicPhysicalActivity, // aerobic + strengthening guideline
	"Q045": TopicPhysicalActivity, // 300 min aerobic activity
	"Q046": TopicPhysicalActivity, // muscle-strengthening activity
	"Q047": TopicPhysicalActivity, // no leisure-time physical activity
	"Q018": TopicNutrition,        // fruit consumption < 1/day
	"Q019": TopicNutrition,        // vegetable consumption < 1/day
}

// TopicForQuestion maps a raw question code to its topic.
func TopicForQuestion(questionID string) (Topic, bool) {
	t, ok := questionTopics[questionID]
	return t, ok
}

// StratCategory is a demographic stratifier.
type StratCategory string

const (
	StratOverall       StratCategory = "overall"
	StratIncome        StratCategory = "income"
	StratEducation     StratCategory = "education"
	StratAge           StratCategory = "age"
	StratRaceEthnicity StratCategory = "race_ethnicity"
	StratSex           StratCategory = "sex"
)

// StratCategories lists all stratification categories, overall first.
var StratCategories = []StratCategory{
	StratOverall, StratIncome, StratEducation, StratAge, StratRaceEthnicity, StratSex,
}

// ParseStratCategory returns the StratCategory for its string form.
func ParseStratCategory(s string) (StratCategory, bool) {
	switch StratCategory(s) {
	case StratOverall, StratIncome, StratEducation, StratAge, StratRaceEthnicity, StratSex:
		return StratCategory(s), true
	}
	return "", false
}

// rawStratCategories maps the extract's StratificationCategory1 labels to
// canonical categories.
var rawStratCategories = map[string]StratCategory{
	"Total":          StratOverall,
	"Income":         StratIncome,
	"Education":      StratEducation,
	"Age (years)":    StratAge,
	"Race/Ethnicity": StratRaceEthnicity,
	"Sex":            StratSex,
	"Gender":         StratSex, // pre-2021 extracts
}

// StratCategoryForRaw maps a raw category label to its canonical form.
func StratCategoryForRaw(raw string) (StratCategory, bool) {
	c, ok := rawStratCategories[raw]
	return c, ok
}

// stratValues enumerates the allowed values per category, as they appear in
// the extract's Stratification1 column.
var stratValues = map[StratCategory][]string{
	StratOverall: {"Total"},
	StratIncome: {
		"Less than $15,000", "$15,000 - $24,999", "$25,000 - $34,999",
		"$35,000 - $49,999", "$50,000 - $74,999", "$75,000 or greater",
		"Data not reported",
	},
	StratEducation: {
		"Less than high school", "High school graduate",
		"Some college or technical school", "College graduate",
	},
	StratAge: {
		"18 - 24", "25 - 34", "35 - 44", "45 - 54", "55 - 64", "65 or older",
	},
	StratRaceEthnicity: {
		"White, non-Hispanic", "Black, non-Hispanic", "Hispanic", "Asian",
		"Hawaiian/Pacific Islander", "American Indian/Alaska Native",
		"2 or more races", "Other",
	},
	StratSex: {"Male", "Female"},
}

// StratValues returns the enumerated value set for a category, in display order.
func StratValues(c StratCategory) []string {
	return stratValues[c]
}

// ValidStratValue reports whether value belongs to the category's enumerated set.
func ValidStratValue(c StratCategory, value string) bool {
	for _, v := range stratValues[c] {
		if v == value {
			return true
		}
	}
	return false
}

var locationRe = regexp.MustCompile(`^[A-Z]{2}$`)

// Observation is one row of the cleaned dataset.
type Observation struct {
	Location      string        `csv:"location" json:"location" validate:"required"`
	LocationName  string        `csv:"location_name" json:"location_name"`
	Year          int           `csv:"year" json:"year" validate:"gte=2011,lte=2023"`
	Topic         Topic         `csv:"topic" json:"topic" validate:"required"`
	Question      string        `csv:"question" json:"question"`
	QuestionID    string        `csv:"question_id" json:"question_id" validate:"required"`
	StratCategory StratCategory `csv:"stratification_category" json:"stratification_category" validate:"required"`
	StratValue    string        `csv:"stratification_value" json:"stratification_value" validate:"required"`
	DataValue     float64       `csv:"data_value" json:"data_value" validate:"gte=0,lte=100"`
	SampleSize    int           `csv:"sample_size" json:"sample_size,omitempty" validate:"gte=0"`
	Latitude      float64       `csv:"latitude" json:"latitude,omitempty"`
	Longitude     float64       `csv:"longitude" json:"longitude,omitempty"`
}

// Key identifies an observation uniquely within the cleaned dataset.
type Key struct {
	Location      string
	Year          int
	QuestionID    string
	StratCategory StratCategory
	StratValue    string
}

// Key returns the observation's unique key.
func (o Observation) Key() Key {
	return Key{
		Location:      o.Location,
		Year:          o.Year,
		QuestionID:    o.QuestionID,
		StratCategory: o.StratCategory,
		StratValue:    o.StratValue,
	}
}

// Validate checks the data-model invariants beyond struct tags: location code
// shape, topic/question consistency, and stratification value membership.
func (o Observation) Validate() error {
	if !locationRe.MatchString(o.Location) {
		return fmt.Errorf("location %q: want two-letter code", o.Location)
	}
	if o.Year < MinYear || o.Year > MaxYear {
		return fmt.Errorf("year %d outside [%d, %d]", o.Year, MinYear, MaxYear)
	}
	if o.DataValue < 0 || o.DataValue > 100 {
		return fmt.Errorf("data_value %.2f outside [0, 100]", o.DataValue)
	}
	t, ok := TopicForQuestion(o.QuestionID)
	if !ok {
		return fmt.Errorf("question %q not in scope", o.QuestionID)
	}
	if t != o.Topic {
		return fmt.Errorf("question %q maps to topic %q, row has %q", o.QuestionID, t, o.Topic)
	}
	if !ValidStratValue(o.StratCategory, o.StratValue) {
		return fmt.Errorf("stratification value %q not in category %q", o.StratValue, o.StratCategory)
	}
	return nil
}
