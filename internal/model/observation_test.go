package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicForQuestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		questionID string
		want       Topic
		ok         bool
	}{
		{"Q036", TopicObesity, true},
		{"Q037", TopicObesity, true},
		{"Q047", TopicPhysicalActivity, true},
		{"Q018", TopicNutrition, true},
		{"Q019", TopicNutrition, true},
		{"Q999", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.questionID, func(t *testing.T) {
			t.Parallel()
			got, ok := TopicForQuestion(tt.questionID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStratCategoryForRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want StratCategory
		ok   bool
	}{
		{"Total", StratOverall, true},
		{"Income", StratIncome, true},
		{"Age (years)", StratAge, true},
		{"Race/Ethnicity", StratRaceEthnicity, true},
		{"Sex", StratSex, true},
		{"Gender", StratSex, true},
		{"Household Income", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := StratCategoryForRaw(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidStratValue(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidStratValue(StratOverall, "Total"))
	assert.True(t, ValidStratValue(StratAge, "45 - 54"))
	assert.True(t, ValidStratValue(StratIncome, "$75,000 or greater"))
	assert.False(t, ValidStratValue(StratAge, "Total"))
	assert.False(t, ValidStratValue(StratSex, "Unknown"))
	assert.False(t, ValidStratValue(StratCategory("bogus"), "Total"))
}

func validObservation() Observation {
	return Observation{
		Location:      "OH",
		LocationName:  "Ohio",
		Year:          2020,
		Topic:         TopicObesity,
		Question:      "Percent of adults aged 18 years and older who have obesity",
		QuestionID:    "Q036",
		StratCategory: StratAge,
		StratValue:    "45 - 54",
		DataValue:     34.5,
		SampleSize:    1200,
	}
}

func TestObservationValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validObservation().Validate())
	})

	t.Run("bad location", func(t *testing.T) {
		t.Parallel()
		o := validObservation()
		o.Location = "Ohio"
		assert.Error(t, o.Validate())
	})

	t.Run("year out of range", func(t *testing.T) {
		t.Parallel()
		o := validObservation()
		o.Year = 2010
		assert.Error(t, o.Validate())
		o.Year = 2024
		assert.Error(t, o.Validate())
	})

	t.Run("value out of range", func(t *testing.T) {
		t.Parallel()
		o := validObservation()
		o.DataValue = 100.1
		assert.Error(t, o.Validate())
		o.DataValue = -0.1
		assert.Error(t, o.Validate())
	})

	t.Run("topic question mismatch", func(t *testing.T) {
		t.Parallel()
		o := validObservation()
		o.Topic = TopicNutrition
		assert.Error(t, o.Validate())
	})

	t.Run("strat value outside category", func(t *testing.T) {
		t.Parallel()
		o := validObservation()
		o.StratValue = "Male"
		assert.Error(t, o.Validate())
	})
}

func TestObservationKey(t *testing.T) {
	t.Parallel()

	a := validObservation()
	b := validObservation()
	b.DataValue = 12.3
	b.SampleSize = 50
	assert.Equal(t, a.Key(), b.Key(), "key ignores value fields")

	c := validObservation()
	c.StratValue = "55 - 64"
	assert.NotEqual(t, a.Key(), c.Key())
}
