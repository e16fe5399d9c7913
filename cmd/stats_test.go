package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicdata/brfss-dash/internal/model"
)

func writeCleanedFixture(t *testing.T) string {
	t.Helper()

	obs := []model.Observation{
		{
			Location: "OH", LocationName: "Ohio", Year: 2020,
			Topic: model.TopicObesity, QuestionID: "Q036",
			Question:      "Percent of adults aged 18 years and older who have obesity",
			StratCategory: model.StratOverall, StratValue: "Total",
			DataValue: 34.5, SampleSize: 1200,
		},
		{
			Location: "CO", LocationName: "Colorado", Year: 2020,
			Topic: model.TopicObesity, QuestionID: "Q036",
			Question:      "Percent of adults aged 18 years and older who have obesity",
			StratCategory: model.StratOverall, StratValue: "Total",
			DataValue: 24.9, SampleSize: 900,
		},
	}
	data, err := csvutil.Marshal(obs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func resetStatsFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		statsData, statsTopic = "", ""
		statsYear = 0
		statsCmd.SetOut(nil)
	})
}

func TestStatsCmd(t *testing.T) {
	withCfg(t)
	resetStatsFlags(t)

	statsData = writeCleanedFixture(t)
	statsYear = 2020
	statsTopic = "obesity"

	var buf bytes.Buffer
	statsCmd.SetOut(&buf)

	require.NoError(t, statsCmd.RunE(statsCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Records: 2")
	assert.Contains(t, out, "Mean:    29.70%")
	assert.Contains(t, out, "Ohio")
	assert.Contains(t, out, "Colorado")
}

func TestStatsCmd_RankingsNeverOverlap(t *testing.T) {
	withCfg(t)
	resetStatsFlags(t)

	// Two locations: both belong to the highest list and nothing is left
	// over for a lowest list.
	statsData = writeCleanedFixture(t)
	statsYear = 2020

	var buf bytes.Buffer
	statsCmd.SetOut(&buf)

	require.NoError(t, statsCmd.RunE(statsCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Highest 2 locations:")
	assert.NotContains(t, out, "Lowest")
	assert.Equal(t, 1, strings.Count(out, "Ohio"))
	assert.Equal(t, 1, strings.Count(out, "Colorado"))
}

func TestStatsCmd_LowestClampedToRemainder(t *testing.T) {
	withCfg(t)
	resetStatsFlags(t)

	states := []struct {
		code, name string
		value      float64
	}{
		{"CO", "Colorado", 24.9},
		{"OH", "Ohio", 34.5},
		{"WV", "West Virginia", 39.7},
		{"TX", "Texas", 35.0},
		{"CA", "California", 27.6},
		{"NY", "New York", 29.1},
		{"FL", "Florida", 28.4},
	}
	obs := make([]model.Observation, 0, len(states))
	for _, st := range states {
		obs = append(obs, model.Observation{
			Location: st.code, LocationName: st.name, Year: 2020,
			Topic: model.TopicObesity, QuestionID: "Q036",
			Question:      "Percent of adults aged 18 years and older who have obesity",
			StratCategory: model.StratOverall, StratValue: "Total",
			DataValue: st.value, SampleSize: 1000,
		})
	}
	data, err := csvutil.Marshal(obs)
	require.NoError(t, err)
	statsData = filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, os.WriteFile(statsData, data, 0o644))
	statsYear = 2020

	var buf bytes.Buffer
	statsCmd.SetOut(&buf)

	require.NoError(t, statsCmd.RunE(statsCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Highest 5 locations:")
	assert.Contains(t, out, "Lowest 2 locations:")
	for _, st := range states {
		assert.Equal(t, 1, strings.Count(out, st.name), "%s printed once", st.name)
	}
}

func TestStatsCmd_NoData(t *testing.T) {
	withCfg(t)
	resetStatsFlags(t)

	statsData = writeCleanedFixture(t)
	statsYear = 2013

	var buf bytes.Buffer
	statsCmd.SetOut(&buf)

	require.NoError(t, statsCmd.RunE(statsCmd, nil))
	assert.Contains(t, buf.String(), "No data available")
}

func TestStatsCmd_UnknownTopic(t *testing.T) {
	withCfg(t)
	resetStatsFlags(t)

	statsData = writeCleanedFixture(t)
	statsTopic = "smoking"

	err := statsCmd.RunE(statsCmd, nil)
	assert.Error(t, err)
}

func TestStatsCmd_MissingFile(t *testing.T) {
	withCfg(t)
	resetStatsFlags(t)

	statsData = filepath.Join(t.TempDir(), "absent.csv")

	err := statsCmd.RunE(statsCmd, nil)
	assert.Error(t, err)
}
