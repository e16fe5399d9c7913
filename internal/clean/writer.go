package clean

import (
	"os"
	"sort"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/chronicdata/brfss-dash/internal/model"
)

// writeObservations sorts the cleaned observations deterministically and
// writes them as CSV. Sorting before encoding is what makes reruns
// byte-identical regardless of raw input ordering quirks.
func writeObservations(path string, obs []model.Observation) error {
	if obs == nil {
		obs = []model.Observation{}
	}
	sort.Slice(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.QuestionID != b.QuestionID {
			return a.QuestionID < b.QuestionID
		}
		if a.StratCategory != b.StratCategory {
			return a.StratCategory < b.StratCategory
		}
		return a.StratValue < b.StratValue
	})

	data, err := csvutil.Marshal(obs)
	if err != nil {
		return eris.Wrap(err, "clean: encode output")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "clean: write output")
	}
	return nil
}
