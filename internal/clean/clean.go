package clean

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chronicdata/brfss-dash/internal/extract"
	"github.com/chronicdata/brfss-dash/internal/model"
)

// Options configures a cleaning run.
type Options struct {
	InputPath  string
	OutputPath string
	Charset    string // optional IANA charset for CSV input
}

// Summary reports what a cleaning run did. Per-row problems are aggregated
// into counters; only schema or I/O failures abort a run.
type Summary struct {
	RunID            string        `json:"run_id"`
	RowsRead         int           `json:"rows_read"`
	RowsWritten      int           `json:"rows_written"`
	DroppedMissing   int           `json:"dropped_missing_value"`
	DroppedCoercion  int           `json:"dropped_coercion"`
	DroppedUnmapped  int           `json:"dropped_unmapped_question"`
	DroppedDuplicate int           `json:"dropped_duplicate"`
	Elapsed          time.Duration `json:"elapsed"`
}

// Run executes the cleaning pipeline: normalize headers, coerce types, filter
// to in-scope questions, dedupe, sort, write. Reruns on the same input
// produce byte-identical output.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.New().String()}
	log := zap.L().With(zap.String("run_id", sum.RunID))

	src, err := extract.Open(opts.InputPath, opts.Charset)
	if err != nil {
		return nil, eris.Wrap(err, "clean: open input")
	}
	defer src.Close()

	colIdx, err := mapColumns(src.Header())
	if err != nil {
		return nil, err
	}

	kept, err := collect(ctx, src, colIdx, sum)
	if err != nil {
		return nil, err
	}

	if err := writeObservations(opts.OutputPath, kept); err != nil {
		return nil, err
	}
	sum.RowsWritten = len(kept)
	sum.Elapsed = time.Since(start)

	log.Info("cleaning run complete",
		zap.Int("rows_read", sum.RowsRead),
		zap.Int("rows_written", sum.RowsWritten),
		zap.Int("dropped_missing_value", sum.DroppedMissing),
		zap.Int("dropped_coercion", sum.DroppedCoercion),
		zap.Int("dropped_unmapped_question", sum.DroppedUnmapped),
		zap.Int("dropped_duplicate", sum.DroppedDuplicate),
		zap.Duration("elapsed", sum.Elapsed),
	)

	return sum, nil
}

// collect drains src into deduped observations, updating the run counters.
// Malformed rows are skipped; a failed reader aborts the run.
func collect(ctx context.Context, src extract.Source, colIdx map[string]int, sum *Summary) ([]model.Observation, error) {
	var (
		kept  []model.Observation
		index = make(map[model.Key]int)
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "clean: cancelled")
		}

		record, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !extract.SkippableRow(err) {
				return nil, eris.Wrap(err, "clean: read input")
			}
			sum.DroppedCoercion++
			continue
		}
		sum.RowsRead++

		obs, drop := buildObservation(record, colIdx)
		switch drop {
		case dropNone:
		case dropMissing:
			sum.DroppedMissing++
			continue
		case dropUnmapped:
			sum.DroppedUnmapped++
			continue
		default:
			sum.DroppedCoercion++
			continue
		}

		key := obs.Key()
		if i, ok := index[key]; ok {
			sum.DroppedDuplicate++
			// Largest sample size wins; first encountered wins ties.
			if obs.SampleSize > kept[i].SampleSize {
				kept[i] = obs
			}
			continue
		}
		index[key] = len(kept)
		kept = append(kept, obs)
	}

	return kept, nil
}

type dropReason int

const (
	dropNone dropReason = iota
	dropMissing
	dropUnmapped
	dropCoercion
)

// buildObservation coerces one raw record into an Observation, reporting why
// a row must be dropped.
func buildObservation(record []string, colIdx map[string]int) (model.Observation, dropReason) {
	var obs model.Observation

	// Missing-value policy: no data value, no observation.
	rawValue := getCol(record, colIdx, colDataValue)
	if rawValue == "" || suppressed(rawValue) {
		return obs, dropMissing
	}

	// Topic filter: unmapped question codes are out of scope.
	obs.QuestionID = getCol(record, colIdx, colQuestionID)
	topic, ok := model.TopicForQuestion(obs.QuestionID)
	if !ok {
		return obs, dropUnmapped
	}
	obs.Topic = topic
	obs.Question = getCol(record, colIdx, colQuestion)

	value, ok := parseFloat(rawValue)
	if !ok || value < 0 || value > 100 {
		return obs, dropCoercion
	}
	obs.DataValue = value

	year, ok := parseInt(getCol(record, colIdx, colYearStart))
	if !ok || year < model.MinYear || year > model.MaxYear {
		return obs, dropCoercion
	}
	obs.Year = year

	obs.Location = strings.ToUpper(getCol(record, colIdx, colLocationAbbr))
	obs.LocationName = getCol(record, colIdx, colLocationDesc)

	category, ok := model.StratCategoryForRaw(getCol(record, colIdx, colStratCategory))
	if !ok {
		return obs, dropCoercion
	}
	obs.StratCategory = category
	obs.StratValue = getCol(record, colIdx, colStratValue)

	obs.SampleSize = parseSampleSize(getCol(record, colIdx, colSampleSize))

	if pt := parseGeoLocation(getCol(record, colIdx, colGeoLocation)); pt != nil {
		obs.Longitude = pt.X()
		obs.Latitude = pt.Y()
	}

	if err := obs.Validate(); err != nil {
		return obs, dropCoercion
	}

	return obs, dropNone
}
