package analytics

import (
	"time"

	"github.com/August26/proxyscan-go/internal/model"
	"github.com/August26/proxyscan-go/internal/pipeline"
)

// Compute derives the run summary from the sorted result set and the
// pipeline's outcome tally.
func Compute(results []model.Result, tally pipeline.Tally, totalDuration time.Duration) model.RunStats {
	stats := model.RunStats{
		Candidates:            tally.Candidates,
		Working:               len(results),
		Failures:              tally.Failures,
		Faults:                tally.Faults,
		TotalProcessingTimeMs: totalDuration.Milliseconds(),
	}

	if tally.Candidates > 0 {
		stats.SuccessRatePct = float64(len(results)) / float64(tally.Candidates) * 100.0
	}

	if len(results) > 0 {
		var sum int64
		for _, r := range results {
			sum += r.ResponseTimeMs
		}
		stats.AvgLatencyMs = float64(sum) / float64(len(results))
		// results arrive sorted ascending, so the head is the best
		stats.BestLatencyMs = results[0].ResponseTimeMs
	}

	return stats
}
