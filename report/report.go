// Package report reduces conversion results into run-level statistics and
// renders the end-of-run summary.
package report

import (
	"time"

	"bpgbatch/models"
)

// RunSummary holds one run's aggregate statistics. Size and ratio figures
// cover only successful results; Failures lists the rest with their causes.
type RunSummary struct {
	Total     int
	Succeeded int
	Failed    int

	TotalInput  int64
	TotalOutput int64
	TotalSaved  int64

	AvgRatio  float64
	Best      models.Result
	Worst     models.Result
	MostSaved models.Result

	TotalElapsed time.Duration
	Throughput   float64 // successful files per second

	Failures []models.Result
}

// Summarize reduces results into a RunSummary. A run with no successful
// conversions yields zeroed statistics (Succeeded == 0 flags it); there is
// no division by zero anywhere.
func Summarize(results []models.Result, totalElapsed time.Duration) RunSummary {
	s := RunSummary{
		Total:        len(results),
		TotalElapsed: totalElapsed,
	}

	var ratioSum float64
	for _, r := range results {
		if !r.Succeeded() {
			s.Failed++
			s.Failures = append(s.Failures, r)
			continue
		}

		if s.Succeeded == 0 {
			s.Best, s.Worst, s.MostSaved = r, r, r
		} else {
			if r.Ratio < s.Best.Ratio {
				s.Best = r
			}
			if r.Ratio > s.Worst.Ratio {
				s.Worst = r
			}
			if r.BytesSaved > s.MostSaved.BytesSaved {
				s.MostSaved = r
			}
		}

		s.Succeeded++
		s.TotalInput += r.InputSize
		s.TotalOutput += r.OutputSize
		ratioSum += r.Ratio
	}

	s.TotalSaved = s.TotalInput - s.TotalOutput
	if s.Succeeded > 0 {
		s.AvgRatio = ratioSum / float64(s.Succeeded)
	}
	if secs := totalElapsed.Seconds(); secs > 0 && s.Succeeded > 0 {
		s.Throughput = float64(s.Succeeded) / secs
	}
	return s
}
