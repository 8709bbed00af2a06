package models

import "time"

// FailureRatio is the ratio recorded on failed results. It sits well above
// MaxPlausibleRatio so failed entries can never win a best/worst comparison.
const FailureRatio = 999.0

// MaxPlausibleRatio is the reporter's plausibility cutoff: a result whose
// output/input ratio is at or above this is not counted as successful.
const MaxPlausibleRatio = 10.0

// Result is the outcome of exactly one conversion attempt. Err is the
// source of truth for failure; the numeric fields still carry the failure
// markers (zero output, FailureRatio, negative BytesSaved) so the reporter's
// classification stays purely arithmetic.
type Result struct {
	InputPath  string
	OutputPath string
	InputSize  int64
	OutputSize int64
	Elapsed    time.Duration
	Ratio      float64
	BytesSaved int64
	Err        error
}

// Succeeded reports whether this result counts toward summary statistics.
func (r Result) Succeeded() bool {
	return r.OutputSize > 0 && r.Ratio < MaxPlausibleRatio
}

// SuccessResult builds the result for a completed conversion.
func SuccessResult(task Task, inputSize, outputSize int64, elapsed time.Duration) Result {
	return Result{
		InputPath:  task.InputPath,
		OutputPath: task.OutputPath,
		InputSize:  inputSize,
		OutputSize: outputSize,
		Elapsed:    elapsed,
		Ratio:      float64(outputSize) / float64(inputSize),
		BytesSaved: inputSize - outputSize,
		Err:        nil,
	}
}

// FailureResult builds the result for a failed attempt. inputSize may be
// zero when the input could not be read.
func FailureResult(task Task, inputSize int64, elapsed time.Duration, err error) Result {
	return Result{
		InputPath:  task.InputPath,
		OutputPath: task.OutputPath,
		InputSize:  inputSize,
		OutputSize: 0,
		Elapsed:    elapsed,
		Ratio:      FailureRatio,
		BytesSaved: -inputSize,
		Err:        err,
	}
}
