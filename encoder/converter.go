package encoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bpgbatch/models"
)

// Converter runs one bpgenc invocation per task.
type Converter struct {
	logger *zap.Logger
}

func NewConverter(logger *zap.Logger) *Converter {
	return &Converter{logger: logger}
}

// Convert runs the encoder for a single task and always returns a Result;
// every failure mode is captured into the result, nothing escapes.
func (c *Converter) Convert(ctx context.Context, task models.Task) models.Result {
	start := time.Now()

	info, err := os.Stat(task.InputPath)
	if err != nil {
		return c.fail(task, 0, start, fmt.Errorf("read input size: %w", err))
	}
	inputSize := info.Size()

	args := buildArgs(task)
	cmd := exec.CommandContext(ctx, task.EncoderPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return c.fail(task, inputSize, start, encodeError(err, &stdout, &stderr))
	}

	outInfo, err := os.Stat(task.OutputPath)
	if err != nil {
		return c.fail(task, inputSize, start, fmt.Errorf("encoder exited 0 but output missing: %w", err))
	}

	result := models.SuccessResult(task, inputSize, outInfo.Size(), time.Since(start))
	c.logger.Info("converted",
		zap.String("input", task.InputPath),
		zap.String("output", task.OutputPath),
		zap.Int64("input_bytes", inputSize),
		zap.Int64("output_bytes", result.OutputSize),
		zap.Float64("ratio", result.Ratio),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result
}

func (c *Converter) fail(task models.Task, inputSize int64, start time.Time, err error) models.Result {
	result := models.FailureResult(task, inputSize, time.Since(start), err)
	c.logger.Error("conversion failed",
		zap.String("input", task.InputPath),
		zap.Duration("elapsed", result.Elapsed),
		zap.Error(err),
	)
	return result
}

// buildArgs assembles the fixed bpgenc flag set: bit depth, output path,
// YCbCr 4:4:4, maximum compression level, backend selection, then the
// input file as the final positional argument.
func buildArgs(task models.Task) []string {
	args := []string{
		"-b", strconv.Itoa(task.BitDepth),
		"-o", task.OutputPath,
		"-c", "ycbcr",
		"-f", "444",
		"-m", "9",
	}
	if task.Codec == models.CodecJCTVC {
		args = append(args, "-e", "jctvc")
	} else {
		args = append(args, "-e", "x265")
	}
	return append(args, task.InputPath)
}

// encodeError folds the exit status and captured diagnostics into one error.
// Diagnostics stay out of the console on success; on failure they ride the
// error into the summary's failure list.
func encodeError(err error, stdout, stderr *bytes.Buffer) error {
	diag := strings.TrimSpace(stderr.String())
	if diag == "" {
		diag = strings.TrimSpace(stdout.String())
	}
	if diag == "" {
		return fmt.Errorf("encoder: %w", err)
	}
	return fmt.Errorf("encoder: %w: %s", err, diag)
}
