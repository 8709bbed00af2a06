package pool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"bpgbatch/models"
)

// ErrInvalidWorkerCount rejects pools with no capacity.
var ErrInvalidWorkerCount = errors.New("worker count must be positive")

// ConvertFunc performs one conversion. It must return a Result rather than
// panic; the pool still contains panics as a last line of defense.
type ConvertFunc func(ctx context.Context, task models.Task) models.Result

// WorkerPool bounds concurrent conversions with a semaphore channel.
type WorkerPool struct {
	sem    chan struct{}
	wg     sync.WaitGroup
	logger *zap.Logger
}

func New(maxWorkers int, logger *zap.Logger) (*WorkerPool, error) {
	if maxWorkers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, maxWorkers)
	}
	return &WorkerPool{
		sem:    make(chan struct{}, maxWorkers),
		logger: logger,
	}, nil
}

// Run converts every task and returns exactly one Result per task, with
// results[i] belonging to tasks[i] no matter in which order workers finish.
// Tasks that never start because the context is cancelled, and tasks whose
// worker panics, still get a failure Result; nothing is dropped.
func (p *WorkerPool) Run(ctx context.Context, tasks []models.Task, convert ConvertFunc) []models.Result {
	results := make([]models.Result, len(tasks))

	for i, task := range tasks {
		i, task := i, task
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()

			select {
			case p.sem <- struct{}{}:
				defer func() { <-p.sem }()
				results[i] = p.safeConvert(ctx, task, convert)
			case <-ctx.Done():
				results[i] = cancelled(task, ctx.Err())
			}
		}()
	}

	p.wg.Wait()
	return results
}

// safeConvert converts one task, turning a panicking worker into a failure
// Result for that task instead of tearing down the pool.
func (p *WorkerPool) safeConvert(ctx context.Context, task models.Task, convert ConvertFunc) (result models.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker panicked",
				zap.String("input", task.InputPath),
				zap.Any("panic", r),
			)
			result = models.FailureResult(task, inputSize(task), time.Since(start), fmt.Errorf("worker panicked: %v", r))
		}
	}()
	return convert(ctx, task)
}

func cancelled(task models.Task, cause error) models.Result {
	return models.FailureResult(task, inputSize(task), 0, fmt.Errorf("cancelled before start: %w", cause))
}

// inputSize is best-effort: the failure-result field algebra wants
// -input_size even for tasks that never ran.
func inputSize(task models.Task) int64 {
	if info, err := os.Stat(task.InputPath); err == nil {
		return info.Size()
	}
	return 0
}
