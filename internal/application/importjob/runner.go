package importjob

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

var ErrRunnerStopped = errors.New("import runner stopped")

type jobRunner interface {
	Run(ctx context.Context, prepared PreparedJob) (domain.ImportJob, error)
}

type RunnerConfig struct {
	Workers   int
	QueueSize int
}

// Runner processes submitted jobs in the background. Each job is handled by
// a single worker; separate jobs run concurrently. Nothing prevents the same
// job id from being queued twice.
type Runner struct {
	processor jobRunner
	cfg       RunnerConfig
	logger    *slog.Logger
	queue     chan PreparedJob

	once  sync.Once
	group *errgroup.Group
	done  <-chan struct{}
}

func NewRunner(processor jobRunner, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		processor: processor,
		cfg:       cfg,
		logger:    logger,
		queue:     make(chan PreparedJob, cfg.QueueSize),
	}
}

// Start launches the workers. They exit when ctx is cancelled; a job in
// flight stops before its next chunk.
func (r *Runner) Start(ctx context.Context) {
	r.once.Do(func() {
		group, groupCtx := errgroup.WithContext(ctx)
		r.group = group
		r.done = groupCtx.Done()

		for i := 0; i < r.cfg.Workers; i++ {
			group.Go(func() error {
				r.workerLoop(groupCtx)
				return nil
			})
		}
	})
}

// Enqueue hands a prepared job to the workers, blocking while the queue is
// full.
func (r *Runner) Enqueue(ctx context.Context, prepared PreparedJob) error {
	select {
	case <-r.done:
		return ErrRunnerStopped
	default:
	}

	select {
	case r.queue <- prepared:
		return nil
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every worker has exited.
func (r *Runner) Wait() error {
	if r.group == nil {
		return nil
	}
	return r.group.Wait()
}

func (r *Runner) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.drop()
			return
		default:
		}

		select {
		case <-ctx.Done():
			r.drop()
			return
		case prepared := <-r.queue:
			job, err := r.processor.Run(ctx, prepared)
			if err != nil {
				r.logger.Error("process import job failed", "job_id", prepared.Job.ID, "status", job.Status, "error", err)
			}
		}
	}
}

// drop empties the queue after shutdown. Dropped jobs keep their pending
// record and are not resumed on restart.
func (r *Runner) drop() {
	for {
		select {
		case prepared := <-r.queue:
			r.logger.Warn("import job dropped on shutdown", "job_id", prepared.Job.ID, "status", prepared.Job.Status)
		default:
			return
		}
	}
}
