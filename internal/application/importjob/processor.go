package importjob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

const DefaultChunkSize = 100

type ProcessorConfig struct {
	ChunkSize int
	Now       func() time.Time
}

// Processor applies a job's items to storage chunk by chunk and keeps the
// job record current after every chunk. Chunks run sequentially in input
// order; a failed chunk is recorded in the error ledger and the next chunk
// still runs.
type Processor struct {
	store   domain.JobStore
	targets Targets
	cfg     ProcessorConfig
	logger  *slog.Logger
}

func NewProcessor(store domain.JobStore, targets Targets, cfg ProcessorConfig, logger *slog.Logger) *Processor {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		store:   store,
		targets: targets,
		cfg:     cfg,
		logger:  logger,
	}
}

// Prepare runs the pre-flight checks and verifies the job's target storage
// is wired.
func (p *Processor) Prepare(spec JobSpec) (PreparedJob, error) {
	prepared, err := PrepareJob(spec, p.cfg.Now().UTC())
	if err != nil {
		return PreparedJob{}, err
	}
	if _, err := p.targets.operationFor(prepared.Job.ID, prepared.Operation); err != nil {
		return PreparedJob{}, err
	}
	return prepared, nil
}

// Process validates spec, creates its pending record and runs it to a
// terminal state before returning.
func (p *Processor) Process(ctx context.Context, spec JobSpec) (domain.ImportJob, error) {
	prepared, err := p.Prepare(spec)
	if err != nil {
		return domain.ImportJob{}, err
	}

	if err := p.store.Create(ctx, prepared.Job); err != nil {
		if errors.Is(err, domain.ErrJobAlreadyExists) {
			return domain.ImportJob{}, fmt.Errorf("%w: %s", ErrDuplicateImportJob, prepared.Job.ID)
		}
		return domain.ImportJob{}, fmt.Errorf("%w: %v", ErrCreateImportJob, err)
	}

	return p.Run(ctx, prepared)
}

// Run takes a pending job through processing to its terminal state. Errors
// returned here come from the job store or from ctx; storage errors inside a
// chunk never abort the run. On such an error the record is left as last
// written.
func (p *Processor) Run(ctx context.Context, prepared PreparedJob) (domain.ImportJob, error) {
	job := prepared.Job
	logger := p.logger.With("job_id", job.ID, "company_id", job.TenantID, "job_type", job.ItemType.JobType())

	apply, err := p.targets.operationFor(job.ID, prepared.Operation)
	if err != nil {
		return job, err
	}

	if err := job.Start(p.cfg.Now().UTC()); err != nil {
		return job, err
	}
	if err := p.store.Update(ctx, job); err != nil {
		return job, fmt.Errorf("%w: %v", ErrUpdateImportJob, err)
	}
	logger.Info("import job started", "total_rows", job.TotalRows, "operation", prepared.Operation.Kind.String())

	items := prepared.Items
	chunkIndex := 0
	for start := 0; start < len(items); start += p.cfg.ChunkSize {
		if err := ctx.Err(); err != nil {
			return job, err
		}

		end := min(start+p.cfg.ChunkSize, len(items))
		chunk := items[start:end]

		chunkErr := apply(ctx, start, chunk)
		if chunkErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return job, ctxErr
			}
			logger.Warn("import chunk failed", "chunk_index", chunkIndex, "items", len(chunk), "error", chunkErr)
			chunkErr = errors.New(truncateReason(chunkErr.Error()))
		}

		if err := job.RecordChunk(chunkIndex, len(chunk), chunkErr); err != nil {
			return job, err
		}
		if err := p.store.Update(ctx, job); err != nil {
			return job, fmt.Errorf("%w: %v", ErrUpdateImportJob, err)
		}
		chunkIndex++
	}

	if err := job.Finalize(p.cfg.Now().UTC()); err != nil {
		return job, err
	}
	if err := p.store.Update(ctx, job); err != nil {
		return job, fmt.Errorf("%w: %v", ErrUpdateImportJob, err)
	}

	logger.Info("import job finished",
		"status", job.Status,
		"successful_rows", job.SuccessfulRows,
		"failed_rows", job.FailedRows,
		"failed_chunks", len(job.ErrorLedger),
	)
	return job, nil
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
