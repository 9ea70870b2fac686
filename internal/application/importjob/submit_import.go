package importjob

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

type SubmitImportOutput struct {
	Success bool   `json:"success"`
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
}

type SubmitImport interface {
	Execute(ctx context.Context, in JobSpec) (SubmitImportOutput, error)
}

type jobPreparer interface {
	Prepare(spec JobSpec) (PreparedJob, error)
}

type jobRecorder interface {
	Create(ctx context.Context, job domain.ImportJob) error
	Delete(ctx context.Context, id string) error
}

type jobEnqueuer interface {
	Enqueue(ctx context.Context, prepared PreparedJob) error
}

type submitImport struct {
	preparer jobPreparer
	store    jobRecorder
	queue    jobEnqueuer
}

// NewSubmitImport returns the use case that accepts a job, records it as
// pending and hands it to background workers without waiting for it.
func NewSubmitImport(preparer jobPreparer, store jobRecorder, queue jobEnqueuer) SubmitImport {
	return &submitImport{preparer: preparer, store: store, queue: queue}
}

func (uc *submitImport) Execute(ctx context.Context, in JobSpec) (SubmitImportOutput, error) {
	prepared, err := uc.preparer.Prepare(in)
	if err != nil {
		return SubmitImportOutput{}, err
	}

	if err := uc.store.Create(ctx, prepared.Job); err != nil {
		if errors.Is(err, domain.ErrJobAlreadyExists) {
			return SubmitImportOutput{}, fmt.Errorf("%w: %s", ErrDuplicateImportJob, prepared.Job.ID)
		}
		return SubmitImportOutput{}, fmt.Errorf("%w: %v", ErrCreateImportJob, err)
	}

	if err := uc.queue.Enqueue(ctx, prepared); err != nil {
		// The record was never queued; drop it so the job id can be submitted again.
		if delErr := uc.store.Delete(context.WithoutCancel(ctx), prepared.Job.ID); delErr != nil {
			return SubmitImportOutput{}, fmt.Errorf("%w: %v (discard pending record: %v)", ErrEnqueueImportJob, err, delErr)
		}
		return SubmitImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return SubmitImportOutput{
		Success: true,
		JobID:   prepared.Job.ID,
		Status:  string(domain.StatusPending),
	}, nil
}
