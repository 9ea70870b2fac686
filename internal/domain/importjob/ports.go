package importjob

import "context"

// JobStore keeps import job records keyed by job id.
type JobStore interface {
	Get(ctx context.Context, id string) (ImportJob, error)
	Create(ctx context.Context, job ImportJob) error
	Update(ctx context.Context, job ImportJob) error
	// Delete removes a record that no worker has started yet.
	Delete(ctx context.Context, id string) error
}
