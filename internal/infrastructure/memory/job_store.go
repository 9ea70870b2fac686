package memory

import (
	"context"
	"sync"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

// JobStore keeps import jobs in a map. Records are copied on every read and
// write so callers never share ledger slices with the store.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.ImportJob
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]domain.ImportJob)}
}

func (s *JobStore) Get(ctx context.Context, id string) (domain.ImportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.ImportJob{}, domain.ErrJobNotFound
	}
	return cloneJob(job), nil
}

func (s *JobStore) Create(ctx context.Context, job domain.ImportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return domain.ErrJobAlreadyExists
	}
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (s *JobStore) Update(ctx context.Context, job domain.ImportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[job.ID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if current.Status.IsTerminal() {
		return domain.ErrJobTerminal
	}
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (s *JobStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if current.Status != domain.StatusPending {
		return domain.ErrJobNotPending
	}
	delete(s.jobs, id)
	return nil
}

func cloneJob(job domain.ImportJob) domain.ImportJob {
	if job.ErrorLedger != nil {
		job.ErrorLedger = append([]domain.ErrorLedgerEntry(nil), job.ErrorLedger...)
	}
	if job.ResultSummary != nil {
		summary := *job.ResultSummary
		job.ResultSummary = &summary
	}
	if job.StartedAt != nil {
		startedAt := *job.StartedAt
		job.StartedAt = &startedAt
	}
	if job.CompletedAt != nil {
		completedAt := *job.CompletedAt
		job.CompletedAt = &completedAt
	}
	return job
}
