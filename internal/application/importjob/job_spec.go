package importjob

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

// JobSpec is a submitted bulk import request.
type JobSpec struct {
	JobID     string            `json:"jobId"`
	CompanyID string            `json:"companyId"`
	JobType   string            `json:"jobType"`
	Items     []json.RawMessage `json:"items"`
}

// PreparedJob is a job that passed pre-flight checks: its item type is
// classified once and its items are decoded.
type PreparedJob struct {
	Job       domain.ImportJob
	Items     []domain.ImportItem
	Operation domain.Operation
}

// PrepareJob runs the pre-flight checks. Every error it returns wraps
// ErrInvalidJobSpec and is fatal to the job.
func PrepareJob(spec JobSpec, now time.Time) (PreparedJob, error) {
	jobID := strings.TrimSpace(spec.JobID)
	companyID := strings.TrimSpace(spec.CompanyID)

	switch {
	case jobID == "":
		return PreparedJob{}, fmt.Errorf("%w: jobId is required", ErrInvalidJobSpec)
	case companyID == "":
		return PreparedJob{}, fmt.Errorf("%w: companyId is required", ErrInvalidJobSpec)
	case strings.TrimSpace(spec.JobType) == "":
		return PreparedJob{}, fmt.Errorf("%w: jobType is required", ErrInvalidJobSpec)
	case len(spec.Items) == 0:
		return PreparedJob{}, fmt.Errorf("%w: items must be a non-empty array", ErrInvalidJobSpec)
	}

	itemType, err := domain.ParseJobType(spec.JobType)
	if err != nil {
		return PreparedJob{}, fmt.Errorf("%w: %w", ErrInvalidJobSpec, err)
	}

	op, err := domain.Classify(itemType)
	if err != nil {
		return PreparedJob{}, fmt.Errorf("%w: %w", ErrInvalidJobSpec, err)
	}

	items, err := domain.DecodeItems(itemType, companyID, spec.Items)
	if err != nil {
		return PreparedJob{}, fmt.Errorf("%w: %w", ErrInvalidJobSpec, err)
	}

	return PreparedJob{
		Job:       domain.NewImportJob(jobID, companyID, itemType, len(items), now),
		Items:     items,
		Operation: op,
	}, nil
}
