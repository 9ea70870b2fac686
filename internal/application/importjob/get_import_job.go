package importjob

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

type GetImportJobInput struct {
	ID string
}

type ImportJobOutput struct {
	ID             string                    `json:"id"`
	CompanyID      string                    `json:"company_id"`
	JobType        string                    `json:"job_type"`
	Status         string                    `json:"status"`
	Progress       int                       `json:"progress"`
	TotalRows      int64                     `json:"total_rows"`
	ProcessedRows  int64                     `json:"processed_rows"`
	SuccessfulRows int64                     `json:"successful_rows"`
	FailedRows     int64                     `json:"failed_rows"`
	ErrorDetails   []domain.ErrorLedgerEntry `json:"error_details"`
	ResultData     *domain.ResultSummary     `json:"result_data"`
	StartedAt      *time.Time                `json:"started_at"`
	CompletedAt    *time.Time                `json:"completed_at"`
}

type GetImportJob interface {
	Execute(ctx context.Context, in GetImportJobInput) (ImportJobOutput, error)
}

type jobGetter interface {
	Get(ctx context.Context, id string) (domain.ImportJob, error)
}

type getImportJob struct {
	store jobGetter
}

func NewGetImportJob(store jobGetter) GetImportJob {
	return &getImportJob{store: store}
}

func (uc *getImportJob) Execute(ctx context.Context, in GetImportJobInput) (ImportJobOutput, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return ImportJobOutput{}, ErrInvalidJobID
	}

	job, err := uc.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return ImportJobOutput{}, ErrImportJobNotFound
		}
		return ImportJobOutput{}, fmt.Errorf("%w: %v", ErrGetImportJob, err)
	}

	return NewImportJobOutput(job), nil
}

func NewImportJobOutput(job domain.ImportJob) ImportJobOutput {
	ledger := job.ErrorLedger
	if ledger == nil {
		ledger = []domain.ErrorLedgerEntry{}
	}

	return ImportJobOutput{
		ID:             job.ID,
		CompanyID:      job.TenantID,
		JobType:        job.ItemType.JobType(),
		Status:         string(job.Status),
		Progress:       job.Progress,
		TotalRows:      job.TotalRows,
		ProcessedRows:  job.ProcessedRows,
		SuccessfulRows: job.SuccessfulRows,
		FailedRows:     job.FailedRows,
		ErrorDetails:   ledger,
		ResultData:     job.ResultSummary,
		StartedAt:      job.StartedAt,
		CompletedAt:    job.CompletedAt,
	}
}
