package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
	"github.com/mohammadpnp/asset-import/internal/infrastructure/db/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportJobRepository stores import job records in the import_jobs table.
type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Get(ctx context.Context, id string) (domain.ImportJob, error) {
	var row models.ImportJob
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ImportJob{}, domain.ErrJobNotFound
		}
		return domain.ImportJob{}, fmt.Errorf("get import job: %w", err)
	}
	return toDomainJob(row)
}

func (r *ImportJobRepository) Create(ctx context.Context, job domain.ImportJob) error {
	row, err := toModelJob(job)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return fmt.Errorf("create import job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrJobAlreadyExists
	}
	return nil
}

// Update overwrites the mutable columns of a job. Rows already in a terminal
// status are never touched.
func (r *ImportJobRepository) Update(ctx context.Context, job domain.ImportJob) error {
	row, err := toModelJob(job)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ? AND status NOT IN ?", job.ID, []string{string(domain.StatusCompleted), string(domain.StatusFailed)}).
		Updates(map[string]any{
			"status":          row.Status,
			"progress":        row.Progress,
			"total_rows":      row.TotalRows,
			"processed_rows":  row.ProcessedRows,
			"successful_rows": row.SuccessfulRows,
			"failed_rows":     row.FailedRows,
			"error_details":   row.ErrorDetails,
			"result_data":     row.ResultData,
			"started_at":      row.StartedAt,
			"completed_at":    row.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update import job: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing models.ImportJob
	if err := r.db.WithContext(ctx).Select("status").First(&existing, "id = ?", job.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrJobNotFound
		}
		return fmt.Errorf("check import job: %w", err)
	}
	return domain.ErrJobTerminal
}

// Delete drops a job that is still pending.
func (r *ImportJobRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Delete(&models.ImportJob{})
	if result.Error != nil {
		return fmt.Errorf("delete import job: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var existing models.ImportJob
	if err := r.db.WithContext(ctx).Select("status").First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrJobNotFound
		}
		return fmt.Errorf("check import job: %w", err)
	}
	return domain.ErrJobNotPending
}

func toModelJob(job domain.ImportJob) (models.ImportJob, error) {
	ledger := job.ErrorLedger
	if ledger == nil {
		ledger = []domain.ErrorLedgerEntry{}
	}
	errorDetails, err := json.Marshal(ledger)
	if err != nil {
		return models.ImportJob{}, fmt.Errorf("encode error details: %w", err)
	}

	var resultData datatypes.JSON
	if job.ResultSummary != nil {
		raw, err := json.Marshal(job.ResultSummary)
		if err != nil {
			return models.ImportJob{}, fmt.Errorf("encode result data: %w", err)
		}
		resultData = datatypes.JSON(raw)
	}

	return models.ImportJob{
		ID:             job.ID,
		CompanyID:      job.TenantID,
		JobType:        string(job.ItemType),
		Status:         string(job.Status),
		Progress:       job.Progress,
		TotalRows:      job.TotalRows,
		ProcessedRows:  job.ProcessedRows,
		SuccessfulRows: job.SuccessfulRows,
		FailedRows:     job.FailedRows,
		ErrorDetails:   datatypes.JSON(errorDetails),
		ResultData:     resultData,
		StartedAt:      job.StartedAt,
		CompletedAt:    job.CompletedAt,
		CreatedAt:      job.CreatedAt,
	}, nil
}

func toDomainJob(row models.ImportJob) (domain.ImportJob, error) {
	job := domain.ImportJob{
		ID:             row.ID,
		TenantID:       row.CompanyID,
		ItemType:       domain.ItemType(row.JobType),
		Status:         domain.Status(row.Status),
		TotalRows:      row.TotalRows,
		ProcessedRows:  row.ProcessedRows,
		SuccessfulRows: row.SuccessfulRows,
		FailedRows:     row.FailedRows,
		Progress:       row.Progress,
		StartedAt:      row.StartedAt,
		CompletedAt:    row.CompletedAt,
		CreatedAt:      row.CreatedAt,
	}

	if len(row.ErrorDetails) > 0 {
		if err := json.Unmarshal(row.ErrorDetails, &job.ErrorLedger); err != nil {
			return domain.ImportJob{}, fmt.Errorf("decode error details: %w", err)
		}
	}
	if len(row.ResultData) > 0 && string(row.ResultData) != "null" {
		var summary domain.ResultSummary
		if err := json.Unmarshal(row.ResultData, &summary); err != nil {
			return domain.ImportJob{}, fmt.Errorf("decode result data: %w", err)
		}
		job.ResultSummary = &summary
	}
	return job, nil
}
