package importjob

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type ErrorLedgerEntry struct {
	ChunkIndex int    `json:"chunk_index"`
	Message    string `json:"message"`
	ItemCount  int    `json:"item_count"`
}

type ResultSummary struct {
	Total      int64 `json:"total"`
	Successful int64 `json:"successful"`
	Failed     int64 `json:"failed"`
}

// ImportJob is the durable record of one bulk import. Counts always satisfy
// ProcessedRows == SuccessfulRows + FailedRows <= TotalRows.
type ImportJob struct {
	ID             string
	TenantID       string
	ItemType       ItemType
	Status         Status
	TotalRows      int64
	ProcessedRows  int64
	SuccessfulRows int64
	FailedRows     int64
	Progress       int
	ErrorLedger    []ErrorLedgerEntry
	ResultSummary  *ResultSummary
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

func NewImportJob(id, tenantID string, itemType ItemType, totalRows int, now time.Time) ImportJob {
	return ImportJob{
		ID:        id,
		TenantID:  tenantID,
		ItemType:  itemType,
		Status:    StatusPending,
		TotalRows: int64(totalRows),
		CreatedAt: now,
	}
}

// Start moves a pending job to processing.
func (j *ImportJob) Start(now time.Time) error {
	if j.Status != StatusPending {
		return ErrInvalidTransition
	}
	j.Status = StatusProcessing
	j.StartedAt = &now
	return nil
}

// RecordChunk accounts for one processed chunk. A nil chunkErr marks every
// item in the chunk successful; otherwise every item counts as failed and a
// ledger entry is appended.
func (j *ImportJob) RecordChunk(chunkIndex, itemCount int, chunkErr error) error {
	if j.Status != StatusProcessing {
		return ErrInvalidTransition
	}
	n := int64(itemCount)
	if j.ProcessedRows+n > j.TotalRows {
		return ErrRowOverflow
	}

	if chunkErr == nil {
		j.SuccessfulRows += n
	} else {
		j.FailedRows += n
		j.ErrorLedger = append(j.ErrorLedger, ErrorLedgerEntry{
			ChunkIndex: chunkIndex,
			Message:    chunkErr.Error(),
			ItemCount:  itemCount,
		})
	}
	j.ProcessedRows += n

	if progress := computeProgress(j.ProcessedRows, j.TotalRows); progress > j.Progress {
		j.Progress = progress
	}
	return nil
}

// Finalize computes the terminal status once every row is processed. A job
// with some failed rows is still completed; only a job where every row failed
// is failed.
func (j *ImportJob) Finalize(now time.Time) error {
	if j.Status != StatusProcessing {
		return ErrInvalidTransition
	}
	if j.ProcessedRows != j.TotalRows {
		return ErrUnprocessedRows
	}

	if j.FailedRows == j.TotalRows {
		j.Status = StatusFailed
	} else {
		j.Status = StatusCompleted
	}
	j.Progress = 100
	j.CompletedAt = &now
	j.ResultSummary = &ResultSummary{
		Total:      j.TotalRows,
		Successful: j.SuccessfulRows,
		Failed:     j.FailedRows,
	}
	return nil
}

func computeProgress(processed, total int64) int {
	if total <= 0 {
		return 100
	}
	progress := int(processed * 100 / total)
	if progress > 100 {
		return 100
	}
	return progress
}
