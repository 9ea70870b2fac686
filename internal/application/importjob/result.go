package importjob

import domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"

// SubmissionResult is the response of a synchronous run.
type SubmissionResult struct {
	Success    bool                      `json:"success"`
	JobID      string                    `json:"jobId"`
	Successful int64                     `json:"successful"`
	Failed     int64                     `json:"failed"`
	Errors     []domain.ErrorLedgerEntry `json:"errors,omitempty"`
}

// SubmissionFailure is returned when a job is rejected before processing.
type SubmissionFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewSubmissionResult summarises a terminal job. Success is false only when
// every row failed.
func NewSubmissionResult(job domain.ImportJob) SubmissionResult {
	return SubmissionResult{
		Success:    job.Status == domain.StatusCompleted,
		JobID:      job.ID,
		Successful: job.SuccessfulRows,
		Failed:     job.FailedRows,
		Errors:     job.ErrorLedger,
	}
}

func NewSubmissionFailure(err error) SubmissionFailure {
	return SubmissionFailure{Success: false, Error: err.Error()}
}
