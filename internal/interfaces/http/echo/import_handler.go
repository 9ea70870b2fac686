package echo

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
)

type ImportHandler struct {
	submit app.SubmitImport
	get    app.GetImportJob
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(submit app.SubmitImport, get app.GetImportJob) *ImportHandler {
	return &ImportHandler{submit: submit, get: get}
}

// SubmitImport accepts a job and answers once its pending record exists.
// Progress is read back through GetImportJob.
func (h *ImportHandler) SubmitImport(c echo.Context) error {
	var req app.JobSpec
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, app.SubmissionFailure{Error: "invalid request body"})
	}

	out, err := h.submit.Execute(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidJobSpec):
			return c.JSON(http.StatusBadRequest, app.NewSubmissionFailure(err))
		case errors.Is(err, app.ErrDuplicateImportJob):
			return c.JSON(http.StatusConflict, app.NewSubmissionFailure(err))
		case errors.Is(err, app.ErrEnqueueImportJob):
			slog.ErrorContext(c.Request().Context(), "enqueue import job failed", "job_id", req.JobID, "error", err)
			return c.JSON(http.StatusServiceUnavailable, app.SubmissionFailure{Error: "import queue unavailable"})
		default:
			slog.ErrorContext(c.Request().Context(), "submit import job failed", "job_id", req.JobID, "error", err)
			return c.JSON(http.StatusInternalServerError, app.SubmissionFailure{Error: "failed to submit import job"})
		}
	}

	return c.JSON(http.StatusAccepted, out)
}

func (h *ImportHandler) GetImportJob(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetImportJobInput{ID: c.Param("id")})
	if err != nil {
		if errors.Is(err, app.ErrInvalidJobID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_job_id",
				Message: "job id is required",
			}})
		}
		if errors.Is(err, app.ErrImportJobNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "import job not found",
			}})
		}

		slog.ErrorContext(c.Request().Context(), "get import job failed", "job_id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get import job",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
