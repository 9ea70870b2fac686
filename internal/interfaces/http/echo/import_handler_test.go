package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	httpecho "github.com/mohammadpnp/asset-import/internal/interfaces/http/echo"
)

type fakeSubmitUseCase struct {
	output app.SubmitImportOutput
	err    error
	got    app.JobSpec
}

func (f *fakeSubmitUseCase) Execute(ctx context.Context, in app.JobSpec) (app.SubmitImportOutput, error) {
	f.got = in
	if f.err != nil {
		return app.SubmitImportOutput{}, f.err
	}
	return f.output, nil
}

type fakeGetUseCase struct {
	output app.ImportJobOutput
	err    error
}

func (f *fakeGetUseCase) Execute(ctx context.Context, in app.GetImportJobInput) (app.ImportJobOutput, error) {
	if f.err != nil {
		return app.ImportJobOutput{}, f.err
	}
	return f.output, nil
}

func newServer(submit app.SubmitImport, get app.GetImportJob) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e, httpecho.NewImportHandler(submit, get))
	return e
}

func postImport(t *testing.T, e *echo.Echo, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return rec, got
}

func TestSubmitImportHandlerAccepted(t *testing.T) {
	t.Parallel()

	submit := &fakeSubmitUseCase{output: app.SubmitImportOutput{Success: true, JobID: "job-1", Status: "pending"}}
	e := newServer(submit, &fakeGetUseCase{})

	rec, got := postImport(t, e, `{"jobId":"job-1","companyId":"company-1","jobType":"assets","items":[{"asset_code":"A-1"}]}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "job-1", got["jobId"])
	assert.Equal(t, "pending", got["status"])

	assert.Equal(t, "company-1", submit.got.CompanyID)
	assert.Equal(t, "assets", submit.got.JobType)
	require.Len(t, submit.got.Items, 1)
	assert.JSONEq(t, `{"asset_code":"A-1"}`, string(submit.got.Items[0]))
}

func TestSubmitImportHandlerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"bad json", `{"jobId":`, nil, http.StatusBadRequest},
		{"invalid spec", `{"jobId":"job-1"}`, app.ErrInvalidJobSpec, http.StatusBadRequest},
		{"duplicate", `{"jobId":"job-1"}`, app.ErrDuplicateImportJob, http.StatusConflict},
		{"queue unavailable", `{"jobId":"job-1"}`, app.ErrEnqueueImportJob, http.StatusServiceUnavailable},
		{"internal", `{"jobId":"job-1"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newServer(&fakeSubmitUseCase{err: tt.err}, &fakeGetUseCase{})
			rec, got := postImport(t, e, tt.body)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, false, got["success"])
			assert.NotEmpty(t, got["error"])
			assert.NotContains(t, got, "jobId")
		})
	}
}

func TestGetImportJobHandler(t *testing.T) {
	t.Parallel()

	e := newServer(&fakeSubmitUseCase{}, &fakeGetUseCase{output: app.ImportJobOutput{
		ID:             "job-1",
		Status:         "completed",
		Progress:       100,
		TotalRows:      150,
		ProcessedRows:  150,
		SuccessfulRows: 100,
		FailedRows:     50,
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/job-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	data, ok := got["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, float64(50), data["failed_rows"])
	assert.Equal(t, float64(100), data["progress"])
}

func TestGetImportJobHandlerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code int
	}{
		{app.ErrInvalidJobID, http.StatusBadRequest},
		{app.ErrImportJobNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		e := newServer(&fakeSubmitUseCase{}, &fakeGetUseCase{err: tt.err})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/job-1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}
