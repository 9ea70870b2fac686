package importjob_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	app "github.com/mohammadpnp/asset-import/internal/application/importjob"
	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
	"github.com/mohammadpnp/asset-import/internal/infrastructure/memory"
)

type recordingStore struct {
	*memory.JobStore

	mu        sync.Mutex
	updates   []domain.ImportJob
	updateErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{JobStore: memory.NewJobStore()}
}

func (s *recordingStore) Update(ctx context.Context, job domain.ImportJob) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if err := s.JobStore.Update(ctx, job); err != nil {
		return err
	}
	s.mu.Lock()
	s.updates = append(s.updates, job)
	s.mu.Unlock()
	return nil
}

func (s *recordingStore) snapshot() []domain.ImportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ImportJob(nil), s.updates...)
}

type fakeAssetWriter struct {
	mu        sync.Mutex
	failCalls map[int]error
	calls     int
	chunks    [][]domain.AssetCreate
}

func (f *fakeAssetWriter) InsertAssets(ctx context.Context, jobID string, assets []domain.AssetCreate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.calls
	f.calls++
	if err, ok := f.failCalls[call]; ok {
		return err
	}
	f.chunks = append(f.chunks, assets)
	return nil
}

type fakeOrderLineWriter struct {
	lines []domain.OrderLineCreate
	err   error
}

func (f *fakeOrderLineWriter) InsertOrderLines(ctx context.Context, jobID string, lines []domain.OrderLineCreate) error {
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, lines...)
	return nil
}

type fakePatcher struct {
	failIDs map[string]error
	applied []string
	calls   int
}

func (f *fakePatcher) PatchAsset(ctx context.Context, patch domain.EntityPatch) error {
	f.calls++
	if err, ok := f.failIDs[patch.ID]; ok {
		return err
	}
	f.applied = append(f.applied, patch.ID)
	return nil
}

var errConstraint = errors.New(`duplicate key value violates unique constraint "assets_company_code_key"`)

func assetSpec(jobID string, n int) app.JobSpec {
	items := make([]json.RawMessage, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, json.RawMessage(fmt.Sprintf(`{"asset_code":"A-%04d","serial_number":"SN-%d"}`, i, i)))
	}
	return app.JobSpec{JobID: jobID, CompanyID: "company-1", JobType: domain.JobTypeAssets, Items: items}
}

func patchSpec(jobID string, n int) app.JobSpec {
	items := make([]json.RawMessage, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, json.RawMessage(fmt.Sprintf(`{"id":"asset-%d","updates":{"status":"sold"}}`, i)))
	}
	return app.JobSpec{JobID: jobID, CompanyID: "company-1", JobType: domain.JobTypeBulkUpdate, Items: items}
}
