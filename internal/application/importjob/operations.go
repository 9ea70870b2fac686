package importjob

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

type AssetWriter interface {
	InsertAssets(ctx context.Context, jobID string, assets []domain.AssetCreate) error
}

type OrderLineWriter interface {
	InsertOrderLines(ctx context.Context, jobID string, lines []domain.OrderLineCreate) error
}

type EntityPatcher interface {
	PatchAsset(ctx context.Context, patch domain.EntityPatch) error
}

// Targets are the storage collections items are materialized into.
type Targets struct {
	Assets     AssetWriter
	OrderLines OrderLineWriter
	Patcher    EntityPatcher
}

// chunkFunc applies one chunk. offset is the input index of the chunk's
// first item.
type chunkFunc func(ctx context.Context, offset int, items []domain.ImportItem) error

func (t Targets) operationFor(jobID string, op domain.Operation) (chunkFunc, error) {
	switch {
	case op.Kind == domain.OperationBulkInsert && op.Target == domain.CollectionAssets:
		if t.Assets == nil {
			return nil, fmt.Errorf("%w: %s", ErrStorageNotAvailable, op.Target)
		}
		return func(ctx context.Context, offset int, items []domain.ImportItem) error {
			assets, err := itemsAs[domain.AssetCreate](offset, items)
			if err != nil {
				return err
			}
			return t.Assets.InsertAssets(ctx, jobID, assets)
		}, nil

	case op.Kind == domain.OperationBulkInsert && op.Target == domain.CollectionPurchaseOrderLines:
		if t.OrderLines == nil {
			return nil, fmt.Errorf("%w: %s", ErrStorageNotAvailable, op.Target)
		}
		return func(ctx context.Context, offset int, items []domain.ImportItem) error {
			lines, err := itemsAs[domain.OrderLineCreate](offset, items)
			if err != nil {
				return err
			}
			return t.OrderLines.InsertOrderLines(ctx, jobID, lines)
		}, nil

	case op.Kind == domain.OperationPerItemUpdate && op.Target == domain.CollectionAssets:
		if t.Patcher == nil {
			return nil, fmt.Errorf("%w: %s", ErrStorageNotAvailable, op.Target)
		}
		return func(ctx context.Context, offset int, items []domain.ImportItem) error {
			// Items patched before a failure stay applied.
			for i, item := range items {
				patch, ok := item.(domain.EntityPatch)
				if !ok {
					return fmt.Errorf("item %d: unexpected item type %s", offset+i, item.ItemType())
				}
				if err := t.Patcher.PatchAsset(ctx, patch); err != nil {
					return fmt.Errorf("item %d (id %s): %v", offset+i, patch.ID, err)
				}
			}
			return nil
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s on %s", domain.ErrUnknownJobType, op.Kind, op.Target)
	}
}

func itemsAs[T domain.ImportItem](offset int, items []domain.ImportItem) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		typed, ok := item.(T)
		if !ok {
			return nil, fmt.Errorf("item %d: unexpected item type %s", offset+i, item.ItemType())
		}
		out = append(out, typed)
	}
	return out, nil
}
