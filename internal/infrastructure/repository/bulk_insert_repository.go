package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
)

const defaultAssetStatus = "received"

// BulkInsertRepository writes whole chunks of new rows with COPY. Each call
// runs in its own transaction, so a chunk is either fully written or not at
// all.
type BulkInsertRepository struct {
	pool *pgxpool.Pool
}

func NewBulkInsertRepository(pool *pgxpool.Pool) *BulkInsertRepository {
	return &BulkInsertRepository{pool: pool}
}

func (r *BulkInsertRepository) InsertAssets(ctx context.Context, jobID string, assets []domain.AssetCreate) error {
	if len(assets) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(assets))
	for _, asset := range assets {
		row, err := assetRow(asset, jobID, now)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return r.copyChunk(ctx, "assets",
		[]string{"id", "company_id", "asset_code", "status", "grade", "location", "attributes", "import_job_id", "created_at", "updated_at"},
		rows,
	)
}

func (r *BulkInsertRepository) InsertOrderLines(ctx context.Context, jobID string, lines []domain.OrderLineCreate) error {
	if len(lines) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, orderLineRow(line, jobID, now))
	}

	return r.copyChunk(ctx, "purchase_order_lines",
		[]string{"id", "company_id", "purchase_order_id", "asset_code", "description", "quantity", "unit_cost", "import_job_id", "created_at"},
		rows,
	)
}

// Empty required text goes out as NULL so the NOT NULL constraints reject the chunk.
func assetRow(asset domain.AssetCreate, jobID string, now time.Time) ([]any, error) {
	attributes := asset.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}
	rawAttributes, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("encode attributes for asset %s: %w", asset.AssetCode, err)
	}

	status := strings.TrimSpace(asset.Status)
	if status == "" {
		status = defaultAssetStatus
	}

	return []any{
		uuid.New(),
		nullableText(asset.CompanyID),
		nullableText(strings.TrimSpace(asset.AssetCode)),
		status,
		nullableText(asset.Grade),
		nullableText(asset.Location),
		rawAttributes,
		nullableText(jobID),
		now,
		now,
	}, nil
}

func orderLineRow(line domain.OrderLineCreate, jobID string, now time.Time) []any {
	return []any{
		uuid.New(),
		nullableText(line.CompanyID),
		nullableText(strings.TrimSpace(line.PurchaseOrderID)),
		nullableText(line.AssetCode),
		line.Description,
		line.Quantity,
		line.UnitCost,
		nullableText(jobID),
		now,
	}
}

func (r *BulkInsertRepository) copyChunk(ctx context.Context, table string, columns []string, rows [][]any) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s chunk: %w", table, err)
	}
	return nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
