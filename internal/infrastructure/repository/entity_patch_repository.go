package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	domain "github.com/mohammadpnp/asset-import/internal/domain/importjob"
	"github.com/mohammadpnp/asset-import/internal/infrastructure/db/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// patchableAssetColumns are the asset columns a bulk update may overwrite.
var patchableAssetColumns = map[string]struct{}{
	"asset_code": {},
	"status":     {},
	"grade":      {},
	"location":   {},
	"attributes": {},
}

// EntityPatchRepository applies partial updates to single asset rows.
type EntityPatchRepository struct {
	db *gorm.DB
}

func NewEntityPatchRepository(db *gorm.DB) *EntityPatchRepository {
	return &EntityPatchRepository{db: db}
}

// PatchAsset overwrites the given fields on the asset identified by patch.ID
// within the patch's company. A patch that matches no row returns
// domain.ErrRecordNotFound.
func (r *EntityPatchRepository) PatchAsset(ctx context.Context, patch domain.EntityPatch) error {
	updates, err := assetUpdates(patch.Fields)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ? AND company_id = ?", patch.ID, patch.CompanyID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update asset %s: %w", patch.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func assetUpdates(fields map[string]any) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidItem)
	}

	var unknown []string
	updates := make(map[string]any, len(fields))
	for key, value := range fields {
		if _, ok := patchableAssetColumns[key]; !ok {
			unknown = append(unknown, key)
			continue
		}
		if key == "attributes" {
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encode attributes: %w", err)
			}
			updates[key] = datatypes.JSON(raw)
			continue
		}
		updates[key] = value
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: unknown fields %s", domain.ErrInvalidItem, strings.Join(unknown, ", "))
	}
	return updates, nil
}
