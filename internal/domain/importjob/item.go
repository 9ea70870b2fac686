package importjob

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImportItem is one record of a job. Concrete types are AssetCreate,
// OrderLineCreate and EntityPatch.
type ImportItem interface {
	ItemType() ItemType
	Tenant() string
}

type AssetCreate struct {
	CompanyID  string
	AssetCode  string
	Status     string
	Grade      string
	Location   string
	Attributes map[string]any
}

func (AssetCreate) ItemType() ItemType { return ItemTypeAssetCreate }
func (a AssetCreate) Tenant() string   { return a.CompanyID }

type OrderLineCreate struct {
	CompanyID       string  `json:"company_id"`
	PurchaseOrderID string  `json:"purchase_order_id"`
	AssetCode       string  `json:"asset_code"`
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
}

func (OrderLineCreate) ItemType() ItemType { return ItemTypePurchaseOrderLineCreate }
func (l OrderLineCreate) Tenant() string   { return l.CompanyID }

// EntityPatch overwrites Fields on the record identified by ID.
type EntityPatch struct {
	ID        string
	CompanyID string
	Fields    map[string]any
}

func (EntityPatch) ItemType() ItemType { return ItemTypeEntityPatch }
func (p EntityPatch) Tenant() string   { return p.CompanyID }

// DecodeItems converts raw JSON items into the shape selected by itemType.
// Items without a company_id inherit tenantID.
func DecodeItems(itemType ItemType, tenantID string, raws []json.RawMessage) ([]ImportItem, error) {
	items := make([]ImportItem, 0, len(raws))
	for i, raw := range raws {
		item, err := decodeItem(itemType, tenantID, raw)
		if err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", ErrInvalidItem, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItem(itemType ItemType, tenantID string, raw json.RawMessage) (ImportItem, error) {
	switch itemType {
	case ItemTypeAssetCreate:
		return decodeAsset(tenantID, raw)
	case ItemTypePurchaseOrderLineCreate:
		var line OrderLineCreate
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, err
		}
		if strings.TrimSpace(line.CompanyID) == "" {
			line.CompanyID = tenantID
		}
		return line, nil
	case ItemTypeEntityPatch:
		return decodePatch(tenantID, raw)
	default:
		return nil, ErrUnknownJobType
	}
}

func decodeAsset(tenantID string, raw json.RawMessage) (ImportItem, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("item must be an object")
	}

	asset := AssetCreate{Attributes: map[string]any{}}
	for key, value := range fields {
		var target *string
		switch key {
		case "company_id":
			target = &asset.CompanyID
		case "asset_code":
			target = &asset.AssetCode
		case "status":
			target = &asset.Status
		case "grade":
			target = &asset.Grade
		case "location":
			target = &asset.Location
		default:
			asset.Attributes[key] = value
			continue
		}
		if value == nil {
			continue
		}
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string", key)
		}
		*target = s
	}

	if strings.TrimSpace(asset.CompanyID) == "" {
		asset.CompanyID = tenantID
	}
	return asset, nil
}

type rawPatch struct {
	ID        string         `json:"id"`
	CompanyID string         `json:"company_id"`
	Updates   map[string]any `json:"updates"`
}

func decodePatch(tenantID string, raw json.RawMessage) (ImportItem, error) {
	var p rawPatch
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.CompanyID) == "" {
		p.CompanyID = tenantID
	}
	if p.Updates == nil {
		p.Updates = map[string]any{}
	}
	return EntityPatch{ID: p.ID, CompanyID: p.CompanyID, Fields: p.Updates}, nil
}
