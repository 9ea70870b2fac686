package importjob

import "fmt"

type ItemType string

const (
	ItemTypeAssetCreate             ItemType = "asset_create"
	ItemTypePurchaseOrderLineCreate ItemType = "purchase_order_line_create"
	ItemTypeEntityPatch             ItemType = "entity_patch"
)

// Wire values accepted in the jobType field of a submission.
const (
	JobTypeAssets        = "assets"
	JobTypePurchaseOrder = "purchase_order"
	JobTypeBulkUpdate    = "bulk_update"
)

// ParseJobType maps a submission jobType to its item type.
func ParseJobType(jobType string) (ItemType, error) {
	switch jobType {
	case JobTypeAssets:
		return ItemTypeAssetCreate, nil
	case JobTypePurchaseOrder:
		return ItemTypePurchaseOrderLineCreate, nil
	case JobTypeBulkUpdate:
		return ItemTypeEntityPatch, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownJobType, jobType)
	}
}

// JobType returns the submission literal for t.
func (t ItemType) JobType() string {
	switch t {
	case ItemTypeAssetCreate:
		return JobTypeAssets
	case ItemTypePurchaseOrderLineCreate:
		return JobTypePurchaseOrder
	case ItemTypeEntityPatch:
		return JobTypeBulkUpdate
	default:
		return string(t)
	}
}

type OperationKind int

const (
	// OperationBulkInsert writes a whole chunk as new rows in one call.
	OperationBulkInsert OperationKind = iota + 1
	// OperationPerItemUpdate patches items one at a time and stops the chunk
	// at the first failing item.
	OperationPerItemUpdate
)

func (k OperationKind) String() string {
	switch k {
	case OperationBulkInsert:
		return "bulk_insert"
	case OperationPerItemUpdate:
		return "per_item_update"
	default:
		return "unknown"
	}
}

type Collection string

const (
	CollectionAssets             Collection = "assets"
	CollectionPurchaseOrderLines Collection = "purchase_order_lines"
)

type Operation struct {
	Kind   OperationKind
	Target Collection
}

// Classify selects the storage operation applied to every chunk of a job.
func Classify(itemType ItemType) (Operation, error) {
	switch itemType {
	case ItemTypeAssetCreate:
		return Operation{Kind: OperationBulkInsert, Target: CollectionAssets}, nil
	case ItemTypePurchaseOrderLineCreate:
		return Operation{Kind: OperationBulkInsert, Target: CollectionPurchaseOrderLines}, nil
	case ItemTypeEntityPatch:
		return Operation{Kind: OperationPerItemUpdate, Target: CollectionAssets}, nil
	default:
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownJobType, string(itemType))
	}
}
