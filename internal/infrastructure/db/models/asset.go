package models

import (
	"time"

	"gorm.io/datatypes"
)

type Asset struct {
	ID          string         `gorm:"type:uuid;primaryKey"`
	CompanyID   string         `gorm:"type:text;not null;uniqueIndex:assets_company_code_key"`
	AssetCode   string         `gorm:"type:text;not null;uniqueIndex:assets_company_code_key"`
	Status      string         `gorm:"type:text;not null;default:'received'"`
	Grade       *string        `gorm:"type:text"`
	Location    *string        `gorm:"type:text"`
	Attributes  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	ImportJobID *string        `gorm:"type:text;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Asset) TableName() string {
	return "assets"
}

type PurchaseOrderLine struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	CompanyID       string  `gorm:"type:text;not null;index"`
	PurchaseOrderID string  `gorm:"type:text;not null;index"`
	AssetCode       *string `gorm:"type:text"`
	Description     string  `gorm:"type:text;not null;default:''"`
	Quantity        int     `gorm:"not null;check:quantity > 0"`
	UnitCost        float64 `gorm:"type:numeric(12,2);not null;default:0"`
	ImportJobID     *string `gorm:"type:text;index"`
	CreatedAt       time.Time
}

func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&ImportJob{}, &Asset{}, &PurchaseOrderLine{}}
}
