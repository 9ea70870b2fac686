package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportJob struct {
	ID             string         `gorm:"type:text;primaryKey"`
	CompanyID      string         `gorm:"type:text;not null;index"`
	JobType        string         `gorm:"type:text;not null"`
	Status         string         `gorm:"type:text;not null"`
	Progress       int            `gorm:"not null;default:0"`
	TotalRows      int64          `gorm:"not null;default:0"`
	ProcessedRows  int64          `gorm:"not null;default:0"`
	SuccessfulRows int64          `gorm:"not null;default:0"`
	FailedRows     int64          `gorm:"not null;default:0"`
	ErrorDetails   datatypes.JSON `gorm:"type:jsonb"`
	ResultData     datatypes.JSON `gorm:"type:jsonb"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
