package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectTimeline struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID       `json:"projectId" gorm:"type:uuid;uniqueIndex;not null"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	TotalBudget decimal.Decimal `json:"totalBudget" gorm:"type:decimal(15,2)"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (t *ProjectTimeline) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type UpdateTimelineRequest struct {
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	TotalBudget *decimal.Decimal `json:"totalBudget"`
}
