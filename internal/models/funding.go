package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FundingSource struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Label     string    `json:"label" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *FundingSource) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type ProjectFunding struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID       `json:"projectId" gorm:"type:uuid;index;not null"`
	SourceID  uuid.UUID       `json:"sourceId" gorm:"type:uuid;not null"`
	Source    *FundingSource  `json:"source,omitempty" gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(15,2)"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (f *ProjectFunding) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Funding DTOs
type CreateFundingSourceRequest struct {
	Label string `json:"label" validate:"required"`
}

type AddProjectFundingRequest struct {
	SourceID uuid.UUID        `json:"sourceId" validate:"required"`
	Amount   *decimal.Decimal `json:"amount"`
}
