package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StakeholderCategory struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *StakeholderCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ProjectStakeholder struct {
	ID         uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID            `json:"projectId" gorm:"type:uuid;index;not null"`
	CategoryID uuid.UUID            `json:"categoryId" gorm:"type:uuid;not null"`
	Category   *StakeholderCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

func (s *ProjectStakeholder) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Stakeholder DTOs
type CreateStakeholderCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type AddProjectStakeholderRequest struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}
