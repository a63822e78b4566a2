package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectObjective struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID       `json:"projectId" gorm:"type:uuid;index;not null"`
	Project   *Project        `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Text      string          `json:"text" gorm:"not null"`
	Metrics   []SuccessMetric `json:"metrics,omitempty" gorm:"foreignKey:ObjectiveID"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (o *ProjectObjective) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type SuccessMetric struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ObjectiveID uuid.UUID `json:"objectiveId" gorm:"type:uuid;index;not null"`
	Text        string    `json:"text" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *SuccessMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Objective DTOs
type CreateObjectiveRequest struct {
	Text string `json:"text" validate:"required"`
}

type UpdateObjectiveRequest struct {
	Text *string `json:"text"`
}

type CreateMetricRequest struct {
	Text string `json:"text" validate:"required"`
}
