package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectDraft struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `json:"projectId" gorm:"type:uuid;uniqueIndex;not null"`
	CurrentStep int       `json:"currentStep" gorm:"default:1"`
	IsFinalized bool      `json:"isFinalized" gorm:"default:false"`
	LastSaved   time.Time `json:"lastSaved" gorm:"autoUpdateTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (d *ProjectDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Draft DTOs
type CreateDraftRequest struct {
	ProjectID   uuid.UUID `json:"projectId" validate:"required"`
	CurrentStep int       `json:"currentStep"`
}

type UpdateDraftRequest struct {
	CurrentStep *int `json:"currentStep"`
}
