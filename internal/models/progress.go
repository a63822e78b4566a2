package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProgressNotStarted     = "not_started"
	ProgressInProgress     = "in_progress"
	ProgressOnTrack        = "on_track"
	ProgressAtRisk         = "at_risk"
	ProgressCompleted      = "completed"
	ProgressBehindSchedule = "behind_schedule"
)

type SDGProgressReport struct {
	ID                 uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID          uuid.UUID   `json:"projectId" gorm:"type:uuid;not null;uniqueIndex:idx_project_target"`
	TargetID           uuid.UUID   `json:"targetId" gorm:"type:uuid;not null;uniqueIndex:idx_project_target"`
	Target             *SDGTarget  `json:"target,omitempty" gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
	Status             string      `json:"status" gorm:"not null;default:'not_started'"`
	ProgressPercentage int         `json:"progressPercentage" gorm:"default:0"` // 0-100
	Description        string      `json:"description"`
	Challenges         string      `json:"challenges"`
	NextSteps          string      `json:"nextSteps"`
	ReportedByID       *uuid.UUID  `json:"reportedById" gorm:"type:uuid"`
	ReportedBy         *ClientUser `json:"reportedBy,omitempty" gorm:"foreignKey:ReportedByID;constraint:OnDelete:SET NULL"`
	ReportedAt         time.Time   `json:"reportedAt" gorm:"autoCreateTime"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

func (r *SDGProgressReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func ValidProgressStatus(status string) bool {
	switch status {
	case ProgressNotStarted, ProgressInProgress, ProgressOnTrack,
		ProgressAtRisk, ProgressCompleted, ProgressBehindSchedule:
		return true
	}
	return false
}

// Progress report DTOs
type UpsertProgressReportRequest struct {
	TargetID           uuid.UUID `json:"targetId" validate:"required"`
	Status             *string   `json:"status"`
	ProgressPercentage *int      `json:"progressPercentage"`
	Description        *string   `json:"description"`
	Challenges         *string   `json:"challenges"`
	NextSteps          *string   `json:"nextSteps"`
}
