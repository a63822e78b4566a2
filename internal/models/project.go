package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

type Project struct {
	ID              uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID            `json:"clientId" gorm:"type:uuid;index;not null"`
	Client          *Client              `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Name            string               `json:"name" gorm:"not null"`
	Description     string               `json:"description"`
	ProjectType     string               `json:"projectType"`
	Priority        string               `json:"priority"` // HIGH, MEDIUM, LOW
	Location        string               `json:"location"`
	GeographicScope string               `json:"geographicScope"`
	IslandID        *uuid.UUID           `json:"islandId" gorm:"type:uuid"`
	Island          *SIDSIsland          `json:"island,omitempty" gorm:"foreignKey:IslandID;constraint:OnDelete:SET NULL"`
	SDGs            []SDGGoal            `json:"sdgs,omitempty" gorm:"many2many:project_sdgs"`
	SDGTargets      []SDGTarget          `json:"sdgTargets,omitempty" gorm:"many2many:project_sdg_targets"`
	CreatedByID     *uuid.UUID           `json:"createdById" gorm:"type:uuid"`
	CreatedBy       *ClientUser          `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Timeline        *ProjectTimeline     `json:"timeline,omitempty" gorm:"foreignKey:ProjectID"`
	Milestones      []ProjectMilestone   `json:"milestones,omitempty" gorm:"foreignKey:ProjectID"`
	Objectives      []ProjectObjective   `json:"objectives,omitempty" gorm:"foreignKey:ProjectID"`
	FundingSources  []ProjectFunding     `json:"fundingSources,omitempty" gorm:"foreignKey:ProjectID"`
	Draft           *ProjectDraft        `json:"draft,omitempty" gorm:"foreignKey:ProjectID"`
	Stakeholders    []ProjectStakeholder `json:"stakeholders,omitempty" gorm:"foreignKey:ProjectID"`
	RiskAssessment  *ProjectRisk         `json:"riskAssessment,omitempty" gorm:"foreignKey:ProjectID"`
	SDGProgress     []SDGProgressReport  `json:"sdgProgress,omitempty" gorm:"foreignKey:ProjectID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Project DTOs
type CreateProjectRequest struct {
	Name            string      `json:"name" validate:"required"`
	Description     string      `json:"description"`
	ProjectType     string      `json:"projectType"`
	Priority        string      `json:"priority"`
	Location        string      `json:"location"`
	GeographicScope string      `json:"geographicScope"`
	IslandID        *uuid.UUID  `json:"islandId"`
	SDGIDs          []uuid.UUID `json:"sdgIds"`
	SDGTargetIDs    []uuid.UUID `json:"sdgTargetIds"`
}

type UpdateProjectRequest struct {
	Name            *string      `json:"name"`
	Description     *string      `json:"description"`
	ProjectType     *string      `json:"projectType"`
	Priority        *string      `json:"priority"`
	Location        *string      `json:"location"`
	GeographicScope *string      `json:"geographicScope"`
	IslandID        *uuid.UUID   `json:"islandId"`
	SDGIDs          *[]uuid.UUID `json:"sdgIds"`
	SDGTargetIDs    *[]uuid.UUID `json:"sdgTargetIds"`
}
