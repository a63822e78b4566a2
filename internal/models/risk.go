package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

type RiskFactor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Label     string    `json:"label" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *RiskFactor) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type ProjectRisk struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID    uuid.UUID    `json:"projectId" gorm:"type:uuid;uniqueIndex;not null"`
	OverallLevel string       `json:"overallLevel"` // Low, Medium, High
	RiskFactors  []RiskFactor `json:"riskFactors,omitempty" gorm:"many2many:project_risk_factors"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (r *ProjectRisk) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func ValidRiskLevel(level string) bool {
	return level == RiskLow || level == RiskMedium || level == RiskHigh
}

// Risk DTOs
type CreateRiskFactorRequest struct {
	Label string `json:"label" validate:"required"`
}

type UpsertProjectRiskRequest struct {
	OverallLevel  string      `json:"overallLevel" validate:"required"`
	RiskFactorIDs []uuid.UUID `json:"riskFactorIds"`
}
