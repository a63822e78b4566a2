package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SDGGoal struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Number         int         `json:"number" gorm:"uniqueIndex;not null"`
	Title          string      `json:"title" gorm:"not null"`
	ShortenedTitle string      `json:"shortenedTitle"`
	Color          string      `json:"color"`
	Description    string      `json:"description"`
	Targets        []SDGTarget `json:"targets,omitempty" gorm:"foreignKey:GoalID"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (g *SDGGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type SDGTarget struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID       uuid.UUID `json:"goalId" gorm:"type:uuid;not null;uniqueIndex:idx_goal_target_number"`
	Goal         *SDGGoal  `json:"goal,omitempty" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	TargetNumber string    `json:"targetNumber" gorm:"not null;uniqueIndex:idx_goal_target_number"` // e.g. "1.1", "1.2"
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (t *SDGTarget) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type SDGIndicator struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID          uuid.UUID `json:"goalId" gorm:"type:uuid;index;not null"`
	Goal            *SDGGoal  `json:"goal,omitempty" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	TargetNumber    string    `json:"targetNumber"`                               // e.g. "1.1"
	IndicatorNumber string    `json:"indicatorNumber" gorm:"uniqueIndex;not null"` // e.g. "1.1.1"
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (i *SDGIndicator) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SDG DTOs
type CreateSDGGoalRequest struct {
	Number         int    `json:"number" validate:"required"`
	Title          string `json:"title" validate:"required"`
	ShortenedTitle string `json:"shortenedTitle"`
	Color          string `json:"color"`
	Description    string `json:"description"`
}

type CreateSDGTargetRequest struct {
	GoalID       uuid.UUID `json:"goalId" validate:"required"`
	TargetNumber string    `json:"targetNumber" validate:"required"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
}
