package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegionCaribbean = "Caribbean"
	RegionPacific   = "Pacific"
	RegionAIMS      = "AIMS"
)

type SIDSIsland struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Region    string    `json:"region" gorm:"not null"` // Caribbean, Pacific, AIMS
	ISOCode   string    `json:"isoCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *SIDSIsland) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type CreateIslandRequest struct {
	Name    string `json:"name" validate:"required"`
	Region  string `json:"region" validate:"required"`
	ISOCode string `json:"isoCode"`
}

type UpdateIslandRequest struct {
	Name    *string `json:"name"`
	Region  *string `json:"region"`
	ISOCode *string `json:"isoCode"`
}
