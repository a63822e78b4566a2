package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Name             string       `json:"name" gorm:"not null"`
	Slug             string       `json:"slug" gorm:"uniqueIndex;not null"`
	OrganizationType *string      `json:"organizationType"`
	OrganizationName *string      `json:"organizationName"`
	Country          *string      `json:"country"`
	PhoneNumber      *string      `json:"phoneNumber"`
	Website          *string      `json:"website"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	Islands          []SIDSIsland `json:"islands,omitempty" gorm:"many2many:client_islands"`
	Users            []ClientUser `json:"users,omitempty" gorm:"foreignKey:ClientID"`
	Projects         []Project    `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Client DTOs
type CreateClientRequest struct {
	Name             string      `json:"name" validate:"required"`
	OrganizationType *string     `json:"organizationType"`
	OrganizationName *string     `json:"organizationName"`
	Country          *string     `json:"country"`
	PhoneNumber      *string     `json:"phoneNumber"`
	Website          *string     `json:"website"`
	IslandIDs        []uuid.UUID `json:"islandIds"`
}

type UpdateClientRequest struct {
	Name             *string      `json:"name"`
	OrganizationType *string      `json:"organizationType"`
	OrganizationName *string      `json:"organizationName"`
	Country          *string      `json:"country"`
	PhoneNumber      *string      `json:"phoneNumber"`
	Website          *string      `json:"website"`
	IslandIDs        *[]uuid.UUID `json:"islandIds"`
}
