package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "ADMIN"
	RoleAgent  = "AGENT"
	RoleClient = "CLIENT"
)

type ClientUser struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID           *uuid.UUID `json:"clientId" gorm:"type:uuid;index"`
	Client             *Client    `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Username           string     `json:"username" gorm:"uniqueIndex;not null"`
	Email              string     `json:"email" gorm:"uniqueIndex;not null"`
	Password           string     `json:"-"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Role               string     `json:"role" gorm:"not null;default:'CLIENT'"` // ADMIN, AGENT, CLIENT
	JobTitle           *string    `json:"jobTitle"`
	FocusAreas         []string   `json:"focusAreas" gorm:"serializer:json"`
	ProjectExperience  *string    `json:"projectExperience"`
	Motivation         *string    `json:"motivation"`
	SubscribeToUpdates bool       `json:"subscribeToUpdates" gorm:"default:true"`
	IsActive           bool       `json:"isActive" gorm:"default:true"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (u *ClientUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAgent || role == RoleClient
}

// Auth and user DTOs
type RegisterUserRequest struct {
	Username           string   `json:"username" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=6"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Role               string   `json:"role"`
	Client             *string  `json:"client"`
	JobTitle           *string  `json:"jobTitle"`
	FocusAreas         []string `json:"focusAreas"`
	ProjectExperience  *string  `json:"projectExperience"`
	Motivation         *string  `json:"motivation"`
	SubscribeToUpdates *bool    `json:"subscribeToUpdates"`
}

type UpdateUserRequest struct {
	Username           *string   `json:"username"`
	Email              *string   `json:"email"`
	Password           *string   `json:"password"`
	FirstName          *string   `json:"firstName"`
	LastName           *string   `json:"lastName"`
	Role               *string   `json:"role"`
	JobTitle           *string   `json:"jobTitle"`
	FocusAreas         *[]string `json:"focusAreas"`
	ProjectExperience  *string   `json:"projectExperience"`
	Motivation         *string   `json:"motivation"`
	SubscribeToUpdates *bool     `json:"subscribeToUpdates"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  ClientUser `json:"user"`
}
