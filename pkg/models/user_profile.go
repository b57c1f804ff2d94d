package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile is the per-identity record. The UID is assigned by the
// identity provider.
type UserProfile struct {
	Timestamps
	UID                string     `json:"uid" gorm:"primaryKey" example:"Xq3bNw0b9hV0"`
	Email              string     `json:"email" example:"dan@example.com"`
	DisplayName        string     `json:"displayName" example:"Dan Smith"`
	PhotoURL           string     `json:"photoUrl" example:"https://example.com/dan.png"`
	CurrentHouseholdID *uuid.UUID `json:"currentHouseholdId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
}

func (p *UserProfile) BeforeSave(_ *gorm.DB) error {
	p.Email = strings.TrimSpace(p.Email)
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.PhotoURL = strings.TrimSpace(p.PhotoURL)

	if p.CurrentHouseholdID != nil && *p.CurrentHouseholdID == uuid.Nil {
		p.CurrentHouseholdID = nil
	}

	if p.UID == "" {
		return validation("the user id must not be empty")
	}
	return nil
}
