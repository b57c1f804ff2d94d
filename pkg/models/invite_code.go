package models

import (
	"time"

	"github.com/google/uuid"
)

// InviteCode maps a code to the household it grants access to.
type InviteCode struct {
	Code        string    `json:"code" gorm:"primaryKey"`
	HouseholdID uuid.UUID `json:"householdId" gorm:"index"`
	Household   Household `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt"`
}
