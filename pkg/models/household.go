package models

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// DefaultCurrency is used for households created without a currency.
const DefaultCurrency = "BRL"

// Household is the tenant boundary. All ledger and configuration
// resources belong to exactly one household.
type Household struct {
	DefaultModel
	Name       string       `json:"name" example:"Dan's Household"`
	OwnerID    string       `json:"ownerId" gorm:"index" example:"Xq3bNw0b9hV0"` // UID of the creator. Kept for households created before roles existed
	InviteCode string       `json:"inviteCode" gorm:"index" example:"aB3$kL9!pQ2x"`
	Currency   string       `json:"currency" example:"BRL"`
	Members    []Membership `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Membership grants a user access to a household.
type Membership struct {
	Timestamps
	HouseholdID uuid.UUID `json:"householdId" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"primaryKey;index"`
	Role        Role      `json:"role" example:"MEMBER"`
}

func (h *Household) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Currency = strings.ToUpper(strings.TrimSpace(h.Currency))

	if h.Currency == "" {
		h.Currency = DefaultCurrency
	}

	if h.Name == "" {
		return validation("the household name must not be empty")
	}

	if _, err := currency.ParseISO(h.Currency); err != nil {
		return validation("%s is not a valid ISO 4217 currency code", h.Currency)
	}

	return nil
}

func (m *Membership) BeforeSave(_ *gorm.DB) error {
	if m.Role != RoleOwner && m.Role != RoleMember {
		return validation("the role must be %s or %s", RoleOwner, RoleMember)
	}
	return nil
}

// Role returns the role of the user in the household. Members must be loaded.
func (h Household) Role(uid string) (Role, bool) {
	for _, m := range h.Members {
		if m.UserID == uid {
			return m.Role, true
		}
	}
	return "", false
}

// IsMember reports whether the user belongs to the household.
func (h Household) IsMember(uid string) bool {
	_, ok := h.Role(uid)
	return ok || (uid != "" && h.OwnerID == uid)
}

// IsOwner reports whether the user owns the household, either through the
// OWNER role or as the legacy owner recorded in OwnerID.
func (h Household) IsOwner(uid string) bool {
	if uid == "" {
		return false
	}

	role, _ := h.Role(uid)
	return role == RoleOwner || h.OwnerID == uid
}

// MemberIDs returns the UIDs of all members.
func (h Household) MemberIDs() []string {
	ids := make([]string, 0, len(h.Members))
	for _, m := range h.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// Roles returns the role of each member by UID.
func (h Household) Roles() map[string]Role {
	roles := make(map[string]Role, len(h.Members))
	for _, m := range h.Members {
		roles[m.UserID] = m.Role
	}
	return roles
}
