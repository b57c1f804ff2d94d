// Package household manages households, their members and the user
// profiles pointing to them.
package household

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Confirmation values required to reset a household.
const (
	ConfirmReset      = "yes-please-delete-everything"
	ConfirmResetFinal = "this-cannot-be-undone"
)

// ErrResetNotConfirmed is returned when a reset is requested without both confirmations.
var ErrResetNotConfirmed = fmt.Errorf("%w: resetting a household needs both confirmations", models.ErrValidation)

// Identity is the signed in user as reported by the identity provider.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

func (i Identity) validate() error {
	if i.UID == "" {
		return fmt.Errorf("%w: the identity has no user id", models.ErrValidation)
	}

	if i.Email != "" {
		if err := checkmail.ValidateFormat(i.Email); err != nil {
			return fmt.Errorf("%w: %s is not a valid email address", models.ErrValidation, i.Email)
		}
	}
	return nil
}

// Detail is a household with its members.
type Detail struct {
	models.Household
	Members []string               `json:"members" example:"Xq3bNw0b9hV0"` // UIDs of all members
	Roles   map[string]models.Role `json:"roles"`                          // Role of each member
}

func detail(h models.Household) Detail {
	return Detail{Household: h, Members: h.MemberIDs(), Roles: h.Roles()}
}

// Session is the profile of a user with the household currently selected.
type Session struct {
	Profile   models.UserProfile `json:"profile"`
	Household Detail             `json:"household"`
}

// Member is a household member with the profile data other members may see.
type Member struct {
	UID         string      `json:"uid" example:"Xq3bNw0b9hV0"`
	Role        models.Role `json:"role" example:"OWNER"`
	DisplayName string      `json:"displayName" example:"Dan Smith"`
	Email       string      `json:"email" example:"dan@example.com"`
	PhotoURL    string      `json:"photoUrl" example:"https://example.com/dan.png"`
}

// ResetConfirmation holds the two confirmations needed for a reset.
type ResetConfirmation struct {
	First string `form:"confirm"`
	Final string `form:"confirmFinal"`
}

// Manager implements the household lifecycle.
type Manager struct {
	db     *gorm.DB
	ledger *store.Ledger
}

func NewManager(l *store.Ledger) *Manager {
	return &Manager{db: l.DB(), ledger: l}
}

// DefaultName returns the household name for a user with the display name.
func DefaultName(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return "My Household"
	}

	return fmt.Sprintf("%s's Household", cases.Title(language.Und).String(fields[0]))
}

// load returns the household with its members.
func load(tx *gorm.DB, id uuid.UUID) (models.Household, error) {
	var h models.Household
	err := tx.Preload("Members").Where("id = ?", id).First(&h).Error
	return h, err
}

// loadProfile returns the profile of the identity, creating it if needed.
// Profile data is refreshed from the identity.
func loadProfile(tx *gorm.DB, identity Identity) (models.UserProfile, error) {
	var p models.UserProfile
	err := tx.Where("uid = ?", identity.UID).First(&p).Error
	if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
		return p, err
	}

	p.UID = identity.UID
	p.Email = identity.Email
	p.DisplayName = identity.DisplayName
	p.PhotoURL = identity.PhotoURL

	return p, tx.Save(&p).Error
}

// create creates a household owned by uid with a fresh invite code and
// the default configuration.
func create(tx *gorm.DB, uid, name, currency string) (models.Household, error) {
	h := models.Household{
		Name:     name,
		OwnerID:  uid,
		Currency: currency,
	}

	if err := tx.Omit("Members").Create(&h).Error; err != nil {
		return h, err
	}

	if err := tx.Create(&models.Membership{HouseholdID: h.ID, UserID: uid, Role: models.RoleOwner}).Error; err != nil {
		return h, err
	}

	if _, err := issueInviteCode(tx, h.ID); err != nil {
		return h, err
	}

	if err := store.SeedDefaultConfig(tx, h.ID); err != nil {
		return h, err
	}

	return load(tx, h.ID)
}

// switchTo points the profile to the household.
func switchTo(tx *gorm.DB, p *models.UserProfile, id uuid.UUID) error {
	if p.CurrentHouseholdID != nil && *p.CurrentHouseholdID == id {
		return nil
	}

	p.CurrentHouseholdID = &id
	return tx.Save(p).Error
}

// EnsureProfileAndHousehold resolves the session of the identity. Users
// without a profile or without a household they belong to get a new
// household which they own.
//
// All writes happen in one transaction, the profile never points to a
// household that does not exist.
func (m *Manager) EnsureProfileAndHousehold(ctx context.Context, identity Identity) (Session, error) {
	if err := identity.validate(); err != nil {
		return Session{}, err
	}

	var s Session
	err := store.Atomic(ctx, m.db, func(tx *gorm.DB) error {
		p, err := loadProfile(tx, identity)
		if err != nil {
			return err
		}

		if p.CurrentHouseholdID != nil {
			h, err := load(tx, *p.CurrentHouseholdID)
			if err != nil && !errors.Is(err, models.ErrResourceNotFound) {
				return err
			}

			if err == nil && h.IsMember(p.UID) {
				s = Session{Profile: p, Household: detail(h)}
				return nil
			}
		}

		h, err := create(tx, p.UID, DefaultName(p.DisplayName), models.DefaultCurrency)
		if err != nil {
			return err
		}

		if err := switchTo(tx, &p, h.ID); err != nil {
			return err
		}

		log.Info().Str("uid", p.UID).Str("household", h.ID.String()).Msg("created household for user")
		s = Session{Profile: p, Household: detail(h)}
		return nil
	})

	return s, err
}

// CreateHousehold creates an additional household owned by the user and
// selects it. An empty name is derived from the display name, an empty
// currency defaults to models.DefaultCurrency.
func (m *Manager) CreateHousehold(ctx context.Context, identity Identity, name, currency string) (Session, error) {
	if err := identity.validate(); err != nil {
		return Session{}, err
	}

	var s Session
	err := store.Atomic(ctx, m.db, func(tx *gorm.DB) error {
		p, err := loadProfile(tx, identity)
		if err != nil {
			return err
		}

		if strings.TrimSpace(name) == "" {
			name = DefaultName(p.DisplayName)
		}

		h, err := create(tx, p.UID, name, currency)
		if err != nil {
			return err
		}

		if err := switchTo(tx, &p, h.ID); err != nil {
			return err
		}

		s = Session{Profile: p, Household: detail(h)}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	log.Info().Str("uid", identity.UID).Str("household", s.Household.ID.String()).Msg("household created")
	return s, nil
}

// JoinHouseholdByCode adds the user to the household of the invite code as
// MEMBER and selects it. Codes are matched exactly. Existing members keep
// their role.
func (m *Manager) JoinHouseholdByCode(ctx context.Context, identity Identity, code string) (Session, error) {
	if err := identity.validate(); err != nil {
		return Session{}, err
	}

	code = strings.TrimSpace(code)
	if len(code) < MinInviteCodeLength {
		return Session{}, ErrInviteCodeTooShort
	}

	var s Session
	err := store.Atomic(ctx, m.db, func(tx *gorm.DB) error {
		var invite models.InviteCode
		err := tx.Where("code = ?", code).First(&invite).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			return models.ErrInviteCodeInvalid
		} else if err != nil {
			return err
		}

		p, err := loadProfile(tx, identity)
		if err != nil {
			return err
		}

		h, err := load(tx, invite.HouseholdID)
		if err != nil {
			return err
		}

		if _, ok := h.Role(p.UID); !ok {
			err := tx.Create(&models.Membership{HouseholdID: h.ID, UserID: p.UID, Role: models.RoleMember}).Error
			if err != nil {
				return err
			}

			if h, err = load(tx, h.ID); err != nil {
				return err
			}
		}

		if err := switchTo(tx, &p, h.ID); err != nil {
			return err
		}

		s = Session{Profile: p, Household: detail(h)}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	log.Info().Str("uid", identity.UID).Str("household", s.Household.ID.String()).Msg("joined household")
	return s, nil
}

// SwitchHousehold selects a household the user is a member of. Switching
// to the current household changes nothing.
func (m *Manager) SwitchHousehold(ctx context.Context, uid string, id uuid.UUID) (Session, error) {
	var s Session
	err := store.Atomic(ctx, m.db, func(tx *gorm.DB) error {
		h, err := authorize(tx, uid, id, false)
		if err != nil {
			return err
		}

		var p models.UserProfile
		if err := tx.Where("uid = ?", uid).First(&p).Error; err != nil {
			return err
		}

		if err := switchTo(tx, &p, h.ID); err != nil {
			return err
		}

		s = Session{Profile: p, Household: detail(h)}
		return nil
	})

	return s, err
}

// ResetHousehold deletes all transactions and the configuration of the
// household and seeds the default configuration again. Only owners may
// reset and both confirmations must be given.
func (m *Manager) ResetHousehold(ctx context.Context, uid string, id uuid.UUID, confirmation ResetConfirmation) error {
	if confirmation.First != ConfirmReset || confirmation.Final != ConfirmResetFinal {
		return ErrResetNotConfirmed
	}

	// Fail fast before any write is issued
	if _, err := m.AuthorizeOwner(ctx, uid, id); err != nil {
		return err
	}

	err := m.ledger.Within(ctx, id, func(tx *gorm.DB) error {
		if _, err := authorize(tx, uid, id, true); err != nil {
			return err
		}

		if err := store.DeleteHouseholdData(tx, id); err != nil {
			return err
		}

		return store.SeedDefaultConfig(tx, id)
	})

	if errors.Is(err, models.ErrInconsistentState) {
		log.Error().Err(err).Str("household", id.String()).Msg("household reset left inconsistent state")
	} else if err == nil {
		log.Info().Str("uid", uid).Str("household", id.String()).Msg("household reset")
	}

	return err
}

// GenerateInviteCode replaces the invite code of the household. Only
// owners may do this.
func (m *Manager) GenerateInviteCode(ctx context.Context, uid string, id uuid.UUID) (string, error) {
	if _, err := m.AuthorizeOwner(ctx, uid, id); err != nil {
		return "", err
	}

	var code string
	err := store.Atomic(ctx, m.db, func(tx *gorm.DB) (err error) {
		if _, err := authorize(tx, uid, id, true); err != nil {
			return err
		}

		code, err = issueInviteCode(tx, id)
		return err
	})

	return code, err
}

// Households returns all households the user is a member of.
func (m *Manager) Households(ctx context.Context, uid string) ([]Detail, error) {
	var households []models.Household
	err := m.db.WithContext(ctx).
		Preload("Members").
		Where("owner_id = ? OR id IN (?)", uid, m.db.Model(&models.Membership{}).Select("household_id").Where("user_id = ?", uid)).
		Order("created_at").
		Find(&households).Error
	if err != nil {
		return nil, err
	}

	details := make([]Detail, 0, len(households))
	for _, h := range households {
		details = append(details, detail(h))
	}
	return details, nil
}

// Members lists the members of the household with their profiles.
func (m *Manager) Members(ctx context.Context, uid string, id uuid.UUID) ([]Member, error) {
	h, err := m.Authorize(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	var profiles []models.UserProfile
	err = m.db.WithContext(ctx).Where("uid IN ?", h.MemberIDs()).Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	byUID := make(map[string]models.UserProfile, len(profiles))
	for _, p := range profiles {
		byUID[p.UID] = p
	}

	members := make([]Member, 0, len(h.Members))
	for _, ms := range h.Members {
		p := byUID[ms.UserID]
		members = append(members, Member{
			UID:         ms.UserID,
			Role:        ms.Role,
			DisplayName: p.DisplayName,
			Email:       p.Email,
			PhotoURL:    p.PhotoURL,
		})
	}

	return members, nil
}

// Get returns the household if the user is a member.
func (m *Manager) Get(ctx context.Context, uid string, id uuid.UUID) (Detail, error) {
	h, err := m.Authorize(ctx, uid, id)
	if err != nil {
		return Detail{}, err
	}
	return detail(h), nil
}

// Authorize returns the household if the user is a member of it.
func (m *Manager) Authorize(ctx context.Context, uid string, id uuid.UUID) (models.Household, error) {
	return authorize(m.db.WithContext(ctx), uid, id, false)
}

// AuthorizeOwner returns the household if the user owns it.
func (m *Manager) AuthorizeOwner(ctx context.Context, uid string, id uuid.UUID) (models.Household, error) {
	return authorize(m.db.WithContext(ctx), uid, id, true)
}

func authorize(tx *gorm.DB, uid string, id uuid.UUID, owner bool) (models.Household, error) {
	h, err := load(tx, id)
	if err != nil {
		return models.Household{}, err
	}

	if !h.IsMember(uid) {
		return models.Household{}, fmt.Errorf("%w: you are not a member of this household", models.ErrForbidden)
	}

	if owner && !h.IsOwner(uid) {
		return models.Household{}, fmt.Errorf("%w: only owners of the household can do this", models.ErrForbidden)
	}

	return h, nil
}
