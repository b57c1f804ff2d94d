package household

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"gorm.io/gorm"
)

const (
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%&*"

	// InviteCodeLength is the length of generated invite codes.
	InviteCodeLength = 12

	// MinInviteCodeLength is the shortest code accepted for lookups.
	MinInviteCodeLength = 6

	inviteCodeAttempts = 5
)

var ErrInviteCodeTooShort = fmt.Errorf("%w: invite codes have at least %d characters", models.ErrValidation, MinInviteCodeLength)

// GenerateCode returns a random invite code.
func GenerateCode() (string, error) {
	size := big.NewInt(int64(len(inviteCodeAlphabet)))

	code := make([]byte, InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// issueInviteCode replaces all invite codes of the household with a new,
// unique one.
func issueInviteCode(tx *gorm.DB, id uuid.UUID) (string, error) {
	err := tx.Where("household_id = ?", id).Delete(&models.InviteCode{}).Error
	if err != nil {
		return "", err
	}

	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}

		var count int64
		if err := tx.Model(&models.InviteCode{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			continue
		}

		if err := tx.Create(&models.InviteCode{Code: code, HouseholdID: id}).Error; err != nil {
			return "", err
		}

		err = tx.Model(&models.Household{}).Where("id = ?", id).UpdateColumn("invite_code", code).Error
		return code, err
	}

	return "", fmt.Errorf("%w: could not generate a unique invite code", models.ErrGeneral)
}
