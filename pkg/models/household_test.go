package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestHouseholdDefaults() {
	household := suite.createTestHousehold(models.Household{Name: "  The Smiths \t"})

	assert.Equal(suite.T(), "The Smiths", household.Name)
	assert.Equal(suite.T(), models.DefaultCurrency, household.Currency)
}

func (suite *TestSuiteStandard) TestHouseholdValidation() {
	tests := []struct {
		name      string
		household models.Household
	}{
		{"No name", models.Household{Name: "   "}},
		{"Invalid currency", models.Household{Name: "Test", Currency: "XYZW"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.household).Error
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestHouseholdCurrencyUppercase() {
	household := suite.createTestHousehold(models.Household{Currency: "eur"})
	assert.Equal(suite.T(), "EUR", household.Currency)
}

func (suite *TestSuiteStandard) TestHouseholdRoles() {
	household := models.Household{
		OwnerID: "legacy",
		Members: []models.Membership{
			{UserID: "alice", Role: models.RoleOwner},
			{UserID: "bob", Role: models.RoleMember},
		},
	}

	assert.True(suite.T(), household.IsOwner("alice"))
	assert.False(suite.T(), household.IsOwner("bob"))
	assert.True(suite.T(), household.IsOwner("legacy"), "The legacy owner id must grant ownership")
	assert.False(suite.T(), household.IsOwner(""))

	assert.True(suite.T(), household.IsMember("bob"))
	assert.True(suite.T(), household.IsMember("legacy"))
	assert.False(suite.T(), household.IsMember("mallory"))

	assert.ElementsMatch(suite.T(), []string{"alice", "bob"}, household.MemberIDs())
	assert.Equal(suite.T(), models.RoleMember, household.Roles()["bob"])
}

func (suite *TestSuiteStandard) TestMembershipDuplicate() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.Membership{HouseholdID: household.ID, UserID: "alice", Role: models.RoleOwner}).Error
	suite.Require().Nil(err)

	err = models.DB.Create(&models.Membership{HouseholdID: household.ID, UserID: "alice", Role: models.RoleMember}).Error
	assert.ErrorIs(suite.T(), err, models.ErrMembershipExists)
}

func (suite *TestSuiteStandard) TestMembershipInvalidRole() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.Membership{HouseholdID: household.ID, UserID: "alice", Role: "ADMIN"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestHouseholdDeleteCascades() {
	household := suite.createTestHousehold(models.Household{})

	suite.Require().Nil(models.DB.Create(&models.Membership{HouseholdID: household.ID, UserID: "alice", Role: models.RoleOwner}).Error)
	suite.Require().Nil(models.DB.Create(&models.InviteCode{Code: "abcdefABCDEF", HouseholdID: household.ID}).Error)

	suite.Require().Nil(models.DB.Delete(&household).Error)

	var count int64
	models.DB.Model(&models.Membership{}).Where(&models.Membership{HouseholdID: household.ID}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	models.DB.Model(&models.InviteCode{}).Where(&models.InviteCode{HouseholdID: household.ID}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestInviteCodeUnique() {
	household := suite.createTestHousehold(models.Household{})

	suite.Require().Nil(models.DB.Create(&models.InviteCode{Code: "abcdefABCDEF", HouseholdID: household.ID}).Error)
	err := models.DB.Create(&models.InviteCode{Code: "abcdefABCDEF", HouseholdID: household.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrInviteCodeNotUnique)
}

func (suite *TestSuiteStandard) TestUserProfileNilHousehold() {
	id := uuid.Nil
	profile := models.UserProfile{UID: "alice", CurrentHouseholdID: &id}

	suite.Require().Nil(models.DB.Create(&profile).Error)
	assert.Nil(suite.T(), profile.CurrentHouseholdID)

	err := models.DB.Create(&models.UserProfile{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}
