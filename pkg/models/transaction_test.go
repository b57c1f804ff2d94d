package models_test

import (
	"testing"

	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionDefaults() {
	household := suite.createTestHousehold(models.Household{})

	transaction := models.Transaction{
		HouseholdID: household.ID,
		Description: "  Groceries ",
		Amount:      decimal.NewFromFloat(10.005),
		Date:        types.NewDate(2024, 1, 15),
		Kind:        models.KindExpense,
		Source:      " Wallet",
	}
	suite.Require().Nil(models.DB.Create(&transaction).Error)

	assert.Equal(suite.T(), "Groceries", transaction.Description)
	assert.Equal(suite.T(), "Wallet", transaction.Source)
	assert.Equal(suite.T(), models.PersonBoth, transaction.Person)
	assert.True(suite.T(), decimal.NewFromFloat(10.01).Equal(transaction.Amount), transaction.Amount.String())

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, "id = ?", transaction.ID).Error)
	assert.True(suite.T(), stored.Date.Equal(types.NewDate(2024, 1, 15)))
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	household := suite.createTestHousehold(models.Household{})

	valid := func() models.Transaction {
		return models.Transaction{
			HouseholdID: household.ID,
			Description: "Lunch",
			Amount:      decimal.NewFromFloat(12.5),
			Date:        types.NewDate(2024, 1, 15),
			Kind:        models.KindExpense,
			Source:      "Wallet",
		}
	}

	tests := []struct {
		name   string
		modify func(*models.Transaction)
	}{
		{"No description", func(t *models.Transaction) { t.Description = " " }},
		{"Zero amount", func(t *models.Transaction) { t.Amount = decimal.Zero }},
		{"Negative amount", func(t *models.Transaction) { t.Amount = decimal.NewFromFloat(-3) }},
		{"No date", func(t *models.Transaction) { t.Date = types.Date{} }},
		{"Invalid kind", func(t *models.Transaction) { t.Kind = "transfer" }},
		{"No source", func(t *models.Transaction) { t.Source = "" }},
		{"Invalid person", func(t *models.Transaction) { t.Person = "Eve" }},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := valid()
			tt.modify(&transaction)

			err := models.DB.Create(&transaction).Error
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionDatabaseClosed() {
	household := suite.createTestHousehold(models.Household{})
	suite.CloseDB()

	err := models.DB.Create(&models.Transaction{
		HouseholdID: household.ID,
		Description: "Lunch",
		Amount:      decimal.NewFromFloat(12.5),
		Date:        types.NewDate(2024, 1, 15),
		Kind:        models.KindExpense,
		Source:      "Wallet",
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestRecurringBillTransaction() {
	bill := models.RecurringBill{
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Kind:        models.KindExpense,
		Category:    "Housing",
		Subcategory: "Rent",
		Source:      "Checking",
		Person:      models.PersonCarol,
		DueDay:      5,
	}

	transaction := bill.Transaction(types.NewDate(2024, 3, 5))
	assert.Equal(suite.T(), "Rent", transaction.Description)
	assert.Equal(suite.T(), "Checking", transaction.Source)
	assert.Equal(suite.T(), models.PersonCarol, transaction.Person)
	assert.True(suite.T(), transaction.Date.Equal(types.NewDate(2024, 3, 5)))
}

func (suite *TestSuiteStandard) TestRecurringBillValidation() {
	household := suite.createTestHousehold(models.Household{})

	err := models.DB.Create(&models.RecurringBill{
		HouseholdID: household.ID,
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Kind:        models.KindExpense,
		DueDay:      32,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}
