package store_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestConfigEmpty() {
	household := suite.createTestHousehold()

	config, err := suite.config.Get(context.Background(), household.ID)
	suite.Require().Nil(err)
	assert.NotNil(suite.T(), config.Accounts, "Lists must default to empty, not nil")
	assert.Len(suite.T(), config.Accounts, 0)
	assert.Len(suite.T(), config.RecurringBills, 0)

	config, err = suite.config.Get(context.Background(), uuid.Nil)
	suite.Require().Nil(err)
	assert.Len(suite.T(), config.Cards, 0)
}

func (suite *TestSuiteStandard) TestSeedAndDelete() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	suite.Require().Nil(models.DB.Transaction(func(tx *gorm.DB) error {
		return store.SeedDefaultConfig(tx, household.ID)
	}))

	config, err := suite.config.Get(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), config.Accounts, 2)

	_, err = suite.ledger.Append(ctx, household.ID, transaction("Wallet", models.KindIncome, 10))
	suite.Require().Nil(err)

	suite.Require().Nil(models.DB.Transaction(func(tx *gorm.DB) error {
		return store.DeleteHouseholdData(tx, household.ID)
	}))

	config, err = suite.config.Get(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), config.Accounts, 0)

	snapshot, err := suite.ledger.Snapshot(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), snapshot, 0)
}

func (suite *TestSuiteStandard) TestAccountNames() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	_, err := suite.config.AddAccount(ctx, household.ID, models.Account{Name: "Checking"})
	suite.Require().Nil(err)

	_, err = suite.config.AddAccount(ctx, household.ID, models.Account{Name: "Checking"})
	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)

	_, err = suite.config.AddCard(ctx, household.ID, models.Card{Name: "Checking"})
	assert.ErrorIs(suite.T(), err, models.ErrSourceNameNotUnique, "Sources of different types must not share names")

	_, err = suite.config.AddBenefit(ctx, household.ID, models.Benefit{Name: "Checking"})
	assert.ErrorIs(suite.T(), err, models.ErrSourceNameNotUnique)

	config, err := suite.config.Get(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), config.Cards, 0, "Failed writes must be rolled back")
}

func (suite *TestSuiteStandard) TestRenameCarriesOverToTransactions() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	account, err := suite.config.AddAccount(ctx, household.ID, models.Account{Name: "Checking"})
	suite.Require().Nil(err)

	_, err = suite.config.AddRecurringBill(ctx, household.ID, models.RecurringBill{
		Description: "Rent",
		Amount:      decimal.NewFromInt(1200),
		Kind:        models.KindExpense,
		Source:      "Checking",
		DueDay:      5,
		Active:      true,
	})
	suite.Require().Nil(err)

	_, err = suite.ledger.Append(ctx, household.ID, transaction("Checking", models.KindIncome, 100))
	suite.Require().Nil(err)

	var notified int
	unsubscribe := suite.ledger.OnChange(func(uuid.UUID, []models.Transaction) { notified++ })
	defer unsubscribe()

	name := "Main account"
	renamed, err := suite.config.UpdateAccount(ctx, household.ID, account.ID, store.AccountChanges{Name: &name})
	suite.Require().Nil(err)
	assert.Equal(suite.T(), "Main account", renamed.Name)
	assert.Equal(suite.T(), account.ID, renamed.ID, "The id must be stable")
	assert.Equal(suite.T(), 1, notified, "Rewriting transactions must notify listeners")

	transactions, err := suite.ledger.List(ctx, household.ID, store.Filter{Source: "Main account"})
	suite.Require().Nil(err)
	assert.Len(suite.T(), transactions, 1)

	config, err := suite.config.Get(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Equal(suite.T(), "Main account", config.RecurringBills[0].Source)

	agency := "0001"
	_, err = suite.config.UpdateAccount(ctx, household.ID, account.ID, store.AccountChanges{Agency: &agency})
	suite.Require().Nil(err)
	assert.Equal(suite.T(), 1, notified, "Changes without rename must not notify")
}

func (suite *TestSuiteStandard) TestConfigUpdateWholesale() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	visa, err := suite.config.AddCard(ctx, household.ID, models.Card{Name: "Visa", Limit: decimal.NewFromInt(1000)})
	suite.Require().Nil(err)
	_, err = suite.config.AddCard(ctx, household.ID, models.Card{Name: "Store card"})
	suite.Require().Nil(err)
	_, err = suite.ledger.Append(ctx, household.ID, transaction("Visa", models.KindExpense, 100))
	suite.Require().Nil(err)

	visa.Name = "Visa Gold"
	visa.Limit = decimal.NewFromInt(2000)
	cards := []models.Card{visa, {Name: "Mastercard"}}

	config, err := suite.config.Update(ctx, household.ID, store.ConfigPatch{Cards: &cards})
	suite.Require().Nil(err)
	suite.Require().Len(config.Cards, 2, "Cards missing from the list must be deleted")

	var gold models.Card
	for _, c := range config.Cards {
		if c.ID == visa.ID {
			gold = c
		}
	}
	assert.Equal(suite.T(), "Visa Gold", gold.Name)
	assert.True(suite.T(), decimal.NewFromInt(2000).Equal(gold.Limit))

	transactions, err := suite.ledger.List(ctx, household.ID, store.Filter{Source: "Visa Gold"})
	suite.Require().Nil(err)
	assert.Len(suite.T(), transactions, 1)

	accounts := []models.Account{{Name: "Mastercard"}}
	_, err = suite.config.Update(ctx, household.ID, store.ConfigPatch{Accounts: &accounts})
	assert.ErrorIs(suite.T(), err, models.ErrSourceNameNotUnique)

	config, err = suite.config.Get(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), config.Accounts, 0)
	assert.Len(suite.T(), config.Cards, 2, "Lists not in the patch must be untouched")
}

func (suite *TestSuiteStandard) TestConfigUpdateForeignID() {
	household := suite.createTestHousehold()
	other := suite.createTestHousehold()
	ctx := context.Background()

	foreign, err := suite.config.AddAccount(ctx, other.ID, models.Account{Name: "Savings"})
	suite.Require().Nil(err)

	accounts := []models.Account{foreign}
	config, err := suite.config.Update(ctx, household.ID, store.ConfigPatch{Accounts: &accounts})
	suite.Require().Nil(err)
	suite.Require().Len(config.Accounts, 1)
	assert.NotEqual(suite.T(), foreign.ID, config.Accounts[0].ID, "Ids of other households must not be taken over")

	otherConfig, err := suite.config.Get(ctx, other.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), otherConfig.Accounts, 1)
}

func (suite *TestSuiteStandard) TestEntityLifecycle() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	benefit, err := suite.config.AddBenefit(ctx, household.ID, models.Benefit{Name: "Meal card"})
	suite.Require().Nil(err)

	name := "Food card"
	benefit, err = suite.config.UpdateBenefit(ctx, household.ID, benefit.ID, store.BenefitChanges{Name: &name})
	suite.Require().Nil(err)
	assert.Equal(suite.T(), "Food card", benefit.Name)

	card, err := suite.config.AddCard(ctx, household.ID, models.Card{Name: "Visa"})
	suite.Require().Nil(err)

	dueDay := 40
	_, err = suite.config.UpdateCard(ctx, household.ID, card.ID, store.CardChanges{DueDay: &dueDay})
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	bill, err := suite.config.AddRecurringBill(ctx, household.ID, models.RecurringBill{
		Description: "Internet",
		Amount:      decimal.NewFromInt(100),
		Kind:        models.KindExpense,
		Source:      "Visa",
		DueDay:      10,
	})
	suite.Require().Nil(err)

	active := true
	bill, err = suite.config.UpdateRecurringBill(ctx, household.ID, bill.ID, store.RecurringBillChanges{Active: &active})
	suite.Require().Nil(err)
	assert.True(suite.T(), bill.Active)

	suite.Require().Nil(suite.config.RemoveBenefit(ctx, household.ID, benefit.ID))
	suite.Require().Nil(suite.config.RemoveCard(ctx, household.ID, card.ID))
	suite.Require().Nil(suite.config.RemoveRecurringBill(ctx, household.ID, bill.ID))

	err = suite.config.RemoveCard(ctx, household.ID, card.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	config, err := suite.config.Get(ctx, household.ID)
	suite.Require().Nil(err)
	assert.Len(suite.T(), config.Benefits, 0)
	assert.Len(suite.T(), config.Cards, 0)
	assert.Len(suite.T(), config.RecurringBills, 0)
}

func (suite *TestSuiteStandard) TestConfigUpdateSwapsNames() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	a, err := suite.config.AddAccount(ctx, household.ID, models.Account{Name: "A"})
	suite.Require().Nil(err)
	b, err := suite.config.AddAccount(ctx, household.ID, models.Account{Name: "B"})
	suite.Require().Nil(err)

	_, err = suite.ledger.AppendMany(ctx, household.ID, []models.Transaction{
		transaction("A", models.KindIncome, 100),
		transaction("B", models.KindIncome, 7),
	})
	suite.Require().Nil(err)

	a.Name, b.Name = "B", "A"
	_, err = suite.config.Update(ctx, household.ID, store.ConfigPatch{Accounts: &[]models.Account{a, b}})
	suite.Require().Nil(err)

	snapshot, err := suite.ledger.Snapshot(ctx, household.ID)
	suite.Require().Nil(err)
	assert.True(suite.T(), decimal.NewFromInt(7).Equal(ledger.AccountBalance(snapshot, "A")), ledger.AccountBalance(snapshot, "A"))
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(ledger.AccountBalance(snapshot, "B")), ledger.AccountBalance(snapshot, "B"))
}

func (suite *TestSuiteStandard) TestConfigUpdateRenameOntoRemovedSource() {
	household := suite.createTestHousehold()
	ctx := context.Background()

	_, err := suite.config.AddAccount(ctx, household.ID, models.Account{Name: "Old"})
	suite.Require().Nil(err)
	other, err := suite.config.AddAccount(ctx, household.ID, models.Account{Name: "Other"})
	suite.Require().Nil(err)

	_, err = suite.ledger.AppendMany(ctx, household.ID, []models.Transaction{
		transaction("Old", models.KindIncome, 100),
		transaction("Other", models.KindIncome, 7),
	})
	suite.Require().Nil(err)

	other.Name = "Old"
	_, err = suite.config.Update(ctx, household.ID, store.ConfigPatch{Accounts: &[]models.Account{other}})
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	snapshot, err := suite.ledger.Snapshot(ctx, household.ID)
	suite.Require().Nil(err)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(ledger.AccountBalance(snapshot, "Old")), "the failed update must roll back")
	assert.True(suite.T(), decimal.NewFromInt(7).Equal(ledger.AccountBalance(snapshot, "Other")))
}
