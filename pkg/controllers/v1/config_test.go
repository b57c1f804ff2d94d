package v1_test

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hearth-ledger/backend/pkg/controllers/v1"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
	"github.com/hearth-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) getConfig(id uuid.UUID) store.Config {
	recorder := suite.request(dan, http.MethodGet, householdPath(id, "/config"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.Response[store.Config]
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response.Data
}

func (suite *TestSuiteStandard) createCard(id uuid.UUID, name string) models.Card {
	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/cards"), map[string]any{
		"name":       name,
		"limit":      "1000",
		"closingDay": 3,
		"dueDay":     10,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.Response[models.Card]
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestUpdateConfigRenamesSources() {
	id := suite.signIn(dan)
	suite.createTransactions(id, newTransaction("Groceries", "10"))

	config := suite.getConfig(id)
	suite.Require().Len(config.Accounts, 2)

	accounts := config.Accounts
	for i := range accounts {
		if accounts[i].Name == "Checking" {
			accounts[i].Name = "Main"
		}
	}

	recorder := suite.request(dan, http.MethodPatch, householdPath(id, "/config"), map[string]any{"accounts": accounts})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.Response[store.Config]
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data.Accounts, 2)
	suite.Assert().Empty(response.Data.Cards, "lists that are not in the patch must be kept")

	transactions := suite.listTransactions(id, "")
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal("Main", transactions[0].Source)
}

func (suite *TestSuiteStandard) TestUpdateConfigDuplicateNames() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPatch, householdPath(id, "/config"), map[string]any{
		"accounts": []map[string]string{{"name": "Visa"}},
		"cards":    []map[string]string{{"name": "Visa"}},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	suite.Assert().Len(suite.getConfig(id).Accounts, 2, "a failed patch must not change anything")
}

func (suite *TestSuiteStandard) TestAccountCRUD() {
	id := suite.signIn(dan)
	suite.createTransactions(id, newTransaction("Groceries", "10"))

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/accounts"), map[string]any{"name": "Savings", "agency": "0001"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.Response[models.Account]
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().Equal("0001", created.Data.Agency)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/accounts"), map[string]any{"name": "Savings"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodGet, householdPath(id, "/accounts"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var accounts v1.Response[[]models.Account]
	test.DecodeResponse(suite.T(), &recorder, &accounts)
	suite.Require().Len(accounts.Data, 3)

	var checking models.Account
	for _, a := range accounts.Data {
		if a.Name == "Checking" {
			checking = a
		}
	}

	recorder = suite.request(dan, http.MethodPatch, householdPath(id, "/accounts/"+checking.ID.String()), map[string]any{"name": "Joint"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Equal("Joint", suite.listTransactions(id, "")[0].Source)

	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/accounts/"+created.Data.ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/accounts/"+created.Data.ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(dan, http.MethodPatch, householdPath(id, "/accounts/not-a-uuid"), map[string]any{"name": "Joint"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBenefitCRUD() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/benefits"), map[string]any{"name": "Meal card"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.Response[models.Benefit]
	test.DecodeResponse(suite.T(), &recorder, &created)

	recorder = suite.request(dan, http.MethodPatch, householdPath(id, "/benefits/"+created.Data.ID.String()), map[string]any{"audience": []string{"dan"}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.Response[models.Benefit]
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal("Meal card", updated.Data.Name)
	suite.Assert().Len(updated.Data.Audience, 1)

	recorder = suite.request(dan, http.MethodGet, householdPath(id, "/benefits"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/benefits/"+created.Data.ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Empty(suite.getConfig(id).Benefits)
}

func (suite *TestSuiteStandard) TestCardPaymentAndOverview() {
	id := suite.signIn(dan)
	card := suite.createCard(id, "Visa")

	recorder := suite.request(dan, http.MethodPatch, householdPath(id, "/cards/"+card.ID.String()), map[string]any{"manualAdjustment": "-50"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	purchase := newTransaction("Shoes", "150")
	purchase.Source = "Visa"
	salary := newTransaction("Salary", "1000")
	salary.Kind = models.KindIncome
	salary.Category = "Main Income"
	salary.Subcategory = "Salary"
	suite.createTransactions(id, purchase, salary)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/cards/"+card.ID.String()+"/payments"), store.CardPayment{From: "Checking"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var payment v1.Response[[]models.Transaction]
	test.DecodeResponse(suite.T(), &recorder, &payment)
	suite.Require().Len(payment.Data, 2)
	for _, t := range payment.Data {
		suite.Assert().True(decimal.NewFromInt(150).Equal(t.Amount), "payment must default to the bill, got %s", t.Amount)
		suite.Assert().Equal(ledger.CategoryDebts, t.Category)
	}

	recorder = suite.request(dan, http.MethodGet, householdPath(id, "/overview"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var overview v1.Response[ledger.Overview]
	test.DecodeResponse(suite.T(), &recorder, &overview)
	suite.Require().Len(overview.Data.Cards, 1)
	suite.Assert().True(overview.Data.Cards[0].Bill.IsZero(), "the bill must be paid, got %s", overview.Data.Cards[0].Bill)
	suite.Assert().True(decimal.NewFromInt(950).Equal(overview.Data.Cards[0].Available), "got %s", overview.Data.Cards[0].Available)
	suite.Assert().True(decimal.NewFromInt(850).Equal(overview.Data.TotalAccounts), "got %s", overview.Data.TotalAccounts)
	suite.Assert().NotNil(overview.Data.Cards[0].NextDueDate)

	// Nothing left to pay
	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/cards/"+card.ID.String()+"/payments"), store.CardPayment{From: "Checking"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/cards/"+card.ID.String()+"/payments"), store.CardPayment{From: "Nowhere"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCardNameClash() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/cards"), map[string]any{"name": "Checking"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	card := suite.createCard(id, "Visa")
	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/cards/"+card.ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestRecurringBills() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/recurring-bills"), map[string]any{
		"description": "Rent",
		"amount":      "1200",
		"kind":        "expense",
		"category":    "Housing",
		"subcategory": "Rent & Mortgage",
		"source":      "Checking",
		"dueDay":      time.Now().Day(),
		"active":      true,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var bill v1.Response[models.RecurringBill]
	test.DecodeResponse(suite.T(), &recorder, &bill)

	for _, expected := range []int{1, 0} {
		recorder = suite.request(dan, http.MethodPost, householdPath(id, "/recurring-bills/materialize"), "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var materialized v1.Response[v1.Materialized]
		test.DecodeResponse(suite.T(), &recorder, &materialized)
		suite.Assert().Equal(expected, materialized.Data.Count)
	}

	transactions := suite.listTransactions(id, "")
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal("Rent", transactions[0].Description)

	recorder = suite.request(dan, http.MethodPatch, householdPath(id, "/recurring-bills/"+bill.Data.ID.String()), map[string]any{"active": false})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(dan, http.MethodGet, householdPath(id, "/recurring-bills"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var bills v1.Response[[]models.RecurringBill]
	test.DecodeResponse(suite.T(), &recorder, &bills)
	suite.Require().Len(bills.Data, 1)
	suite.Assert().False(bills.Data[0].Active)
	suite.Assert().False(bills.Data[0].LastMaterialized.IsZero())

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/recurring-bills"), map[string]any{"description": "Rent", "amount": "10", "kind": "expense", "dueDay": 40})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/recurring-bills/"+bill.Data.ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestRecurringBillsMustMatchConfiguration() {
	id := suite.signIn(dan)

	bill := func(source, category string) map[string]any {
		return map[string]any{
			"description": "Rent",
			"amount":      "1200",
			"kind":        "expense",
			"category":    category,
			"source":      source,
			"dueDay":      5,
			"active":      true,
		}
	}

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/recurring-bills"), bill("Piggy bank", "Housing"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/recurring-bills"), bill("Checking", "Castle"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/recurring-bills"), bill("Checking", "Housing"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.Response[models.RecurringBill]
	test.DecodeResponse(suite.T(), &recorder, &created)
	path := householdPath(id, "/recurring-bills/"+created.Data.ID.String())

	recorder = suite.request(dan, http.MethodPatch, path, map[string]any{"kind": "income"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodPatch, path, map[string]any{"source": "Piggy bank"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	suite.Require().Len(suite.getConfig(id).RecurringBills, 1)
	suite.Assert().Equal("Checking", suite.getConfig(id).RecurringBills[0].Source)
}
