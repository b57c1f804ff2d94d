package v1_test

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	v1 "github.com/hearth-ledger/backend/pkg/controllers/v1"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func newTransaction(description, amount string) v1.TransactionEditable {
	return v1.TransactionEditable{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        types.NewDate(2024, time.January, 15),
		Kind:        models.KindExpense,
		Source:      "Checking",
		Category:    "Food",
		Subcategory: "Groceries",
	}
}

func (suite *TestSuiteStandard) createTransactions(id uuid.UUID, transactions ...v1.TransactionEditable) []models.Transaction {
	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/transactions"), transactions)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.Response[[]models.Transaction]
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response.Data
}

func (suite *TestSuiteStandard) listTransactions(id uuid.UUID, query string) []models.Transaction {
	recorder := suite.request(dan, http.MethodGet, householdPath(id, "/transactions"+query), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.Response[[]models.Transaction]
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestTransactionLifecycle() {
	id := suite.signIn(dan)

	created := suite.createTransactions(id, newTransaction("Groceries", "17.42"))
	suite.Require().Len(created, 1)
	suite.Assert().Equal(id, created[0].HouseholdID)
	suite.Assert().Equal(models.PersonBoth, created[0].Person, "person must default to Both")

	path := householdPath(id, "/transactions/"+created[0].ID.String())

	recorder := suite.request(dan, http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(dan, http.MethodPatch, path, map[string]any{"amount": "20.5", "person": "Carol"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.Response[models.Transaction]
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().True(decimal.NewFromFloat(20.5).Equal(updated.Data.Amount), updated.Data.Amount)
	suite.Assert().Equal(models.PersonCarol, updated.Data.Person)
	suite.Assert().Equal("Groceries", updated.Data.Description)

	recorder = suite.request(dan, http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(dan, http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateTransactionsFails() {
	id := suite.signIn(dan)

	noAmount := newTransaction("Groceries", "0")
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken JSON", `[{"description": "Groceries"`, http.StatusBadRequest},
		{"No transactions", []v1.TransactionEditable{}, http.StatusBadRequest},
		{"Zero amount", []v1.TransactionEditable{newTransaction("Rent", "1200"), noAmount}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			recorder := suite.request(dan, http.MethodPost, householdPath(id, "/transactions"), tt.body)
			test.AssertHTTPStatus(suite.T(), &recorder, tt.status)
		})
	}

	suite.Assert().Empty(suite.listTransactions(id, ""), "a failed batch must not create anything")
}

func (suite *TestSuiteStandard) TestTransactionFromOtherHousehold() {
	id := suite.signIn(dan)
	other := suite.signIn(carol)

	created := suite.createTransactions(id, newTransaction("Groceries", "10"))

	recorder := suite.request(carol, http.MethodGet, householdPath(other, "/transactions/"+created[0].ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(carol, http.MethodDelete, householdPath(other, "/transactions/"+created[0].ID.String()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestListTransactionsFilter() {
	id := suite.signIn(dan)

	uber := newTransaction("Uber to airport", "35")
	uber.Category = "Transport"
	uber.Subcategory = "Ride Hailing"

	salary := newTransaction("Salary", "5000")
	salary.Kind = models.KindIncome
	salary.Category = "Main Income"
	salary.Subcategory = "Salary"
	salary.Person = models.PersonDan

	february := newTransaction("Bakery", "8")
	february.Date = types.NewDate(2024, time.February, 2)
	february.Source = "Wallet"

	suite.createTransactions(id, uber, salary, february)

	tests := []struct {
		query string
		count int
	}{
		{"", 3},
		{"?kind=income", 1},
		{"?source=Wallet", 1},
		{"?category=Transport", 1},
		{"?person=Dan", 1},
		{"?month=2024-01", 2},
		{"?month=2024-02&source=Wallet", 1},
		{"?description=*UBER*", 1},
		{"?description=sal*", 1},
		{"?description=nothing", 0},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			suite.Assert().Len(suite.listTransactions(id, tt.query), tt.count)
		})
	}

	recorder := suite.request(dan, http.MethodGet, householdPath(id, "/transactions?month=January"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateInstallments() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/transactions/installments"), v1.InstallmentsRequest{
		TransactionEditable: newTransaction("Fridge", "100"),
		Installments:        3,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.Response[[]models.Transaction]
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 3)

	sum := decimal.Zero
	for _, t := range response.Data {
		sum = sum.Add(t.Amount)
	}
	suite.Assert().True(decimal.NewFromInt(100).Equal(sum), "installments must sum to the total, got %s", sum)
	suite.Assert().Equal("1/3", response.Data[0].Installment)
	suite.Assert().Equal(types.NewDate(2024, time.March, 15), response.Data[2].Date)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/transactions/installments"), v1.InstallmentsRequest{
		TransactionEditable: newTransaction("Fridge", "100"),
		Installments:        1,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodPost, householdPath(id, "/transactions/installments"), v1.InstallmentsRequest{
		TransactionEditable: newTransaction("Gum", "0.02"),
		Installments:        3,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Contains(recorder.Body.String(), "too small for 3 installments")
	suite.Assert().Len(suite.listTransactions(id, ""), 3, "a rejected purchase must not create installments")
}

func (suite *TestSuiteStandard) TestStreamTransactions() {
	id := suite.signIn(dan)
	suite.createTransactions(id, newTransaction("Groceries", "10"))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	recorder := test.Stream(ctx, suite.T(), http.MethodGet, "http://example.com"+householdPath(id, "/transactions/stream"), test.Authorization(suite.T(), dan))

	test.AssertHTTPStatus(suite.T(), recorder, http.StatusOK)
	suite.Assert().Contains(recorder.Header().Get("Content-Type"), "text/event-stream")
	suite.Assert().Equal(1, strings.Count(recorder.Body.String(), "event:transactions"))
	suite.Assert().Contains(recorder.Body.String(), "Groceries")
}

func (suite *TestSuiteStandard) TestListTransactionsInvalidFilter() {
	id := suite.signIn(dan)

	for _, query := range []string{"?kind=transfer", "?person=Mallory"} {
		recorder := suite.request(dan, http.MethodGet, householdPath(id, "/transactions"+query), "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestTransactionsMustMatchConfiguration() {
	id := suite.signIn(dan)

	unknownSource := newTransaction("Groceries", "10")
	unknownSource.Source = "Piggy bank"

	unknownCategory := newTransaction("Groceries", "10")
	unknownCategory.Category = "Caviar"

	foreignSubcategory := newTransaction("Groceries", "10")
	foreignSubcategory.Subcategory = "Salary"

	incomeCategory := newTransaction("Groceries", "10")
	incomeCategory.Kind = models.KindIncome

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"Unknown source", "/transactions", []v1.TransactionEditable{newTransaction("Rent", "1200"), unknownSource}, http.StatusNotFound},
		{"Unknown category", "/transactions", []v1.TransactionEditable{unknownCategory}, http.StatusBadRequest},
		{"Subcategory of another category", "/transactions", []v1.TransactionEditable{foreignSubcategory}, http.StatusBadRequest},
		{"Category of the other kind", "/transactions", []v1.TransactionEditable{incomeCategory}, http.StatusBadRequest},
		{"Installments from unknown source", "/transactions/installments", v1.InstallmentsRequest{TransactionEditable: unknownSource, Installments: 2}, http.StatusNotFound},
		{"Installments of unknown category", "/transactions/installments", v1.InstallmentsRequest{TransactionEditable: unknownCategory, Installments: 2}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			recorder := suite.request(dan, http.MethodPost, householdPath(id, tt.path), tt.body)
			test.AssertHTTPStatus(suite.T(), &recorder, tt.status)
		})
	}

	suite.Assert().Empty(suite.listTransactions(id, ""), "rejected entries must not create anything")

	created := suite.createTransactions(id, newTransaction("Groceries", "10"))
	path := householdPath(id, "/transactions/"+created[0].ID.String())

	recorder := suite.request(dan, http.MethodPatch, path, map[string]any{"category": "Caviar"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodPatch, path, map[string]any{"source": "Piggy bank"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(dan, http.MethodPatch, path, map[string]any{"source": "Wallet", "subcategory": "Bakery"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	transactions := suite.listTransactions(id, "")
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal("Wallet", transactions[0].Source)
	suite.Assert().Equal("Bakery", transactions[0].Subcategory)
}
