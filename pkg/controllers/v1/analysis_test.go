package v1_test

import (
	"net/http"

	v1 "github.com/hearth-ledger/backend/pkg/controllers/v1"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAnalysis() {
	id := suite.signIn(dan)

	rent := newTransaction("Rent", "900")
	rent.Category = "Housing"
	rent.Subcategory = "Rent & Mortgage"

	salary := newTransaction("Salary", "3000")
	salary.Kind = models.KindIncome
	salary.Category = "Main Income"
	salary.Subcategory = "Salary"

	suite.createTransactions(id, newTransaction("Groceries", "60"), newTransaction("Bakery", "40"), rent, salary)

	recorder := suite.request(dan, http.MethodGet, householdPath(id, "/analysis"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var analysis v1.Response[ledger.Analysis]
	test.DecodeResponse(suite.T(), &recorder, &analysis)
	suite.Assert().Equal(4, analysis.Data.Transactions)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(analysis.Data.Expenses), analysis.Data.Expenses)
	suite.Assert().True(decimal.NewFromInt(2000).Equal(analysis.Data.Balance), analysis.Data.Balance)
	suite.Require().NotNil(analysis.Data.TopCategory)
	suite.Assert().Equal("Housing", analysis.Data.TopCategory.Category)
	suite.Require().Len(analysis.Data.Categories, 2)
	suite.Assert().Equal("Food", analysis.Data.Categories[1].Category)

	recorder = suite.request(dan, http.MethodGet, householdPath(id, "/analysis?category=Food"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &analysis)
	suite.Assert().Equal(2, analysis.Data.Transactions)
	suite.Assert().True(decimal.NewFromInt(100).Equal(analysis.Data.Expenses), analysis.Data.Expenses)

	recorder = suite.request(dan, http.MethodGet, householdPath(id, "/analysis?kind=transfer"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(eve, http.MethodGet, householdPath(id, "/analysis"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}
