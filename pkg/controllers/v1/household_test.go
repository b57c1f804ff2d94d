package v1_test

import (
	"net/http"

	v1 "github.com/hearth-ledger/backend/pkg/controllers/v1"
	"github.com/hearth-ledger/backend/pkg/household"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
	"github.com/hearth-ledger/backend/test"
)

func (suite *TestSuiteStandard) TestGetMeBootstrapsHousehold() {
	recorder := suite.request(dan, http.MethodGet, "/v1/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var session v1.Response[household.Session]
	test.DecodeResponse(suite.T(), &recorder, &session)
	suite.Assert().Equal("Dan's Household", session.Data.Household.Name)
	suite.Assert().Equal([]string{"dan"}, session.Data.Household.Members)
	suite.Assert().Equal(models.RoleOwner, session.Data.Household.Roles["dan"])
	suite.Require().NotNil(session.Data.Profile.CurrentHouseholdID)
	suite.Assert().Equal(session.Data.Household.ID, *session.Data.Profile.CurrentHouseholdID)

	// A second sign in keeps the household
	suite.Assert().Equal(session.Data.Household.ID, suite.signIn(dan))

	recorder = suite.request(dan, http.MethodGet, householdPath(session.Data.Household.ID, "/config"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var config v1.Response[store.Config]
	test.DecodeResponse(suite.T(), &recorder, &config)
	suite.Require().Len(config.Data.Accounts, 2)
}

func (suite *TestSuiteStandard) TestCreateAndSwitchHousehold() {
	first := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, "/v1/households", v1.CreateHouseholdRequest{Name: "Beach House", Currency: "EUR"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.Response[household.Session]
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().Equal("Beach House", created.Data.Household.Name)
	suite.Assert().Equal("EUR", created.Data.Household.Currency)
	suite.Assert().Equal(created.Data.Household.ID, suite.signIn(dan), "the new household must be selected")

	recorder = suite.request(dan, http.MethodGet, "/v1/households", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var households v1.Response[[]household.Detail]
	test.DecodeResponse(suite.T(), &recorder, &households)
	suite.Assert().Len(households.Data, 2)

	recorder = suite.request(dan, http.MethodPost, "/v1/me/current-household", map[string]string{"householdId": first.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Equal(first, suite.signIn(dan))
}

func (suite *TestSuiteStandard) TestSwitchHouseholdNotMember() {
	id := suite.signIn(dan)
	suite.signIn(eve)

	recorder := suite.request(eve, http.MethodPost, "/v1/me/current-household", map[string]string{"householdId": id.String()})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestInviteAndJoin() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/invite-code"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var code v1.Response[v1.InviteCode]
	test.DecodeResponse(suite.T(), &recorder, &code)
	suite.Require().NotEmpty(code.Data.Code)

	recorder = suite.request(carol, http.MethodPost, "/v1/households/join", v1.JoinRequest{Code: code.Data.Code})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Joining twice is fine
	recorder = suite.request(carol, http.MethodPost, "/v1/households/join", v1.JoinRequest{Code: code.Data.Code})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(carol, http.MethodGet, householdPath(id, "/members"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var members v1.Response[[]household.Member]
	test.DecodeResponse(suite.T(), &recorder, &members)
	suite.Require().Len(members.Data, 2)

	// Only owners issue invite codes
	recorder = suite.request(carol, http.MethodPost, householdPath(id, "/invite-code"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestJoinInvalidCode() {
	suite.signIn(carol)

	tests := []struct {
		code   string
		status int
	}{
		{"abc", http.StatusBadRequest},
		{"does-not-exist", http.StatusNotFound},
	}

	for _, tt := range tests {
		recorder := suite.request(carol, http.MethodPost, "/v1/households/join", v1.JoinRequest{Code: tt.code})
		test.AssertHTTPStatus(suite.T(), &recorder, tt.status)
	}
}

func (suite *TestSuiteStandard) TestResetHousehold() {
	id := suite.signIn(dan)

	recorder := suite.request(dan, http.MethodPost, householdPath(id, "/transactions"), []v1.TransactionEditable{newTransaction("Groceries", "10")})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/data?confirm="+household.ConfirmReset), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = suite.request(dan, http.MethodDelete, householdPath(id, "/data?confirm="+household.ConfirmReset+"&confirmFinal="+household.ConfirmResetFinal), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	suite.Assert().Empty(suite.listTransactions(id, ""))
	suite.Assert().Equal(id, suite.signIn(dan), "the household must be kept")
}
