package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/household"
	"github.com/hearth-ledger/backend/pkg/httputil"
)

// @Summary		Get profile and household
// @Description	Returns the profile of the signed in user and the selected household.
// @Description	Creates both on first sign-in and when the selected household no longer exists.
// @Tags			Households
// @Produce		json
// @Success		200	{object}	Response[household.Session]
// @Failure		400	{object}	Response[any]
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		500	{object}	Response[any]
// @Router			/v1/me [get]
func (co Controller) GetMe(c *gin.Context) {
	s, err := co.Households.EnsureProfileAndHousehold(c.Request.Context(), identity(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[household.Session]{Data: s})
}

// @Summary		Switch household
// @Description	Selects the household the user works with
// @Tags			Households
// @Produce		json
// @Success		200		{object}	Response[household.Session]
// @Failure		400		{object}	Response[any]
// @Failure		403		{object}	Response[any]
// @Failure		404		{object}	Response[any]
// @Failure		500		{object}	Response[any]
// @Param			request	body		SwitchHouseholdRequest	true	"Household"
// @Router			/v1/me/current-household [post]
func (co Controller) SwitchHousehold(c *gin.Context) {
	var request SwitchHouseholdRequest
	if err := httputil.BindData(c, &request); err != nil {
		fail(c, err)
		return
	}

	s, err := co.Households.SwitchHousehold(c.Request.Context(), identity(c).UID, request.HouseholdID.UUID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[household.Session]{Data: s})
}

// @Summary		List households
// @Description	Returns all households the user is a member of
// @Tags			Households
// @Produce		json
// @Success		200	{object}	Response[[]household.Detail]
// @Failure		500	{object}	Response[any]
// @Router			/v1/households [get]
func (co Controller) GetHouseholds(c *gin.Context) {
	households, err := co.Households.Households(c.Request.Context(), identity(c).UID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]household.Detail]{Data: households})
}

// @Summary		Create household
// @Description	Creates a household owned by the user and selects it
// @Tags			Households
// @Produce		json
// @Success		201			{object}	Response[household.Session]
// @Failure		400			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			household	body		CreateHouseholdRequest	true	"Household"
// @Router			/v1/households [post]
func (co Controller) CreateHousehold(c *gin.Context) {
	var request CreateHouseholdRequest
	if err := httputil.BindData(c, &request); err != nil {
		fail(c, err)
		return
	}

	s, err := co.Households.CreateHousehold(c.Request.Context(), identity(c), request.Name, request.Currency)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[household.Session]{Data: s})
}

// @Summary		Join household
// @Description	Joins the household of the invite code. Codes are case sensitive.
// @Tags			Households
// @Produce		json
// @Success		200		{object}	Response[household.Session]
// @Failure		400		{object}	Response[any]
// @Failure		404		{object}	Response[any]
// @Failure		500		{object}	Response[any]
// @Param			request	body		JoinRequest	true	"Invite code"
// @Router			/v1/households/join [post]
func (co Controller) JoinHousehold(c *gin.Context) {
	var request JoinRequest
	if err := httputil.BindData(c, &request); err != nil {
		fail(c, err)
		return
	}

	s, err := co.Households.JoinHouseholdByCode(c.Request.Context(), identity(c), request.Code)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[household.Session]{Data: s})
}

// @Summary		Get household
// @Description	Returns a household with its members and their roles
// @Tags			Households
// @Produce		json
// @Success		200			{object}	Response[household.Detail]
// @Failure		403			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId} [get]
func (co Controller) GetHousehold(c *gin.Context) {
	d, err := co.Households.Get(c.Request.Context(), identity(c).UID, householdID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[household.Detail]{Data: d})
}

// @Summary		List members
// @Description	Returns the members of a household with their profile data
// @Tags			Households
// @Produce		json
// @Success		200			{object}	Response[[]household.Member]
// @Failure		403			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/members [get]
func (co Controller) GetMembers(c *gin.Context) {
	members, err := co.Households.Members(c.Request.Context(), identity(c).UID, householdID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]household.Member]{Data: members})
}

// @Summary		Regenerate invite code
// @Description	Replaces the invite code of the household. Only owners can do this.
// @Tags			Households
// @Produce		json
// @Success		201			{object}	Response[InviteCode]
// @Failure		403			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/invite-code [post]
func (co Controller) CreateInviteCode(c *gin.Context) {
	code, err := co.Households.GenerateInviteCode(c.Request.Context(), identity(c).UID, householdID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[InviteCode]{Data: InviteCode{Code: code}})
}

// @Summary		Reset household
// @Description	Deletes all transactions and configuration of the household and restores the default accounts.
// @Description	Members and the invite code are kept. Only owners can do this.
// @Tags			Households
// @Success		204
// @Failure		400				{object}	Response[any]
// @Failure		403				{object}	Response[any]
// @Failure		500				{object}	Response[any]
// @Param			householdId		path		string	true	"ID of the household"
// @Param			confirm			query		string	true	"Confirmation, must be 'yes-please-delete-everything'"
// @Param			confirmFinal	query		string	true	"Second confirmation, must be 'this-cannot-be-undone'"
// @Router			/v1/households/{householdId}/data [delete]
func (co Controller) ResetHousehold(c *gin.Context) {
	var confirmation household.ResetConfirmation
	if err := c.ShouldBindQuery(&confirmation); err != nil {
		fail(c, err)
		return
	}

	err := co.Households.ResetHousehold(c.Request.Context(), identity(c).UID, householdID(c), confirmation)
	if err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
