package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
)

// @Summary		Get configuration
// @Description	Returns accounts, benefits, cards, recurring bills and category overrides of the household
// @Tags			Configuration
// @Produce		json
// @Success		200			{object}	Response[store.Config]
// @Failure		403			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/config [get]
func (co Controller) GetConfig(c *gin.Context) {
	cfg, err := co.Config.Get(c.Request.Context(), householdID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[store.Config]{Data: cfg})
}

// @Summary		Update configuration
// @Description	Replaces the lists that are set in the body. Lists that are not set are kept.
// @Description	Renamed accounts, cards and benefits keep their transactions.
// @Tags			Configuration
// @Produce		json
// @Success		200			{object}	Response[store.Config]
// @Failure		400			{object}	Response[any]
// @Failure		403			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string				true	"ID of the household"
// @Param			config		body		store.ConfigPatch	true	"Lists to replace"
// @Router			/v1/households/{householdId}/config [patch]
func (co Controller) UpdateConfig(c *gin.Context) {
	var patch store.ConfigPatch
	if err := httputil.BindData(c, &patch); err != nil {
		fail(c, err)
		return
	}

	cfg, err := co.Config.Update(c.Request.Context(), householdID(c), patch)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[store.Config]{Data: cfg})
}

// @Summary		Get overview
// @Description	Returns the balances of all accounts and benefits and the bills and billing cycles of all cards
// @Tags			Configuration
// @Produce		json
// @Success		200			{object}	Response[ledger.Overview]
// @Failure		403			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/overview [get]
func (co Controller) GetOverview(c *gin.Context) {
	id := householdID(c)

	cfg, err := co.Config.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	transactions, err := co.Ledger.Snapshot(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	overview := ledger.Summarize(types.DateOf(time.Now()), transactions, cfg.Accounts, cfg.Benefits, cfg.Cards)
	c.JSON(http.StatusOK, Response[ledger.Overview]{Data: overview})
}

func (co Controller) registerAccountRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetAccounts)
	r.POST("", co.CreateAccount)
	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", co.UpdateAccount)
	r.DELETE("/:id", co.DeleteAccount)
}

// @Summary		List accounts
// @Tags			Accounts
// @Produce		json
// @Success		200			{object}	Response[[]models.Account]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/accounts [get]
func (co Controller) GetAccounts(c *gin.Context) {
	listEntities(c, co.Config, func(cfg store.Config) []models.Account { return cfg.Accounts })
}

// @Summary		Create account
// @Tags			Accounts
// @Produce		json
// @Success		201			{object}	Response[models.Account]
// @Failure		400			{object}	Response[any]
// @Param			householdId	path		string			true	"ID of the household"
// @Param			account		body		models.Account	true	"Account"
// @Router			/v1/households/{householdId}/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	createEntity(c, co.Config.AddAccount)
}

// @Summary		Update account
// @Description	Updates an account. Renaming it renames the source of its transactions.
// @Tags			Accounts
// @Produce		json
// @Success		200			{object}	Response[models.Account]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string					true	"ID of the household"
// @Param			id			path		string					true	"ID of the account"
// @Param			account		body		store.AccountChanges	true	"Changed fields"
// @Router			/v1/households/{householdId}/accounts/{id} [patch]
func (co Controller) UpdateAccount(c *gin.Context) {
	updateEntity(c, co.Config.UpdateAccount)
}

// @Summary		Delete account
// @Tags			Accounts
// @Success		204
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			id			path		string	true	"ID of the account"
// @Router			/v1/households/{householdId}/accounts/{id} [delete]
func (co Controller) DeleteAccount(c *gin.Context) {
	deleteEntity(c, co.Config.RemoveAccount)
}

func (co Controller) registerBenefitRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetBenefits)
	r.POST("", co.CreateBenefit)
	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", co.UpdateBenefit)
	r.DELETE("/:id", co.DeleteBenefit)
}

// @Summary		List benefits
// @Tags			Benefits
// @Produce		json
// @Success		200			{object}	Response[[]models.Benefit]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/benefits [get]
func (co Controller) GetBenefits(c *gin.Context) {
	listEntities(c, co.Config, func(cfg store.Config) []models.Benefit { return cfg.Benefits })
}

// @Summary		Create benefit
// @Tags			Benefits
// @Produce		json
// @Success		201			{object}	Response[models.Benefit]
// @Failure		400			{object}	Response[any]
// @Param			householdId	path		string			true	"ID of the household"
// @Param			benefit		body		models.Benefit	true	"Benefit"
// @Router			/v1/households/{householdId}/benefits [post]
func (co Controller) CreateBenefit(c *gin.Context) {
	createEntity(c, co.Config.AddBenefit)
}

// @Summary		Update benefit
// @Tags			Benefits
// @Produce		json
// @Success		200			{object}	Response[models.Benefit]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string					true	"ID of the household"
// @Param			id			path		string					true	"ID of the benefit"
// @Param			benefit		body		store.BenefitChanges	true	"Changed fields"
// @Router			/v1/households/{householdId}/benefits/{id} [patch]
func (co Controller) UpdateBenefit(c *gin.Context) {
	updateEntity(c, co.Config.UpdateBenefit)
}

// @Summary		Delete benefit
// @Tags			Benefits
// @Success		204
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			id			path		string	true	"ID of the benefit"
// @Router			/v1/households/{householdId}/benefits/{id} [delete]
func (co Controller) DeleteBenefit(c *gin.Context) {
	deleteEntity(c, co.Config.RemoveBenefit)
}

func (co Controller) registerCardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetCards)
	r.POST("", co.CreateCard)
	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", co.UpdateCard)
	r.DELETE("/:id", co.DeleteCard)
	r.OPTIONS("/:id/payments", httputil.OptionsPost)
	r.POST("/:id/payments", co.PayCardBill)
}

// @Summary		List cards
// @Tags			Cards
// @Produce		json
// @Success		200			{object}	Response[[]models.Card]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/cards [get]
func (co Controller) GetCards(c *gin.Context) {
	listEntities(c, co.Config, func(cfg store.Config) []models.Card { return cfg.Cards })
}

// @Summary		Create card
// @Tags			Cards
// @Produce		json
// @Success		201			{object}	Response[models.Card]
// @Failure		400			{object}	Response[any]
// @Param			householdId	path		string		true	"ID of the household"
// @Param			card		body		models.Card	true	"Card"
// @Router			/v1/households/{householdId}/cards [post]
func (co Controller) CreateCard(c *gin.Context) {
	createEntity(c, co.Config.AddCard)
}

// @Summary		Update card
// @Tags			Cards
// @Produce		json
// @Success		200			{object}	Response[models.Card]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string				true	"ID of the household"
// @Param			id			path		string				true	"ID of the card"
// @Param			card		body		store.CardChanges	true	"Changed fields"
// @Router			/v1/households/{householdId}/cards/{id} [patch]
func (co Controller) UpdateCard(c *gin.Context) {
	updateEntity(c, co.Config.UpdateCard)
}

// @Summary		Delete card
// @Tags			Cards
// @Success		204
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			id			path		string	true	"ID of the card"
// @Router			/v1/households/{householdId}/cards/{id} [delete]
func (co Controller) DeleteCard(c *gin.Context) {
	deleteEntity(c, co.Config.RemoveCard)
}

// @Summary		Pay card bill
// @Description	Records the payment of the card bill from an account or benefit as two transactions
// @Tags			Cards
// @Produce		json
// @Success		201			{object}	Response[[]models.Transaction]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string				true	"ID of the household"
// @Param			id			path		string				true	"ID of the card"
// @Param			payment		body		store.CardPayment	true	"Payment"
// @Router			/v1/households/{householdId}/cards/{id}/payments [post]
func (co Controller) PayCardBill(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var payment store.CardPayment
	if err := httputil.BindData(c, &payment); err != nil {
		fail(c, err)
		return
	}

	transactions, err := co.Ledger.PayCardBill(c.Request.Context(), householdID(c), id, payment)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[[]models.Transaction]{Data: transactions})
}

func (co Controller) registerRecurringBillRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetRecurringBills)
	r.POST("", co.CreateRecurringBill)
	r.OPTIONS("/materialize", httputil.OptionsPost)
	r.POST("/materialize", co.MaterializeRecurringBills)
	r.OPTIONS("/:id", httputil.OptionsPatchDelete)
	r.PATCH("/:id", co.UpdateRecurringBill)
	r.DELETE("/:id", co.DeleteRecurringBill)
}

// @Summary		List recurring bills
// @Tags			Recurring Bills
// @Produce		json
// @Success		200			{object}	Response[[]models.RecurringBill]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/recurring-bills [get]
func (co Controller) GetRecurringBills(c *gin.Context) {
	listEntities(c, co.Config, func(cfg store.Config) []models.RecurringBill { return cfg.RecurringBills })
}

// @Summary		Create recurring bill
// @Tags			Recurring Bills
// @Produce		json
// @Success		201			{object}	Response[models.RecurringBill]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string					true	"ID of the household"
// @Param			bill		body		models.RecurringBill	true	"Recurring bill"
// @Router			/v1/households/{householdId}/recurring-bills [post]
func (co Controller) CreateRecurringBill(c *gin.Context) {
	createEntity(c, func(ctx context.Context, householdID uuid.UUID, b models.RecurringBill) (models.RecurringBill, error) {
		return co.Config.AddRecurringBill(ctx, householdID, b, store.CheckEntry)
	})
}

// @Summary		Update recurring bill
// @Tags			Recurring Bills
// @Produce		json
// @Success		200			{object}	Response[models.RecurringBill]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string						true	"ID of the household"
// @Param			id			path		string						true	"ID of the recurring bill"
// @Param			bill		body		store.RecurringBillChanges	true	"Changed fields"
// @Router			/v1/households/{householdId}/recurring-bills/{id} [patch]
func (co Controller) UpdateRecurringBill(c *gin.Context) {
	updateEntity(c, func(ctx context.Context, householdID, id uuid.UUID, changes store.RecurringBillChanges) (models.RecurringBill, error) {
		return co.Config.UpdateRecurringBill(ctx, householdID, id, changes, store.CheckEntry)
	})
}

// @Summary		Delete recurring bill
// @Tags			Recurring Bills
// @Success		204
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			id			path		string	true	"ID of the recurring bill"
// @Router			/v1/households/{householdId}/recurring-bills/{id} [delete]
func (co Controller) DeleteRecurringBill(c *gin.Context) {
	deleteEntity(c, co.Config.RemoveRecurringBill)
}

// @Summary		Materialize recurring bills
// @Description	Creates the transactions of all recurring bills that are due this month and were not created yet
// @Tags			Recurring Bills
// @Produce		json
// @Success		200			{object}	Response[Materialized]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/recurring-bills/materialize [post]
func (co Controller) MaterializeRecurringBills(c *gin.Context) {
	count, err := co.Recurring.ProcessHousehold(c.Request.Context(), householdID(c), time.Now())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[Materialized]{Data: Materialized{Count: count}})
}
