package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

func (co Controller) registerTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransactions)
		r.OPTIONS("/installments", httputil.OptionsPost)
		r.POST("/installments", co.CreateInstallments)
		r.OPTIONS("/stream", httputil.OptionsGet)
		r.GET("/stream", co.StreamTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		List transactions
// @Description	Returns the transactions of the household, latest first
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	Response[[]models.Transaction]
// @Failure		400			{object}	Response[any]
// @Failure		403			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			source		query		string	false	"Filter by source"
// @Param			kind		query		string	false	"Filter by kind"
// @Param			category	query		string	false	"Filter by category"
// @Param			person		query		string	false	"Filter by person"
// @Param			month		query		string	false	"Filter by month, YYYY-MM"
// @Param			description	query		string	false	"Pattern for the description, '*' matches anything"
// @Router			/v1/households/{householdId}/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}

	transactions, err := co.Ledger.List(c.Request.Context(), householdID(c), f)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]models.Transaction]{Data: transactions})
}

// bindFilter parses the transaction query parameters.
func bindFilter(c *gin.Context) (store.Filter, bool) {
	var filter TransactionQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, err)
		return store.Filter{}, false
	}

	if filter.Kind != "" && !slices.Contains([]models.Kind{models.KindIncome, models.KindExpense}, filter.Kind) {
		fail(c, fmt.Errorf("%w: the kind must be %s or %s", models.ErrValidation, models.KindIncome, models.KindExpense))
		return store.Filter{}, false
	}

	if filter.Person != "" && !filter.Person.Valid() {
		fail(c, fmt.Errorf("%w: %s is not a valid person", models.ErrValidation, filter.Person))
		return store.Filter{}, false
	}

	f := store.Filter{
		Source:      filter.Source,
		Kind:        filter.Kind,
		Category:    filter.Category,
		Person:      filter.Person,
		Description: filter.Description,
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			fail(c, err)
			return store.Filter{}, false
		}
		f.Month = month
	}

	return f, true
}

// @Summary		Create transactions
// @Description	Appends transactions. Either all of them are created or none.
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	Response[[]models.Transaction]
// @Failure		400				{object}	Response[any]
// @Failure		403				{object}	Response[any]
// @Failure		404				{object}	Response[any]
// @Failure		500				{object}	Response[any]
// @Param			householdId		path		string					true	"ID of the household"
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/households/{householdId}/transactions [post]
func (co Controller) CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable
	if err := httputil.BindData(c, &editables); err != nil {
		fail(c, err)
		return
	}

	transactions := make([]models.Transaction, 0, len(editables))
	for _, editable := range editables {
		transactions = append(transactions, editable.model())
	}

	created, err := co.Ledger.AppendMany(c.Request.Context(), householdID(c), transactions, store.CheckEntry)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[[]models.Transaction]{Data: created})
}

// @Summary		Create installment purchase
// @Description	Splits the purchase into monthly transactions, one per installment
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	Response[[]models.Transaction]
// @Failure		400			{object}	Response[any]
// @Failure		403			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string				true	"ID of the household"
// @Param			purchase	body		InstallmentsRequest	true	"Purchase"
// @Router			/v1/households/{householdId}/transactions/installments [post]
func (co Controller) CreateInstallments(c *gin.Context) {
	var request InstallmentsRequest
	if err := httputil.BindData(c, &request); err != nil {
		fail(c, err)
		return
	}

	created, err := co.Ledger.AppendInstallments(c.Request.Context(), householdID(c), request.model(), request.Installments, store.CheckEntry)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[[]models.Transaction]{Data: created})
}

// @Summary		Stream transactions
// @Description	Server-sent events with the full list of transactions, sent on connect and after every change.
// @Description	Browsers can pass the identity token in the access_token query parameter.
// @Tags			Transactions
// @Produce		text/event-stream
// @Success		200			{object}	[]models.Transaction
// @Failure		403			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Router			/v1/households/{householdId}/transactions/stream [get]
func (co Controller) StreamTransactions(c *gin.Context) {
	id := householdID(c)

	snapshots, err := co.Ledger.Subscribe(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	log.Debug().Str("household", id.String()).Msg("transaction stream opened")
	for snapshot := range snapshots {
		c.SSEvent("transactions", snapshot)
		c.Writer.Flush()
	}
	log.Debug().Str("household", id.String()).Msg("transaction stream closed")
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	Response[models.Transaction]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			id			path		string	true	"ID of the transaction"
// @Router			/v1/households/{householdId}/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	t, err := co.Ledger.Get(c.Request.Context(), householdID(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Transaction]{Data: t})
}

// @Summary		Update transaction
// @Description	Updates a transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	Response[models.Transaction]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string						true	"ID of the household"
// @Param			id			path		string						true	"ID of the transaction"
// @Param			transaction	body		store.TransactionChanges	true	"Changed fields"
// @Router			/v1/households/{householdId}/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var changes store.TransactionChanges
	if err := httputil.BindData(c, &changes); err != nil {
		fail(c, err)
		return
	}

	t, err := co.Ledger.Update(c.Request.Context(), householdID(c), id, changes, store.CheckEntry)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[models.Transaction]{Data: t})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Failure		500			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			id			path		string	true	"ID of the transaction"
// @Router			/v1/households/{householdId}/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	err := co.Ledger.Remove(c.Request.Context(), householdID(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
