package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/ledger"
)

// @Summary		Analyze transactions
// @Description	Returns totals, the daily average of expenses and the spending per category and person.
// @Description	Accepts the same filters as the transaction list.
// @Tags			Households
// @Produce		json
// @Success		200			{object}	Response[ledger.Analysis]
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
// @Router			/v1/households/{householdId}/analysis [get]
func (co Controller) GetAnalysis(c *gin.Context) {
	f, ok := bindFilter(c)
	if !ok {
		return
	}

	transactions, err := co.Ledger.List(c.Request.Context(), householdID(c), f)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[ledger.Analysis]{Data: ledger.Analyze(transactions)})
}
