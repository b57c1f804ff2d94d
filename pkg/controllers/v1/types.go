package v1

import (
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/internal/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Response is the envelope of all v1 responses.
type Response[T any] struct {
	Data  T       `json:"data"`                                                      // Data for the request
	Error *string `json:"error" example:"there is no household matching your query"` // The error, if any occurred
}

type URIHousehold struct {
	HouseholdID uuid.UUID `uri:"householdId" binding:"required"` // The ID of the household
}

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type URIKind struct {
	Kind models.Kind `uri:"kind" binding:"required" example:"expense"`
}

type URICategory struct {
	Kind     models.Kind `uri:"kind" binding:"required" example:"expense"`
	Category string      `uri:"category" binding:"required" example:"Food"`
}

type URISubcategory struct {
	Kind        models.Kind `uri:"kind" binding:"required" example:"expense"`
	Category    string      `uri:"category" binding:"required" example:"Food"`
	Subcategory string      `uri:"subcategory" binding:"required" example:"Groceries"`
}

// TransactionEditable contains the fields of a transaction clients set.
type TransactionEditable struct {
	Description string          `json:"description" example:"Groceries"`
	Amount      decimal.Decimal `json:"amount" example:"17.42" minimum:"0.01"`
	Date        types.Date      `json:"date" example:"2024-01-15"`
	Kind        models.Kind     `json:"kind" example:"expense"`
	Source      string          `json:"source" example:"Checking"` // Name of the account, card or benefit
	Category    string          `json:"category" example:"Food"`
	Subcategory string          `json:"subcategory" example:"Groceries"`
	Person      models.Person   `json:"person" example:"Both" default:"Both"` // Who the transaction is attributed to
	Installment string          `json:"installment" example:"2/3" default:""` // Set for installment purchases
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Description: editable.Description,
		Amount:      editable.Amount,
		Date:        editable.Date,
		Kind:        editable.Kind,
		Source:      editable.Source,
		Category:    editable.Category,
		Subcategory: editable.Subcategory,
		Person:      editable.Person,
		Installment: editable.Installment,
	}
}

// TransactionQueryFilter contains the filters for listing transactions.
type TransactionQueryFilter struct {
	Source      string        `form:"source"`
	Kind        models.Kind   `form:"kind"`
	Category    string        `form:"category"`
	Person      models.Person `form:"person"`
	Month       string        `form:"month" example:"2024-01"`      // Year and month
	Description string        `form:"description" example:"*uber*"` // Pattern for the description, "*" matches anything
}

// InstallmentsRequest is a purchase paid in monthly installments.
type InstallmentsRequest struct {
	TransactionEditable
	Installments int `json:"installments" example:"3" minimum:"2"` // Number of installments
}

type SwitchHouseholdRequest struct {
	HouseholdID uuid.UUID `json:"householdId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
}

type CreateHouseholdRequest struct {
	Name     string `json:"name" example:"Beach House"`
	Currency string `json:"currency" example:"BRL"`
}

type JoinRequest struct {
	Code string `json:"code" example:"aB3$xY7!kL9@"`
}

type InviteCode struct {
	Code string `json:"code" example:"aB3$xY7!kL9@"`
}

type CategoryRequest struct {
	Category string `json:"category" example:"Pets"`
}

type SubcategoryRequest struct {
	Subcategory string `json:"subcategory" example:"Vet"`
}

type Materialized struct {
	Count int `json:"count" example:"2"` // Number of transactions created
}
