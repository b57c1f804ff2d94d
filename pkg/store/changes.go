package store

import (
	"github.com/hearth-ledger/backend/internal/types"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// AccountChanges holds the fields to change on an account. Nil fields are
// left untouched.
type AccountChanges struct {
	Name       *string           `json:"name" example:"Checking"`
	Type       *string           `json:"type" example:"Checking account"`
	Agency     *string           `json:"agency" example:"0001"`
	Number     *string           `json:"number" example:"12345"`
	CheckDigit *string           `json:"checkDigit" example:"6"`
	Audience   *types.StringList `json:"audience"`
}

func (c AccountChanges) apply(a *models.Account) {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.Type != nil {
		a.Type = *c.Type
	}
	if c.Agency != nil {
		a.Agency = *c.Agency
	}
	if c.Number != nil {
		a.Number = *c.Number
	}
	if c.CheckDigit != nil {
		a.CheckDigit = *c.CheckDigit
	}
	if c.Audience != nil {
		a.Audience = *c.Audience
	}
}

type BenefitChanges struct {
	Name     *string           `json:"name" example:"Meal card"`
	Audience *types.StringList `json:"audience"`
}

func (c BenefitChanges) apply(b *models.Benefit) {
	if c.Name != nil {
		b.Name = *c.Name
	}
	if c.Audience != nil {
		b.Audience = *c.Audience
	}
}

type CardChanges struct {
	Name             *string           `json:"name" example:"Visa"`
	Limit            *decimal.Decimal  `json:"limit" example:"1000"`
	ClosingDay       *int              `json:"closingDay" example:"3"`
	DueDay           *int              `json:"dueDay" example:"10"`
	ManualAdjustment *decimal.Decimal  `json:"manualAdjustment" example:"-12.5"`
	Audience         *types.StringList `json:"audience"`
}

func (c CardChanges) apply(card *models.Card) {
	if c.Name != nil {
		card.Name = *c.Name
	}
	if c.Limit != nil {
		card.Limit = *c.Limit
	}
	if c.ClosingDay != nil {
		card.ClosingDay = *c.ClosingDay
	}
	if c.DueDay != nil {
		card.DueDay = *c.DueDay
	}
	if c.ManualAdjustment != nil {
		card.ManualAdjustment = *c.ManualAdjustment
	}
	if c.Audience != nil {
		card.Audience = *c.Audience
	}
}

type RecurringBillChanges struct {
	Description *string          `json:"description" example:"Rent"`
	Amount      *decimal.Decimal `json:"amount" example:"1200"`
	Kind        *models.Kind     `json:"kind" example:"expense"`
	Category    *string          `json:"category" example:"Housing"`
	Subcategory *string          `json:"subcategory" example:"Rent & Mortgage"`
	Source      *string          `json:"source" example:"Checking"`
	Person      *models.Person   `json:"person" example:"Both"`
	DueDay      *int             `json:"dueDay" example:"5"`
	Active      *bool            `json:"active" example:"true"`
}

// classifies reports whether the changes touch the fields checked at entry.
func (c RecurringBillChanges) classifies() bool {
	return c.Kind != nil || c.Source != nil || c.Category != nil || c.Subcategory != nil
}

func (c RecurringBillChanges) apply(r *models.RecurringBill) {
	if c.Description != nil {
		r.Description = *c.Description
	}
	if c.Amount != nil {
		r.Amount = *c.Amount
	}
	if c.Kind != nil {
		r.Kind = *c.Kind
	}
	if c.Category != nil {
		r.Category = *c.Category
	}
	if c.Subcategory != nil {
		r.Subcategory = *c.Subcategory
	}
	if c.Source != nil {
		r.Source = *c.Source
	}
	if c.Person != nil {
		r.Person = *c.Person
	}
	if c.DueDay != nil {
		r.DueDay = *c.DueDay
	}
	if c.Active != nil {
		r.Active = *c.Active
	}
}
