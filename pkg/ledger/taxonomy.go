package ledger

import (
	"github.com/hearth-ledger/backend/pkg/models"
	"golang.org/x/exp/slices"
)

// Taxonomy maps a category to its subcategories.
type Taxonomy map[string][]string

// Categories returns the category names in alphabetical order.
func (t Taxonomy) Categories() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether the taxonomy contains the category.
func (t Taxonomy) Has(category string) bool {
	_, ok := t[category]
	return ok
}

// HasSubcategory reports whether the category contains the subcategory.
func (t Taxonomy) HasSubcategory(category, subcategory string) bool {
	return slices.Contains(t[category], subcategory)
}

func (t Taxonomy) clone() Taxonomy {
	c := make(Taxonomy, len(t))
	for category, subcategories := range t {
		c[category] = append([]string{}, subcategories...)
	}
	return c
}

const (
	// CategoryDebts and SubcategoryCardPayment classify card bill payments.
	CategoryDebts          = "Debts & Loans"
	SubcategoryCardPayment = "Card Payment"
)

var incomeTaxonomy = Taxonomy{
	"Adjustments":  {"Incoming Adjustment"},
	"Main Income":  {"Salary", "Meal Benefit", "Food Benefit"},
	"Extra Income": {"Bonus", "Freelance", "Sales", "Other (Extra Income)"},
	"Other Income": {"Gift", "Refund", "Investments", "Other"},
}

var expenseTaxonomy = Taxonomy{
	"Adjustments": {SubcategoryOutgoingAdjustment},
	"Food":        {"Butcher", "Bakery", "Groceries", "Produce", "Delivery", "Supermarket (Monthly)", "Other (Food)"},
	CategoryDebts: {"Loan", SubcategoryCardPayment, "Other Loans"},
	"Children":    {"Child Support", "School & Supplies", "Clothes (Children)", "Toys & Gifts", "Other (Children)"},
	"Leisure":     {"Cinema & Events", "Streaming", "Restaurant & Bar", "Travel", "Parks", "Other (Leisure)"},
	"Housing":     {"Rent & Mortgage", "Condo Fee", "Water", "Electricity", "Internet & Phone", "Gas", "Maintenance", "Property Tax", "Other (Housing)"},
	"Obligations": {"Business Taxes", "Taxes (Other)", "Other (Obligations)"},
	"Other":       {"Gifts", "Donations", "Investments", "Withdrawal", "Transfers", "Other (General)"},
	"Personal":    {"Gym", "Cosmetics", "Online Shopping", "Therapy", "Clothes", "Hair & Barber", "Other (Personal)"},
	"Health":      {"Pharmacy", "Health Insurance", "Appointments & Exams", "Other (Health)"},
	"Transport":   {"Fuel", "Parking", "Maintenance", "Insurance & Registration", "Tolls", "Ride Hailing", "Public Transport", "Other (Transport)"},
}

// BaseTaxonomy returns a copy of the built-in taxonomy for the kind.
func BaseTaxonomy(kind models.Kind) Taxonomy {
	if kind == models.KindIncome {
		return incomeTaxonomy.clone()
	}
	return expenseTaxonomy.clone()
}

// ResolveCategories merges the household's overrides of the given kind into
// the base taxonomy. An override replaces the subcategory list of its
// category verbatim or, if deleted, removes the category.
func ResolveCategories(kind models.Kind, overrides []models.CategoryOverride) Taxonomy {
	merged := BaseTaxonomy(kind)

	for _, o := range overrides {
		if o.Kind != kind {
			continue
		}

		if o.Deleted {
			delete(merged, o.Category)
			continue
		}

		merged[o.Category] = append([]string{}, o.Subcategories...)
	}

	return merged
}
