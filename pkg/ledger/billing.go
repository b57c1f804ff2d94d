package ledger

import (
	"github.com/hearth-ledger/backend/internal/types"
)

// validDay reports whether day is a day of month.
func validDay(day int) bool {
	return day >= 1 && day <= 31
}

// NextDueDate returns the next due date strictly after today. A due day
// past the end of a month falls on its last day. ok is false for invalid
// due days, the date is then unknown.
func NextDueDate(today types.Date, dueDay int) (date types.Date, ok bool) {
	if !validDay(dueDay) {
		return types.Date{}, false
	}

	candidate := today.Month().Day(dueDay)
	if !candidate.After(today) {
		candidate = today.Month().AddDate(0, 1).Day(dueDay)
	}

	return candidate, true
}

// DaysUntilDue returns the number of days from today to the next due date.
// Invalid due days yield 0.
func DaysUntilDue(today types.Date, dueDay int) int {
	due, ok := NextDueDate(today, dueDay)
	if !ok {
		return 0
	}

	days := int(due.Time().Sub(today.Time()).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// PurchaseWindow is the best day of month to buy with a card.
type PurchaseWindow struct {
	Day int `json:"day" example:"4"` // Day of month right after the statement closes

	// Days between the best purchase day and the due day, assuming every
	// month has 30 days
	DaysUntilDueApprox int `json:"daysUntilDueApprox" example:"6"`
}

// BestPurchaseDay returns the day after the closing day, wrapping to the
// 1st after day 31, and the approximate days from there until the bill is
// due. ok is false if either day is invalid.
func BestPurchaseDay(closingDay, dueDay int) (PurchaseWindow, bool) {
	if !validDay(closingDay) || !validDay(dueDay) {
		return PurchaseWindow{}, false
	}

	best := closingDay + 1
	if best > 31 {
		best = 1
	}

	days := dueDay - best
	if dueDay < best {
		days = 30 - best + dueDay
	}

	return PurchaseWindow{Day: best, DaysUntilDueApprox: days}, true
}

// AddMonths moves the date by months calendar months. The day of month is
// kept unless the target month is shorter, then it is the last day.
func AddMonths(d types.Date, months int) types.Date {
	return d.Month().AddDate(0, months).Day(d.Time().Day())
}
