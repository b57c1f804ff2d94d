package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrValidation is wrapped by every error caused by invalid input.
	ErrValidation = errors.New("invalid request")

	// ErrForbidden is returned when the caller is not a member of the household
	// or lacks the role needed for the operation.
	ErrForbidden = errors.New("you are not allowed to perform this action")

	// ErrInconsistentState is returned when a multi-step operation failed
	// half-way and could not be rolled back.
	ErrInconsistentState = errors.New("the household data is in an inconsistent state and needs manual intervention")
)

var (
	ErrAccountNameNotUnique = fmt.Errorf("%w: the account name must be unique for the household", ErrValidation)
	ErrBenefitNameNotUnique = fmt.Errorf("%w: the benefit name must be unique for the household", ErrValidation)
	ErrCardNameNotUnique    = fmt.Errorf("%w: the card name must be unique for the household", ErrValidation)
	ErrSourceNameNotUnique  = fmt.Errorf("%w: accounts, cards and benefits of a household must have different names", ErrValidation)
	ErrCategoryExists       = fmt.Errorf("%w: the category already exists", ErrValidation)
	ErrSubcategoryExists    = fmt.Errorf("%w: the subcategory already exists in the category", ErrValidation)
	ErrNoTransactions       = fmt.Errorf("%w: at least one transaction is needed", ErrValidation)
	ErrInviteCodeInvalid    = fmt.Errorf("%w invite code matching your query, the code is invalid", ErrResourceNotFound)
	ErrInviteCodeNotUnique  = errors.New("the invite code is already in use")
	ErrMembershipExists     = fmt.Errorf("%w: the user is already a member of the household", ErrValidation)
)

// validation returns an error wrapping ErrValidation with the given message.
func validation(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, a...))
}
