package httputil

import (
	"fmt"

	"github.com/hearth-ledger/backend/pkg/models"
)

var (
	ErrInvalidBody         = fmt.Errorf("%w: the body of your request contains invalid or un-parseable data. Please check and try again", models.ErrValidation)
	ErrRequestBodyEmpty    = fmt.Errorf("%w: the request body must not be empty", models.ErrValidation)
	ErrRequestBodyTooLarge = fmt.Errorf("%w: the request body must not exceed %d bytes", models.ErrValidation, MaxBodyBytes)
)
