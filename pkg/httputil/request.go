package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
)

// MaxBodyBytes limits request bodies. A batch of a few thousand transactions fits.
const MaxBodyBytes = 1 << 20

// BindData decodes the JSON body of the request into data, which must be a pointer.
func BindData(c *gin.Context, data any) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	var (
		typeErr *json.UnmarshalTypeError
		sizeErr *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return ErrRequestBodyEmpty
	case errors.As(err, &sizeErr):
		return ErrRequestBodyTooLarge
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("%w: %s must be a %s", models.ErrValidation, typeErr.Field, typeErr.Type)
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: %s", models.ErrValidation, err)
	}

	log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("undecodable request body")
	return ErrInvalidBody
}
