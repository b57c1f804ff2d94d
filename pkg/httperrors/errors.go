package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Error string `json:"error" example:"there is no household matching your query"`
}

// Generate a struct containing the HTTP error on the fly.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	// Format msgAndArgs in a final string.
	// This is taken almost exactly from https://github.com/stretchr/testify/blob/181cea6eab8b2de7071383eca4be32a424db38dd/assert/assertions.go#L181
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

// Status returns the HTTP status code for an error returned by the
// ledger packages.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInconsistentState), errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Message returns the message for err that is safe to send to the client.
//
// Server errors are logged with the request id, the client only gets the
// request id to report.
func Message(c *gin.Context, err error) string {
	if Status(err) != http.StatusInternalServerError {
		return err.Error()
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())

	if errors.Is(err, models.ErrInconsistentState) {
		return fmt.Sprintf("%s. The request id is '%v'", models.ErrInconsistentState, requestid.Get(c))
	}
	return fmt.Sprintf("%s, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c))
}

// Handler writes the error response for err.
func Handler(c *gin.Context, err error) {
	New(c, Status(err), Message(c, err))
}
