package test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hearth-ledger/backend/pkg/auth"
	"github.com/hearth-ledger/backend/pkg/household"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AuthSecret signs the identity tokens of all tests.
const AuthSecret = "only-for-tests-0123456789abcdef"

func DecodeError(t *testing.T, s []byte) string {
	var r struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}

// Token returns a signed identity token for the identity.
func Token(t *testing.T, identity household.Identity) string {
	token, err := auth.NewToken(AuthSecret, identity, time.Hour)
	require.Nil(t, err)
	return token
}

// Authorization returns the header that signs a request in as identity.
func Authorization(t *testing.T, identity household.Identity) map[string]string {
	return map[string]string{"Authorization": "Bearer " + Token(t, identity)}
}

// Stream makes a request that keeps the connection open until ctx is done
// and returns everything written to it.
func Stream(ctx context.Context, t *testing.T, method, reqURL string, headers ...map[string]string) *httptest.ResponseRecorder {
	r, teardown := engine(t)
	defer teardown()

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, newRequest(t, method, reqURL, "", headers...).WithContext(ctx))

	return recorder
}
