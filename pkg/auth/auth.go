// Package auth validates the identity tokens sent by clients and makes the
// signed in user available to the handlers.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/hearth-ledger/backend/pkg/household"
	"github.com/hearth-ledger/backend/pkg/httperrors"
)

var (
	ErrMissingToken = errors.New("an identity token is required, send it as 'Authorization: Bearer <token>'")
	ErrInvalidToken = errors.New("the identity token is invalid")
	ErrExpiredToken = errors.New("the identity token is expired")
)

const identityKey = "ledger-identity"

// Claims are the claims of an identity token. The subject is the user id.
type Claims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.StandardClaims
}

// NewToken signs a token for the identity that is valid for duration.
func NewToken(secret string, identity household.Identity, duration time.Duration) (string, error) {
	claims := Claims{
		Email:   identity.Email,
		Name:    identity.DisplayName,
		Picture: identity.PhotoURL,
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.UID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the identity it was issued for.
func Parse(secret, tokenString string) (household.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return household.Identity{}, ErrExpiredToken
		}
		return household.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return household.Identity{}, ErrInvalidToken
	}

	return household.Identity{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

// Middleware rejects requests without a valid token with HTTP 401.
//
// Browsers cannot set headers for EventSource connections, so the token is
// also accepted in the access_token query parameter.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("access_token")

		header := c.GetHeader("Authorization")
		if header != "" {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}

		if tokenString == "" {
			httperrors.New(c, http.StatusUnauthorized, ErrMissingToken.Error())
			c.Abort()
			return
		}

		identity, err := Parse(secret, tokenString)
		if err != nil {
			httperrors.New(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by Middleware.
func IdentityFrom(c *gin.Context) (household.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return household.Identity{}, false
	}

	identity, ok := v.(household.Identity)
	return identity, ok
}
