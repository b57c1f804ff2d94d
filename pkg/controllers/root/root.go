// Package root serves the entrypoint of the API.
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/models"
)

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Docs       string `json:"docs" example:"https://example.com/api/docs/index.html"`     // Swagger API documentation
	Healthz    string `json:"healthz" example:"https://example.com/api/healthz"`          // Health of the backend and its database
	Version    string `json:"version" example:"https://example.com/api/version"`          // Running version of the backend
	Metrics    string `json:"metrics" example:"https://example.com/api/metrics"`          // Prometheus metrics
	V1         string `json:"v1" example:"https://example.com/api/v1"`                    // Links of the v1 API
	Me         string `json:"me" example:"https://example.com/api/v1/me"`                 // Profile and current household, needs a token
	Households string `json:"households" example:"https://example.com/api/v1/households"` // Households of the signed in user, needs a token
}

// linksFor builds the link list below the public base URL.
func linksFor(base string) Links {
	return Links{
		Docs:       base + "/docs/index.html",
		Healthz:    base + "/healthz",
		Version:    base + "/version",
		Metrics:    base + "/metrics",
		V1:         base + "/v1",
		Me:         base + "/v1/me",
		Households: base + "/v1/households",
	}
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		API root
// @Description	Entrypoint for the API, listing the public endpoints and the household endpoints
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Links: linksFor(c.GetString(string(models.DBContextURL)))})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
