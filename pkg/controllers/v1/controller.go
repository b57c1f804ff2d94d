// Package v1 implements the household ledger JSON API.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/auth"
	"github.com/hearth-ledger/backend/pkg/household"
	"github.com/hearth-ledger/backend/pkg/httperrors"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/models"
	"github.com/hearth-ledger/backend/pkg/recurring"
	"github.com/hearth-ledger/backend/pkg/store"
	"gorm.io/gorm"
)

const householdKey = "ledger-household"

type Controller struct {
	Ledger     *store.Ledger
	Config     *store.ConfigStore
	Categories *store.Categories
	Households *household.Manager
	Recurring  *recurring.Processor
	AuthSecret string
}

// New wires all services on the database.
func New(db *gorm.DB, authSecret string) Controller {
	l := store.NewLedger(db)
	config := store.NewConfigStore(l)

	return Controller{
		Ledger:     l,
		Config:     config,
		Categories: store.NewCategories(config),
		Households: household.NewManager(l),
		Recurring:  recurring.NewProcessor(l),
		AuthSecret: authSecret,
	}
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
// Everything except the link list needs an identity token.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", co.GetRoot)
	r.OPTIONS("", co.OptionsRoot)

	authenticated := r.Group("", auth.Middleware(co.AuthSecret))

	me := authenticated.Group("/me")
	{
		me.OPTIONS("", httputil.OptionsGet)
		me.GET("", co.GetMe)
		me.OPTIONS("/current-household", httputil.OptionsPost)
		me.POST("/current-household", co.SwitchHousehold)
	}

	households := authenticated.Group("/households")
	{
		households.OPTIONS("", httputil.OptionsGetPost)
		households.GET("", co.GetHouseholds)
		households.POST("", co.CreateHousehold)
		households.OPTIONS("/join", httputil.OptionsPost)
		households.POST("/join", co.JoinHousehold)
	}

	h := households.Group("/:householdId", co.authorizeHousehold)
	{
		h.OPTIONS("", httputil.OptionsGet)
		h.GET("", co.GetHousehold)
		h.OPTIONS("/members", httputil.OptionsGet)
		h.GET("/members", co.GetMembers)
		h.OPTIONS("/invite-code", httputil.OptionsPost)
		h.POST("/invite-code", co.CreateInviteCode)
		h.OPTIONS("/data", httputil.OptionsDelete)
		h.DELETE("/data", co.ResetHousehold)
		h.OPTIONS("/overview", httputil.OptionsGet)
		h.GET("/overview", co.GetOverview)
		h.OPTIONS("/analysis", httputil.OptionsGet)
		h.GET("/analysis", co.GetAnalysis)
		h.OPTIONS("/config", httputil.OptionsGetPatch)
		h.GET("/config", co.GetConfig)
		h.PATCH("/config", co.UpdateConfig)
	}

	co.registerTransactionRoutes(h.Group("/transactions"))
	co.registerAccountRoutes(h.Group("/accounts"))
	co.registerBenefitRoutes(h.Group("/benefits"))
	co.registerCardRoutes(h.Group("/cards"))
	co.registerRecurringBillRoutes(h.Group("/recurring-bills"))
	co.registerCategoryRoutes(h.Group("/categories"))
}

type Links struct {
	Me         string `json:"me" example:"https://example.com/api/v1/me"`                 // Profile and current household of the signed in user
	Households string `json:"households" example:"https://example.com/api/v1/households"` // Households of the signed in user
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response[Links]
// @Router			/v1 [get]
func (co Controller) GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response[Links]{
		Data: Links{
			Me:         url + "/v1/me",
			Households: url + "/v1/households",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func (co Controller) OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// fail writes the error response for err.
func fail(c *gin.Context, err error) {
	msg := httperrors.Message(c, err)
	c.JSON(httperrors.Status(err), Response[any]{Error: &msg})
}

// identity returns the signed in user. auth.Middleware guarantees it is set.
func identity(c *gin.Context) household.Identity {
	i, _ := auth.IdentityFrom(c)
	return i
}

// authorizeHousehold aborts unless the signed in user is a member of the
// household in the path.
func (co Controller) authorizeHousehold(c *gin.Context) {
	var uri URIHousehold
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		c.Abort()
		return
	}

	h, err := co.Households.Authorize(c.Request.Context(), identity(c).UID, uri.HouseholdID.UUID)
	if err != nil {
		fail(c, err)
		c.Abort()
		return
	}

	c.Set(householdKey, h)
	c.Next()
}

// householdID returns the ID of the household authorized by authorizeHousehold.
func householdID(c *gin.Context) uuid.UUID {
	h, _ := c.Get(householdKey)
	return h.(models.Household).ID
}

// bindID binds the id path parameter.
func bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		return uuid.Nil, false
	}
	return uri.ID.UUID, true
}
