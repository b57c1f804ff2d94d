package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/ledger"
	"github.com/hearth-ledger/backend/pkg/models"
)

func (co Controller) registerCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:kind", httputil.OptionsGetPost)
	r.GET("/:kind", co.GetCategories)
	r.POST("/:kind", co.CreateCategory)
	r.OPTIONS("/:kind/:category", httputil.OptionsDelete)
	r.DELETE("/:kind/:category", co.DeleteCategory)
	r.OPTIONS("/:kind/:category/subcategories", httputil.OptionsPost)
	r.POST("/:kind/:category/subcategories", co.CreateSubcategory)
	r.OPTIONS("/:kind/:category/subcategories/:subcategory", httputil.OptionsDelete)
	r.DELETE("/:kind/:category/subcategories/:subcategory", co.DeleteSubcategory)
}

// taxonomy responds with the household's categories for kind.
func (co Controller) taxonomy(c *gin.Context, status int, kind models.Kind) {
	taxonomy, err := co.Categories.Resolve(c.Request.Context(), householdID(c), kind)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(status, Response[ledger.Taxonomy]{Data: taxonomy})
}

// @Summary		Get categories
// @Description	Returns the categories and their subcategories for the kind of transaction
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	Response[ledger.Taxonomy]
// @Failure		400			{object}	Response[any]
// @Failure		403			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			kind		path		string	true	"income or expense"
// @Router			/v1/households/{householdId}/categories/{kind} [get]
func (co Controller) GetCategories(c *gin.Context) {
	var uri URIKind
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		return
	}

	co.taxonomy(c, http.StatusOK, uri.Kind)
}

// @Summary		Create category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	Response[ledger.Taxonomy]
// @Failure		400			{object}	Response[any]
// @Param			householdId	path		string			true	"ID of the household"
// @Param			kind		path		string			true	"income or expense"
// @Param			category	body		CategoryRequest	true	"Category"
// @Router			/v1/households/{householdId}/categories/{kind} [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var uri URIKind
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		return
	}

	var request CategoryRequest
	if err := httputil.BindData(c, &request); err != nil {
		fail(c, err)
		return
	}

	if err := co.Categories.Add(c.Request.Context(), householdID(c), uri.Kind, request.Category); err != nil {
		fail(c, err)
		return
	}

	co.taxonomy(c, http.StatusCreated, uri.Kind)
}

// @Summary		Delete category
// @Description	Hides the category. Existing transactions keep it.
// @Tags			Categories
// @Success		204
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			kind		path		string	true	"income or expense"
// @Param			category	path		string	true	"Name of the category"
// @Router			/v1/households/{householdId}/categories/{kind}/{category} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	var uri URICategory
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		return
	}

	if err := co.Categories.Remove(c.Request.Context(), householdID(c), uri.Kind, uri.Category); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Create subcategory
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	Response[ledger.Taxonomy]
// @Failure		400			{object}	Response[any]
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string				true	"ID of the household"
// @Param			kind		path		string				true	"income or expense"
// @Param			category	path		string				true	"Name of the category"
// @Param			subcategory	body		SubcategoryRequest	true	"Subcategory"
// @Router			/v1/households/{householdId}/categories/{kind}/{category}/subcategories [post]
func (co Controller) CreateSubcategory(c *gin.Context) {
	var uri URICategory
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		return
	}

	var request SubcategoryRequest
	if err := httputil.BindData(c, &request); err != nil {
		fail(c, err)
		return
	}

	err := co.Categories.AddSubcategory(c.Request.Context(), householdID(c), uri.Kind, uri.Category, request.Subcategory)
	if err != nil {
		fail(c, err)
		return
	}

	co.taxonomy(c, http.StatusCreated, uri.Kind)
}

// @Summary		Delete subcategory
// @Tags			Categories
// @Success		204
// @Failure		404			{object}	Response[any]
// @Param			householdId	path		string	true	"ID of the household"
// @Param			kind		path		string	true	"income or expense"
// @Param			category	path		string	true	"Name of the category"
// @Param			subcategory	path		string	true	"Name of the subcategory"
// @Router			/v1/households/{householdId}/categories/{kind}/{category}/subcategories/{subcategory} [delete]
func (co Controller) DeleteSubcategory(c *gin.Context) {
	var uri URISubcategory
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, err)
		return
	}

	err := co.Categories.RemoveSubcategory(c.Request.Context(), householdID(c), uri.Kind, uri.Category, uri.Subcategory)
	if err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
