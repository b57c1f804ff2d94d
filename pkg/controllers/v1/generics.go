package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/httputil"
	"github.com/hearth-ledger/backend/pkg/store"
)

// listEntities responds with one list of the household's config.
func listEntities[T any](c *gin.Context, config *store.ConfigStore, pick func(store.Config) []T) {
	cfg, err := config.Get(c.Request.Context(), householdID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[[]T]{Data: pick(cfg)})
}

// createEntity binds the body and creates the entity with add.
func createEntity[T any](c *gin.Context, add func(context.Context, uuid.UUID, T) (T, error)) {
	var entity T
	if err := httputil.BindData(c, &entity); err != nil {
		fail(c, err)
		return
	}

	created, err := add(c.Request.Context(), householdID(c), entity)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response[T]{Data: created})
}

// updateEntity binds the changes in the body and applies them with update.
func updateEntity[T, C any](c *gin.Context, update func(context.Context, uuid.UUID, uuid.UUID, C) (T, error)) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var changes C
	if err := httputil.BindData(c, &changes); err != nil {
		fail(c, err)
		return
	}

	updated, err := update(c.Request.Context(), householdID(c), id, changes)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response[T]{Data: updated})
}

func deleteEntity(c *gin.Context, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := remove(c.Request.Context(), householdID(c), id); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
