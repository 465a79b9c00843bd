package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"wholesale-catalog/internal/metrics"
	"wholesale-catalog/internal/models"
	"wholesale-catalog/internal/repository"
)

// Store is what a CRUD handler needs from the engine. Satisfied by
// *repository.Repository; mocked in tests.
type Store[T any, PT any] interface {
	Create(ctx context.Context, doc PT) (PT, error)
	FindByID(ctx context.Context, id string) (PT, error)
	List(ctx context.Context, p repository.ListParams) ([]PT, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (PT, error)
	Delete(ctx context.Context, id string, hard bool) (PT, bool, error)
}

// CrudHandler serves the five standard endpoints of one resource.
type CrudHandler[T any, PT interface {
	repository.Model
	*T
}] struct {
	Store    Store[T, PT]
	Resource string
	// Filters allow-lists the equality filters accepted on list requests.
	Filters []string
	// Defaults fills server-side defaults after binding, before validation.
	Defaults func(PT)
	// Validate runs entity checks beyond what binding tags express.
	Validate func(PT) error
	// BindPatch binds the typed update payload and flattens it field by
	// field into a partial patch.
	BindPatch func(c *gin.Context) (bson.M, error)
	// AfterWrite runs after every successful mutation (cache invalidation).
	AfterWrite func(c *gin.Context)
}

func (h *CrudHandler[T, PT]) wrote(c *gin.Context) {
	if h.AfterWrite != nil {
		h.AfterWrite(c)
	}
}

func (h *CrudHandler[T, PT]) Create(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondBindingError(c, err)
		return
	}
	pt := PT(&doc)
	if h.Defaults != nil {
		h.Defaults(pt)
	}
	if h.Validate != nil {
		if err := h.Validate(pt); err != nil {
			respondError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	created, err := h.Store.Create(c.Request.Context(), pt)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	metrics.RecordOperation(h.Resource, "create")
	h.wrote(c)
	respond(c, http.StatusCreated, h.Resource+" created", created, nil)
}

func (h *CrudHandler[T, PT]) Get(c *gin.Context) {
	record, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}
	respond(c, http.StatusOK, h.Resource+" retrieved", record, nil)
}

func (h *CrudHandler[T, PT]) List(c *gin.Context) {
	params, err := parseListParams(c, h.Filters)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	items, total, err := h.Store.List(c.Request.Context(), params)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	respond(c, http.StatusOK, h.Resource+" list retrieved", items, &models.Pagination{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
	})
}

func (h *CrudHandler[T, PT]) Update(c *gin.Context) {
	patch, err := h.BindPatch(c)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	updated, err := h.Store.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	metrics.RecordOperation(h.Resource, "update")
	h.wrote(c)
	respond(c, http.StatusOK, h.Resource+" updated", updated, nil)
}

func (h *CrudHandler[T, PT]) Delete(c *gin.Context) {
	hard := c.Query("hard") == "true"

	record, removed, err := h.Store.Delete(c.Request.Context(), c.Param("id"), hard)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	metrics.RecordOperation(h.Resource, "delete")
	h.wrote(c)
	if removed {
		respond(c, http.StatusOK, h.Resource+" deleted", nil, nil)
		return
	}
	respond(c, http.StatusOK, h.Resource+" toggled", record, nil)
}

// parseListParams enforces the boundary contract: page >= 1, limit in
// [1,100]. Only allow-listed filters are forwarded to the engine.
func parseListParams(c *gin.Context, allowed []string) (repository.ListParams, error) {
	var p repository.ListParams

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return p, fmt.Errorf("page must be an integer >= 1")
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		return p, fmt.Errorf("limit must be an integer between 1 and 100")
	}

	p.Page = page
	p.Limit = limit
	p.Query = c.Query("q")
	p.SortBy = c.Query("sort_by")
	p.Order = c.DefaultQuery("order", "asc")
	p.Filters = make(map[string]string)
	for _, f := range allowed {
		if v, ok := c.GetQuery(f); ok {
			p.Filters[f] = v
		}
	}
	return p, nil
}
