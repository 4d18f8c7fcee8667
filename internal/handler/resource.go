package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// resourceService - CRUD contract shared by homes, humans, breeds and cats
type resourceService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, raw map[string]json.RawMessage) (*T, error)
	Update(ctx context.Context, id int64, raw map[string]json.RawMessage) (*T, error)
	PartialUpdate(ctx context.Context, id int64, raw map[string]json.RawMessage) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceHandler serves one resource collection and its items.
type ResourceHandler[T any] struct {
	svc resourceService[T]
}

func NewResourceHandler[T any](svc resourceService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc}
}

// List returns every row; an empty collection is [] rather than null.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T]) Retrieve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Create(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), raw)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update replaces every writable field (PUT).
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, raw)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// PartialUpdate merges the supplied fields into the stored row (PATCH).
func (h *ResourceHandler[T]) PartialUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	item, err := h.svc.PartialUpdate(c.Request.Context(), id, raw)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses :id. Anything that is not an integer can never match a row.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusNotFound, "not_found", detailNotFound)
		return 0, false
	}
	return id, true
}

// bindRaw reads a JSON object body. A non-empty body must be sent as
// application/json; plain-text posts from other sites are refused.
func bindRaw(c *gin.Context) (map[string]json.RawMessage, bool) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid", detailInvalidInput)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) > 0 && c.ContentType() != binding.MIMEJSON {
		writeError(c, http.StatusUnsupportedMediaType, "unsupported_media_type", detailMediaType)
		return nil, false
	}
	raw, err := service.DecodeBody(body)
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	return raw, true
}
