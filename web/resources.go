// ABOUTME: Generic REST handlers for the four CRM entities
// ABOUTME: List, get, create, full-replace update, delete, and per-customer listing
package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, v *T) (int64, error)
	Update(ctx context.Context, id int64, v *T) error
	Delete(ctx context.Context, id int64) error
}

type childRepository[T any] interface {
	repository[T]
	ListByCustomer(ctx context.Context, customerID int64) ([]T, error)
}

// resource serves one entity; entity is the name used in response messages.
type resource[T any] struct {
	s      *Server
	entity string
	repo   repository[T]
}

func (r resource[T]) list(c *gin.Context) {
	items, err := r.repo.List(c.Request.Context())
	if err != nil {
		r.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r resource[T]) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		r.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r resource[T]) create(c *gin.Context) {
	var item T
	if !bindJSON(c, &item) {
		return
	}
	id, err := r.repo.Create(c.Request.Context(), &item)
	if err != nil {
		r.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (r resource[T]) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var item T
	if !bindJSON(c, &item) {
		return
	}
	if err := r.repo.Update(c.Request.Context(), id, &item); err != nil {
		r.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.entity + " updated"})
}

func (r resource[T]) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := r.repo.Delete(c.Request.Context(), id); err != nil {
		r.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.entity + " deleted"})
}

func (r resource[T]) listByCustomer(c *gin.Context) {
	children, ok := r.repo.(childRepository[T])
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	items, err := children.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		r.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// mount registers the CRUD routes on g. get overrides the single-item handler
// when non-nil.
func (r resource[T]) mount(g *gin.RouterGroup, get gin.HandlerFunc) {
	if get == nil {
		get = r.get
	}
	g.GET("", r.list)
	g.GET("/:id", get)
	g.POST("", r.create)
	g.PUT("/:id", r.update)
	g.DELETE("/:id", r.delete)
	if _, ok := r.repo.(childRepository[T]); ok {
		g.GET("/customer/:customerId", r.listByCustomer)
	}
}
