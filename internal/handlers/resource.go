package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/services"
	"finboard/internal/state"
)

// applier is a request body that fills the editable fields of a T.
type applier[T any] interface {
	apply(T) T
	changes() map[string]any
}

// resource implements the list/get/create/update/delete endpoints shared by
// every collection handler. name is both the activity resource type and the
// JSON envelope key of single-item responses.
type resource[T state.Keyed] struct {
	service  services.ResourceServicer[T]
	activity services.ActivityServicer
	name     string
}

func (r resource[T]) list(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	resp, err := r.service.List(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (r resource[T]) get(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := r.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{r.name: item})
}

func createResource[T state.Keyed, R any, PR interface {
	*R
	applier[T]
}](r resource[T], c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	req := PR(new(R))
	if !bindJSON(c, req) {
		return
	}

	var zero T
	item, err := r.service.Create(c.Request.Context(), req.apply(zero))
	if err != nil {
		respondWithError(c, err)
		return
	}

	r.activity.Log(userID, services.ActionCreate, r.name, (*item).Key().String(), c.ClientIP(), req.changes())
	c.JSON(http.StatusCreated, gin.H{r.name: item})
}

// updateResource overlays the request onto the current item, so fields the
// request does not carry, such as the creation date, are kept.
func updateResource[T state.Keyed, R any, PR interface {
	*R
	applier[T]
}](r resource[T], c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	req := PR(new(R))
	if !bindJSON(c, req) {
		return
	}

	current, err := r.service.Get(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	item, err := r.service.Update(c.Request.Context(), id, req.apply(*current))
	if err != nil {
		respondWithError(c, err)
		return
	}

	r.activity.Log(userID, services.ActionUpdate, r.name, id.String(), c.ClientIP(), req.changes())
	c.JSON(http.StatusOK, gin.H{r.name: item})
}

func (r resource[T]) delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := r.service.Delete(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	r.activity.Log(userID, services.ActionDelete, r.name, id.String(), c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
