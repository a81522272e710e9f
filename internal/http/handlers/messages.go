// Package handlers maps HTTP requests onto MessageService calls and
// renders the results per the wire contract: bare JSON success bodies,
// plain-text error bodies on HTTP 400.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyaktech/tlq/internal/http/dto"
	"github.com/skyaktech/tlq/internal/service"
	"github.com/skyaktech/tlq/pkg/jsonx"
	"go.uber.org/zap"
)

// Messages implements the /hello, /add, /get, /delete, /purge, /retry
// endpoints.
type Messages struct {
	log *zap.Logger
	svc *service.MessageService
}

// NewMessages constructs a Messages handler bound to svc.
func NewMessages(log *zap.Logger, svc *service.MessageService) *Messages {
	if log == nil {
		log = zap.NewNop()
	}
	return &Messages{log: log.Named("handlers"), svc: svc}
}

// Hello handles GET /hello.
func (h *Messages) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, "Hello World")
}

// Add handles POST /add.
func (h *Messages) Add(c *gin.Context) {
	var req dto.AddRequest
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.svc.Add(req.Body)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Get handles POST /get.
func (h *Messages) Get(c *gin.Context) {
	var req dto.GetRequest
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}

	msgs := h.svc.Get(req.CountOrDefault())
	c.JSON(http.StatusOK, msgs)
}

// Delete handles POST /delete.
func (h *Messages) Delete(c *gin.Context) {
	var req dto.IDsRequest
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Delete(req.IDs); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// Purge handles POST /purge.
func (h *Messages) Purge(c *gin.Context) {
	var req dto.PurgeRequest
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Purge(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// Retry handles POST /retry.
func (h *Messages) Retry(c *gin.Context) {
	var req dto.IDsRequest
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Retry(req.IDs); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, "Success")
}

// badRequest attaches err to the Gin context (for the logger middleware)
// and renders it as a plain-text 400 body, per the API's error contract.
func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.String(http.StatusBadRequest, "%s", displayMessage(err))
}

// displayMessage normalizes jsonx's empty-body and trailing-data sentinels
// to readable strings; every other error's Error() text is already the
// intended client-facing message.
func displayMessage(err error) string {
	if errors.Is(err, jsonx.ErrEmptyBody) {
		return "Request body is empty"
	}
	if errors.Is(err, jsonx.ErrTrailingJSON) {
		return "Request body contains trailing data"
	}
	return err.Error()
}
