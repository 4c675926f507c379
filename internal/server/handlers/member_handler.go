package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
	"github.com/cristovive/gestao/internal/editor"
	"github.com/cristovive/gestao/internal/service/roster"
)

// MemberHandler exposes the member collection view over HTTP.
type MemberHandler struct {
	svc    *roster.Service
	logger *zap.Logger
}

// NewMemberHandler constructs the member HTTP adapter.
func NewMemberHandler(svc *roster.Service, logger *zap.Logger) *MemberHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberHandler{svc: svc, logger: logger}
}

// List returns the filtered snapshot. The snapshot is loaded on first use
// and refreshed on demand with ?reload=true; filtering itself is always
// local and never triggers a fetch.
func (h *MemberHandler) List(c *gin.Context) {
	if c.Query("reload") == "true" {
		if err := h.svc.Reload(c.Request.Context()); err != nil {
			h.logger.Error("failed reloading members", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
	} else if err := h.svc.EnsureLoaded(c.Request.Context()); err != nil {
		h.logger.Error("failed loading members", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	query := roster.Query{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	c.JSON(http.StatusOK, gin.H{
		"members": h.svc.Filtered(query),
		"loading": h.svc.InFlight(),
	})
}

// Create runs the payload through a fresh member editor and saves it. Field
// validation failures are returned inline and never reach the store.
func (h *MemberHandler) Create(c *gin.Context) {
	var payload models.Member
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ed := editor.NewMemberEditor(nil)
	ed.Replace(payload)

	var id string
	err := ed.Submit(c.Request.Context(), func(ctx context.Context, m models.Member) error {
		var saveErr error
		id, saveErr = h.svc.Add(ctx, m)
		return saveErr
	})
	if err != nil {
		h.respondSaveError(c, ed, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update runs the payload through an editor seeded with the submitted draft
// and saves it against the record's id.
func (h *MemberHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var payload models.Member
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ed := editor.NewMemberEditor(nil)
	ed.Replace(payload)

	err := ed.Submit(c.Request.Context(), func(ctx context.Context, m models.Member) error {
		return h.svc.Update(ctx, id, m)
	})
	if err != nil {
		h.respondSaveError(c, ed, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete removes a member. The client must send confirm=true, mirroring the
// confirmation dialog; without it no store call is made.
func (h *MemberHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	err := h.svc.Delete(c.Request.Context(), id, confirmed)
	if errors.Is(err, roster.ErrNotConfirmed) {
		c.JSON(http.StatusConflict, gin.H{"error": "delete requires confirmation"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting member", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) respondSaveError(c *gin.Context, ed *editor.MemberEditor, err error) {
	if errors.Is(err, editor.ErrInvalidDraft) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ed.Errors()})
		return
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{ve.Field: ve.Message}})
		return
	}
	h.logger.Error("failed saving member", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
