package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
	"github.com/cristovive/gestao/internal/editor"
	"github.com/cristovive/gestao/internal/service/finance"
)

// FinanceHandler exposes the transaction collection view over HTTP.
type FinanceHandler struct {
	svc    *finance.Service
	logger *zap.Logger
}

// NewFinanceHandler constructs the finance HTTP adapter.
func NewFinanceHandler(svc *finance.Service, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{svc: svc, logger: logger}
}

// List returns the filtered snapshot, loading it on first use.
func (h *FinanceHandler) List(c *gin.Context) {
	if c.Query("reload") == "true" {
		if err := h.svc.Reload(c.Request.Context()); err != nil {
			h.logger.Error("failed reloading transactions", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
	} else if err := h.svc.EnsureLoaded(c.Request.Context()); err != nil {
		h.logger.Error("failed loading transactions", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	query := finance.Query{
		Search:   c.Query("search"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Month:    c.Query("month"),
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": h.svc.Filtered(query),
		"loading":      h.svc.InFlight(),
	})
}

// Create runs the payload through a fresh transaction editor and saves it.
// String amounts ("10,50") are normalized during binding.
func (h *FinanceHandler) Create(c *gin.Context) {
	var payload models.Transaction
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ed := editor.NewTransactionEditor(nil)
	ed.Replace(payload)

	var id string
	err := ed.Submit(c.Request.Context(), func(ctx context.Context, tx models.Transaction) error {
		var saveErr error
		id, saveErr = h.svc.Add(ctx, tx)
		return saveErr
	})
	if err != nil {
		h.respondSaveError(c, ed, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update saves changes to an existing transaction.
func (h *FinanceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var payload models.Transaction
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ed := editor.NewTransactionEditor(nil)
	ed.Replace(payload)

	err := ed.Submit(c.Request.Context(), func(ctx context.Context, tx models.Transaction) error {
		return h.svc.Update(ctx, id, tx)
	})
	if err != nil {
		h.respondSaveError(c, ed, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete removes a transaction after explicit confirmation.
func (h *FinanceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	err := h.svc.Delete(c.Request.Context(), id, confirmed)
	if errors.Is(err, finance.ErrNotConfirmed) {
		c.JSON(http.StatusConflict, gin.H{"error": "delete requires confirmation"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting transaction", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FinanceHandler) respondSaveError(c *gin.Context, ed *editor.TransactionEditor, err error) {
	if errors.Is(err, editor.ErrInvalidDraft) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ed.Errors()})
		return
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{ve.Field: ve.Message}})
		return
	}
	h.logger.Error("failed saving transaction", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
