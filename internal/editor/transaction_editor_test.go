package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristovive/gestao/internal/domain/models"
)

func existingTransaction() *models.Transaction {
	return &models.Transaction{
		Type:        models.TypeExpense,
		Amount:      150,
		Date:        "2025-02-10",
		Description: "Conta de luz",
		Category:    models.CategoryManutencao,
	}
}

func TestTransactionEditorCreateDefaults(t *testing.T) {
	ed := NewTransactionEditor(nil)

	assert.Equal(t, models.TypeIncome, ed.Draft().Type)
	assert.Equal(t, models.CategoryOferta, ed.Draft().Category)
	assert.Equal(t, time.Now().Format("2006-01-02"), ed.Draft().Date)
	assert.False(t, ed.Dirty())
}

func TestTransactionEditorValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Transaction)
		field  string
	}{
		{name: "missing description", mutate: func(tx *models.Transaction) { tx.Description = "  " }, field: "description"},
		{name: "zero amount", mutate: func(tx *models.Transaction) { tx.Amount = 0 }, field: "amount"},
		{name: "negative amount", mutate: func(tx *models.Transaction) { tx.Amount = -10 }, field: "amount"},
		{name: "missing date", mutate: func(tx *models.Transaction) { tx.Date = "" }, field: "date"},
		{name: "missing category", mutate: func(tx *models.Transaction) { tx.Category = "" }, field: "category"},
		{name: "unknown category", mutate: func(tx *models.Transaction) { tx.Category = "Transferência" }, field: "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := NewTransactionEditor(existingTransaction())
			tt.mutate(ed.Draft())

			errs := ed.Validate()
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestTransactionEditorSubmitBlocksInvalidDraft(t *testing.T) {
	ed := NewTransactionEditor(nil)
	ed.Draft().Description = ""

	saved := 0
	err := ed.Submit(context.Background(), func(context.Context, models.Transaction) error {
		saved++
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Zero(t, saved)
	assert.True(t, ed.Errors().Any())
}

func TestTransactionEditorSubmitValidDraft(t *testing.T) {
	ed := NewTransactionEditor(existingTransaction())
	ed.Draft().Amount = models.Amount(10.50)

	var got models.Transaction
	err := ed.Submit(context.Background(), func(_ context.Context, tx models.Transaction) error {
		got = tx
		return nil
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.50, float64(got.Amount), 1e-9)
}

func TestTransactionEditorSubmitPropagatesSaveError(t *testing.T) {
	ed := NewTransactionEditor(existingTransaction())

	err := ed.Submit(context.Background(), func(context.Context, models.Transaction) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestTransactionEditorCloseConfirmation(t *testing.T) {
	ed := NewTransactionEditor(existingTransaction())
	require.NoError(t, ed.Close(nil), "clean drafts close without confirmation")

	ed.Draft().Amount = 999
	assert.ErrorIs(t, ed.Close(nil), ErrCloseAborted)
	assert.ErrorIs(t, ed.Close(func() bool { return false }), ErrCloseAborted)
	assert.NoError(t, ed.Close(func() bool { return true }))
}
