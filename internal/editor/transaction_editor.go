package editor

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cristovive/gestao/internal/domain/models"
)

// TransactionEditor holds the draft of a ledger entry while the form is
// open. Same snapshot/dirty contract as MemberEditor.
type TransactionEditor struct {
	draft    models.Transaction
	snapshot models.Transaction
	errors   FieldErrors
}

// NewTransactionEditor opens an editor in edit mode when existing is
// non-nil, otherwise in create mode with the form defaults (income, Oferta,
// dated today).
func NewTransactionEditor(existing *models.Transaction) *TransactionEditor {
	var initial models.Transaction
	if existing != nil {
		initial = *existing
	} else {
		initial = models.Transaction{
			Type:     models.TypeIncome,
			Category: models.CategoryOferta,
			Date:     time.Now().Format("2006-01-02"),
		}
	}

	return &TransactionEditor{
		draft:    initial,
		snapshot: initial,
		errors:   FieldErrors{},
	}
}

// Draft exposes the working copy for field edits.
func (e *TransactionEditor) Draft() *models.Transaction {
	return &e.draft
}

// Replace swaps the whole draft at once, the way a form bind does.
func (e *TransactionEditor) Replace(tx models.Transaction) {
	e.draft = tx
}

// Dirty reports whether the draft differs from its initial snapshot.
func (e *TransactionEditor) Dirty() bool {
	return !cmp.Equal(e.draft, e.snapshot)
}

// Errors returns the field errors recorded by the last Validate call.
func (e *TransactionEditor) Errors() FieldErrors {
	return e.errors
}

// Validate checks required fields and the category enum. Amounts must
// already be numeric: string inputs are normalized during binding, and
// anything unparseable lands here as zero.
func (e *TransactionEditor) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(e.draft.Description) == "" {
		errs["description"] = "description is required"
	}
	if e.draft.Amount <= 0 {
		errs["amount"] = "amount must be a positive number"
	}
	if e.draft.Date == "" {
		errs["date"] = "date is required"
	}
	if e.draft.Category == "" {
		errs["category"] = "category is required"
	} else if !models.ValidTransactionCategory(e.draft.Category) {
		errs["category"] = "unknown category"
	}

	e.errors = errs
	return errs
}

// Submit validates the draft and, when clean, hands it to the caller's save
// function. On validation failure no save call is made.
func (e *TransactionEditor) Submit(ctx context.Context, save func(context.Context, models.Transaction) error) error {
	if e.Validate().Any() {
		return ErrInvalidDraft
	}
	return save(ctx, e.draft)
}

// Close discards the draft, asking for confirmation first when dirty.
func (e *TransactionEditor) Close(confirm func() bool) error {
	if e.Dirty() && (confirm == nil || !confirm()) {
		return ErrCloseAborted
	}
	return nil
}
