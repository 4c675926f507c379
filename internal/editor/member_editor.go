package editor

import (
	"context"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cristovive/gestao/internal/domain/models"
)

// MemberEditor holds the draft of a member record while the form is open.
// The snapshot is taken once at construction and never changes; Dirty
// compares the current draft against it structurally.
type MemberEditor struct {
	draft    models.Member
	snapshot models.Member
	errors   FieldErrors
}

// NewMemberEditor opens an editor in edit mode when existing is non-nil,
// otherwise in create mode with the form defaults.
func NewMemberEditor(existing *models.Member) *MemberEditor {
	var initial models.Member
	if existing != nil {
		initial = cloneMember(*existing)
	} else {
		initial = models.Member{
			Status: models.StatusAtivo,
			Role:   models.RoleMembro,
		}
	}

	return &MemberEditor{
		draft:    cloneMember(initial),
		snapshot: initial,
		errors:   FieldErrors{},
	}
}

// Draft exposes the working copy for field edits.
func (e *MemberEditor) Draft() *models.Member {
	return &e.draft
}

// Replace swaps the whole draft at once, the way a form bind does. The
// snapshot is untouched so the dirty flag stays meaningful.
func (e *MemberEditor) Replace(m models.Member) {
	e.draft = cloneMember(m)
}

// Dirty reports whether the draft differs from its initial snapshot.
func (e *MemberEditor) Dirty() bool {
	return !cmp.Equal(e.draft, e.snapshot)
}

// Errors returns the field errors recorded by the last Validate call.
func (e *MemberEditor) Errors() FieldErrors {
	return e.errors
}

// Validate checks required fields, the national ID shape and the status and
// role enums. It runs on every submit attempt, not on every keystroke.
func (e *MemberEditor) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(e.draft.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(e.draft.Phone) == "" {
		errs["phone"] = "phone is required"
	}
	if e.draft.Birthdate == "" {
		errs["birthdate"] = "birthdate is required"
	}
	if e.draft.CPF != "" && !validCPF(e.draft.CPF) {
		errs["cpf"] = "cpf must have 11 digits"
	}
	if e.draft.Status != "" && !models.ValidMemberStatus(e.draft.Status) {
		errs["status"] = "unknown status"
	}
	if e.draft.Role != "" && !models.ValidMemberRole(e.draft.Role) {
		errs["role"] = "unknown role"
	}

	e.errors = errs
	return errs
}

// Submit validates the draft and, when clean, hands it to the caller's save
// function. On validation failure no save call is made and the draft is
// preserved for correction.
func (e *MemberEditor) Submit(ctx context.Context, save func(context.Context, models.Member) error) error {
	if e.Validate().Any() {
		return ErrInvalidDraft
	}
	return save(ctx, cloneMember(e.draft))
}

// Close discards the draft. A dirty draft requires confirmation first; if
// the confirmation is declined the close is aborted and the draft kept.
func (e *MemberEditor) Close(confirm func() bool) error {
	if e.Dirty() && (confirm == nil || !confirm()) {
		return ErrCloseAborted
	}
	return nil
}

// AddChild appends a dependent to the draft, preserving entry order. Entries
// without a name are ignored.
func (e *MemberEditor) AddChild(name, birthdate string) bool {
	if name == "" {
		return false
	}
	e.draft.Children = append(e.draft.Children, models.Child{Name: name, Birthdate: birthdate})
	return true
}

// RemoveChild removes the dependent at the given position without disturbing
// the relative order of the remaining entries.
func (e *MemberEditor) RemoveChild(i int) bool {
	if i < 0 || i >= len(e.draft.Children) {
		return false
	}
	e.draft.Children = append(e.draft.Children[:i:i], e.draft.Children[i+1:]...)
	return true
}

func cloneMember(m models.Member) models.Member {
	out := m
	if m.Children != nil {
		out.Children = make([]models.Child, len(m.Children))
		copy(out.Children, m.Children)
	}
	return out
}

func validCPF(cpf string) bool {
	digits := 0
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 11
}
