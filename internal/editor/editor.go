// Package editor holds the draft state behind the member and transaction
// modal forms: a working copy of one record, a snapshot for dirty checking,
// field validation on submit and a confirmation gate on close.
package editor

import "errors"

// ErrInvalidDraft is returned by Submit when validation fails. The field
// errors remain available on the editor and the draft is preserved.
var ErrInvalidDraft = errors.New("draft failed validation")

// ErrCloseAborted is returned by Close when the draft has unsaved changes
// and the confirmation was declined.
var ErrCloseAborted = errors.New("close aborted, draft has unsaved changes")

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Any reports whether at least one field failed validation.
func (fe FieldErrors) Any() bool {
	return len(fe) > 0
}
