package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristovive/gestao/internal/domain/models"
)

func existingMember() *models.Member {
	return &models.Member{
		Name:      "Maria Souza",
		Phone:     "11 98888-7777",
		Birthdate: "1980-06-15",
		Status:    models.StatusAtivo,
		Role:      models.RoleLider,
		Children: []models.Child{
			{Name: "Ana", Birthdate: "2010-02-01"},
		},
	}
}

func TestMemberEditorCreateDefaults(t *testing.T) {
	ed := NewMemberEditor(nil)

	assert.Equal(t, models.StatusAtivo, ed.Draft().Status)
	assert.Equal(t, models.RoleMembro, ed.Draft().Role)
	assert.False(t, ed.Dirty())
}

func TestMemberEditorDirtyTracking(t *testing.T) {
	ed := NewMemberEditor(existingMember())

	// Untouched editor closes without confirmation.
	require.False(t, ed.Dirty())
	require.NoError(t, ed.Close(func() bool {
		t.Fatal("confirmation must not be requested for a clean draft")
		return false
	}))

	ed.Draft().Phone = "11 90000-0000"
	assert.True(t, ed.Dirty())

	// Declined confirmation aborts the close.
	err := ed.Close(func() bool { return false })
	assert.ErrorIs(t, err, ErrCloseAborted)

	// Accepted confirmation lets it through.
	assert.NoError(t, ed.Close(func() bool { return true }))
}

func TestMemberEditorDirtyOnChildMutation(t *testing.T) {
	ed := NewMemberEditor(existingMember())

	require.True(t, ed.AddChild("Pedro", "2015-09-09"))
	assert.True(t, ed.Dirty())
}

func TestMemberEditorValidateRequiredFields(t *testing.T) {
	ed := NewMemberEditor(nil)

	errs := ed.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "birthdate")
	assert.NotContains(t, errs, "cpf")
}

func TestMemberEditorCPFValidation(t *testing.T) {
	ed := NewMemberEditor(existingMember())

	ed.Draft().CPF = "123.456.789-00"
	assert.NotContains(t, ed.Validate(), "cpf")

	ed.Draft().CPF = "12345"
	errs := ed.Validate()
	assert.Contains(t, errs, "cpf")

	// An invalid CPF blocks submit entirely.
	saved := false
	err := ed.Submit(context.Background(), func(context.Context, models.Member) error {
		saved = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.False(t, saved)
	assert.Contains(t, ed.Errors(), "cpf")
}

func TestMemberEditorRejectsUnknownStatusAndRole(t *testing.T) {
	ed := NewMemberEditor(existingMember())

	ed.Draft().Status = "Afastado"
	ed.Draft().Role = "Tesoureiro"
	errs := ed.Validate()
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "role")

	// Empty values are allowed; the collection boundary fills the defaults.
	ed.Draft().Status = ""
	ed.Draft().Role = ""
	errs = ed.Validate()
	assert.NotContains(t, errs, "status")
	assert.NotContains(t, errs, "role")
}

func TestMemberEditorSubmitPassesDraft(t *testing.T) {
	ed := NewMemberEditor(existingMember())
	ed.Draft().Observations = "mudou de bairro"

	var got models.Member
	err := ed.Submit(context.Background(), func(_ context.Context, m models.Member) error {
		got = m
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "mudou de bairro", got.Observations)
	assert.Equal(t, "Maria Souza", got.Name)
}

func TestMemberEditorChildrenOrder(t *testing.T) {
	ed := NewMemberEditor(nil)

	require.True(t, ed.AddChild("Ana", "2010-02-01"))
	require.True(t, ed.AddChild("Bruno", "2012-05-20"))
	require.True(t, ed.AddChild("Clara", ""))
	assert.False(t, ed.AddChild("", "2020-01-01"), "nameless entries must be ignored")

	require.True(t, ed.RemoveChild(1))
	names := []string{}
	for _, c := range ed.Draft().Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Ana", "Clara"}, names)

	assert.False(t, ed.RemoveChild(5))
	assert.False(t, ed.RemoveChild(-1))
}

func TestMemberEditorSnapshotIsolation(t *testing.T) {
	m := existingMember()
	ed := NewMemberEditor(m)

	// Mutating the caller's record must not silently clean the dirty flag.
	ed.Draft().Children[0].Name = "Alterada"
	m.Children[0].Name = "Alterada"
	assert.True(t, ed.Dirty())
}
