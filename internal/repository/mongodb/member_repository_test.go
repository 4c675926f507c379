package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cristovive/gestao/internal/domain/models"
)

func TestMemberDefaultsOnCreate(t *testing.T) {
	// A payload carrying only the required fields still comes out with the
	// roster defaults.
	bare := models.Member{Name: "João Silva", Phone: "11 91111-1111", Birthdate: "1980-06-15"}

	got := memberWithDefaults(bare)
	assert.Equal(t, models.StatusAtivo, got.Status)
	assert.Equal(t, models.RoleMembro, got.Role)
}

func TestMemberDefaultsPreserveExplicitValues(t *testing.T) {
	m := models.Member{
		Name:      "Maria Souza",
		Phone:     "21 92222-2222",
		Birthdate: "1975-01-20",
		Status:    models.StatusVisitante,
		Role:      models.RolePastor,
	}

	got := memberWithDefaults(m)
	assert.Equal(t, models.StatusVisitante, got.Status)
	assert.Equal(t, models.RolePastor, got.Role)
}
