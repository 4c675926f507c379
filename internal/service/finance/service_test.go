package finance

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristovive/gestao/internal/domain/models"
)

type fakeTransactionRepo struct {
	mu      sync.Mutex
	records []models.Transaction

	createErr   error
	createCalls int
	deleteCalls int
	listCalls   int
}

func (f *fakeTransactionRepo) List(ctx context.Context) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Transaction, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeTransactionRepo) Create(ctx context.Context, tx models.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.records = append(f.records, tx)
	return "new-id", nil
}

func (f *fakeTransactionRepo) Update(ctx context.Context, id string, tx models.Transaction) error {
	return nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Type: models.TypeIncome, Amount: 100, Date: "2025-03-02", Description: "Dízimo irmão José", Category: models.CategoryDizimo},
		{Type: models.TypeExpense, Amount: 40, Date: "2025-03-10", Description: "Conta de água", Category: models.CategoryManutencao},
		{Type: models.TypeIncome, Amount: 999, Date: "2025-02-20", Description: "Oferta especial", Category: models.CategoryOferta},
	}
}

func TestFilteredByEveryPredicate(t *testing.T) {
	repo := &fakeTransactionRepo{records: sampleTransactions()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "description substring", query: Query{Search: "água"}, want: []string{"Conta de água"}},
		{name: "category substring via search", query: Query{Search: "oferta"}, want: []string{"Oferta especial"}},
		{name: "type filter", query: Query{Type: "income"}, want: []string{"Dízimo irmão José", "Oferta especial"}},
		{name: "category filter", query: Query{Category: "Manutenção"}, want: []string{"Conta de água"}},
		{name: "month prefix", query: Query{Month: "2025-03"}, want: []string{"Dízimo irmão José", "Conta de água"}},
		{name: "combined", query: Query{Type: "income", Month: "2025-03"}, want: []string{"Dízimo irmão José"}},
		{name: "all filters cleared", query: Query{Type: "all", Category: "all"}, want: []string{"Dízimo irmão José", "Conta de água", "Oferta especial"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Filtered(tt.query)
			descriptions := make([]string, 0, len(got))
			for _, tx := range got {
				descriptions = append(descriptions, tx.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestAddReloadsOnSuccessOnly(t *testing.T) {
	repo := &fakeTransactionRepo{records: sampleTransactions()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	id, err := svc.Add(context.Background(), models.Transaction{
		Type: models.TypeIncome, Amount: 10.5, Date: "2025-03-15",
		Description: "Oferta culto", Category: models.CategoryOferta,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.Len(t, svc.Transactions(), 4)

	// A failed create must not touch the snapshot and must not reload.
	repo.mu.Lock()
	repo.createErr = assert.AnError
	listCallsBefore := repo.listCalls
	repo.mu.Unlock()

	_, err = svc.Add(context.Background(), models.Transaction{
		Type: models.TypeExpense, Amount: 5, Date: "2025-03-16",
		Description: "Material limpeza", Category: models.CategoryManutencao,
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, svc.Transactions(), 4)
	repo.mu.Lock()
	assert.Equal(t, listCallsBefore, repo.listCalls)
	repo.mu.Unlock()
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	repo := &fakeTransactionRepo{records: sampleTransactions()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	err := svc.Delete(context.Background(), "id", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Zero(t, repo.deleteCalls)
	assert.Len(t, svc.Transactions(), 3)
}

func TestInFlightFlagsAreIndependent(t *testing.T) {
	repo := &fakeTransactionRepo{records: sampleTransactions()}
	svc := NewService(repo, nil)

	assert.Equal(t, Flags{}, svc.InFlight())
	_, err := svc.Add(context.Background(), models.Transaction{
		Type: models.TypeIncome, Amount: 1, Date: "2025-03-01",
		Description: "x", Category: models.CategoryOutros,
	})
	require.NoError(t, err)
	assert.Equal(t, Flags{}, svc.InFlight(), "flags must clear once the action settles")
}
