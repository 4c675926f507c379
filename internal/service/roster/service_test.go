package roster

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristovive/gestao/internal/domain/models"
)

type fakeMemberRepo struct {
	mu      sync.Mutex
	records []models.Member
	listErr error
	gate    chan struct{} // when set, List blocks until the gate closes

	listCalls   int
	deleteCalls int
}

func (f *fakeMemberRepo) List(ctx context.Context) ([]models.Member, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.gate
	f.gate = nil
	records := make([]models.Member, len(f.records))
	copy(records, f.records)
	err := f.listErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeMemberRepo) Create(ctx context.Context, m models.Member) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, m)
	return "new-id", nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, id string, m models.Member) error {
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func sampleMembers() []models.Member {
	return []models.Member{
		{Name: "João Silva", Email: "joao@example.org", Phone: "11 91111-1111", Status: models.StatusAtivo},
		{Name: "Maria Souza", Email: "maria@example.org", Phone: "21 92222-2222", Status: models.StatusInativo},
		{Name: "Pedro Lima", Email: "pedro@example.org", Phone: "31 93333-3333", Status: models.StatusVisitante},
	}
}

func TestReloadPopulatesSnapshot(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)

	require.NoError(t, svc.Reload(context.Background()))
	assert.Len(t, svc.Members(), 3)
}

func TestEnsureLoadedFetchesOnce(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)

	require.NoError(t, svc.EnsureLoaded(context.Background()))
	require.NoError(t, svc.EnsureLoaded(context.Background()))
	assert.Equal(t, 1, repo.listCalls)
}

func TestFilteredBySearchAndStatus(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "name substring, case-insensitive", query: Query{Search: "maria"}, want: []string{"Maria Souza"}},
		{name: "email substring", query: Query{Search: "pedro@"}, want: []string{"Pedro Lima"}},
		{name: "phone substring", query: Query{Search: "92222"}, want: []string{"Maria Souza"}},
		{name: "status exact", query: Query{Status: "Ativo"}, want: []string{"João Silva"}},
		{name: "status all", query: Query{Status: "all"}, want: []string{"João Silva", "Maria Souza", "Pedro Lima"}},
		{name: "search and status combined", query: Query{Search: "a", Status: "Inativo"}, want: []string{"Maria Souza"}},
		{name: "no match", query: Query{Search: "zebedeu"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Filtered(tt.query)
			names := make([]string, 0, len(got))
			for _, m := range got {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilteringIsIdempotent(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	q := Query{Search: "a"}
	first := svc.Filtered(q)
	second := svc.Filtered(q)
	assert.Equal(t, first, second)

	// Clearing every filter restores the full list in store order.
	full := svc.Filtered(Query{})
	assert.Equal(t, svc.Members(), full)
}

func TestDeleteWithoutConfirmationMakesNoStoreCall(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))
	before := svc.Members()

	err := svc.Delete(context.Background(), "whatever", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Zero(t, repo.deleteCalls)
	assert.Equal(t, before, svc.Members())
}

func TestConfirmedDeleteReloads(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), "whatever", true))
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Equal(t, 2, repo.listCalls, "one initial load plus the reload after delete")
}

func TestFailedReloadKeepsSnapshot(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)
	require.NoError(t, svc.Reload(context.Background()))

	repo.mu.Lock()
	repo.listErr = assert.AnError
	repo.mu.Unlock()

	err := svc.Reload(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, svc.Members(), 3, "failed reload must leave the previous snapshot untouched")
}

func TestStaleReloadIsDiscarded(t *testing.T) {
	repo := &fakeMemberRepo{records: sampleMembers()}
	svc := NewService(repo, nil)

	gate := make(chan struct{})
	repo.mu.Lock()
	repo.gate = gate
	repo.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- svc.Reload(context.Background()) }()

	// Wait until the slow fetch is in flight, then run a newer one with a
	// smaller result set.
	for {
		repo.mu.Lock()
		started := repo.listCalls == 1
		repo.mu.Unlock()
		if started {
			break
		}
	}
	repo.mu.Lock()
	repo.records = repo.records[:1]
	repo.mu.Unlock()
	require.NoError(t, svc.Reload(context.Background()))
	require.Len(t, svc.Members(), 1)

	// Release the slow fetch; its larger, stale result must be discarded.
	close(gate)
	require.NoError(t, <-done)
	assert.Len(t, svc.Members(), 1)
}
