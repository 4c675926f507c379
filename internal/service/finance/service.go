// Package finance owns the in-memory snapshot of the transaction ledger and
// the local filtering applied on top of it. Same reload-after-write contract
// as the roster.
package finance

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
	"github.com/cristovive/gestao/internal/repository/mongodb"
)

// ErrNotConfirmed is returned when a delete is attempted without an explicit
// confirmation. No store call is made in that case.
var ErrNotConfirmed = errors.New("delete requires confirmation")

// Flags exposes the independent per-action in-flight indicators.
type Flags struct {
	Load   bool `json:"load"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Query holds the local filter parameters. Type and Category accept "all"
// or empty to match everything; Month is a YYYY-MM prefix on the date.
type Query struct {
	Search   string
	Type     string
	Category string
	Month    string
}

// Service is the transaction collection view.
type Service struct {
	repo   mongodb.TransactionRepository
	logger *zap.Logger

	mu           sync.RWMutex
	transactions []models.Transaction
	loaded       bool
	loadGen      uint64
	flags        Flags
}

// NewService wires a finance service instance.
func NewService(repo mongodb.TransactionRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Reload replaces the snapshot with a full fetch of the collection,
// discarding fetches that lost the race against a newer one. On failure the
// previous snapshot is left untouched.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.flags.Load = true
	s.mu.Unlock()

	list, err := s.repo.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		s.logger.Debug("stale transaction reload discarded", zap.Uint64("generation", gen))
		return nil
	}
	s.flags.Load = false
	if err != nil {
		return err
	}
	s.transactions = list
	s.loaded = true
	s.logger.Debug("transaction snapshot reloaded", zap.Int("count", len(list)))
	return nil
}

// EnsureLoaded performs the initial fetch once; later calls are no-ops.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Transactions returns a copy of the current snapshot in store order.
func (s *Service) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Filtered recomputes the visible subset from the full snapshot on every
// call.
func (s *Service) Filtered(q Query) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if matches(tx, q) {
			out = append(out, tx)
		}
	}
	return out
}

// InFlight reports which actions are currently running.
func (s *Service) InFlight() Flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}

// Add creates a transaction and reloads the collection on success.
func (s *Service) Add(ctx context.Context, tx models.Transaction) (string, error) {
	s.setFlag(func(f *Flags) { f.Add = true })
	defer s.setFlag(func(f *Flags) { f.Add = false })

	id, err := s.repo.Create(ctx, tx)
	if err != nil {
		return "", err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("reload after add failed", zap.Error(err))
	}
	return id, nil
}

// Update saves changes to a transaction and reloads the collection on
// success.
func (s *Service) Update(ctx context.Context, id string, tx models.Transaction) error {
	s.setFlag(func(f *Flags) { f.Edit = true })
	defer s.setFlag(func(f *Flags) { f.Edit = false })

	if err := s.repo.Update(ctx, id, tx); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("reload after update failed", zap.Error(err))
	}
	return nil
}

// Delete removes a transaction after an explicit confirmation.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	s.setFlag(func(f *Flags) { f.Delete = true })
	defer s.setFlag(func(f *Flags) { f.Delete = false })

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("reload after delete failed", zap.Error(err))
	}
	return nil
}

func (s *Service) setFlag(apply func(*Flags)) {
	s.mu.Lock()
	apply(&s.flags)
	s.mu.Unlock()
}

func matches(tx models.Transaction, q Query) bool {
	term := strings.TrimSpace(q.Search)
	if term != "" {
		lower := strings.ToLower(term)
		hit := strings.Contains(strings.ToLower(tx.Description), lower) ||
			strings.Contains(strings.ToLower(tx.Category), lower)
		if !hit {
			return false
		}
	}
	if q.Type != "" && q.Type != "all" && string(tx.Type) != q.Type {
		return false
	}
	if q.Category != "" && q.Category != "all" && tx.Category != q.Category {
		return false
	}
	if q.Month != "" && !strings.HasPrefix(tx.Date, q.Month) {
		return false
	}
	return true
}
