// Package roster owns the in-memory snapshot of the member collection and
// the local filtering applied on top of it. Every successful mutation is
// followed by a full authoritative reload; the displayed list is only ever
// as fresh as the last reload.
package roster

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

// Flags exposes the independent per-action in-flight indicators so the UI
// can disable only the controls tied to the running action.
type Flags struct {
	Load   bool `json:"load"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Query holds the local filter parameters. Status "all" or empty matches
// every record.
type Query struct {
	Search string
	Status string
}

// Service is the member collection view.
type Service struct {
	repo   mongodb.MemberRepository
	logger *zap.Logger

	mu      sync.RWMutex
	members []models.Member
	loaded  bool
	loadGen uint64
	flags   Flags
}

// NewService wires a roster service instance.
func NewService(repo mongodb.MemberRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Reload replaces the snapshot with a full fetch of the collection. A fetch
// that resolves after a newer one has started is discarded, so a slow
// response can never overwrite fresher data. On failure the previous
// snapshot is left untouched.
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
		s.logger.Debug("stale member reload discarded", zap.Uint64("generation", gen))
		return nil
	}
	s.flags.Load = false
	if err != nil {
		return err
	}
	s.members = list
	s.loaded = true
	s.logger.Debug("member snapshot reloaded", zap.Int("count", len(list)))
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

// Members returns a copy of the current snapshot in store order.
func (s *Service) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, len(s.members))
	copy(out, s.members)
	return out
}

// Filtered recomputes the visible subset from the full snapshot on every
// call. Search matches case-insensitive substrings of name or email and a
// raw substring of phone; the status filter is an exact match.
func (s *Service) Filtered(q Query) []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Member, 0, len(s.members))
	for _, m := range s.members {
		if matches(m, q) {
			out = append(out, m)
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

// Add creates a member and reloads the collection on success.
func (s *Service) Add(ctx context.Context, member models.Member) (string, error) {
	s.setFlag(func(f *Flags) { f.Add = true })
	defer s.setFlag(func(f *Flags) { f.Add = false })

	id, err := s.repo.Create(ctx, member)
	if err != nil {
		return "", err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("reload after add failed", zap.Error(err))
	}
	return id, nil
}

// Update saves changes to a member and reloads the collection on success.
func (s *Service) Update(ctx context.Context, id string, member models.Member) error {
	s.setFlag(func(f *Flags) { f.Edit = true })
	defer s.setFlag(func(f *Flags) { f.Edit = false })

	if err := s.repo.Update(ctx, id, member); err != nil {
		return err
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn("reload after update failed", zap.Error(err))
	}
	return nil
}

// Delete removes a member after an explicit confirmation. A declined
// confirmation issues no store call and leaves the snapshot unchanged.
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

func matches(m models.Member, q Query) bool {
	term := strings.TrimSpace(q.Search)
	if term != "" {
		lower := strings.ToLower(term)
		hit := strings.Contains(strings.ToLower(m.Name), lower) ||
			strings.Contains(strings.ToLower(m.Email), lower) ||
			strings.Contains(m.Phone, term)
		if !hit {
			return false
		}
	}
	if q.Status != "" && q.Status != "all" && string(m.Status) != q.Status {
		return false
	}
	return true
}
