// Package dashboard computes the read-only statistics shown on the landing
// page: member status counts, the current month's birthday list and the
// month-to-date ledger balance.
package dashboard

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
	"github.com/cristovive/gestao/internal/repository/mongodb"
)

// MemberStats counts members per status.
type MemberStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Visitors int `json:"visitors"`
}

// Birthday is one entry of the current month's birthday list.
type Birthday struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Birthdate string `json:"birthdate"`
	Day       int    `json:"day"`
}

// FinanceStats sums the current calendar month's ledger.
type FinanceStats struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// Overview bundles everything the dashboard renders.
type Overview struct {
	Members   MemberStats  `json:"members"`
	Birthdays []Birthday   `json:"birthdays"`
	Finance   FinanceStats `json:"finance"`
}

// Service aggregates over the two collections. The loads are independent
// fetches with no joint consistency guarantee between them.
type Service struct {
	members      mongodb.MemberRepository
	transactions mongodb.TransactionRepository
	logger       *zap.Logger
}

// NewService wires a dashboard service instance.
func NewService(members mongodb.MemberRepository, transactions mongodb.TransactionRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{members: members, transactions: transactions, logger: logger}
}

// Compute builds the overview for the calendar month containing now. Each
// section that fails to load stays zeroed; the joined error reports what
// went wrong.
func (s *Service) Compute(ctx context.Context, now time.Time) (Overview, error) {
	var overview Overview

	members, memberErr := s.members.List(ctx)
	if memberErr != nil {
		s.logger.Error("failed loading members for dashboard", zap.Error(memberErr))
	} else {
		overview.Members = memberStats(members)
		overview.Birthdays = birthdaysInMonth(members, now)
	}

	transactions, txErr := s.transactions.List(ctx)
	if txErr != nil {
		s.logger.Error("failed loading transactions for dashboard", zap.Error(txErr))
	} else {
		overview.Finance = financeStats(transactions, now)
	}

	return overview, errors.Join(memberErr, txErr)
}

func memberStats(members []models.Member) MemberStats {
	stats := MemberStats{Total: len(members)}
	for _, m := range members {
		switch m.Status {
		case models.StatusAtivo:
			stats.Active++
		case models.StatusInativo:
			stats.Inactive++
		case models.StatusVisitante:
			stats.Visitors++
		}
	}
	return stats
}

// birthdaysInMonth returns members whose birthdate month matches now's
// month, sorted ascending by day. The birth year is ignored entirely.
func birthdaysInMonth(members []models.Member, now time.Time) []Birthday {
	currentMonth := int(now.Month())

	out := []Birthday{}
	for _, m := range members {
		month, day, ok := monthDay(m.Birthdate)
		if !ok || month != currentMonth {
			continue
		}
		out = append(out, Birthday{
			ID:        m.ID.Hex(),
			Name:      m.Name,
			Role:      string(m.Role),
			Birthdate: m.Birthdate,
			Day:       day,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// financeStats restricts the ledger to transactions dated inside now's
// calendar month. Amounts that failed to parse contribute zero instead of
// raising an error.
func financeStats(transactions []models.Transaction, now time.Time) FinanceStats {
	prefix := now.Format("2006-01")

	var stats FinanceStats
	for _, tx := range transactions {
		if !strings.HasPrefix(tx.Date, prefix) {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			stats.Income += float64(tx.Amount)
		case models.TypeExpense:
			stats.Expenses += float64(tx.Amount)
		}
	}
	stats.Balance = stats.Income - stats.Expenses
	return stats
}

// monthDay extracts month and day from a YYYY-MM-DD string without going
// through time.Parse, so a bogus year cannot reject an otherwise usable
// birthdate.
func monthDay(date string) (int, int, bool) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, false
	}
	return month, day, true
}
