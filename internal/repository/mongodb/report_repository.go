package mongodb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/domain/models"
)

// ReportRepository stores monthly report snapshots.
type ReportRepository interface {
	SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error
}

// MongoReportRepository implements ReportRepository on the shared Store.
type MongoReportRepository struct {
	store  *Store
	logger *zap.Logger
}

// NewReportRepository builds the reports collection adapter.
func NewReportRepository(store *Store, logger *zap.Logger) *MongoReportRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoReportRepository{store: store, logger: logger}
}

// SaveMonthlyReport appends a report snapshot to the reports collection.
func (r *MongoReportRepository) SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	if _, err := r.store.collection(reportsCollection).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert monthly report: %w", err)
	}

	r.logger.Info("monthly report saved",
		zap.Int("year", report.Year),
		zap.Int("month", report.Month),
		zap.Float64("balance", report.Balance))
	return nil
}
