// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	"github.com/trackd-analytics/byod/internal/domain/entity"
	"github.com/trackd-analytics/byod/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// ReplaceRun stores a complete analyze run atomically. The workbook keeps a
// single run per project, so previous rows are removed in the same
// transaction before the new ones go in.
func (r *ledgerRepository) ReplaceRun(
	ctx context.Context,
	runID uuid.UUID,
	lines []*entity.TidyLine,
	summaries []*entity.MonthlySummary,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.TidyLineModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.MonthlySummaryModel{}).Error; err != nil {
			return err
		}

		if len(lines) > 0 {
			lineModels := make([]*model.TidyLineModel, len(lines))
			for i, line := range lines {
				lineModels[i] = model.TidyLineFromEntity(runID, line)
			}
			if err := tx.CreateInBatches(lineModels, 500).Error; err != nil {
				return err
			}
		}

		if len(summaries) > 0 {
			summaryModels := make([]*model.MonthlySummaryModel, len(summaries))
			for i, summary := range summaries {
				summaryModels[i] = model.MonthlySummaryFromEntity(runID, summary)
			}
			if err := tx.CreateInBatches(summaryModels, 500).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindMonthlySummaries retrieves the stored monthly summary of a run,
// ordered the same way the aggregation emits it.
func (r *ledgerRepository) FindMonthlySummaries(
	ctx context.Context,
	runID uuid.UUID,
) ([]*entity.MonthlySummary, error) {
	var models []*model.MonthlySummaryModel
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("month ASC, account_id ASC, normal_side ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.MonthlySummary, len(models))
	for i, m := range models {
		summaries[i] = m.ToEntity()
	}
	return summaries, nil
}
