package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackd-analytics/byod/internal/domain/entity"
	"github.com/trackd-analytics/byod/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.TidyLineModel{}, &model.MonthlySummaryModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleRun() ([]*entity.TidyLine, []*entity.MonthlySummary) {
	date, _ := time.Parse("2006-01-02", "2024-01-05")
	lines := []*entity.TidyLine{
		{
			GLLineID:    "t1-1",
			TxnID:       "t1",
			Date:        date,
			DocID:       "inv-1",
			Description: "Sale",
			AccountID:   "1000",
			AccountName: "Cash",
			AccountType: entity.AccountTypeAsset,
			NormalSide:  entity.NormalSideDebit,
			Debit:       decimal.NewFromInt(100),
			Credit:      decimal.Zero,
			RawAmount:   decimal.NewFromInt(100),
			Amount:      decimal.NewFromInt(100),
		},
	}
	summaries := []*entity.MonthlySummary{
		{
			Month:       "2024-01",
			AccountID:   "1000",
			NormalSide:  entity.NormalSideDebit,
			AccountName: "Cash",
			AccountType: entity.AccountTypeAsset,
			Debit:       decimal.NewFromInt(100),
			Credit:      decimal.Zero,
			NetChange:   decimal.NewFromInt(100),
			NLines:      1,
		},
		{
			Month:       "2024-01",
			AccountID:   "4000",
			NormalSide:  entity.NormalSideCredit,
			AccountName: "Sales",
			AccountType: entity.AccountTypeRevenue,
			Debit:       decimal.Zero,
			Credit:      decimal.NewFromInt(100),
			NetChange:   decimal.NewFromInt(100),
			NLines:      1,
		},
	}
	return lines, summaries
}

func TestLedgerRepositoryReplaceRun(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	lines, summaries := sampleRun()

	t.Run("stores lines and summaries", func(t *testing.T) {
		runID := uuid.New()
		if err := repo.ReplaceRun(ctx, runID, lines, summaries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.FindMonthlySummaries(ctx, runID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(got))
		}
		if got[0].AccountID != "1000" || got[1].AccountID != "4000" {
			t.Errorf("expected account order 1000,4000, got %s,%s", got[0].AccountID, got[1].AccountID)
		}
		if !got[0].Debit.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected debit 100, got %s", got[0].Debit)
		}
	})

	t.Run("a new run replaces the previous one", func(t *testing.T) {
		firstRun := uuid.New()
		if err := repo.ReplaceRun(ctx, firstRun, lines, summaries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		secondRun := uuid.New()
		if err := repo.ReplaceRun(ctx, secondRun, lines, summaries[:1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		old, err := repo.FindMonthlySummaries(ctx, firstRun)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(old) != 0 {
			t.Errorf("expected first run gone, got %d rows", len(old))
		}

		current, err := repo.FindMonthlySummaries(ctx, secondRun)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(current) != 1 {
			t.Errorf("expected 1 summary, got %d", len(current))
		}

		var lineCount int64
		if err := db.Model(&model.TidyLineModel{}).Count(&lineCount).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if lineCount != 1 {
			t.Errorf("expected 1 stored line, got %d", lineCount)
		}
	})

	t.Run("empty run clears the workbook", func(t *testing.T) {
		if err := repo.ReplaceRun(ctx, uuid.New(), nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var count int64
		if err := db.Model(&model.MonthlySummaryModel{}).Count(&count).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty workbook, got %d rows", count)
		}
	})
}

func TestTidyLineModelRoundTrip(t *testing.T) {
	lines, _ := sampleRun()
	runID := uuid.New()

	m := model.TidyLineFromEntity(runID, lines[0])
	if m.RunID != runID {
		t.Errorf("expected run id set, got %s", m.RunID)
	}

	back := m.ToEntity()
	if back.GLLineID != lines[0].GLLineID || back.AccountType != lines[0].AccountType {
		t.Errorf("unexpected round trip %+v", back)
	}
	if !back.Amount.Equal(lines[0].Amount) {
		t.Errorf("expected amount %s, got %s", lines[0].Amount, back.Amount)
	}
}
