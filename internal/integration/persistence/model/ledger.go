// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trackd-analytics/byod/internal/domain/entity"
)

// TidyLineModel represents the gl_tidy table in the workbook database.
type TidyLineModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	RunID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	GLLineID    string          `gorm:"type:varchar(64);not null;index"`
	TxnID       string          `gorm:"type:varchar(64);not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	DocID       string          `gorm:"type:varchar(64);not null"`
	Description string          `gorm:"type:text"`
	AccountID   string          `gorm:"type:varchar(64);not null;index"`
	AccountName string          `gorm:"type:varchar(255);not null"`
	AccountType string          `gorm:"type:varchar(16);not null"`
	NormalSide  string          `gorm:"type:varchar(8);not null"`
	Debit       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RawAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TidyLineModel.
func (TidyLineModel) TableName() string {
	return "gl_tidy"
}

// ToEntity converts a TidyLineModel to a domain TidyLine entity.
func (m *TidyLineModel) ToEntity() *entity.TidyLine {
	return &entity.TidyLine{
		GLLineID:    m.GLLineID,
		TxnID:       m.TxnID,
		Date:        m.Date,
		DocID:       m.DocID,
		Description: m.Description,
		AccountID:   m.AccountID,
		AccountName: m.AccountName,
		AccountType: entity.AccountType(m.AccountType),
		NormalSide:  entity.NormalSide(m.NormalSide),
		Debit:       m.Debit,
		Credit:      m.Credit,
		RawAmount:   m.RawAmount,
		Amount:      m.Amount,
	}
}

// TidyLineFromEntity creates a TidyLineModel from a domain TidyLine entity.
func TidyLineFromEntity(runID uuid.UUID, line *entity.TidyLine) *TidyLineModel {
	return &TidyLineModel{
		RunID:       runID,
		GLLineID:    line.GLLineID,
		TxnID:       line.TxnID,
		Date:        line.Date,
		DocID:       line.DocID,
		Description: line.Description,
		AccountID:   line.AccountID,
		AccountName: line.AccountName,
		AccountType: string(line.AccountType),
		NormalSide:  string(line.NormalSide),
		Debit:       line.Debit,
		Credit:      line.Credit,
		RawAmount:   line.RawAmount,
		Amount:      line.Amount,
	}
}

// MonthlySummaryModel represents the gl_monthly table in the workbook database.
type MonthlySummaryModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	RunID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Month       string          `gorm:"type:varchar(7);not null;index"`
	AccountID   string          `gorm:"type:varchar(64);not null;index"`
	NormalSide  string          `gorm:"type:varchar(8);not null"`
	AccountName string          `gorm:"type:varchar(255);not null"`
	AccountType string          `gorm:"type:varchar(16);not null"`
	Debit       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetChange   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NLines      int             `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlySummaryModel.
func (MonthlySummaryModel) TableName() string {
	return "gl_monthly"
}

// ToEntity converts a MonthlySummaryModel to a domain MonthlySummary entity.
func (m *MonthlySummaryModel) ToEntity() *entity.MonthlySummary {
	return &entity.MonthlySummary{
		Month:       m.Month,
		AccountID:   m.AccountID,
		NormalSide:  entity.NormalSide(m.NormalSide),
		AccountName: m.AccountName,
		AccountType: entity.AccountType(m.AccountType),
		Debit:       m.Debit,
		Credit:      m.Credit,
		NetChange:   m.NetChange,
		NLines:      m.NLines,
	}
}

// MonthlySummaryFromEntity creates a MonthlySummaryModel from a domain MonthlySummary entity.
func MonthlySummaryFromEntity(runID uuid.UUID, summary *entity.MonthlySummary) *MonthlySummaryModel {
	return &MonthlySummaryModel{
		RunID:       runID,
		Month:       summary.Month,
		AccountID:   summary.AccountID,
		NormalSide:  string(summary.NormalSide),
		AccountName: summary.AccountName,
		AccountType: string(summary.AccountType),
		Debit:       summary.Debit,
		Credit:      summary.Credit,
		NetChange:   summary.NetChange,
		NLines:      summary.NLines,
	}
}
