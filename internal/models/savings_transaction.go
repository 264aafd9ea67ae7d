package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsTransactionType is the direction of a ledger entry.
type SavingsTransactionType string

const (
	SavingsTransactionDeposit    SavingsTransactionType = "deposit"
	SavingsTransactionWithdrawal SavingsTransactionType = "withdrawal"
)

// SavingsSource records what produced a ledger entry.
type SavingsSource string

const (
	SavingsSourceManual   SavingsSource = "manual"
	SavingsSourceTransfer SavingsSource = "transfer"
	SavingsSourceAutoSave SavingsSource = "auto_save"
)

// Valid reports whether s is one of the known sources.
func (s SavingsSource) Valid() bool {
	switch s {
	case SavingsSourceManual, SavingsSourceTransfer, SavingsSourceAutoSave:
		return true
	}
	return false
}

// SavingsTransaction is an immutable ledger entry. Amount is always a positive
// magnitude; Type carries the sign.
type SavingsTransaction struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	CategoryID  uint                   `gorm:"not null;index:idx_savings_transactions_category_created,priority:1" json:"category_id"`
	Amount      decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        SavingsTransactionType `gorm:"not null" json:"type"`
	Description *string                `json:"description"`
	Source      SavingsSource          `gorm:"not null;default:'manual'" json:"source"`
	CreatedAt   time.Time              `gorm:"index:idx_savings_transactions_category_created,priority:2" json:"created_at"`
}

// Signed returns Amount with the sign implied by Type.
func (t *SavingsTransaction) Signed() decimal.Decimal {
	if t.Type == SavingsTransactionWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
