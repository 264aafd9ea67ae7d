package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsSingletonID is the fixed primary key of the only Savings row.
const SavingsSingletonID uint = 1

// Savings is the single, pre-hub savings goal. Exactly one row exists, keyed by
// SavingsSingletonID; it is created on first write.
type Savings struct {
	ID            uint            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Goal          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"goal"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"current_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName overrides the table name used by GORM.
func (Savings) TableName() string {
	return "savings"
}
