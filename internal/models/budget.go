package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a planned spend for a free-form category label.
type Budget struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category  string          `gorm:"not null" json:"category"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}
