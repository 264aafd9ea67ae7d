package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Priority ranks savings categories: 1 is high, 3 is low.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Defaults applied to new categories when the caller leaves a field empty.
const (
	DefaultCategoryIcon  = "💰"
	DefaultCategoryColor = "#6366f1"
)

// SavingsCategory is a named savings goal. CurrentAmount is a cached running
// balance: it must always equal the signed sum of the category's transactions.
type SavingsCategory struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   *string         `json:"description"`
	Icon          string          `gorm:"not null;default:'💰'" json:"icon"`
	Color         string          `gorm:"not null;default:'#6366f1'" json:"color"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"current_amount"`
	TargetDate    *time.Time      `gorm:"type:date" json:"target_date"`
	Priority      Priority        `gorm:"not null;default:2;index:idx_savings_categories_active_priority,priority:2" json:"priority"`
	IsActive      bool            `gorm:"not null;default:true;index:idx_savings_categories_active_priority,priority:1" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Transactions []SavingsTransaction `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// Progress returns CurrentAmount as a percentage of TargetAmount rounded to two
// places, or zero when the target is not positive.
func (c *SavingsCategory) Progress() float64 {
	if !c.TargetAmount.IsPositive() {
		return 0
	}
	pct, _ := c.CurrentAmount.Div(c.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// MarshalJSON adds the derived progress percentage to the stored fields.
func (c SavingsCategory) MarshalJSON() ([]byte, error) {
	type category SavingsCategory
	return json.Marshal(struct {
		category
		Progress float64 `json:"progress"`
	}{category(c), c.Progress()})
}
