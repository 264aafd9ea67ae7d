package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgethub/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestBudget creates a budget with a unique name.
func CreateTestBudget(t *testing.T, db *gorm.DB, amount string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:     fmt.Sprintf("Budget %d", nextID()),
		Amount:   decimal.RequireFromString(amount),
		Category: "General",
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategory creates an active savings category with a zero balance.
func CreateTestCategory(t *testing.T, db *gorm.DB, target string) *models.SavingsCategory {
	t.Helper()
	return CreateTestCategoryWithBalance(t, db, target, "0")
}

// CreateTestCategoryWithBalance creates an active savings category and, for a
// positive balance, the deposit that backs it so the ledger stays consistent.
func CreateTestCategoryWithBalance(t *testing.T, db *gorm.DB, target, balance string) *models.SavingsCategory {
	t.Helper()

	amount := decimal.RequireFromString(balance)
	category := &models.SavingsCategory{
		Name:          fmt.Sprintf("Goal %d", nextID()),
		Icon:          models.DefaultCategoryIcon,
		Color:         models.DefaultCategoryColor,
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: amount,
		Priority:      models.PriorityMedium,
		IsActive:      true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	if amount.IsPositive() {
		entry := &models.SavingsTransaction{
			CategoryID: category.ID,
			Amount:     amount,
			Type:       models.SavingsTransactionDeposit,
			Source:     models.SavingsSourceManual,
		}
		if err := db.Create(entry).Error; err != nil {
			t.Fatalf("failed to create opening deposit: %v", err)
		}
	}
	return category
}

// DeactivateTestCategory marks a category inactive.
func DeactivateTestCategory(t *testing.T, db *gorm.DB, categoryID uint) {
	t.Helper()

	if err := db.Model(&models.SavingsCategory{}).Where("id = ?", categoryID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate test category: %v", err)
	}
}
