package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal fails the test if got is not numerically equal to want.
func AssertDecimal(t *testing.T, want string, got decimal.Decimal, what string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", what, want, got.String())
	}
}

// LedgerBalance sums the signed transactions of a category.
func LedgerBalance(t *testing.T, db *gorm.DB, categoryID uint) decimal.Decimal {
	t.Helper()

	var entries []models.SavingsTransaction
	if err := db.Where("category_id = ?", categoryID).Find(&entries).Error; err != nil {
		t.Fatalf("failed to load transactions: %v", err)
	}
	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].Signed())
	}
	return total
}

// AssertBalanceMatchesLedger checks that the cached balance of a category equals
// the signed sum of its transactions.
func AssertBalanceMatchesLedger(t *testing.T, db *gorm.DB, categoryID uint) {
	t.Helper()

	var category models.SavingsCategory
	if err := db.First(&category, categoryID).Error; err != nil {
		t.Fatalf("failed to load category %d: %v", categoryID, err)
	}
	ledger := LedgerBalance(t, db, categoryID)
	if !category.CurrentAmount.Equal(ledger) {
		t.Errorf("category %d balance %s does not match ledger sum %s",
			categoryID, category.CurrentAmount.String(), ledger.String())
	}
}

// CountTransactions returns how many ledger entries a category has.
func CountTransactions(t *testing.T, db *gorm.DB, categoryID uint) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.SavingsTransaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}

// ReloadCategory reads a category straight from the database.
func ReloadCategory(t *testing.T, db *gorm.DB, categoryID uint) *models.SavingsCategory {
	t.Helper()

	var category models.SavingsCategory
	if err := db.First(&category, categoryID).Error; err != nil {
		t.Fatalf("failed to load category %d: %v", categoryID, err)
	}
	return &category
}
