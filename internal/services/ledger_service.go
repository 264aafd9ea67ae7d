package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/models"
)

// ledgerService applies deposits, withdrawals and transfers to savings categories.
// Each operation runs in one database transaction that re-reads the category row
// under a row lock before touching the balance.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// Deposit records a deposit and increases the category balance.
func (s *ledgerService) Deposit(ctx context.Context, params DepositParams) (*models.SavingsCategory, error) {
	amount, err := validateLedgerAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	source := params.Source
	if source == "" {
		source = models.SavingsSourceManual
	}
	if !source.Valid() {
		return nil, apperrors.ErrInvalidSavingsSource
	}

	var result *models.SavingsCategory
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := lockActiveCategory(tx, params.CategoryID)
		if err != nil {
			return err
		}

		if err := appendEntry(tx, category.ID, amount, models.SavingsTransactionDeposit, params.Description, source); err != nil {
			return err
		}
		if err := credit(tx, category, amount); err != nil {
			return err
		}

		result, err = reloadCategory(tx, category.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Withdraw records a withdrawal and decreases the category balance. It fails with
// ErrInsufficientFunds, recording nothing, when the amount exceeds the balance.
func (s *ledgerService) Withdraw(ctx context.Context, params WithdrawParams) (*models.SavingsCategory, error) {
	amount, err := validateLedgerAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	var result *models.SavingsCategory
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := lockActiveCategory(tx, params.CategoryID)
		if err != nil {
			return err
		}
		if models.RoundMoney(category.CurrentAmount).LessThan(amount) {
			return apperrors.ErrInsufficientFunds
		}

		if err := appendEntry(tx, category.ID, amount, models.SavingsTransactionWithdrawal, params.Description, models.SavingsSourceManual); err != nil {
			return err
		}
		if err := debit(tx, category, amount); err != nil {
			return err
		}

		result, err = reloadCategory(tx, category.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Transfer moves money between two active categories and returns the updated
// destination. Both legs are recorded with source "transfer".
func (s *ledgerService) Transfer(ctx context.Context, params TransferParams) (*models.SavingsCategory, error) {
	if params.FromCategoryID == params.ToCategoryID {
		return nil, apperrors.ErrSameCategoryTransfer
	}
	amount, err := validateLedgerAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	var result *models.SavingsCategory
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		from, to, err := lockCategoryPair(tx, params.FromCategoryID, params.ToCategoryID)
		if err != nil {
			return err
		}
		if models.RoundMoney(from.CurrentAmount).LessThan(amount) {
			return apperrors.WithMessage(apperrors.ErrInsufficientFunds, "Insufficient funds in source category")
		}

		outDesc, inDesc := params.Description, params.Description
		if strings.TrimSpace(params.Description) == "" {
			outDesc = fmt.Sprintf("Transfer to %s", to.Name)
			inDesc = fmt.Sprintf("Transfer from %s", from.Name)
		}

		if err := appendEntry(tx, from.ID, amount, models.SavingsTransactionWithdrawal, outDesc, models.SavingsSourceTransfer); err != nil {
			return err
		}
		if err := debit(tx, from, amount); err != nil {
			return err
		}
		if err := appendEntry(tx, to.ID, amount, models.SavingsTransactionDeposit, inDesc, models.SavingsSourceTransfer); err != nil {
			return err
		}
		if err := credit(tx, to, amount); err != nil {
			return err
		}

		result, err = reloadCategory(tx, to.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateLedgerAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = models.RoundMoney(amount)
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid amount greater than 0 is required")
	}
	return amount, nil
}

// lockActiveCategory reads an active category with SELECT ... FOR UPDATE.
func lockActiveCategory(tx *gorm.DB, categoryID uint) (*models.SavingsCategory, error) {
	var category models.SavingsCategory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = ?", categoryID, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// lockCategoryPair locks two categories in ascending id order so that opposing
// transfers cannot deadlock, and returns them as (from, to).
func lockCategoryPair(tx *gorm.DB, fromID, toID uint) (*models.SavingsCategory, *models.SavingsCategory, error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := lockActiveCategory(tx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := lockActiveCategory(tx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}

func appendEntry(
	tx *gorm.DB,
	categoryID uint,
	amount decimal.Decimal,
	txType models.SavingsTransactionType,
	description string,
	source models.SavingsSource,
) error {
	entry := &models.SavingsTransaction{
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        txType,
		Description: optionalString(description),
		Source:      source,
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func credit(tx *gorm.DB, category *models.SavingsCategory, amount decimal.Decimal) error {
	return setBalance(tx, category, models.RoundMoney(category.CurrentAmount).Add(amount))
}

func debit(tx *gorm.DB, category *models.SavingsCategory, amount decimal.Decimal) error {
	balance := models.RoundMoney(category.CurrentAmount).Sub(amount)
	if balance.IsNegative() {
		return apperrors.ErrInsufficientFunds
	}
	return setBalance(tx, category, balance)
}

// setBalance stores a balance computed with decimal arithmetic, since SQLite
// evaluates DECIMAL columns as REAL. The write only applies while the stored
// balance is still the one read under the row lock.
func setBalance(tx *gorm.DB, category *models.SavingsCategory, balance decimal.Decimal) error {
	balance = models.RoundMoney(balance)
	result := tx.Model(&models.SavingsCategory{}).
		Where("id = ? AND current_amount = ?", category.ID, category.CurrentAmount).
		Updates(map[string]interface{}{
			"current_amount": balance,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Wrap(apperrors.ErrInternalServer,
			fmt.Errorf("balance of savings category %d changed during update", category.ID))
	}
	category.CurrentAmount = balance
	return nil
}

func reloadCategory(tx *gorm.DB, categoryID uint) (*models.SavingsCategory, error) {
	var category models.SavingsCategory
	if err := tx.First(&category, categoryID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// optionalString trims s and returns nil when nothing is left.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
