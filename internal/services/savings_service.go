package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/models"
)

// savingsService manages the single legacy savings row. Every write locks the
// row inside a transaction so goal changes and balance changes serialize.
type savingsService struct {
	db *gorm.DB
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB) SavingsServicer {
	return &savingsService{db: db}
}

func emptySavings() *models.Savings {
	return &models.Savings{
		ID:            models.SavingsSingletonID,
		Goal:          decimal.Zero,
		CurrentAmount: decimal.Zero,
	}
}

// GetSavings returns the savings row, or zeros when nothing has been saved yet.
func (s *savingsService) GetSavings(ctx context.Context) (*models.Savings, error) {
	var savings models.Savings
	if err := s.db.WithContext(ctx).First(&savings, models.SavingsSingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptySavings(), nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &savings, nil
}

// SetGoal sets the savings goal.
func (s *savingsService) SetGoal(ctx context.Context, goal decimal.Decimal) (*models.Savings, error) {
	goal = models.RoundMoney(goal)
	if goal.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid goal amount is required")
	}
	return s.mutate(ctx, func(savings *models.Savings) {
		savings.Goal = goal
	})
}

// AddAmount adds money to the current amount.
func (s *savingsService) AddAmount(ctx context.Context, amount decimal.Decimal) (*models.Savings, error) {
	amount = models.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid amount greater than 0 is required")
	}
	return s.mutate(ctx, func(savings *models.Savings) {
		savings.CurrentAmount = savings.CurrentAmount.Add(amount)
	})
}

// RemoveAmount takes money out of the current amount, flooring at zero.
func (s *savingsService) RemoveAmount(ctx context.Context, amount decimal.Decimal) (*models.Savings, error) {
	amount = models.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid amount greater than 0 is required")
	}
	return s.mutate(ctx, func(savings *models.Savings) {
		savings.CurrentAmount = decimal.Max(savings.CurrentAmount.Sub(amount), decimal.Zero)
	})
}

// Reset zeroes the current amount and keeps the goal.
func (s *savingsService) Reset(ctx context.Context) (*models.Savings, error) {
	return s.mutate(ctx, func(savings *models.Savings) {
		savings.CurrentAmount = decimal.Zero
	})
}

// mutate ensures the row exists, locks it, applies fn and saves the result.
func (s *savingsService) mutate(ctx context.Context, fn func(*models.Savings)) (*models.Savings, error) {
	var savings models.Savings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(emptySavings()).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&savings, models.SavingsSingletonID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		fn(&savings)

		if err := tx.Model(&savings).Updates(map[string]interface{}{
			"goal":           savings.Goal,
			"current_amount": savings.CurrentAmount,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &savings, nil
}
