package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

func validateBudgetFields(name string, amount decimal.Decimal, category string) (string, decimal.Decimal, string, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return "", decimal.Zero, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "budget name is required")
	}
	if category == "" {
		return "", decimal.Zero, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "budget category is required")
	}
	amount = models.RoundMoney(amount)
	if !amount.IsPositive() {
		return "", decimal.Zero, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	return name, amount, category, nil
}

// CreateBudget creates a new budget.
func (s *budgetService) CreateBudget(ctx context.Context, name string, amount decimal.Decimal, category string) (*models.Budget, error) {
	name, amount, category, err := validateBudgetFields(name, amount, category)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Name:     name,
		Amount:   amount,
		Category: category,
	}

	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetBudgets returns every budget, newest first.
func (s *budgetService) GetBudgets(ctx context.Context) ([]models.Budget, error) {
	budgets := make([]models.Budget, 0)
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget replaces all editable fields of an existing budget.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID uint, name string, amount decimal.Decimal, category string) (*models.Budget, error) {
	name, amount, category, err := validateBudgetFields(name, amount, category)
	if err != nil {
		return nil, err
	}

	budget, err := s.GetBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":     name,
		"amount":   amount,
		"category": category,
	}
	if err := s.db.WithContext(ctx).Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget.Name = name
	budget.Amount = amount
	budget.Category = category
	return budget, nil
}

// DeleteBudget permanently removes a budget.
func (s *budgetService) DeleteBudget(ctx context.Context, budgetID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Budget{}, budgetID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}
