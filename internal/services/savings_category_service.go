package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/models"
	"budgethub/internal/pagination"
)

// recentTransactionsLimit is how many ledger entries the summary includes.
const recentTransactionsLimit = 5

// savingsCategoryService handles savings category CRUD and read models.
type savingsCategoryService struct {
	db *gorm.DB
}

// NewSavingsCategoryService creates a new SavingsCategoryServicer.
func NewSavingsCategoryService(db *gorm.DB) SavingsCategoryServicer {
	return &savingsCategoryService{db: db}
}

// CreateCategory creates a new active savings category with a zero balance.
func (s *savingsCategoryService) CreateCategory(ctx context.Context, params CreateCategoryParams) (*models.SavingsCategory, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name and valid target amount are required")
	}
	target := models.RoundMoney(params.TargetAmount)
	if !target.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name and valid target amount are required")
	}

	category := &models.SavingsCategory{
		Name:          name,
		Icon:          params.Icon,
		Color:         params.Color,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		TargetDate:    params.TargetDate,
		Priority:      params.Priority,
		IsActive:      true,
	}
	if params.Description != nil {
		category.Description = optionalString(*params.Description)
	}
	if category.Icon == "" {
		category.Icon = models.DefaultCategoryIcon
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}
	if category.Priority == 0 {
		category.Priority = models.PriorityMedium
	}

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategories lists active categories by priority, then newest first.
func (s *savingsCategoryService) GetCategories(ctx context.Context) ([]models.SavingsCategory, error) {
	categories := make([]models.SavingsCategory, 0)
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves an active category.
func (s *savingsCategoryService) GetCategoryByID(ctx context.Context, categoryID uint) (*models.SavingsCategory, error) {
	var category models.SavingsCategory
	if err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", categoryID, true).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update to an active category. The balance is
// never touched here; it only moves through the ledger.
func (s *savingsCategoryService) UpdateCategory(ctx context.Context, categoryID uint, params UpdateCategoryParams) (*models.SavingsCategory, error) {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if params.Name != nil {
		if name := strings.TrimSpace(*params.Name); name != "" {
			updates["name"] = name
		}
	}
	if params.Description != nil {
		updates["description"] = optionalString(*params.Description)
	}
	if params.Icon != nil && *params.Icon != "" {
		updates["icon"] = *params.Icon
	}
	if params.Color != nil && *params.Color != "" {
		updates["color"] = *params.Color
	}
	if params.TargetAmount != nil {
		target := models.RoundMoney(*params.TargetAmount)
		if !target.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Valid target amount is required")
		}
		updates["target_amount"] = target
	}
	switch {
	case params.ClearTargetDate:
		updates["target_date"] = nil
	case params.TargetDate != nil:
		updates["target_date"] = *params.TargetDate
	}
	if params.Priority != nil && *params.Priority != 0 {
		updates["priority"] = *params.Priority
	}

	if len(updates) == 0 {
		return category, nil
	}
	updates["updated_at"] = time.Now()

	result := s.db.WithContext(ctx).
		Model(&models.SavingsCategory{}).
		Where("id = ? AND is_active = ?", categoryID, true).
		Updates(updates)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	// Deactivated since the read above.
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrSavingsCategoryNotFound
	}

	// Reload to get fresh data
	return s.GetCategoryByID(ctx, categoryID)
}

// DeactivateCategory soft-deletes a category. Its ledger history is kept.
func (s *savingsCategoryService) DeactivateCategory(ctx context.Context, categoryID uint) error {
	result := s.db.WithContext(ctx).
		Model(&models.SavingsCategory{}).
		Where("id = ? AND is_active = ?", categoryID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSavingsCategoryNotFound
	}
	return nil
}

// GetCategoryTransactions returns the newest ledger entries of a category,
// including deactivated ones.
func (s *savingsCategoryService) GetCategoryTransactions(ctx context.Context, categoryID uint, limit int) ([]models.SavingsTransaction, error) {
	transactions := make([]models.SavingsTransaction, 0)
	if err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Order("id DESC").
		Scopes(pagination.Limit(limit)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// summaryTotals is the scan target for the aggregate summary query.
type summaryTotals struct {
	TotalCategories int64
	TotalTarget     decimal.Decimal
	TotalSaved      decimal.Decimal
	AvgProgress     float64
}

// GetSummary aggregates active categories and lists the most recent ledger entries.
func (s *savingsCategoryService) GetSummary(ctx context.Context) (*SavingsSummary, error) {
	var totals summaryTotals
	recent := make([]RecentSavingsTransaction, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.SavingsCategory{}).
			Select(`COUNT(*) AS total_categories,
				COALESCE(SUM(target_amount), 0) AS total_target,
				COALESCE(SUM(current_amount), 0) AS total_saved,
				COALESCE(AVG(CASE WHEN target_amount > 0 THEN current_amount * 100.0 / target_amount ELSE 0 END), 0) AS avg_progress`).
			Where("is_active = ?", true).
			Scan(&totals).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Table("savings_transactions").
			Select("savings_transactions.*, savings_categories.name AS category_name, savings_categories.icon AS category_icon").
			Joins("JOIN savings_categories ON savings_categories.id = savings_transactions.category_id").
			Where("savings_categories.is_active = ?", true).
			Order("savings_transactions.created_at DESC").
			Order("savings_transactions.id DESC").
			Limit(recentTransactionsLimit).
			Scan(&recent).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &SavingsSummary{
		TotalCategories:    totals.TotalCategories,
		TotalTarget:        models.RoundMoney(totals.TotalTarget),
		TotalSaved:         models.RoundMoney(totals.TotalSaved),
		AvgProgress:        totals.AvgProgress,
		RecentTransactions: recent,
	}, nil
}
