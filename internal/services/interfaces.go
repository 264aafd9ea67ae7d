package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"budgethub/internal/models"
)

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, name string, amount decimal.Decimal, category string) (*models.Budget, error)
	GetBudgets(ctx context.Context) ([]models.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID uint) (*models.Budget, error)
	UpdateBudget(ctx context.Context, budgetID uint, name string, amount decimal.Decimal, category string) (*models.Budget, error)
	DeleteBudget(ctx context.Context, budgetID uint) error
}

// SavingsServicer defines the contract for the single legacy savings goal.
type SavingsServicer interface {
	GetSavings(ctx context.Context) (*models.Savings, error)
	SetGoal(ctx context.Context, goal decimal.Decimal) (*models.Savings, error)
	AddAmount(ctx context.Context, amount decimal.Decimal) (*models.Savings, error)
	RemoveAmount(ctx context.Context, amount decimal.Decimal) (*models.Savings, error)
	Reset(ctx context.Context) (*models.Savings, error)
}

// CreateCategoryParams holds the fields for a new savings category.
// Empty Icon, Color, and zero Priority fall back to defaults.
type CreateCategoryParams struct {
	Name         string
	Description  *string
	Icon         string
	Color        string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Priority     models.Priority
}

// UpdateCategoryParams holds a partial update. Nil fields are left unchanged;
// an empty Description and ClearTargetDate reset those columns to NULL.
type UpdateCategoryParams struct {
	Name            *string
	Description     *string
	Icon            *string
	Color           *string
	TargetAmount    *decimal.Decimal
	TargetDate      *time.Time
	ClearTargetDate bool
	Priority        *models.Priority
}

// RecentSavingsTransaction is a ledger entry joined with its category for display.
type RecentSavingsTransaction struct {
	models.SavingsTransaction
	CategoryName string `json:"category_name"`
	CategoryIcon string `json:"category_icon"`
}

// SavingsSummary aggregates the active savings categories.
type SavingsSummary struct {
	TotalCategories    int64                      `json:"total_categories"`
	TotalTarget        decimal.Decimal            `json:"total_target"`
	TotalSaved         decimal.Decimal            `json:"total_saved"`
	AvgProgress        float64                    `json:"avg_progress"`
	RecentTransactions []RecentSavingsTransaction `json:"recent_transactions"`
}

// SavingsCategoryServicer defines the contract for savings category management and read models.
type SavingsCategoryServicer interface {
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*models.SavingsCategory, error)
	GetCategories(ctx context.Context) ([]models.SavingsCategory, error)
	GetCategoryByID(ctx context.Context, categoryID uint) (*models.SavingsCategory, error)
	UpdateCategory(ctx context.Context, categoryID uint, params UpdateCategoryParams) (*models.SavingsCategory, error)
	DeactivateCategory(ctx context.Context, categoryID uint) error
	GetCategoryTransactions(ctx context.Context, categoryID uint, limit int) ([]models.SavingsTransaction, error)
	GetSummary(ctx context.Context) (*SavingsSummary, error)
}

// DepositParams describes money added to a category.
type DepositParams struct {
	CategoryID  uint
	Amount      decimal.Decimal
	Description string
	Source      models.SavingsSource
}

// WithdrawParams describes money taken out of a category.
type WithdrawParams struct {
	CategoryID  uint
	Amount      decimal.Decimal
	Description string
}

// TransferParams describes money moved between two categories.
type TransferParams struct {
	FromCategoryID uint
	ToCategoryID   uint
	Amount         decimal.Decimal
	Description    string
}

// LedgerServicer defines the contract for balance-changing operations on savings categories.
// Every method appends ledger entries and adjusts the cached balance in one unit of work.
type LedgerServicer interface {
	Deposit(ctx context.Context, params DepositParams) (*models.SavingsCategory, error)
	Withdraw(ctx context.Context, params WithdrawParams) (*models.SavingsCategory, error)
	Transfer(ctx context.Context, params TransferParams) (*models.SavingsCategory, error)
}
