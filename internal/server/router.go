// Package server assembles the services, handlers and routes of the API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	apperrors "budgethub/internal/errors"
	"budgethub/internal/handlers"
	"budgethub/internal/middleware"
	"budgethub/internal/services"

	_ "budgethub/internal/docs" // Import swagger docs
)

// Handlers groups every HTTP handler served under /api.
type Handlers struct {
	Budget          *handlers.BudgetHandler
	Savings         *handlers.SavingsHandler
	SavingsCategory *handlers.SavingsCategoryHandler
	Ledger          *handlers.LedgerHandler
}

// NewHandlers wires services backed by db into handlers.
func NewHandlers(db *gorm.DB) *Handlers {
	budgetService := services.NewBudgetService(db)
	savingsService := services.NewSavingsService(db)
	categoryService := services.NewSavingsCategoryService(db)
	ledgerService := services.NewLedgerService(db)

	return &Handlers{
		Budget:          handlers.NewBudgetHandler(budgetService),
		Savings:         handlers.NewSavingsHandler(savingsService),
		SavingsCategory: handlers.NewSavingsCategoryHandler(categoryService),
		Ledger:          handlers.NewLedgerHandler(ledgerService),
	}
}

// RouterOptions controls the optional parts of the router.
type RouterOptions struct {
	CORSAllowedOrigin string
	RequestLogging    bool
	Swagger           bool
}

// NewRouter builds the Gin engine with middleware and all routes.
func NewRouter(h *Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSAllowedOrigin))

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	budgets := api.Group("/budgets")
	budgets.GET("", h.Budget.GetBudgets)
	budgets.POST("", h.Budget.CreateBudget)
	budgets.GET("/:id", h.Budget.GetBudget)
	budgets.PUT("/:id", h.Budget.UpdateBudget)
	budgets.DELETE("/:id", h.Budget.DeleteBudget)

	savings := api.Group("/savings")
	savings.GET("", h.Savings.GetSavings)
	savings.POST("/goal", h.Savings.SetGoal)
	savings.POST("/add", h.Savings.AddAmount)
	savings.POST("/remove", h.Savings.RemoveAmount)
	savings.POST("/reset", h.Savings.Reset)
	savings.GET("/summary", h.SavingsCategory.GetSummary)
	savings.POST("/transfer", h.Ledger.Transfer)

	categories := savings.Group("/categories")
	categories.GET("", h.SavingsCategory.GetCategories)
	categories.POST("", h.SavingsCategory.CreateCategory)
	categories.GET("/:id", h.SavingsCategory.GetCategory)
	categories.PUT("/:id", h.SavingsCategory.UpdateCategory)
	categories.DELETE("/:id", h.SavingsCategory.DeleteCategory)
	categories.POST("/:id/add", h.Ledger.Deposit)
	categories.POST("/:id/remove", h.Ledger.Withdraw)
	categories.GET("/:id/transactions", h.SavingsCategory.GetCategoryTransactions)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	return router
}
