package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgethub/internal/models"
	"budgethub/internal/pagination"
	"budgethub/internal/services"
)

// SavingsCategoryHandler handles savings category management and the summary view.
type SavingsCategoryHandler struct {
	categoryService services.SavingsCategoryServicer
}

// NewSavingsCategoryHandler creates a new SavingsCategoryHandler.
func NewSavingsCategoryHandler(categoryService services.SavingsCategoryServicer) *SavingsCategoryHandler {
	return &SavingsCategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a savings category.
type CreateCategoryRequest struct {
	Name         string           `json:"name" binding:"required,notblank,max=100"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"required,gt=0" swaggertype:"number"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Icon         string           `json:"icon" binding:"omitempty,max=16"`
	Color        string           `json:"color" binding:"omitempty,hex_color"`
	TargetDate   string           `json:"target_date" example:"2026-12-31"`
	Priority     models.Priority  `json:"priority" binding:"omitempty,savings_priority" swaggertype:"integer"`
}

// UpdateCategoryRequest represents a partial update. Omitted fields are unchanged;
// an empty target_date clears it.
type UpdateCategoryRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"omitempty,gt=0" swaggertype:"number"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Icon         *string          `json:"icon" binding:"omitempty,max=16"`
	Color        *string          `json:"color" binding:"omitempty,hex_color"`
	TargetDate   *string          `json:"target_date" example:"2026-12-31"`
	Priority     *models.Priority `json:"priority" binding:"omitempty,savings_priority" swaggertype:"integer"`
}

// DeactivateCategoryResponse is returned after a category is deactivated.
type DeactivateCategoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateCategory handles the creation of a new savings category.
// @Summary     Create savings category
// @Description Create a new savings category with a zero balance
// @Tags        savings-categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.SavingsCategory "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories [post]
func (h *SavingsCategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	params := services.CreateCategoryParams{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		Color:        req.Color,
		TargetAmount: *req.TargetAmount,
		Priority:     req.Priority,
	}
	if strings.TrimSpace(req.TargetDate) != "" {
		targetDate, err := parseDate(req.TargetDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		params.TargetDate = &targetDate
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories lists active savings categories.
// @Summary     Get savings categories
// @Description Get active savings categories ordered by priority, then newest first
// @Tags        savings-categories
// @Produce     json
// @Success     200 {array}  models.SavingsCategory "Categories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories [get]
func (h *SavingsCategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves an active savings category.
// @Summary     Get savings category by ID
// @Tags        savings-categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} models.SavingsCategory "Category"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories/{id} [get]
func (h *SavingsCategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory applies a partial update to a savings category.
// @Summary     Update savings category
// @Description Update any of name, description, icon, color, target amount, target date or priority
// @Tags        savings-categories
// @Accept      json
// @Produce     json
// @Param       id      path int                   true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} models.SavingsCategory "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories/{id} [put]
func (h *SavingsCategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	params := services.UpdateCategoryParams{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		Color:        req.Color,
		TargetAmount: req.TargetAmount,
		Priority:     req.Priority,
	}
	if req.TargetDate != nil {
		if strings.TrimSpace(*req.TargetDate) == "" {
			params.ClearTargetDate = true
		} else {
			targetDate, err := parseDate(*req.TargetDate)
			if err != nil {
				respondWithError(c, err)
				return
			}
			params.TargetDate = &targetDate
		}
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory deactivates a savings category. Its transactions are kept.
// @Summary     Deactivate savings category
// @Tags        savings-categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} DeactivateCategoryResponse "Category deactivated"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories/{id} [delete]
func (h *SavingsCategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeactivateCategory(c.Request.Context(), categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeactivateCategoryResponse{
		Success: true,
		Message: "Category deactivated successfully",
	})
}

// GetCategoryTransactions lists the newest ledger entries of a category.
// @Summary     Get category transactions
// @Description Get the most recent transactions of a category, including deactivated ones
// @Tags        savings-categories
// @Produce     json
// @Param       id    path  int true  "Category ID"
// @Param       limit query int false "Maximum entries (default 10, max 100)"
// @Success     200 {array}  models.SavingsTransaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories/{id}/transactions [get]
func (h *SavingsCategoryHandler) GetCategoryTransactions(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.LimitRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	page.Defaults()

	transactions, err := h.categoryService.GetCategoryTransactions(c.Request.Context(), categoryID, page.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetSummary aggregates the active categories.
// @Summary     Get savings summary
// @Description Totals and average progress across active categories plus the five newest transactions
// @Tags        savings-categories
// @Produce     json
// @Success     200 {object} services.SavingsSummary "Summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/summary [get]
func (h *SavingsCategoryHandler) GetSummary(c *gin.Context) {
	summary, err := h.categoryService.GetSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
