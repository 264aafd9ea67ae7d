package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgethub/internal/services"
)

// SavingsHandler handles the single legacy savings goal.
type SavingsHandler struct {
	savingsService services.SavingsServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// SetGoalRequest represents the request payload for setting the savings goal.
type SetGoalRequest struct {
	Goal *decimal.Decimal `json:"goal" binding:"required,gte=0" swaggertype:"number"`
}

// AmountRequest represents a request carrying a positive amount.
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
}

// GetSavings returns the savings goal and current amount.
// @Summary     Get savings
// @Description Get the savings goal and current amount, zeros when nothing has been saved
// @Tags        savings
// @Produce     json
// @Success     200 {object} models.Savings "Savings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings [get]
func (h *SavingsHandler) GetSavings(c *gin.Context) {
	savings, err := h.savingsService.GetSavings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

// SetGoal sets the savings goal.
// @Summary     Set savings goal
// @Tags        savings
// @Accept      json
// @Produce     json
// @Param       request body SetGoalRequest true "Goal"
// @Success     200 {object} models.Savings "Updated savings"
// @Failure     400 {object} ErrorResponse "Invalid goal"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goal [post]
func (h *SavingsHandler) SetGoal(c *gin.Context) {
	var req SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	savings, err := h.savingsService.SetGoal(c.Request.Context(), *req.Goal)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

// AddAmount adds money to the savings.
// @Summary     Add to savings
// @Tags        savings
// @Accept      json
// @Produce     json
// @Param       request body AmountRequest true "Amount"
// @Success     200 {object} models.Savings "Updated savings"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/add [post]
func (h *SavingsHandler) AddAmount(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	savings, err := h.savingsService.AddAmount(c.Request.Context(), *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

// RemoveAmount takes money out of the savings. The balance never goes below zero.
// @Summary     Remove from savings
// @Tags        savings
// @Accept      json
// @Produce     json
// @Param       request body AmountRequest true "Amount"
// @Success     200 {object} models.Savings "Updated savings"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/remove [post]
func (h *SavingsHandler) RemoveAmount(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	savings, err := h.savingsService.RemoveAmount(c.Request.Context(), *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

// Reset zeroes the current amount.
// @Summary     Reset savings
// @Tags        savings
// @Produce     json
// @Success     200 {object} models.Savings "Reset savings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/reset [post]
func (h *SavingsHandler) Reset(c *gin.Context) {
	savings, err := h.savingsService.Reset(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}
