package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgethub/internal/models"
	"budgethub/internal/services"
)

// LedgerHandler handles deposits, withdrawals and transfers between savings categories.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// DepositRequest represents money added to a category.
type DepositRequest struct {
	Amount      *decimal.Decimal     `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Description string               `json:"description" binding:"max=500"`
	Source      models.SavingsSource `json:"source" binding:"omitempty,savings_source" enums:"manual,auto_save,transfer"`
}

// WithdrawRequest represents money taken out of a category.
type WithdrawRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Description string           `json:"description" binding:"max=500"`
}

// TransferRequest represents money moved between two categories.
type TransferRequest struct {
	FromCategoryID uint             `json:"from_category_id" binding:"required"`
	ToCategoryID   uint             `json:"to_category_id" binding:"required"`
	Amount         *decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Description    string           `json:"description" binding:"max=500"`
}

// TransferResponse is returned after a successful transfer.
type TransferResponse struct {
	Success         bool                    `json:"success"`
	UpdatedCategory *models.SavingsCategory `json:"updated_category"`
}

// Deposit adds money to a savings category.
// @Summary     Deposit into category
// @Tags        savings-ledger
// @Accept      json
// @Produce     json
// @Param       id      path int            true "Category ID"
// @Param       request body DepositRequest true "Deposit details"
// @Success     200 {object} models.SavingsCategory "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories/{id}/add [post]
func (h *LedgerHandler) Deposit(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.ledgerService.Deposit(c.Request.Context(), services.DepositParams{
		CategoryID:  categoryID,
		Amount:      *req.Amount,
		Description: req.Description,
		Source:      req.Source,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Withdraw takes money out of a savings category.
// @Summary     Withdraw from category
// @Tags        savings-ledger
// @Accept      json
// @Produce     json
// @Param       id      path int             true "Category ID"
// @Param       request body WithdrawRequest true "Withdrawal details"
// @Success     200 {object} models.SavingsCategory "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid amount or insufficient funds"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/categories/{id}/remove [post]
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.ledgerService.Withdraw(c.Request.Context(), services.WithdrawParams{
		CategoryID:  categoryID,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Transfer moves money between two savings categories.
// @Summary     Transfer between categories
// @Description Withdraw from one category and deposit into another in a single unit of work
// @Tags        savings-ledger
// @Accept      json
// @Produce     json
// @Param       request body TransferRequest true "Transfer details"
// @Success     200 {object} TransferResponse "Updated destination category"
// @Failure     400 {object} ErrorResponse "Invalid input, same category or insufficient funds"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/transfer [post]
func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.ledgerService.Transfer(c.Request.Context(), services.TransferParams{
		FromCategoryID: req.FromCategoryID,
		ToCategoryID:   req.ToCategoryID,
		Amount:         *req.Amount,
		Description:    req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransferResponse{Success: true, UpdatedCategory: category})
}
