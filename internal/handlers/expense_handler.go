package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/money"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

const dateLayout = "2006-01-02"

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for recording an
// expense. Amount is a decimal string such as "12.34" so no precision is
// lost on the way in.
type CreateExpenseRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"date" binding:"omitempty,calendar_date"`
}

// ListExpensesRequest represents the query parameters for listing expenses
type ListExpensesRequest struct {
	pagination.PageRequest
	CategoryID *uint  `form:"category_id"`
	DateFrom   string `form:"date_from" binding:"omitempty,calendar_date"`
	DateTo     string `form:"date_to" binding:"omitempty,calendar_date"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID          uint    `json:"id"`
	CategoryID  uint    `json:"category_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// expensePayload shapes an expense for JSON output with the amount in
// major units and the date as a plain calendar date.
func expensePayload(e *models.Expense) gin.H {
	return gin.H{
		"id":          e.ID,
		"category_id": e.CategoryID,
		"amount":      e.Amount.Float64(),
		"description": e.Description,
		"date":        e.Date.Format(dateLayout),
		"category": gin.H{
			"id":    e.Category.ID,
			"name":  e.Category.Name,
			"icon":  e.Category.Icon,
			"color": e.Category.Color,
		},
	}
}

// CreateExpense handles recording a new expense
// @Summary     Record an expense
// @Description Record an expense against a category visible to the user; the date defaults to today
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expensePayload(expense)})
}

// GetExpenses handles listing the user's expenses
// @Summary     List expenses
// @Description Get a paginated list of the user's expenses, newest first, with optional category and date filters
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       category_id query int false "Filter by category"
// @Param       date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param       date_to query string false "Filter to date (YYYY-MM-DD)"
// @Success     200 {array} ExpenseResponse "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid filters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ExpenseFilter{CategoryID: req.CategoryID}
	if req.DateFrom != "" {
		from, err := time.Parse(dateLayout, req.DateFrom)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date_from"))
			return
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse(dateLayout, req.DateTo)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date_to"))
			return
		}
		filter.DateTo = &to
	}

	result, err := h.expenseService.GetUserExpenses(userID, req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses := make([]gin.H, 0, len(result.Data))
	for i := range result.Data {
		expenses = append(expenses, expensePayload(&result.Data[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":    expenses,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_items": result.TotalItems,
		"total_pages": result.TotalPages,
	})
}

// GetExpenseByID handles the retrieval of a single expense
// @Summary     Get expense by ID
// @Description Get one of the user's expenses by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expensePayload(expense)})
}

// DeleteExpense handles deleting an expense
// @Summary     Delete expense
// @Description Delete one of the user's expenses by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
