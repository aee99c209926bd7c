package services

import (
	"time"

	"spendwise/internal/models"
	"spendwise/internal/money"
	"spendwise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(identity, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	DeleteUser(userID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name, icon, color string) (*models.Category, error)
	GetVisibleCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	CategoryID *uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID, categoryID uint, amount money.Cents, description string, date time.Time) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	GetRecentExpenses(userID uint, limit int) ([]models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// CategoryTotal is one row of the per-category spending aggregate.
// Categories with no matching expenses appear with a zero total.
type CategoryTotal struct {
	CategoryID uint        `json:"category_id"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon"`
	Color      string      `json:"color"`
	Total      money.Cents `json:"total_cents"`
}

// MonthTotal is one entry of the trailing monthly spending series.
type MonthTotal struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Total money.Cents `json:"total_cents"`
}

// TotalStats holds a user's all-time expense count and amount.
type TotalStats struct {
	Count int64       `json:"count"`
	Total money.Cents `json:"total_cents"`
}

// ReportServicer defines the contract for the read-only aggregation layer.
type ReportServicer interface {
	CategoryTotals(userID uint, year, month *int) ([]CategoryTotal, error)
	MonthlyTotal(userID uint, year int, month time.Month) (money.Cents, error)
	MonthlySeries(userID uint, monthsBack int) ([]MonthTotal, error)
	TotalStats(userID uint) (*TotalStats, error)
}
