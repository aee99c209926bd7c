package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/money"
)

// reportService is the read-only aggregation layer. It never mutates the
// expense or category tables and has no retry logic; every query is
// idempotent and failures surface as internal errors for the handler layer
// to translate.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// dateParts returns SQL expressions extracting the year and month from the
// expense date. Production runs on Postgres; tests run on SQLite.
func (s *reportService) dateParts() (yearExpr, monthExpr string) {
	if s.db.Dialector.Name() == "postgres" {
		return "EXTRACT(YEAR FROM expenses.date)::int", "EXTRACT(MONTH FROM expenses.date)::int"
	}
	return "CAST(strftime('%Y', expenses.date) AS INTEGER)", "CAST(strftime('%m', expenses.date) AS INTEGER)"
}

// CategoryTotals returns per-category spending for the user's visible
// categories (globals plus their own), optionally restricted to a calendar
// year and month. The period filter sits inside the join condition so
// categories with no matching expenses still appear with a zero total.
// Rows are ordered by total descending, then id ascending for a stable
// tie-break.
func (s *reportService) CategoryTotals(userID uint, year, month *int) ([]CategoryTotal, error) {
	yearExpr, monthExpr := s.dateParts()

	join := "LEFT JOIN expenses ON expenses.category_id = categories.id AND expenses.user_id = ?"
	args := []interface{}{userID}
	if year != nil {
		join += " AND " + yearExpr + " = ?"
		args = append(args, *year)
	}
	if month != nil {
		join += " AND " + monthExpr + " = ?"
		args = append(args, *month)
	}

	var totals []CategoryTotal
	err := s.db.Model(&models.Category{}).
		Select("categories.id AS category_id, categories.name, categories.icon, categories.color, COALESCE(SUM(expenses.amount), 0) AS total").
		Joins(join, args...).
		Where("categories.user_id = ? OR categories.user_id IS NULL", userID).
		Group("categories.id, categories.name, categories.icon, categories.color").
		Order("total DESC, categories.id ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// MonthlyTotal sums the user's expenses whose date falls in the given
// calendar month. Returns 0, not an error, when nothing matches.
func (s *reportService) MonthlyTotal(userID uint, year int, month time.Month) (money.Cents, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var total money.Cents
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, nextMonth).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// MonthlySeries returns per-month spending totals for the trailing
// monthsBack calendar months ending today. The window starts monthsBack-1
// months before today's date; months with no expenses are omitted from the
// series, unlike CategoryTotals which always includes zero rows.
func (s *reportService) MonthlySeries(userID uint, monthsBack int) ([]MonthTotal, error) {
	if monthsBack <= 0 {
		monthsBack = 6
	}

	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -(monthsBack - 1), 0)

	yearExpr, monthExpr := s.dateParts()

	var series []MonthTotal
	err := s.db.Model(&models.Expense{}).
		Select(yearExpr+" AS year, "+monthExpr+" AS month, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group(yearExpr + ", " + monthExpr).
		Order(yearExpr + " ASC, " + monthExpr + " ASC").
		Scan(&series).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return series, nil
}

// TotalStats returns the user's all-time expense count and amount.
func (s *reportService) TotalStats(userID uint) (*TotalStats, error) {
	var stats TotalStats
	err := s.db.Model(&models.Expense{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stats, nil
}
