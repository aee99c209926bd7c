package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spendwise/internal/models"
	"spendwise/internal/money"
	"spendwise/internal/services"
)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/health", handler.Health)
	auth := r.Group("", injectUserID(1))
	auth.GET("/monthly-chart", handler.MonthlyChart)
	auth.GET("/expense-summary", handler.ExpenseSummary)
	auth.GET("/recent-expenses", handler.RecentExpenses)
	return r
}

func TestReportHandler_MonthlyChart(t *testing.T) {
	t.Run("returns labels and amounts", func(t *testing.T) {
		var capturedMonths int
		reportSvc := &mockReportService{
			monthlySeriesFn: func(_ uint, monthsBack int) ([]services.MonthTotal, error) {
				capturedMonths = monthsBack
				return []services.MonthTotal{
					{Year: 2024, Month: 1, Total: 1550},
					{Year: 2024, Month: 3, Total: 2000},
				}, nil
			},
		}
		handler := NewReportHandler(reportSvc, &mockExpenseService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/monthly-chart", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedMonths != 6 {
			t.Errorf("expected a six-month window, got %d", capturedMonths)
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Error("expected success true")
		}
		months := result["months"].([]interface{})
		if len(months) != 2 {
			t.Fatalf("expected 2 months, got %d", len(months))
		}
		if months[0] != "Jan 2024" || months[1] != "Mar 2024" {
			t.Errorf("unexpected month labels: %v", months)
		}
		amounts := result["amounts"].([]interface{})
		if amounts[0].(float64) != 15.5 || amounts[1].(float64) != 20.0 {
			t.Errorf("unexpected amounts: %v", amounts)
		}
	})

	t.Run("returns generic 500 payload on failure", func(t *testing.T) {
		reportSvc := &mockReportService{
			monthlySeriesFn: func(_ uint, _ int) ([]services.MonthTotal, error) {
				return nil, fmt.Errorf("db down")
			},
		}
		handler := NewReportHandler(reportSvc, &mockExpenseService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/monthly-chart", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["success"] != false {
			t.Error("expected success false")
		}
		if result["error"] != "Failed to load chart data" {
			t.Errorf("unexpected error message: %v", result["error"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{}, &mockExpenseService{})
		r := gin.New()
		r.GET("/monthly-chart", handler.MonthlyChart)

		rec := doRequest(r, "GET", "/monthly-chart", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestReportHandler_ExpenseSummary(t *testing.T) {
	t.Run("returns per-category percentages", func(t *testing.T) {
		reportSvc := &mockReportService{
			monthlyTotalFn: func(_ uint, _ int, _ time.Month) (money.Cents, error) {
				return 2000, nil
			},
			totalStatsFn: func(_ uint) (*services.TotalStats, error) {
				return &services.TotalStats{Count: 3, Total: 5000}, nil
			},
			categoryTotalsFn: func(_ uint, year, month *int) ([]services.CategoryTotal, error) {
				if year == nil || month == nil {
					t.Error("expected the current-month period filter to be set")
				}
				return []services.CategoryTotal{
					{CategoryID: 1, Name: "Food & Dining", Total: 1500},
					{CategoryID: 2, Name: "Transportation", Total: 500},
					{CategoryID: 3, Name: "Shopping", Total: 0},
				}, nil
			},
		}
		handler := NewReportHandler(reportSvc, &mockExpenseService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/expense-summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Error("expected success true")
		}
		if result["monthly_total"].(float64) != 20.0 {
			t.Errorf("expected monthly_total 20.0, got %v", result["monthly_total"])
		}
		if result["total_expenses"].(float64) != 3 {
			t.Errorf("expected total_expenses 3, got %v", result["total_expenses"])
		}
		if result["total_amount"].(float64) != 50.0 {
			t.Errorf("expected total_amount 50.0, got %v", result["total_amount"])
		}

		// The zero-total category is dropped from the breakdown.
		categories := result["categories"].([]interface{})
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
		food := categories[0].(map[string]interface{})
		if food["percentage"].(float64) != 75.0 {
			t.Errorf("expected 75%% share, got %v", food["percentage"])
		}
		transport := categories[1].(map[string]interface{})
		if transport["percentage"].(float64) != 25.0 {
			t.Errorf("expected 25%% share, got %v", transport["percentage"])
		}
	})

	t.Run("names the current month", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{}, &mockExpenseService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/expense-summary", "")

		result := parseJSON(t, rec)
		now := time.Now()
		if result["month"] != now.Month().String() {
			t.Errorf("expected month %s, got %v", now.Month(), result["month"])
		}
		if int(result["year"].(float64)) != now.Year() {
			t.Errorf("expected year %d, got %v", now.Year(), result["year"])
		}
	})

	t.Run("returns generic 500 payload on failure", func(t *testing.T) {
		reportSvc := &mockReportService{
			monthlyTotalFn: func(_ uint, _ int, _ time.Month) (money.Cents, error) {
				return 0, fmt.Errorf("db down")
			},
		}
		handler := NewReportHandler(reportSvc, &mockExpenseService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/expense-summary", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["success"] != false {
			t.Error("expected success false")
		}
	})
}

func TestReportHandler_RecentExpenses(t *testing.T) {
	t.Run("returns expenses with nested category", func(t *testing.T) {
		expSvc := &mockExpenseService{
			getRecentExpensesFn: func(_ uint, limit int) ([]models.Expense, error) {
				return []models.Expense{
					{
						Base:        models.Base{ID: 1},
						Amount:      1234,
						Description: "lunch",
						Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
						Category:    models.Category{Name: "Food & Dining", Icon: "fas fa-utensils", Color: "#EF4444"},
					},
				}, nil
			},
		}
		handler := NewReportHandler(&mockReportService{}, expSvc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/recent-expenses", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Error("expected success true")
		}
		expenses := result["expenses"].([]interface{})
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		expense := expenses[0].(map[string]interface{})
		if expense["amount"].(float64) != 12.34 {
			t.Errorf("expected amount 12.34, got %v", expense["amount"])
		}
		category := expense["category"].(map[string]interface{})
		if category["icon"] != "fas fa-utensils" {
			t.Errorf("unexpected category icon: %v", category["icon"])
		}
	})

	t.Run("defaults limit to 10", func(t *testing.T) {
		var capturedLimit int
		expSvc := &mockExpenseService{
			getRecentExpensesFn: func(_ uint, limit int) ([]models.Expense, error) {
				capturedLimit = limit
				return []models.Expense{}, nil
			},
		}
		handler := NewReportHandler(&mockReportService{}, expSvc)
		r := setupReportRouter(handler)

		doRequest(r, "GET", "/recent-expenses", "")
		if capturedLimit != 10 {
			t.Errorf("expected default limit 10, got %d", capturedLimit)
		}

		doRequest(r, "GET", "/recent-expenses?limit=3", "")
		if capturedLimit != 3 {
			t.Errorf("expected limit 3, got %d", capturedLimit)
		}

		// Non-positive and junk values fall back to the default.
		doRequest(r, "GET", "/recent-expenses?limit=-1", "")
		if capturedLimit != 10 {
			t.Errorf("expected fallback limit 10, got %d", capturedLimit)
		}
	})

	t.Run("returns generic 500 payload on failure", func(t *testing.T) {
		expSvc := &mockExpenseService{
			getRecentExpensesFn: func(_ uint, _ int) ([]models.Expense, error) {
				return nil, fmt.Errorf("db down")
			},
		}
		handler := NewReportHandler(&mockReportService{}, expSvc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/recent-expenses", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["success"] != false {
			t.Error("expected success false")
		}
	})
}

func TestReportHandler_Health(t *testing.T) {
	handler := NewReportHandler(&mockReportService{}, &mockExpenseService{})
	r := setupReportRouter(handler)

	rec := doRequest(r, "GET", "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", result["status"])
	}
	if result["version"] != apiVersion {
		t.Errorf("expected version %s, got %v", apiVersion, result["version"])
	}
	if _, err := time.Parse(time.RFC3339, result["timestamp"].(string)); err != nil {
		t.Errorf("timestamp not RFC3339: %v", result["timestamp"])
	}
}
