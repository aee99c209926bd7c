package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"spendwise/internal/logger"
	"spendwise/internal/money"
	"spendwise/internal/services"
)

// apiVersion is reported by the health endpoint.
const apiVersion = "1.0.0"

// chartMonths is the trailing window length for the monthly chart.
const chartMonths = 6

// ReportHandler adapts the aggregation layer into the read-only payloads
// the browser charting client consumes. No endpoint here mutates state;
// any data-access failure collapses into a generic error payload.
type ReportHandler struct {
	reportService  services.ReportServicer
	expenseService services.ExpenseServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer, expenseService services.ExpenseServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, expenseService: expenseService}
}

// reportError writes the charting client's error shape: a message plus a
// false success flag. Internal details are logged, never returned.
func reportError(c *gin.Context, message string, err error) {
	logger.Get().Errorw("report query failed",
		"error", err.Error(),
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"success": false,
	})
}

// MonthlyChart returns the six-month trailing spending series
// @Summary     Monthly chart data
// @Description Spending totals per month over the trailing six months; months without expenses are omitted
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "months, amounts, success"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} map[string]interface{} "error, success"
// @Router      /monthly-chart [get]
func (h *ReportHandler) MonthlyChart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.reportService.MonthlySeries(userID, chartMonths)
	if err != nil {
		reportError(c, "Failed to load chart data", err)
		return
	}

	months := make([]string, 0, len(series))
	amounts := make([]float64, 0, len(series))
	for _, entry := range series {
		label := time.Date(entry.Year, time.Month(entry.Month), 1, 0, 0, 0, 0, time.UTC)
		months = append(months, label.Format("Jan 2006"))
		amounts = append(amounts, entry.Total.Float64())
	}

	c.JSON(http.StatusOK, gin.H{
		"months":  months,
		"amounts": amounts,
		"success": true,
	})
}

// ExpenseSummary returns the current-month spending summary
// @Summary     Expense summary
// @Description Current-month total, all-time stats, and per-category totals with percentage shares
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "summary payload"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} map[string]interface{} "error, success"
// @Router      /expense-summary [get]
func (h *ReportHandler) ExpenseSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()

	monthlyTotal, err := h.reportService.MonthlyTotal(userID, year, month)
	if err != nil {
		reportError(c, "Failed to load expense summary", err)
		return
	}

	stats, err := h.reportService.TotalStats(userID)
	if err != nil {
		reportError(c, "Failed to load expense summary", err)
		return
	}

	monthNum := int(month)
	totals, err := h.reportService.CategoryTotals(userID, &year, &monthNum)
	if err != nil {
		reportError(c, "Failed to load expense summary", err)
		return
	}

	// Zero-total categories stay in the raw aggregate but carry no
	// percentage, so they are excluded here.
	categories := make([]gin.H, 0, len(totals))
	for _, cat := range totals {
		if cat.Total <= 0 {
			continue
		}
		categories = append(categories, gin.H{
			"id":         cat.CategoryID,
			"name":       cat.Name,
			"icon":       cat.Icon,
			"color":      cat.Color,
			"total":      cat.Total.Float64(),
			"percentage": money.Percentage(cat.Total, monthlyTotal),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"monthly_total":  monthlyTotal.Float64(),
		"total_expenses": stats.Count,
		"total_amount":   stats.Total.Float64(),
		"categories":     categories,
		"month":          month.String(),
		"year":           year,
		"success":        true,
	})
}

// RecentExpenses returns the user's latest expenses
// @Summary     Recent expenses
// @Description The user's most recent expenses, date descending then creation time descending
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum number of expenses (default 10)"
// @Success     200 {object} map[string]interface{} "expenses, success"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} map[string]interface{} "error, success"
// @Router      /recent-expenses [get]
func (h *ReportHandler) RecentExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	expenses, err := h.expenseService.GetRecentExpenses(userID, limit)
	if err != nil {
		reportError(c, "Failed to load recent expenses", err)
		return
	}

	payload := make([]gin.H, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		payload = append(payload, gin.H{
			"id":          e.ID,
			"amount":      e.Amount.Float64(),
			"description": e.Description,
			"date":        e.Date.Format(dateLayout),
			"category": gin.H{
				"name":  e.Category.Name,
				"icon":  e.Category.Icon,
				"color": e.Category.Color,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": payload,
		"success":  true,
	})
}

// Health reports service liveness
// @Summary     Health check
// @Description Unauthenticated liveness probe
// @Tags        reports
// @Produce     json
// @Success     200 {object} map[string]interface{} "status, timestamp, version"
// @Router      /health [get]
func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   apiVersion,
	})
}
