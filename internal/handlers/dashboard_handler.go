package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/aggregation"
	"finboard/internal/services"
)

// DashboardHandler serves the aggregated views of the user's records
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

func (h *DashboardHandler) rangeOf(c *gin.Context) (aggregation.Range, bool) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return aggregation.Range{}, false
	}
	r, err := parseRange(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return aggregation.Range{}, false
	}
	return r, true
}

// GetSummary returns balances, period totals and comparisons
// @Summary     Dashboard summary
// @Description Balances, period totals, comparisons with the previous period and groupings
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "First day (YYYY-MM-DD), defaults to the start of the month"
// @Param       to   query string false "Last day (YYYY-MM-DD), defaults to the end of the month"
// @Success     200 {object} aggregation.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	r, ok := h.rangeOf(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), r)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetExpensesByCategory returns expense totals per category
// @Summary     Expenses by category
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "First day (YYYY-MM-DD)"
// @Param       to   query string false "Last day (YYYY-MM-DD)"
// @Success     200 {object} map[string][]aggregation.CategoryTotal "Groups"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /dashboard/expenses/by-category [get]
func (h *DashboardHandler) GetExpensesByCategory(c *gin.Context) {
	r, ok := h.rangeOf(c)
	if !ok {
		return
	}

	groups, err := h.dashboardService.ExpensesByCategory(c.Request.Context(), r)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": groups})
}

// GetExpensesByDay returns expense totals per day
// @Summary     Expenses by day
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "First day (YYYY-MM-DD)"
// @Param       to   query string false "Last day (YYYY-MM-DD)"
// @Success     200 {object} map[string][]aggregation.DayTotal "Days"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /dashboard/expenses/by-day [get]
func (h *DashboardHandler) GetExpensesByDay(c *gin.Context) {
	r, ok := h.rangeOf(c)
	if !ok {
		return
	}

	days, err := h.dashboardService.ExpensesByDay(c.Request.Context(), r)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetDailyChart renders the daily expenses bar chart
// @Summary     Daily expenses chart
// @Tags        dashboard
// @Produce     png
// @Security    BearerAuth
// @Param       from query string false "First day (YYYY-MM-DD)"
// @Param       to   query string false "Last day (YYYY-MM-DD)"
// @Success     200 {file} binary "PNG image"
// @Failure     404 {object} ErrorResponse "No expenses in the range"
// @Router      /dashboard/charts/daily.png [get]
func (h *DashboardHandler) GetDailyChart(c *gin.Context) {
	h.chart(c, h.dashboardService.DailyChart)
}

// GetCategoryChart renders the expenses by category pie chart
// @Summary     Category chart
// @Tags        dashboard
// @Produce     png
// @Security    BearerAuth
// @Param       from query string false "First day (YYYY-MM-DD)"
// @Param       to   query string false "Last day (YYYY-MM-DD)"
// @Success     200 {file} binary "PNG image"
// @Failure     404 {object} ErrorResponse "No expenses in the range"
// @Router      /dashboard/charts/categories.png [get]
func (h *DashboardHandler) GetCategoryChart(c *gin.Context) {
	h.chart(c, h.dashboardService.CategoryChart)
}

func (h *DashboardHandler) chart(c *gin.Context, render func(ctx context.Context, r aggregation.Range) ([]byte, error)) {
	r, ok := h.rangeOf(c)
	if !ok {
		return
	}

	png, err := render(c.Request.Context(), r)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// GetInvestmentReturn returns the net return of one investment
// @Summary     Investment net return
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string]aggregation.NetReturn "Net return"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id}/return [get]
func (h *DashboardHandler) GetInvestmentReturn(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ret, err := h.dashboardService.InvestmentReturn(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"return": ret})
}

// GetInvestmentReturns returns the net return of every investment
// @Summary     All investment net returns
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]aggregation.NetReturn "Net returns"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/returns [get]
func (h *DashboardHandler) GetInvestmentReturns(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	returns, err := h.dashboardService.InvestmentReturns(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"returns": returns})
}

// GetObjectiveProgress returns how far the investments linked to an
// objective have gone towards its target
// @Summary     Objective progress
// @Tags        objectives
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Objective ID"
// @Success     200 {object} map[string]aggregation.Progress "Progress"
// @Failure     404 {object} ErrorResponse "Objective not found"
// @Router      /objectives/{id}/progress [get]
func (h *DashboardHandler) GetObjectiveProgress(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.dashboardService.ObjectiveProgress(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
