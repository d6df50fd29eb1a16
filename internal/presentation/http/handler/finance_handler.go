package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prince-yadav810/taponce-api/internal/application/service"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/request"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/response"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// FinanceHandler handles finance and expense HTTP requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// Summary returns the revenue, expense and profit rollup
func (h *FinanceHandler) Summary(c *gin.Context) {
	var start, end time.Time

	if startStr := c.Query("start_date"); startStr != "" {
		if parsed, err := time.Parse("2006-01-02", startStr); err == nil {
			start = parsed
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if parsed, err := time.Parse("2006-01-02", endStr); err == nil {
			end = parsed
		}
	}

	summary, err := h.financeService.GetSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Finance summary retrieved successfully", summary)
}

// Revenue returns just the revenue split for the period
func (h *FinanceHandler) Revenue(c *gin.Context) {
	var start, end time.Time

	if startStr := c.Query("start_date"); startStr != "" {
		if parsed, err := time.Parse("2006-01-02", startStr); err == nil {
			start = parsed
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if parsed, err := time.Parse("2006-01-02", endStr); err == nil {
			end = parsed
		}
	}

	summary, err := h.financeService.GetSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue retrieved successfully", summary.Revenue)
}

// CODPending lists delivered cash-on-delivery orders awaiting collection
func (h *FinanceHandler) CODPending(c *gin.Context) {
	pending, err := h.financeService.ListCODPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending COD orders retrieved successfully", gin.H{
		"orders": pending,
	})
}

// Liabilities lists agents with unpaid commission balances
func (h *FinanceHandler) Liabilities(c *gin.Context) {
	agents, err := h.financeService.ListLiabilities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission liabilities retrieved successfully", gin.H{
		"agents": agents,
	})
}

// CreateExpense records a manual business expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateExpenseInput{
		Category:    enum.ExpenseCategory(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.BadRequest(c, "Date must be in YYYY-MM-DD format")
			return
		}
		input.Date = date
	}

	expense, err := h.financeService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// ListExpenses lists recorded expenses with filters
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))

	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if categoryStr := c.Query("category"); categoryStr != "" {
		category := enum.ExpenseCategory(categoryStr)
		if !category.IsValid() {
			response.BadRequest(c, "Invalid expense category")
			return
		}
		params.Category = &category
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.financeService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}
