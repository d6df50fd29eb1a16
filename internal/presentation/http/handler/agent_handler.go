package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/application/service"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/domain/repository"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/request"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/response"
	"github.com/prince-yadav810/taponce-api/pkg/pagination"
)

// AgentHandler handles agent and payout HTTP requests
type AgentHandler struct {
	agentService *service.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// List handles listing agents
func (h *AgentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))

	params := &repository.AgentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		City:      c.Query("city"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		params.Status = &statusStr
	}

	result, err := h.agentService.ListAgents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Agents retrieved successfully", result)
}

// Create handles agent onboarding
func (h *AgentHandler) Create(c *gin.Context) {
	var req request.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	agent, err := h.agentService.CreateAgent(c.Request.Context(), &service.CreateAgentInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		City:           req.City,
		ReferralCode:   req.ReferralCode,
		UPIID:          req.UPIID,
		BankAccount:    req.BankAccount,
		BankIFSC:       req.BankIFSC,
		BankHolderName: req.BankHolderName,
		BaseCommission: req.BaseCommission,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Agent created successfully", agent)
}

// Get handles getting a single agent
func (h *AgentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agent ID")
		return
	}

	agent, err := h.agentService.GetAgent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agent retrieved successfully", agent)
}

// Update applies a partial update to an agent
func (h *AgentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agent ID")
		return
	}

	var req request.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	agent, err := h.agentService.UpdateAgent(c.Request.Context(), id, &service.UpdateAgentInput{
		Status:         req.Status,
		BaseCommission: req.BaseCommission,
		City:           req.City,
		UPIID:          req.UPIID,
		BankAccount:    req.BankAccount,
		BankIFSC:       req.BankIFSC,
		BankHolderName: req.BankHolderName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"agent": gin.H{
			"id":     agent.ID,
			"status": agent.Status,
		},
	})
}

// Payout settles part of an agent's commission balance
func (h *AgentHandler) Payout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payout, err := h.agentService.Payout(c.Request.Context(), &service.PayoutInput{
		AgentID:     req.AgentID,
		Amount:      req.Amount,
		Method:      enum.PayoutMethod(req.Method),
		Notes:       req.Notes,
		ProcessedBy: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"payout": gin.H{
			"agentId":     payout.AgentID,
			"amount":      float64(payout.Amount) / 100,
			"method":      payout.Method,
			"processedAt": payout.ProcessedAt,
		},
	})
}

// ListPayouts lists all payouts
func (h *AgentHandler) ListPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))

	result, err := h.agentService.ListPayouts(c.Request.Context(), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payouts retrieved successfully", result)
}

// ListAgentPayouts lists payouts for one agent
func (h *AgentHandler) ListAgentPayouts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid agent ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))

	result, err := h.agentService.ListAgentPayouts(c.Request.Context(), id, &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payouts retrieved successfully", result)
}
