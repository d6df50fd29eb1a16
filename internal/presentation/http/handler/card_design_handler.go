package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/application/service"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/request"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/response"
)

// CardDesignHandler handles card catalog HTTP requests
type CardDesignHandler struct {
	designService *service.CardDesignService
}

// NewCardDesignHandler creates a new card design handler
func NewCardDesignHandler(designService *service.CardDesignService) *CardDesignHandler {
	return &CardDesignHandler{designService: designService}
}

// List handles listing the card catalog
func (h *CardDesignHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	designs, err := h.designService.ListCardDesigns(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Card designs retrieved successfully", gin.H{
		"designs": designs,
	})
}

// Create adds a design to the catalog
func (h *CardDesignHandler) Create(c *gin.Context) {
	var req request.CreateCardDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	design, err := h.designService.CreateCardDesign(c.Request.Context(), &service.CreateCardDesignInput{
		Name:    req.Name,
		BaseMSP: req.BaseMSP,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Card design created successfully", design)
}

// Update applies a partial update to a catalog entry
func (h *CardDesignHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid design ID")
		return
	}

	var req request.UpdateCardDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	design, err := h.designService.UpdateCardDesign(c.Request.Context(), id, &service.UpdateCardDesignInput{
		Name:    req.Name,
		BaseMSP: req.BaseMSP,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Card design updated successfully", design)
}
