package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prince-yadav810/taponce-api/internal/application/service"
	"github.com/prince-yadav810/taponce-api/internal/domain/enum"
	"github.com/prince-yadav810/taponce-api/internal/kanban"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/request"
	"github.com/prince-yadav810/taponce-api/internal/presentation/http/dto/response"
)

// BoardHandler handles kanban board HTTP requests
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// Get returns the board columns for the authenticated operator. Search and
// agent filters only change what is visible, never what is stored.
func (h *BoardHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	columns, err := h.boardService.LoadBoard(
		c.Request.Context(),
		userID.String(),
		c.Query("search"),
		c.Query("agent"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Board retrieved successfully", gin.H{
		"columns": columns,
	})
}

// Drag applies a card drop to the board
func (h *BoardHandler) Drag(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.DragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	target := kanban.DropTarget{OrderID: req.OverOrderID}
	if req.OverColumn != nil {
		column := enum.OrderStatus(*req.OverColumn)
		if !column.IsValid() {
			response.BadRequest(c, "Invalid board column")
			return
		}
		target.Column = &column
	}

	mutation, err := h.boardService.Drag(c.Request.Context(), userID.String(), req.OrderID, target)
	if err != nil {
		response.Error(c, err)
		return
	}

	if mutation == nil {
		response.OK(c, "Nothing to do", nil)
		return
	}

	response.OK(c, "Board updated", gin.H{
		"order_id":       mutation.OrderID,
		"from_status":    mutation.FromStatus,
		"to_status":      mutation.ToStatus,
		"status_changed": mutation.StatusChanged,
	})
}

// Refresh drops the cached snapshot so the next load hits the store
func (h *BoardHandler) Refresh(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.boardService.RefreshBoard(c.Request.Context(), userID.String()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Board refreshed", nil)
}
