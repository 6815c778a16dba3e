package handler

import (
	"context"
	"net/http"
	"time"

	"caseflow/internal/service"

	"github.com/gin-gonic/gin"
)

type DeadlineHandler struct {
	svc service.DeadlineService
}

func NewDeadlineHandler(svc service.DeadlineService) *DeadlineHandler {
	return &DeadlineHandler{svc: svc}
}

func (h *DeadlineHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.PATCH("/:id/due-date", h.Reschedule)
}

type rescheduleRequest struct {
	DueDate string `json:"due_date" binding:"required"` // YYYY-MM-DD
}

// List returns all deadlines for the authenticated user
func (h *DeadlineHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deadlines, err := h.svc.List(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deadlines": deadlines})
}

// Reschedule updates a deadline's due date (calendar drag-and-drop)
func (h *DeadlineHandler) Reschedule(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date, expected YYYY-MM-DD"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deadline, err := h.svc.Reschedule(ctx, userID.(string), c.Param("id"), dueDate)
	if err != nil {
		if err == service.ErrDeadlineNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deadline": deadline})
}
