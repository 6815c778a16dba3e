package handler

import (
	"context"
	"net/http"
	"time"

	"caseflow/internal/service"

	"github.com/gin-gonic/gin"
)

// FunctionHandler exposes the scanner as an invokable remote function,
// triggered by client bootstrap or an external scheduler.
type FunctionHandler struct {
	scanner service.ScannerService
}

func NewFunctionHandler(scanner service.ScannerService) *FunctionHandler {
	return &FunctionHandler{scanner: scanner}
}

func (h *FunctionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/check-deadline-notifications", h.CheckDeadlineNotifications)
}

// CheckDeadlineNotifications runs one scan and reports which deadlines
// got a notification. A fetch failure means the scan did not run;
// callers must not advance their daily gate on a non-200 response.
func (h *FunctionHandler) CheckDeadlineNotifications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	created, err := h.scanner.Scan(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if created == nil {
		created = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications_created": created})
}
