package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	workbookHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Workbook  string `json:"workbook"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. The checker
// may be nil when no workbook is configured.
func NewHealthController(workbookHealthChecker func() bool) *HealthController {
	return &HealthController{
		workbookHealthChecker: workbookHealthChecker,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	workbookStatus := "disabled"
	if h.workbookHealthChecker != nil {
		workbookStatus = "disconnected"
		if h.workbookHealthChecker() {
			workbookStatus = "connected"
		}
	}

	response := HealthResponse{
		Status:    "ok",
		Workbook:  workbookStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
