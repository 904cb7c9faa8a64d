package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// payrollHandler handles HTTP requests for the weekly payroll generator.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers payroll generator routes.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)
	rg.POST("/payroll/generate", h.generateWeek)
}

// generateWeek godoc
// @Summary Run the weekly payroll aggregation
// @Description Aggregates the week containing weekDate into one WEEKLY payment per worker plus one EXTRA payment per weekend day worked. Safe to re-run: PAID payments are never touched.
// @Tags payroll
// @Accept json
// @Produce json
// @Param run body dto.GeneratePayrollRequest true "Week to generate"
// @Success 200 {object} dto.PayrollRunResult
// @Failure 400 {object} map[string]string
// @Router /payroll/generate [post]
func (h *payrollHandler) generateWeek(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	weekDate, err := time.Parse(dto.DateLayout, req.WeekDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekDate, expected YYYY-MM-DD"})
		return
	}

	result, err := h.payrollService.GenerateWeek(c.Request.Context(), weekDate, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate payroll")
		return
	}

	logger.Info("Payroll generated",
		slog.String("week_start", result.WeekStart),
		slog.Int("weekly_upserted", result.WeeklyUpserted),
		slog.Int("extra_upserted", result.ExtraUpserted),
	)
	c.JSON(http.StatusOK, result)
}
