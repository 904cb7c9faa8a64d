package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// receivableHandler handles HTTP requests for client receivables.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
	calendar          portssvc.Calendar
}

func newReceivableHandler(rs portssvc.ReceivableSvcFacade, cal portssvc.Calendar) *receivableHandler {
	return &receivableHandler{receivableService: rs, calendar: cal}
}

// registerReceivableRoutes registers receivable routes.
func registerReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade, cal portssvc.Calendar) {
	h := newReceivableHandler(receivableService, cal)

	rg.PUT("/phases/:id/receivable", h.upsertReceivable)
	rg.GET("/phases/:id/receivable", h.getByPhase)
	rg.GET("/budgets/:id/receivables", h.listByBudget)

	receivables := rg.Group("/receivables")
	{
		receivables.POST("/:id/pay", h.markPaid)
		receivables.POST("/:id/cancel", h.cancel)
	}
}

// upsertReceivable godoc
// @Summary Create or update the receivable for a phase
// @Description While the receivable is OPEN its value and due date can be replaced. PAID and CANCELLED receivables are immutable.
// @Tags receivables
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Param receivable body dto.UpsertReceivableRequest true "Receivable"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 409 {object} map[string]string "Receivable no longer OPEN"
// @Router /phases/{id}/receivable [put]
func (h *receivableHandler) upsertReceivable(c *gin.Context) {
	var req dto.UpsertReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receivable, err := h.receivableService.UpsertReceivable(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to upsert receivable")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable, h.calendar.Today()))
}

// getByPhase godoc
// @Summary Get the receivable of a phase
// @Description The returned status is effective: an OPEN receivable past its due date reads as OVERDUE.
// @Tags receivables
// @Produce json
// @Param id path string true "Phase ID"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 404 {object} map[string]string
// @Router /phases/{id}/receivable [get]
func (h *receivableHandler) getByPhase(c *gin.Context) {
	receivable, err := h.receivableService.GetReceivableByPhase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve receivable")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable, h.calendar.Today()))
}

func (h *receivableHandler) listByBudget(c *gin.Context) {
	receivables, err := h.receivableService.ListReceivablesByBudget(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list receivables")
		return
	}
	today := h.calendar.Today()
	responses := make([]dto.ReceivableResponse, len(receivables))
	for i := range receivables {
		responses[i] = dto.ToReceivableResponse(&receivables[i], today)
	}
	c.JSON(http.StatusOK, gin.H{"receivables": responses})
}

func (h *receivableHandler) markPaid(c *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receivable, err := h.receivableService.MarkReceivablePaid(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to mark receivable paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable, h.calendar.Today()))
}

func (h *receivableHandler) cancel(c *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receivable, err := h.receivableService.CancelReceivable(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel receivable")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable, h.calendar.Today()))
}
