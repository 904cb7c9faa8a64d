package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
	"github.com/sepolpinturas/obras_backend/internal/reports"
)

// budgetHandler handles HTTP requests for budgets, phases and line items.
type budgetHandler struct {
	budgetService  portssvc.BudgetSvcFacade
	catalogService portssvc.CatalogSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade, cs portssvc.CatalogSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs, catalogService: cs}
}

// registerBudgetRoutes registers budget, phase and line item routes.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, catalogService portssvc.CatalogSvcFacade) {
	h := newBudgetHandler(budgetService, catalogService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("/:id", h.getBudget)
		budgets.GET("/:id/snapshot", h.getBudgetSnapshot)
		budgets.GET("/:id/export", h.exportBudget)
		budgets.PUT("/:id/discount", h.setDiscount)
		budgets.POST("/:id/recalculate", h.recalculate)
		budgets.POST("/:id/emit", h.emit)
		budgets.POST("/:id/approve", h.approve)
		budgets.POST("/:id/reject", h.reject)
		budgets.POST("/:id/cancel", h.cancel)
		budgets.POST("/:id/reopen", h.reopen)
		budgets.POST("/:id/phases", h.addPhase)
	}

	phases := rg.Group("/phases")
	{
		phases.PUT("/:id/status", h.updatePhaseStatus)
		phases.DELETE("/:id", h.deletePhase)
		phases.PUT("/:id/items", h.upsertLineItem)
		phases.DELETE("/:id/items/:itemID", h.removeLineItem)
	}

	rg.GET("/jobs/:id/budgets", h.listBudgetsByJob)
}

// createBudget godoc
// @Summary Create a budget in DRAFT for a job
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Job not found"
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create budget")
		return
	}
	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) getBudget(c *gin.Context) {
	budget, err := h.budgetService.GetBudget(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// getBudgetSnapshot godoc
// @Summary Get a budget with phases and line items
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Router /budgets/{id}/snapshot [get]
func (h *budgetHandler) getBudgetSnapshot(c *gin.Context) {
	budget, err := h.budgetService.GetBudgetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// exportBudget streams the budget snapshot as an xlsx workbook.
func (h *budgetHandler) exportBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budget, err := h.budgetService.GetBudgetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve budget")
		return
	}

	serviceNames := make(map[string]string)
	for _, phase := range budget.Phases {
		for _, item := range phase.Items {
			if _, seen := serviceNames[item.ServiceID]; seen {
				continue
			}
			service, err := h.catalogService.GetService(c.Request.Context(), item.ServiceID)
			if err != nil {
				continue
			}
			serviceNames[item.ServiceID] = service.Name
		}
	}

	workbook, err := reports.BudgetWorkbook(budget, serviceNames)
	if err != nil {
		logger.Error("Failed to build budget workbook", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export budget"})
		return
	}

	filename := fmt.Sprintf("orcamento-%s.xlsx", budget.BudgetID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		logger.Error("Failed to stream budget workbook", slog.String("error", err.Error()))
	}
}

func (h *budgetHandler) listBudgetsByJob(c *gin.Context) {
	budgets, err := h.budgetService.ListBudgetsByJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list budgets")
		return
	}
	responses := make([]dto.BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = dto.ToBudgetResponse(&budgets[i])
	}
	c.JSON(http.StatusOK, gin.H{"budgets": responses})
}

// setDiscount godoc
// @Summary Set the budget discount
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param discount body dto.SetDiscountRequest true "Discount"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Budget in a terminal status"
// @Router /budgets/{id}/discount [put]
func (h *budgetHandler) setDiscount(c *gin.Context) {
	var req dto.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.SetDiscount(c.Request.Context(), c.Param("id"), req.Discount, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to set discount")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) recalculate(c *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.Recalculate(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to recalculate budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) emit(c *gin.Context) {
	h.doTransition(c, h.budgetService.Emit, "Failed to emit budget")
}

// approve godoc
// @Summary Approve an emitted budget
// @Description Approves the budget and stamps the approval date. Only one budget per job may be approved.
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Not emitted, or the job already has an approved budget"
// @Router /budgets/{id}/approve [post]
func (h *budgetHandler) approve(c *gin.Context) {
	h.doTransition(c, h.budgetService.Approve, "Failed to approve budget")
}

func (h *budgetHandler) reject(c *gin.Context) {
	h.doTransition(c, h.budgetService.Reject, "Failed to reject budget")
}

func (h *budgetHandler) cancel(c *gin.Context) {
	h.doTransition(c, h.budgetService.Cancel, "Failed to cancel budget")
}

func (h *budgetHandler) reopen(c *gin.Context) {
	h.doTransition(c, h.budgetService.Reopen, "Failed to reopen budget")
}

type transitionFunc func(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)

func (h *budgetHandler) doTransition(c *gin.Context, fn transitionFunc, fallback string) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := fn(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondServiceError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// addPhase godoc
// @Summary Add a phase to a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param phase body dto.CreatePhaseRequest true "Phase details"
// @Success 201 {object} dto.PhaseResponse
// @Failure 409 {object} map[string]string "Duplicate sequence or terminal budget"
// @Router /budgets/{id}/phases [post]
func (h *budgetHandler) addPhase(c *gin.Context) {
	var req dto.CreatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	phase, err := h.budgetService.AddPhase(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to add phase")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPhaseResponse(phase))
}

func (h *budgetHandler) updatePhaseStatus(c *gin.Context) {
	var req dto.UpdatePhaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.UpdatePhaseStatus(c.Request.Context(), c.Param("id"), req.Status, actorID); err != nil {
		respondServiceError(c, err, "Failed to update phase status")
		return
	}
	c.Status(http.StatusNoContent)
}

// deletePhase godoc
// @Summary Delete a phase and its line items
// @Tags budgets
// @Param id path string true "Phase ID"
// @Success 204
// @Failure 409 {object} map[string]string "A receivable references the phase"
// @Router /phases/{id} [delete]
func (h *budgetHandler) deletePhase(c *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.DeletePhase(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondServiceError(c, err, "Failed to delete phase")
		return
	}
	c.Status(http.StatusNoContent)
}

// upsertLineItem godoc
// @Summary Create or update the (phase, service) line item
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Param item body dto.UpsertLineItemRequest true "Line item"
// @Success 200 {object} dto.LineItemResponse
// @Failure 409 {object} map[string]string "Terminal budget"
// @Router /phases/{id}/items [put]
func (h *budgetHandler) upsertLineItem(c *gin.Context) {
	var req dto.UpsertLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.budgetService.UpsertLineItem(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to upsert line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

func (h *budgetHandler) removeLineItem(c *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.RemoveLineItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), actorID); err != nil {
		respondServiceError(c, err, "Failed to remove line item")
		return
	}
	c.Status(http.StatusNoContent)
}
