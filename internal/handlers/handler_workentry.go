package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// workEntryHandler handles HTTP requests for the work ledger.
type workEntryHandler struct {
	workLedgerService portssvc.WorkLedgerSvcFacade
}

func newWorkEntryHandler(ws portssvc.WorkLedgerSvcFacade) *workEntryHandler {
	return &workEntryHandler{workLedgerService: ws}
}

// RegisterWorkEntryRoutes registers work ledger routes.
func RegisterWorkEntryRoutes(rg *gin.RouterGroup, workLedgerService portssvc.WorkLedgerSvcFacade) {
	h := newWorkEntryHandler(workLedgerService)

	entries := rg.Group("/work-entries")
	{
		entries.POST("", h.recordWork)
		entries.GET("/:id", h.getWorkEntry)
		entries.PUT("/:id", h.updateWork)
		entries.DELETE("/:id", h.deleteWork)
	}

	rg.GET("/jobs/:id/work-entries", h.listByJob)
}

// recordWork godoc
// @Summary Record one day of labor
// @Description Records a work entry for (worker, job, date). The calendar classifies the day when dayType is omitted; the surcharge and final amount are derived server side.
// @Tags work-entries
// @Accept json
// @Produce json
// @Param entry body dto.RecordWorkRequest true "Work entry"
// @Success 201 {object} dto.WorkEntryResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Entry already exists for (worker, job, date)"
// @Router /work-entries [post]
func (h *workEntryHandler) recordWork(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordWork", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.workLedgerService.RecordWork(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to record work entry")
		return
	}
	logger.Info("Work entry recorded", slog.String("work_entry_id", entry.WorkEntryID))
	c.JSON(http.StatusCreated, dto.ToWorkEntryResponse(entry, false))
}

// getWorkEntry godoc
// @Summary Get a work entry with its lock state
// @Tags work-entries
// @Produce json
// @Param id path string true "Work entry ID"
// @Success 200 {object} dto.WorkEntryResponse
// @Failure 404 {object} map[string]string
// @Router /work-entries/{id} [get]
func (h *workEntryHandler) getWorkEntry(c *gin.Context) {
	entry, locked, err := h.workLedgerService.GetWorkEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve work entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkEntryResponse(entry, locked))
}

// updateWork godoc
// @Summary Update an unlocked work entry
// @Tags work-entries
// @Accept json
// @Produce json
// @Param id path string true "Work entry ID"
// @Param entry body dto.UpdateWorkRequest true "Fields to update"
// @Success 200 {object} dto.WorkEntryResponse
// @Failure 423 {object} map[string]string "Entry belongs to a paid payment"
// @Router /work-entries/{id} [put]
func (h *workEntryHandler) updateWork(c *gin.Context) {
	var req dto.UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.workLedgerService.UpdateWork(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update work entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkEntryResponse(entry, false))
}

// deleteWork godoc
// @Summary Delete an unlocked work entry
// @Tags work-entries
// @Param id path string true "Work entry ID"
// @Success 204
// @Failure 423 {object} map[string]string "Entry belongs to a paid payment"
// @Router /work-entries/{id} [delete]
func (h *workEntryHandler) deleteWork(c *gin.Context) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.workLedgerService.DeleteWork(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondServiceError(c, err, "Failed to delete work entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *workEntryHandler) listByJob(c *gin.Context) {
	limit, nextToken := listParams(c)
	entries, token, err := h.workLedgerService.ListWorkEntriesByJob(c.Request.Context(), c.Param("id"), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list work entries")
		return
	}
	resp := dto.ListWorkEntriesResponse{NextToken: token}
	resp.Entries = make([]dto.WorkEntryResponse, len(entries))
	for i := range entries {
		resp.Entries[i] = dto.ToWorkEntryResponse(&entries[i], false)
	}
	c.JSON(http.StatusOK, resp)
}
