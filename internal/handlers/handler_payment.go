package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
	"github.com/sepolpinturas/obras_backend/internal/reports"
)

// paymentHandler handles HTTP requests for payments and their audit trail.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	catalogService portssvc.CatalogSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, cs portssvc.CatalogSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps, catalogService: cs}
}

// registerPaymentRoutes registers payment routes.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, catalogService portssvc.CatalogSvcFacade) {
	h := newPaymentHandler(paymentService, catalogService)

	payments := rg.Group("/payments")
	{
		payments.GET("", h.listInPeriod)
		payments.GET("/export", h.exportPeriod)
		payments.GET("/:id", h.getPayment)
		payments.POST("/:id/pay", h.markPaid)
		payments.POST("/:id/reverse", h.reverse)
		payments.GET("/:id/audit", h.listAudit)
	}

	rg.GET("/workers/:id/payments", h.listByWorker)
}

// getPayment godoc
// @Summary Get a payment with its lines
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listByWorker(c *gin.Context) {
	limit, nextToken := listParams(c)
	payments, token, err := h.paymentService.ListPaymentsByWorker(c.Request.Context(), c.Param("id"), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}
	resp := dto.ListPaymentsResponse{NextToken: token}
	resp.Payments = make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp.Payments[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *paymentHandler) periodFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	periodStart, err := time.Parse(dto.DateLayout, c.Query("periodStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid periodStart, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	periodEnd, err := time.Parse(dto.DateLayout, c.Query("periodEnd"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid periodEnd, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return periodStart, periodEnd, true
}

// listInPeriod godoc
// @Summary List payments whose period overlaps [periodStart, periodEnd]
// @Tags payments
// @Produce json
// @Param periodStart query string true "YYYY-MM-DD"
// @Param periodEnd query string true "YYYY-MM-DD"
// @Success 200 {object} dto.ListPaymentsResponse
// @Router /payments [get]
func (h *paymentHandler) listInPeriod(c *gin.Context) {
	periodStart, periodEnd, ok := h.periodFromQuery(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsInPeriod(c.Request.Context(), periodStart, periodEnd)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}
	resp := dto.ListPaymentsResponse{}
	resp.Payments = make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp.Payments[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, resp)
}

// exportPeriod streams the period's payments as an xlsx workbook.
func (h *paymentHandler) exportPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodStart, periodEnd, ok := h.periodFromQuery(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsInPeriod(c.Request.Context(), periodStart, periodEnd)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}

	workerNames := make(map[string]string)
	for _, p := range payments {
		if _, seen := workerNames[p.WorkerID]; seen {
			continue
		}
		worker, err := h.catalogService.GetWorker(c.Request.Context(), p.WorkerID)
		if err != nil {
			continue
		}
		workerNames[p.WorkerID] = worker.Name
	}

	workbook, err := reports.PayrollWorkbook(payments, workerNames)
	if err != nil {
		logger.Error("Failed to build payroll workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export payments"})
		return
	}

	filename := fmt.Sprintf("pagamentos-%s-%s.xlsx", periodStart.Format(dto.DateLayout), periodEnd.Format(dto.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		logger.Error("Failed to stream payroll workbook", slog.String("error", err.Error()))
	}
}

// markPaid godoc
// @Summary Mark a payment as paid
// @Description Pays an OPEN payment. The paid stamp locks every work entry the payment references.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param pay body dto.MarkPaidRequest true "Paid date"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} map[string]string "Payment already paid"
// @Router /payments/{id}/pay [post]
func (h *paymentHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	paidDate, err := time.Parse(dto.DateLayout, req.PaidDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paidDate, expected YYYY-MM-DD"})
		return
	}

	payment, err := h.paymentService.MarkPaid(c.Request.Context(), c.Param("id"), actorID, paidDate)
	if err != nil {
		respondServiceError(c, err, "Failed to mark payment paid")
		return
	}
	logger.Info("Payment paid", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// reverse godoc
// @Summary Reverse a paid payment
// @Description Reopens a PAID payment ("estorno"), unlocking its work entries. The reason is mandatory and lands in the audit trail.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param reversal body dto.ReversePaymentRequest true "Reversal reason"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} map[string]string "Payment not paid"
// @Router /payments/{id}/reverse [post]
func (h *paymentHandler) reverse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.Reverse(c.Request.Context(), c.Param("id"), actorID, req.Reason)
	if err != nil {
		respondServiceError(c, err, "Failed to reverse payment")
		return
	}
	logger.Info("Payment reversed", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listAudit godoc
// @Summary List the audit trail of a payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {array} dto.PaymentAuditResponse
// @Failure 404 {object} map[string]string
// @Router /payments/{id}/audit [get]
func (h *paymentHandler) listAudit(c *gin.Context) {
	audits, err := h.paymentService.ListAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list payment audit")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentAuditResponses(audits))
}
