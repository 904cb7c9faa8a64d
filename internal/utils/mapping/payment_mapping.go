package mapping

import (
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/models"
)

func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		WorkerID:    d.WorkerID,
		Kind:        string(d.Kind),
		Status:      string(d.Status),
		Total:       d.Total,
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		PaidAt:      d.PaidAt,
		PaidBy:      d.PaidBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		WorkerID:    m.WorkerID,
		Kind:        domain.PaymentKind(m.Kind),
		Status:      domain.PaymentStatus(m.Status),
		Total:       m.Total,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		PaidAt:      m.PaidAt,
		PaidBy:      m.PaidBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelPaymentLine(d domain.PaymentLine) models.PaymentLine {
	return models.PaymentLine{
		PaymentLineID: d.PaymentLineID,
		PaymentID:     d.PaymentID,
		WorkEntryID:   d.WorkEntryID,
		Amount:        d.Amount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPaymentLine(m models.PaymentLine) domain.PaymentLine {
	return domain.PaymentLine{
		PaymentLineID: m.PaymentLineID,
		PaymentID:     m.PaymentID,
		WorkEntryID:   m.WorkEntryID,
		Amount:        m.Amount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPaymentAudit(m models.PaymentAudit) domain.PaymentAudit {
	return domain.PaymentAudit{
		AuditID:   m.AuditID,
		PaymentID: m.PaymentID,
		Action:    domain.PaymentAuditAction(m.Action),
		Actor:     m.Actor,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}
