package mapping

import (
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/models"
)

func ToModelReceivable(d domain.Receivable) models.Receivable {
	return models.Receivable{
		ReceivableID: d.ReceivableID,
		PhaseID:      d.PhaseID,
		Status:       string(d.Status),
		BaseValue:    d.BaseValue,
		Surcharge:    d.Surcharge,
		DueDate:      d.DueDate,
		PaidAt:       d.PaidAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReceivable(m models.Receivable) domain.Receivable {
	return domain.Receivable{
		ReceivableID: m.ReceivableID,
		PhaseID:      m.PhaseID,
		Status:       domain.ReceivableStatus(m.Status),
		BaseValue:    m.BaseValue,
		Surcharge:    m.Surcharge,
		DueDate:      m.DueDate,
		PaidAt:       m.PaidAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
