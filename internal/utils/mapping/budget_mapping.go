package mapping

import (
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		JobID:        d.JobID,
		Title:        d.Title,
		Status:       models.BudgetStatus(d.Status),
		GrossTotal:   d.GrossTotal,
		Discount:     d.Discount,
		FinalTotal:   d.FinalTotal,
		ApprovedDate: d.ApprovedDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		JobID:        m.JobID,
		Title:        m.Title,
		Status:       domain.BudgetStatus(m.Status),
		GrossTotal:   m.GrossTotal,
		Discount:     m.Discount,
		FinalTotal:   m.FinalTotal,
		ApprovedDate: m.ApprovedDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelPhase(d domain.Phase) models.Phase {
	return models.Phase{
		PhaseID:     d.PhaseID,
		BudgetID:    d.BudgetID,
		Name:        d.Name,
		Sequence:    d.Sequence,
		Status:      string(d.Status),
		Total:       d.Total,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPhase(m models.Phase) domain.Phase {
	return domain.Phase{
		PhaseID:     m.PhaseID,
		BudgetID:    m.BudgetID,
		Name:        m.Name,
		Sequence:    m.Sequence,
		Status:      domain.PhaseStatus(m.Status),
		Total:       m.Total,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  d.LineItemID,
		PhaseID:     d.PhaseID,
		ServiceID:   d.ServiceID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      d.Amount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:  m.LineItemID,
		PhaseID:     m.PhaseID,
		ServiceID:   m.ServiceID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
