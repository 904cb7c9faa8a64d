package mapping

import (
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/models"
)

func ToModelWorkEntry(d domain.WorkEntry) models.WorkEntry {
	return models.WorkEntry{
		WorkEntryID:  d.WorkEntryID,
		JobID:        d.JobID,
		WorkerID:     d.WorkerID,
		PhaseID:      d.PhaseID,
		BudgetID:     d.BudgetID,
		EntryDate:    d.EntryDate,
		DayType:      string(d.DayType),
		BaseAmount:   d.BaseAmount,
		SurchargePct: d.SurchargePct,
		Discount:     d.Discount,
		FinalAmount:  d.FinalAmount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainWorkEntry(m models.WorkEntry) domain.WorkEntry {
	return domain.WorkEntry{
		WorkEntryID:  m.WorkEntryID,
		JobID:        m.JobID,
		WorkerID:     m.WorkerID,
		PhaseID:      m.PhaseID,
		BudgetID:     m.BudgetID,
		EntryDate:    m.EntryDate,
		DayType:      domain.DayType(m.DayType),
		BaseAmount:   m.BaseAmount,
		SurchargePct: m.SurchargePct,
		Discount:     m.Discount,
		FinalAmount:  m.FinalAmount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
