package domain_test

import (
	"testing"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBudgetStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.BudgetStatus
		to   domain.BudgetStatus
		want bool
	}{
		{name: "draft to emitted", from: domain.BudgetDraft, to: domain.BudgetEmitted, want: true},
		{name: "emitted back to draft (reopen)", from: domain.BudgetEmitted, to: domain.BudgetDraft, want: true},
		{name: "emitted to approved", from: domain.BudgetEmitted, to: domain.BudgetApproved, want: true},
		{name: "emitted to rejected", from: domain.BudgetEmitted, to: domain.BudgetRejected, want: true},
		{name: "emitted to cancelled", from: domain.BudgetEmitted, to: domain.BudgetCancelled, want: true},
		{name: "draft cannot be approved directly", from: domain.BudgetDraft, to: domain.BudgetApproved, want: false},
		{name: "draft cannot be rejected", from: domain.BudgetDraft, to: domain.BudgetRejected, want: false},
		{name: "approved is terminal", from: domain.BudgetApproved, to: domain.BudgetDraft, want: false},
		{name: "rejected is terminal", from: domain.BudgetRejected, to: domain.BudgetEmitted, want: false},
		{name: "cancelled is terminal", from: domain.BudgetCancelled, to: domain.BudgetDraft, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBudgetStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.BudgetDraft.IsTerminal())
	assert.False(t, domain.BudgetEmitted.IsTerminal())
	assert.True(t, domain.BudgetApproved.IsTerminal())
	assert.True(t, domain.BudgetRejected.IsTerminal())
	assert.True(t, domain.BudgetCancelled.IsTerminal())
}
