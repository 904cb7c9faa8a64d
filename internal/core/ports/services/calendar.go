package services

import (
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
)

// Calendar is the clock/calendar collaborator. It supplies "today", computes
// the Monday week start for any date, and classifies a date's day type.
// The holiday calendar behind Classify is external configuration.
type Calendar interface {
	Today() time.Time
	WeekStart(t time.Time) time.Time
	Classify(t time.Time) domain.DayType
}
