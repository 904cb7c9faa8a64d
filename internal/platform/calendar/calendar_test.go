package calendar

import (
	"testing"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekStart(t *testing.T) {
	cal := NewBusinessCalendar(nil)

	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"monday maps to itself", "2026-03-02", "2026-03-02"},
		{"wednesday maps back", "2026-03-04", "2026-03-02"},
		{"sunday maps to same week monday", "2026-03-08", "2026-03-02"},
		{"saturday maps to same week monday", "2026-03-07", "2026-03-02"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, date(tc.expected), cal.WeekStart(date(tc.in)))
		})
	}
}

func TestClassify(t *testing.T) {
	holiday := date("2026-03-03") // a Tuesday
	weekendHoliday := date("2026-03-07")
	cal := NewBusinessCalendar([]time.Time{holiday, weekendHoliday})

	assert.Equal(t, domain.DayNormal, cal.Classify(date("2026-03-02")))
	assert.Equal(t, domain.DayHoliday, cal.Classify(holiday))
	assert.Equal(t, domain.DaySaturday, cal.Classify(date("2026-03-07")))
	assert.Equal(t, domain.DaySunday, cal.Classify(date("2026-03-08")))
}

func TestClassifyWeekendWinsOverHoliday(t *testing.T) {
	cal := NewBusinessCalendar([]time.Time{date("2026-03-08")})

	// A holiday on a Sunday still classifies as Sunday so the payroll
	// generator picks it up as a weekend extra.
	assert.Equal(t, domain.DaySunday, cal.Classify(date("2026-03-08")))
}
