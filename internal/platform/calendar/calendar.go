package calendar

import (
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
)

// BusinessCalendar implements the calendar collaborator: Monday-anchored
// weeks and day type classification against a configured holiday list.
// Weekend classification wins over the holiday list, so a holiday falling on
// a Saturday or Sunday is still billed as weekend work.
type BusinessCalendar struct {
	holidays map[string]struct{}
}

func NewBusinessCalendar(holidays []time.Time) *BusinessCalendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[dayKey(h)] = struct{}{}
	}
	return &BusinessCalendar{holidays: set}
}

var _ portssvc.Calendar = (*BusinessCalendar)(nil)

func (c *BusinessCalendar) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t, at midnight.
func (c *BusinessCalendar) WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

func (c *BusinessCalendar) Classify(t time.Time) domain.DayType {
	switch t.Weekday() {
	case time.Saturday:
		return domain.DaySaturday
	case time.Sunday:
		return domain.DaySunday
	}
	if _, ok := c.holidays[dayKey(t)]; ok {
		return domain.DayHoliday
	}
	return domain.DayNormal
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
