package slot

import (
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Score rates a slot in [0, 1]: 0.5 base, +0.3 when it starts between 09:00
// and 17:00 and +0.2 when it starts Monday to Friday, both in the user's
// time zone.
func (e *Engine) Score(slot domain.TimeSlot, _ *domain.SchedulingRequest, prefs *domain.CalendarPreferences) float64 {
	loc := time.UTC
	if prefs != nil {
		loc = prefs.Location()
	}
	local := slot.Start.In(loc)

	score := 0.5
	if h := local.Hour(); h >= 9 && h < 17 {
		score += 0.3
	}
	if wd := local.Weekday(); wd >= time.Monday && wd <= time.Friday {
		score += 0.2
	}
	return domain.ClampUnit(score)
}
