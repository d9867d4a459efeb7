package preference

import (
	"fmt"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Validate checks that preferences are well formed: known enums, parseable
// clocks and a loadable time zone. Whether a day's start precedes its end is
// left to the caller.
func Validate(p *domain.CalendarPreferences) error {
	if p == nil {
		return domain.NewValidationError("preferences", "required")
	}

	var errs []domain.FieldError

	if !p.DefaultView.IsValid() {
		errs = append(errs, domain.FieldError{Field: "default_view", Message: "unknown view"})
	}
	if p.TimeZone == "" {
		errs = append(errs, domain.FieldError{Field: "time_zone", Message: "required"})
	} else if _, err := time.LoadLocation(p.TimeZone); err != nil {
		errs = append(errs, domain.FieldError{Field: "time_zone", Message: "unknown time zone"})
	}
	if p.WeekStart < time.Sunday || p.WeekStart > time.Saturday {
		errs = append(errs, domain.FieldError{Field: "week_start", Message: "must be a weekday"})
	}
	if p.DefaultDuration <= 0 {
		errs = append(errs, domain.FieldError{Field: "default_duration", Message: "must be positive"})
	}
	for i, m := range p.DefaultReminders {
		if m < 0 {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("default_reminders[%d]", i), Message: "must not be negative"})
		}
	}

	for d, day := range p.WorkingHours {
		if !day.Working {
			continue
		}
		field := fmt.Sprintf("working_hours.%s", time.Weekday(d))
		errs = append(errs, clockErrors(field, day.Start, day.End)...)
		for i, b := range day.Breaks {
			errs = append(errs, clockErrors(fmt.Sprintf("%s.breaks[%d]", field, i), b.Start, b.End)...)
		}
	}
	if p.QuietHours != nil {
		errs = append(errs, clockErrors("quiet_hours", p.QuietHours.Start, p.QuietHours.End)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func clockErrors(field, start, end string) []domain.FieldError {
	var errs []domain.FieldError
	if _, err := domain.ParseClock(start); err != nil {
		errs = append(errs, domain.FieldError{Field: field + ".start", Message: "must be HH:MM"})
	}
	if _, err := domain.ParseClock(end); err != nil {
		errs = append(errs, domain.FieldError{Field: field + ".end", Message: "must be HH:MM"})
	}
	return errs
}
