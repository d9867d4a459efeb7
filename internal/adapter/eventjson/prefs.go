package eventjson

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// TimeRange is the stored form of domain.TimeRange.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is the stored form of domain.DaySchedule.
type DaySchedule struct {
	Working bool        `json:"working"`
	Start   string      `json:"start"`
	End     string      `json:"end"`
	Breaks  []TimeRange `json:"breaks,omitempty"`
}

// Preferences is the stored form of domain.CalendarPreferences, used as a
// whole-object cache value.
type Preferences struct {
	UserID           uuid.UUID      `json:"user_id"`
	DefaultView      string         `json:"default_view"`
	WorkingHours     [7]DaySchedule `json:"working_hours"`
	TimeZone         string         `json:"time_zone"`
	WeekStart        int            `json:"week_start"`
	DefaultDuration  int            `json:"default_duration"`
	DefaultReminders []int          `json:"default_reminders"`
	QuietHours       *TimeRange     `json:"quiet_hours,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// MarshalWorkingHours encodes the 7-day table indexed by weekday.
func MarshalWorkingHours(in [7]domain.DaySchedule) ([]byte, error) {
	return marshal("working_hours", workingHours(in))
}

// UnmarshalWorkingHours decodes the 7-day table.
func UnmarshalWorkingHours(data []byte) ([7]domain.DaySchedule, error) {
	var in [7]DaySchedule
	if err := unmarshal("working_hours", data, &in); err != nil {
		return [7]domain.DaySchedule{}, err
	}
	return domainWorkingHours(in), nil
}

// MarshalQuietHours returns nil for nil input.
func MarshalQuietHours(in *domain.TimeRange) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	return marshal("quiet_hours", TimeRange(*in))
}

// UnmarshalQuietHours decodes quiet hours; empty input or JSON null yields nil.
func UnmarshalQuietHours(data []byte) (*domain.TimeRange, error) {
	var in *TimeRange
	if err := unmarshal("quiet_hours", data, &in); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, nil
	}
	tr := domain.TimeRange(*in)
	return &tr, nil
}

// MarshalPreferences encodes the whole preferences object.
func MarshalPreferences(p *domain.CalendarPreferences) ([]byte, error) {
	return marshal("preferences", PreferencesOf(p))
}

// UnmarshalPreferences decodes a whole preferences object.
func UnmarshalPreferences(data []byte) (*domain.CalendarPreferences, error) {
	var v Preferences
	if err := unmarshal("preferences", data, &v); err != nil {
		return nil, err
	}
	return v.Domain(), nil
}

// PreferencesOf converts domain preferences to their wire form.
func PreferencesOf(p *domain.CalendarPreferences) Preferences {
	v := Preferences{
		UserID:           p.UserID,
		DefaultView:      string(p.DefaultView),
		WorkingHours:     workingHours(p.WorkingHours),
		TimeZone:         p.TimeZone,
		WeekStart:        int(p.WeekStart),
		DefaultDuration:  p.DefaultDuration,
		DefaultReminders: p.DefaultReminders,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.QuietHours != nil {
		q := TimeRange(*p.QuietHours)
		v.QuietHours = &q
	}
	return v
}

// Domain converts the wire form back to domain preferences.
func (v Preferences) Domain() *domain.CalendarPreferences {
	p := &domain.CalendarPreferences{
		UserID:           v.UserID,
		DefaultView:      domain.CalendarView(v.DefaultView),
		WorkingHours:     domainWorkingHours(v.WorkingHours),
		TimeZone:         v.TimeZone,
		WeekStart:        time.Weekday(v.WeekStart),
		DefaultDuration:  v.DefaultDuration,
		DefaultReminders: v.DefaultReminders,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.QuietHours != nil {
		q := domain.TimeRange(*v.QuietHours)
		p.QuietHours = &q
	}
	return p
}

func workingHours(in [7]domain.DaySchedule) [7]DaySchedule {
	var out [7]DaySchedule
	for i, d := range in {
		out[i] = DaySchedule{Working: d.Working, Start: d.Start, End: d.End}
		for _, b := range d.Breaks {
			out[i].Breaks = append(out[i].Breaks, TimeRange(b))
		}
	}
	return out
}

func domainWorkingHours(in [7]DaySchedule) [7]domain.DaySchedule {
	var out [7]domain.DaySchedule
	for i, d := range in {
		out[i] = domain.DaySchedule{Working: d.Working, Start: d.Start, End: d.End}
		for _, b := range d.Breaks {
			out[i].Breaks = append(out[i].Breaks, domain.TimeRange(b))
		}
	}
	return out
}
