package domain

import "time"

// Scheduling request bounds.
const (
	MinMeetingMinutes = 15
	MaxMeetingMinutes = 480
)

// SchedulingRequest asks for candidate times for a new meeting.
type SchedulingRequest struct {
	Title           string
	DurationMinutes int
	AttendeeEmails  []string
	PreferredSlots  []TimeSlot
	Constraints     *SchedulingConstraints
	Priority        Priority
}

// SchedulingConstraints narrow the slot search.
type SchedulingConstraints struct {
	WorkingHoursOnly bool
	AllowWeekends    bool
	MinNotice        int // minutes
	MaxAdvanceDays   int
	PreferredDays    []time.Weekday
	AvoidSlots       []TimeSlot
}

// SchedulingResult is the ranked answer to a SchedulingRequest.
type SchedulingResult struct {
	Suggestions []TimeSlot
	Preparation []string
}

// AISuggestions is an opaque bundle produced by the suggestion generator.
type AISuggestions struct {
	Preparation  []string
	OptimalTimes []TimeSlot
	Summary      string
	GeneratedAt  time.Time
}
