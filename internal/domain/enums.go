package domain

// EventType classifies a calendar event.
type EventType string

const (
	EventTypeMeeting  EventType = "MEETING"
	EventTypeCall     EventType = "CALL"
	EventTypeTask     EventType = "TASK"
	EventTypeDeadline EventType = "DEADLINE"
	EventTypeReminder EventType = "REMINDER"
	EventTypePersonal EventType = "PERSONAL"
	EventTypeOther    EventType = "OTHER"
)

func (t EventType) String() string { return string(t) }

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeMeeting, EventTypeCall, EventTypeTask, EventTypeDeadline,
		EventTypeReminder, EventTypePersonal, EventTypeOther:
		return true
	}
	return false
}

// Priority is the ordered importance of an event: LOW < MEDIUM < HIGH < URGENT.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	return p.Weight() > 0
}

// Weight maps the priority onto its position in the total order (1..4).
// Unknown priorities weigh 0.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusTentative EventStatus = "TENTATIVE"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusTentative, EventStatusConfirmed, EventStatusCancelled:
		return true
	}
	return false
}

// ResponseStatus is an attendee's answer to an invitation.
type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "PENDING"
	ResponseAccepted  ResponseStatus = "ACCEPTED"
	ResponseDeclined  ResponseStatus = "DECLINED"
	ResponseTentative ResponseStatus = "TENTATIVE"
)

func (r ResponseStatus) String() string { return string(r) }

func (r ResponseStatus) IsValid() bool {
	switch r {
	case ResponsePending, ResponseAccepted, ResponseDeclined, ResponseTentative:
		return true
	}
	return false
}

// ConflictType names the kind of scheduling incompatibility.
type ConflictType string

const (
	ConflictOverlap    ConflictType = "OVERLAP"
	ConflictBackToBack ConflictType = "BACK_TO_BACK"
	ConflictTravelTime ConflictType = "TRAVEL_TIME"
	ConflictWorkload   ConflictType = "WORKLOAD"
)

func (c ConflictType) String() string { return string(c) }

func (c ConflictType) IsValid() bool {
	switch c {
	case ConflictOverlap, ConflictBackToBack, ConflictTravelTime, ConflictWorkload:
		return true
	}
	return false
}

// Severity ranks how disruptive a conflict is: LOW < MEDIUM < HIGH < CRITICAL.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) String() string { return string(s) }

func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// Rank maps the severity onto its position in the total order (1..4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// ResolutionType describes how a conflict may be resolved.
type ResolutionType string

const (
	ResolutionReschedule ResolutionType = "RESCHEDULE"
	ResolutionShorten    ResolutionType = "SHORTEN"
	ResolutionAddBuffer  ResolutionType = "ADD_BUFFER"
	ResolutionDecline    ResolutionType = "DECLINE"
)

func (r ResolutionType) String() string { return string(r) }

// CalendarView is the default presentation of the calendar.
type CalendarView string

const (
	CalendarViewDay    CalendarView = "DAY"
	CalendarViewWeek   CalendarView = "WEEK"
	CalendarViewMonth  CalendarView = "MONTH"
	CalendarViewAgenda CalendarView = "AGENDA"
)

func (v CalendarView) String() string { return string(v) }

func (v CalendarView) IsValid() bool {
	switch v {
	case CalendarViewDay, CalendarViewWeek, CalendarViewMonth, CalendarViewAgenda:
		return true
	}
	return false
}
