package scheduling

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
	"github.com/heartmarshall/bizdash-backend/pkg/ctxutil"
)

const largeMeetingAttendees = 5

// SuggestOptimalTimes finds free slots for the request, scores them against
// the caller's preferences and returns the best ones: highest score first,
// then most overlap with a preferred slot, then earliest start.
func (s *Service) SuggestOptimalTimes(ctx context.Context, req domain.SchedulingRequest) (*domain.SchedulingResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	prefs, err := s.prefs.Get(ctx, actorID)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, fmt.Errorf("scheduling.SuggestOptimalTimes: %w", err)
		}
		s.log.WarnContext(ctx, "preferences unavailable, using defaults",
			slog.String("user_id", actorID.String()),
			slog.String("error", err.Error()),
		)
		prefs = domain.DefaultCalendarPreferences(actorID)
	}

	var available []domain.TimeSlot
	err = s.withBackend(ctx, "suggest", false, func(b Backend) error {
		var err error
		available, err = s.slots.FindAvailable(ctx, b.Events, req.DurationMinutes, req.AttendeeEmails, req.Constraints, prefs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling.SuggestOptimalTimes: %w", err)
	}

	ranked := s.rank(available, &req, prefs)
	if limit := s.cfg.MaxSuggestions; limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.log.InfoContext(ctx, "scheduling suggestions computed",
		slog.Int("duration_minutes", req.DurationMinutes),
		slog.Int("attendees", len(req.AttendeeEmails)),
		slog.Int("candidates", len(available)),
		slog.Int("suggestions", len(ranked)),
	)
	return &domain.SchedulingResult{
		Suggestions: ranked,
		Preparation: preparation(req, len(ranked)),
	}, nil
}

type scoredSlot struct {
	slot      domain.TimeSlot
	preferred int64
}

func (s *Service) rank(slots []domain.TimeSlot, req *domain.SchedulingRequest, prefs *domain.CalendarPreferences) []domain.TimeSlot {
	scored := make([]scoredSlot, len(slots))
	for i, sl := range slots {
		sl.Confidence = domain.ClampUnit(s.slots.Score(sl, req, prefs))
		var overlap int64
		for _, p := range req.PreferredSlots {
			overlap += int64(p.OverlapDuration(sl.Start, sl.End))
		}
		scored[i] = scoredSlot{slot: sl, preferred: overlap}
	}

	slices.SortStableFunc(scored, func(a, b scoredSlot) int {
		if c := cmp.Compare(b.slot.Confidence, a.slot.Confidence); c != 0 {
			return c
		}
		if c := cmp.Compare(b.preferred, a.preferred); c != 0 {
			return c
		}
		return a.slot.Start.Compare(b.slot.Start)
	})

	out := make([]domain.TimeSlot, len(scored))
	for i, sc := range scored {
		out[i] = sc.slot
	}
	return out
}

func preparation(req domain.SchedulingRequest, found int) []string {
	var items []string
	if len(req.AttendeeEmails) > largeMeetingAttendees {
		items = append(items, "Consider if all attendees are necessary")
	}
	if req.DurationMinutes >= 60 {
		items = append(items, "Share an agenda with attendees in advance")
	}
	if req.Priority == domain.PriorityUrgent || req.Priority == domain.PriorityHigh {
		items = append(items, "Confirm availability of key attendees directly")
	}
	if found == 0 {
		items = append(items, "No free time found; consider relaxing the constraints")
	}
	return items
}
