package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

func TestScenario_OverlapTakesHigherPriority(t *testing.T) {
	t.Parallel()

	primary, _ := memoryBackend("memory")
	svc := newTestService(testDeps{primary: primary})
	ctx := actorCtx()

	a := meetingInput("Board meeting", at(10, 0), time.Hour)
	a.Priority = domain.PriorityHigh
	created, err := svc.CreateEvent(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, created.Conflicts)

	b := meetingInput("Team sync", at(10, 30), time.Hour)
	b.Priority = domain.PriorityMedium
	got, err := svc.CreateEvent(ctx, b)
	require.NoError(t, err)

	require.Len(t, got.Conflicts, 1)
	c := got.Conflicts[0]
	assert.Equal(t, created.ID, c.ConflictingEventID)
	assert.Equal(t, domain.ConflictOverlap, c.Type)
	assert.Equal(t, domain.SeverityHigh, c.Severity)
	require.NotNil(t, c.Resolution)
	assert.Equal(t, domain.ResolutionReschedule, c.Resolution.Type)
	assert.Contains(t, c.Resolution.Description, "Board meeting")
	assert.LessOrEqual(t, len(c.Resolution.Alternatives), 3)
	for _, alt := range c.Resolution.Alternatives {
		assert.False(t, domain.Overlaps(alt.Start, alt.End, created.Start, created.End), "alternative %v overlaps A", alt.Start)
	}
}

func TestScenario_BackToBack(t *testing.T) {
	t.Parallel()

	primary, _ := memoryBackend("memory")
	svc := newTestService(testDeps{primary: primary})
	ctx := actorCtx()

	_, err := svc.CreateEvent(ctx, meetingInput("Standup", at(9, 0), time.Hour))
	require.NoError(t, err)

	got, err := svc.CreateEvent(ctx, meetingInput("Review", at(10, 2), 58*time.Minute))
	require.NoError(t, err)

	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, domain.ConflictBackToBack, got.Conflicts[0].Type)
	assert.Equal(t, domain.SeverityMedium, got.Conflicts[0].Severity)
}

func TestScenario_EmptyStore(t *testing.T) {
	t.Parallel()

	primary, _ := memoryBackend("memory")
	svc := newTestService(testDeps{primary: primary})

	got, err := svc.CreateEvent(actorCtx(), meetingInput("Solo", at(15, 0), 45*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, got.Conflicts)
}

func TestScenario_WorkingHoursRankedFirst(t *testing.T) {
	t.Parallel()

	primary, _ := memoryBackend("memory")
	svc := newTestService(testDeps{primary: primary})

	res, err := svc.SuggestOptimalTimes(actorCtx(), domain.SchedulingRequest{
		Title:           "Kickoff",
		DurationMinutes: 60,
		AttendeeEmails:  []string{"a@example.com"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Suggestions)
	assert.LessOrEqual(t, len(res.Suggestions), 5)

	inHours := func(s domain.TimeSlot) bool {
		h := s.Start.UTC().Hour()
		return h >= 9 && h < 17
	}
	seenOutside := false
	for i, s := range res.Suggestions {
		if !inHours(s) {
			seenOutside = true
			continue
		}
		assert.False(t, seenOutside, "suggestion %d at %v is inside working hours but ranked below one outside", i, s.Start)
	}
	for i := 1; i < len(res.Suggestions); i++ {
		assert.GreaterOrEqual(t, res.Suggestions[i-1].Confidence, res.Suggestions[i].Confidence)
	}
}

func TestScenario_TitleOnlyUpdateKeepsConflicts(t *testing.T) {
	t.Parallel()

	primary, _ := memoryBackend("memory")
	svc := newTestService(testDeps{primary: primary})
	ctx := actorCtx()

	a, err := svc.CreateEvent(ctx, meetingInput("A", at(10, 0), time.Hour))
	require.NoError(t, err)
	b, err := svc.CreateEvent(ctx, meetingInput("B", at(10, 30), time.Hour))
	require.NoError(t, err)
	require.Len(t, b.Conflicts, 1)

	title := "B (renamed)"
	renamed, err := svc.UpdateEvent(ctx, UpdateEventInput{ID: b.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "B (renamed)", renamed.Title)
	assert.Equal(t, b.Conflicts, renamed.Conflicts)

	redetected, err := svc.RedetectConflicts(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Conflicts, redetected.Conflicts)

	// The optimization leaves a stale entry behind; explicit re-detection
	// replaces the list.
	require.NoError(t, svc.DeleteEvent(ctx, a.ID))
	renamed, err = svc.UpdateEvent(ctx, UpdateEventInput{ID: b.ID, Title: &title})
	require.NoError(t, err)
	assert.Len(t, renamed.Conflicts, 1)

	redetected, err = svc.RedetectConflicts(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, redetected.Conflicts)
}

func TestScenario_FallbackEventsStayReachable(t *testing.T) {
	t.Parallel()

	fallback, _ := memoryBackend("memory")
	svc := newTestService(testDeps{
		primary:  Backend{Name: "postgres", Events: unavailableStore(), Tx: defaultTxMock()},
		fallback: &fallback,
	})
	ctx := actorCtx()

	a, err := svc.CreateEvent(ctx, meetingInput("A", at(10, 0), time.Hour))
	require.NoError(t, err)
	assert.False(t, a.Durable)

	b, err := svc.CreateEvent(ctx, meetingInput("B", at(10, 30), time.Hour))
	require.NoError(t, err)
	require.Len(t, b.Conflicts, 1, "detection runs against the fallback snapshot")

	got, err := svc.GetEvent(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	list, err := svc.ListEvents(context.WithoutCancel(ctx), ListEventsInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}
