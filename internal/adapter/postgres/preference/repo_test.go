package preference_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/postgres/preference"
	"github.com/heartmarshall/bizdash-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

func TestRepo_GetMissing(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := preference.New(pool)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestRepo_UpsertReplacesWholesale(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := preference.New(pool)
	ctx := context.Background()

	p := domain.DefaultCalendarPreferences(uuid.New())
	p.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, p.WorkingHours, got.WorkingHours)
	assert.Equal(t, []int{15}, got.DefaultReminders)
	assert.Equal(t, time.Monday, got.WeekStart)
	assert.Nil(t, got.QuietHours)

	next := p.Clone()
	next.TimeZone = "Europe/Berlin"
	next.DefaultView = domain.CalendarViewAgenda
	next.DefaultReminders = []int{5, 30}
	next.WorkingHours[time.Saturday] = domain.DaySchedule{Working: true, Start: "10:00", End: "14:00"}
	next.QuietHours = &domain.TimeRange{Start: "22:00", End: "07:00"}
	require.NoError(t, repo.Upsert(ctx, next))

	got, err = repo.Get(ctx, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", got.TimeZone)
	assert.Equal(t, domain.CalendarViewAgenda, got.DefaultView)
	assert.Equal(t, []int{5, 30}, got.DefaultReminders)
	assert.True(t, got.WorkingHours[time.Saturday].Working)
	require.NotNil(t, got.QuietHours)
	assert.Equal(t, "07:00", got.QuietHours.End)
}
