package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/repository"
	"github.com/alexanderramin/habits/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func TestConfirmRoutine_IncrementsAndRecordsCheckIn(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	checkIns := repository.NewSQLiteCheckInRepo(database)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Read")
	require.NoError(t, routines.Create(ctx, rt))

	obs := &recordingObserver{}
	svc := NewCheckInService(testutil.NewTestUoW(database), obs)

	got, err := svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 1, got.BestStreak)
	assert.True(t, got.ConfirmedOn(testutil.Monday))

	stored, err := routines.GetByID(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Streak)

	history, err := checkIns.ListByRoutine(ctx, rt.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Completed)
	assert.Equal(t, 1, history[0].StreakAfter)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "confirm_routine", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Fields["streak"])
}

func TestConfirmRoutine_SecondConfirmSameDayIsRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Stretch")
	require.NoError(t, routines.Create(ctx, rt))
	svc := NewCheckInService(testutil.NewTestUoW(database))

	_, err := svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday)
	require.NoError(t, err)

	for _, completed := range []bool{true, false} {
		_, err = svc.ConfirmRoutine(ctx, rt.ID, completed, testutil.Monday)
		assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)

		var storageErr *domain.StorageError
		assert.False(t, errors.As(err, &storageErr))
	}

	stored, err := routines.GetByID(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Streak)
}

func TestConfirmRoutine_SkipResetsStreak(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Run",
		testutil.WithStreak(5),
		testutil.WithLastConfirmed(testutil.Monday.AddDays(-1)),
	)
	require.NoError(t, routines.Create(ctx, rt))
	svc := NewCheckInService(testutil.NewTestUoW(database))

	got, err := svc.ConfirmRoutine(ctx, rt.ID, false, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, 5, got.BestStreak)
	assert.True(t, got.ConfirmedOn(testutil.Monday))
}

func TestConfirmRoutine_LapsedStreakStartsOver(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	// Last confirmed Monday, Tuesday was missed.
	rt := testutil.NewTestRoutine("Floss",
		testutil.WithStreak(3),
		testutil.WithLastConfirmed(testutil.Monday),
	)
	require.NoError(t, routines.Create(ctx, rt))
	svc := NewCheckInService(testutil.NewTestUoW(database))

	got, err := svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday.AddDays(2))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 3, got.BestStreak)
}

func TestConfirmRoutine_Errors(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	paused := testutil.NewTestRoutine("Paused", testutil.WithInactive())
	later := testutil.NewTestRoutine("Later", testutil.WithLastConfirmed(testutil.Monday.AddDays(3)))
	require.NoError(t, routines.Create(ctx, paused))
	require.NoError(t, routines.Create(ctx, later))
	svc := NewCheckInService(testutil.NewTestUoW(database))

	_, err := svc.ConfirmRoutine(ctx, paused.ID, true, testutil.Monday)
	assert.ErrorIs(t, err, domain.ErrRoutineInactive)

	_, err = svc.ConfirmRoutine(ctx, later.ID, true, testutil.Monday)
	assert.ErrorIs(t, err, domain.ErrConfirmBeforeLast)

	_, err = svc.ConfirmRoutine(ctx, "missing", true, testutil.Monday)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConfirmRoutine_RollbackOnCheckInFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	checkIns := repository.NewSQLiteCheckInRepo(database)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Journal",
		testutil.WithStreak(2),
		testutil.WithLastConfirmed(testutil.Monday.AddDays(-1)),
	)
	require.NoError(t, routines.Create(ctx, rt))

	// Exec #1 = routine update, #2 = check-in insert.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected check-in failure"),
	}
	svc := NewCheckInService(failUoW)

	_, err := svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday)
	require.Error(t, err)
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "confirm routine", storageErr.Op)
	assert.Contains(t, err.Error(), "injected check-in failure")

	stored, err := routines.GetByID(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Streak, "streak unchanged after rollback")
	assert.True(t, stored.ConfirmedOn(testutil.Monday.AddDays(-1)))

	history, err := checkIns.ListByRoutine(ctx, rt.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunCatchUp_ResetsOnlyLapsedStreaks(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	friday := testutil.Monday.AddDays(4)
	nextMonday := testutil.Monday.AddDays(7)

	lapsed := testutil.NewTestRoutine("Daily",
		testutil.WithStreak(4), testutil.WithLastConfirmed(friday))
	weekly := testutil.NewTestRoutine("Weekly",
		testutil.WithFrequency(domain.Weekly(time.Monday, time.Friday)),
		testutil.WithStreak(6), testutil.WithLastConfirmed(friday))
	never := testutil.NewTestRoutine("Never")
	paused := testutil.NewTestRoutine("Paused",
		testutil.WithInactive(), testutil.WithStreak(2), testutil.WithLastConfirmed(testutil.Monday))
	for _, r := range []*domain.Routine{lapsed, weekly, never, paused} {
		require.NoError(t, routines.Create(ctx, r))
	}

	obs := &recordingObserver{}
	svc := NewCheckInService(testutil.NewTestUoW(database), obs)

	got, err := svc.RunCatchUp(ctx, nextMonday)
	require.NoError(t, err)
	require.Len(t, got, 4)

	byName := map[string]*domain.Routine{}
	for _, r := range got {
		byName[r.Name] = r
	}
	assert.Equal(t, 0, byName["Daily"].Streak)
	assert.Equal(t, 6, byName["Weekly"].Streak, "no weekly due day between Friday and Monday")
	assert.Equal(t, 0, byName["Never"].Streak)
	assert.Equal(t, 2, byName["Paused"].Streak)

	stored, err := routines.GetByID(ctx, lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Streak)
	assert.Equal(t, 4, stored.BestStreak)
	assert.True(t, stored.ConfirmedOn(friday), "catch-up never moves LastConfirmed")

	require.Len(t, obs.events, 1)
	assert.Equal(t, "run_catch_up", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["reset"])
}

func TestRunCatchUp_Idempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	require.NoError(t, routines.Create(ctx, testutil.NewTestRoutine("A",
		testutil.WithStreak(3), testutil.WithLastConfirmed(testutil.Monday))))
	require.NoError(t, routines.Create(ctx, testutil.NewTestRoutine("B",
		testutil.WithStreak(1), testutil.WithLastConfirmed(testutil.Monday.AddDays(2)))))
	svc := NewCheckInService(testutil.NewTestUoW(database))

	today := testutil.Monday.AddDays(3)
	first, err := svc.RunCatchUp(ctx, today)
	require.NoError(t, err)
	second, err := svc.RunCatchUp(ctx, today)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Streak, second[i].Streak)
		assert.Equal(t, first[i].LastConfirmed, second[i].LastConfirmed)
	}
}

func TestRunCatchUp_RollbackKeepsAllOrNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	a := testutil.NewTestRoutine("A", testutil.WithStreak(3), testutil.WithLastConfirmed(testutil.Monday))
	b := testutil.NewTestRoutine("B", testutil.WithStreak(5), testutil.WithLastConfirmed(testutil.Monday))
	require.NoError(t, routines.Create(ctx, a))
	require.NoError(t, routines.Create(ctx, b))

	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("disk full"),
	}
	svc := NewCheckInService(failUoW)

	_, err := svc.RunCatchUp(ctx, testutil.Monday.AddDays(5))
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)

	for _, id := range []string{a.ID, b.ID} {
		stored, err := routines.GetByID(ctx, id)
		require.NoError(t, err)
		assert.NotZero(t, stored.Streak, "no partial write after a failed save")
	}
}

// Weekly Mon/Wed/Fri, never confirmed: Monday's check-in starts a streak of
// one, a repeat is rejected, and missing Friday resets it by next Monday.
func TestStreakLifecycle_WeeklyRoutine(t *testing.T) {
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Gym",
		testutil.WithFrequency(domain.Weekly(time.Monday, time.Wednesday, time.Friday)))
	require.NoError(t, routines.Create(ctx, rt))
	svc := NewCheckInService(testutil.NewTestUoW(database))

	got, err := svc.RunCatchUp(ctx, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, 0, got[0].Streak)

	confirmed, err := svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, 1, confirmed.Streak)

	_, err = svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday)
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)

	confirmed, err = svc.ConfirmRoutine(ctx, rt.ID, true, testutil.Monday.AddDays(2))
	require.NoError(t, err)
	assert.Equal(t, 2, confirmed.Streak)

	got, err = svc.RunCatchUp(ctx, testutil.Monday.AddDays(7))
	require.NoError(t, err)
	assert.Equal(t, 0, got[0].Streak)
	assert.Equal(t, 2, got[0].BestStreak)
}
