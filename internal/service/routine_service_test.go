package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/habits/internal/domain"
	"github.com/alexanderramin/habits/internal/repository"
	"github.com/alexanderramin/habits/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoutineService(t *testing.T) (RoutineService, repository.RoutineRepo, repository.CheckInRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	routines := repository.NewSQLiteRoutineRepo(database)
	checkIns := repository.NewSQLiteCheckInRepo(database)
	return NewRoutineService(routines, checkIns), routines, checkIns
}

func TestRoutineService_CreateAnchorsInterval(t *testing.T) {
	svc, _, _ := newRoutineService(t)
	ctx := context.Background()

	r := &domain.Routine{
		Name:      "  Water plants ",
		Frequency: domain.Frequency{Kind: domain.FrequencyInterval, EveryNDays: 3},
		CreatedOn: testutil.Monday,
		Streak:    7,
	}
	require.NoError(t, svc.Create(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Water plants", r.Name)
	assert.Equal(t, testutil.Monday, r.Frequency.Anchor)
	assert.Equal(t, 0, r.Streak)
	assert.True(t, r.Active)

	fetched, err := svc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Monday, fetched.Frequency.Anchor)
}

func TestRoutineService_CreateRejectsInvalid(t *testing.T) {
	svc, _, _ := newRoutineService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Routine{Name: "Gym", Frequency: domain.Weekly()})
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)

	err = svc.Create(ctx, &domain.Routine{Name: " ", Frequency: domain.Daily()})
	assert.Error(t, err)
}

func TestRoutineService_Resolve(t *testing.T) {
	svc, _, _ := newRoutineService(t)
	ctx := context.Background()

	read := &domain.Routine{ID: "abc123", Name: "Read", Frequency: domain.Daily()}
	run := &domain.Routine{ID: "abd456", Name: "Run", Frequency: domain.Daily()}
	require.NoError(t, svc.Create(ctx, read))
	require.NoError(t, svc.Create(ctx, run))

	got, err := svc.Resolve(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Name)

	got, err = svc.Resolve(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, "abd456", got.ID)

	got, err = svc.Resolve(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Name)

	_, err = svc.Resolve(ctx, "ab")
	assert.ErrorContains(t, err, "matches 2 ids")

	_, err = svc.Resolve(ctx, "swim")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoutineService_UpdateKeepsStreakState(t *testing.T) {
	svc, routines, _ := newRoutineService(t)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Read", testutil.WithStreak(3), testutil.WithLastConfirmed(testutil.Monday))
	require.NoError(t, routines.Create(ctx, rt))

	edit := &domain.Routine{
		ID:        rt.ID,
		Name:      "Read fiction",
		Frequency: domain.Weekly(time.Saturday),
		Streak:    99,
	}
	require.NoError(t, svc.Update(ctx, edit))
	assert.Equal(t, 3, edit.Streak)

	fetched, err := routines.GetByID(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read fiction", fetched.Name)
	assert.Equal(t, 3, fetched.Streak)
	assert.Equal(t, []time.Weekday{time.Saturday}, fetched.Frequency.Weekdays)
}

func TestRoutineService_PauseResume(t *testing.T) {
	svc, routines, _ := newRoutineService(t)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Read")
	require.NoError(t, routines.Create(ctx, rt))

	require.NoError(t, svc.Pause(ctx, rt.ID))
	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.Resume(ctx, rt.ID))
	active, err = svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	assert.ErrorIs(t, svc.Pause(ctx, "missing"), repository.ErrNotFound)
}

func TestRoutineService_HistoryAndDelete(t *testing.T) {
	svc, routines, checkIns := newRoutineService(t)
	ctx := context.Background()

	rt := testutil.NewTestRoutine("Read")
	require.NoError(t, routines.Create(ctx, rt))
	require.NoError(t, checkIns.Create(ctx, testutil.NewTestCheckIn(rt.ID, testutil.Monday, true)))
	require.NoError(t, checkIns.Create(ctx, testutil.NewTestCheckIn(rt.ID, testutil.Monday.AddDays(1), false)))

	history, err := svc.History(ctx, rt.ID, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Completed)

	require.NoError(t, svc.Delete(ctx, rt.ID))
	_, err = svc.History(ctx, rt.ID, 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
