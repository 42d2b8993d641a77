package service

import (
	"context"
	"testing"
	"time"

	"studio-api/core/errors"
	"studio-api/modules/availability/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryService(repo *fakeAvailabilityRepo) *availabilityQueryService {
	return NewAvailabilityQueryService(repo, nil).(*availabilityQueryService)
}

func TestListAvailableDaysMonthSummaries(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	full, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "10:30", 60, 0),
	})
	require.NoError(t, err)

	partial, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-11",
		GenerationWindow: window("09:00", "11:30", 60, 0),
	})
	require.NoError(t, err)

	// Outside the queried month.
	_, err = svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-04-01",
		GenerationWindow: window("09:00", "10:30", 60, 0),
	})
	require.NoError(t, err)

	// Book the only slot of the first day and one of two on the second.
	repo.bookSlot(t, repo.firstSlotOfDay(t, uuid.MustParse(full.ID)).ID)
	repo.bookSlot(t, repo.firstSlotOfDay(t, uuid.MustParse(partial.ID)).ID)

	query := newTestQueryService(repo)
	summaries, err := query.ListAvailableDays(context.Background(), hostID, 2025, time.March, "")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byDate := make(map[string]dto.DaySummary)
	for _, s := range summaries {
		byDate[s.Date] = s
	}

	assert.True(t, byDate["2025-03-10"].FullyBooked)
	assert.Equal(t, 1, byDate["2025-03-10"].SlotCount)

	assert.False(t, byDate["2025-03-11"].FullyBooked)
	assert.Equal(t, 2, byDate["2025-03-11"].SlotCount)
	assert.Equal(t, 1, byDate["2025-03-11"].BookedCount)
}

func TestListAvailableDaysEmptyMonth(t *testing.T) {
	query := newTestQueryService(newFakeAvailabilityRepo())

	summaries, err := query.ListAvailableDays(context.Background(), uuid.New(), 2025, time.March, "")
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestListAvailableDaysRejectsUnknownViewerZone(t *testing.T) {
	query := newTestQueryService(newFakeAvailabilityRepo())

	_, err := query.ListAvailableDays(context.Background(), uuid.New(), 2025, time.March, "Not/AZone")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestListSlotsForDayMissingAndEmptyLookAlike(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	// A configured day with zero slots.
	_, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "09:00", 60, 0),
	})
	require.NoError(t, err)

	query := newTestQueryService(repo)

	empty, err := query.ListSlotsForDay(context.Background(), hostID, "2025-03-10", "")
	require.NoError(t, err)

	missing, err := query.ListSlotsForDay(context.Background(), hostID, "2025-03-25", "")
	require.NoError(t, err)

	assert.Equal(t, empty, missing)
	assert.Empty(t, missing)
	assert.NotNil(t, missing)
}

func TestListSlotsForDayViewerZoneRendering(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	_, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "10:30", 60, 0),
	})
	require.NoError(t, err)

	query := newTestQueryService(repo)
	slots, err := query.ListSlotsForDay(context.Background(), hostID, "2025-03-10", "Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, "2025-03-10T09:00:00Z", slots[0].StartTime)
	assert.Equal(t, "2025-03-10 16:00", slots[0].StartLocal)
	assert.Equal(t, "2025-03-10 17:00", slots[0].EndLocal)

	// Without a viewer zone the local fields stay empty.
	slots, err = query.ListSlotsForDay(context.Background(), hostID, "2025-03-10", "")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Empty(t, slots[0].StartLocal)
}

func TestPreviewSlotsFixture(t *testing.T) {
	query := newTestQueryService(newFakeAvailabilityRepo())
	query.now = func() time.Time {
		return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	}

	slots, err := query.PreviewSlots("")
	require.NoError(t, err)
	require.Len(t, slots, 12)

	assert.Equal(t, "2025-03-10T08:00:00Z", slots[0].StartTime)
	assert.Equal(t, "2025-03-10T09:00:00Z", slots[0].EndTime)
	assert.Equal(t, "2025-03-10T19:00:00Z", slots[11].StartTime)
	assert.Equal(t, "2025-03-10T20:00:00Z", slots[11].EndTime)
	for _, s := range slots {
		assert.False(t, s.Booked)
	}

	_, err = query.PreviewSlots("Not/AZone")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
