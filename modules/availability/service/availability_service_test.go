package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"studio-api/core/errors"
	"studio-api/modules/availability/dto"
	"studio-api/modules/availability/entity"
	"studio-api/modules/availability/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAvailabilityRepo is an in-memory stand-in honoring the same
// guard semantics as the SQL implementation.
type fakeAvailabilityRepo struct {
	mu    sync.Mutex
	days  map[uuid.UUID]*entity.AvailableDay
	slots map[uuid.UUID]*entity.AvailableSlot
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{
		days:  make(map[uuid.UUID]*entity.AvailableDay),
		slots: make(map[uuid.UUID]*entity.AvailableSlot),
	}
}

func (f *fakeAvailabilityRepo) CreateDayWithSlots(ctx context.Context, day *entity.AvailableDay, windows []entity.SlotWindow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.days {
		if d.HostID == day.HostID && d.Date.Equal(day.Date) {
			return repository.ErrDuplicateDay
		}
	}
	day.ID = uuid.New()
	day.CreatedAt = time.Now()
	f.days[day.ID] = day
	for _, w := range windows {
		id := uuid.New()
		f.slots[id] = &entity.AvailableSlot{ID: id, DayID: day.ID, StartTime: w.Start, EndTime: w.End}
	}
	return nil
}

func (f *fakeAvailabilityRepo) ReplaceSlots(ctx context.Context, dayID uuid.UUID, windows []entity.SlotWindow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.removeUnbookedLocked(dayID); err != nil {
		return err
	}
	for _, w := range windows {
		id := uuid.New()
		f.slots[id] = &entity.AvailableSlot{ID: id, DayID: dayID, StartTime: w.Start, EndTime: w.End}
	}
	return nil
}

func (f *fakeAvailabilityRepo) DeleteDayCascade(ctx context.Context, dayID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.removeUnbookedLocked(dayID); err != nil {
		return err
	}
	delete(f.days, dayID)
	return nil
}

// removeUnbookedLocked mirrors the transactional guard: when any
// booked slot exists the whole operation is rolled back.
func (f *fakeAvailabilityRepo) removeUnbookedLocked(dayID uuid.UUID) error {
	for _, s := range f.slots {
		if s.DayID == dayID && s.Booked() {
			return repository.ErrBookedSlotsRemain
		}
	}
	for id, s := range f.slots {
		if s.DayID == dayID {
			delete(f.slots, id)
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) GetDayByID(ctx context.Context, id uuid.UUID) (*entity.AvailableDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.days[id], nil
}

func (f *fakeAvailabilityRepo) GetDayByHostAndDate(ctx context.Context, hostID uuid.UUID, date time.Time) (*entity.AvailableDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.days {
		if d.HostID == hostID && d.Date.Equal(date) {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) GetDaysInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.AvailableDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.AvailableDay
	for _, d := range f.days {
		if d.HostID == hostID && !d.Date.Before(from) && d.Date.Before(to) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) CountSlotsByDayIDs(ctx context.Context, dayIDs []uuid.UUID) ([]repository.DayBookingCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[uuid.UUID]*repository.DayBookingCount)
	for _, id := range dayIDs {
		counts[id] = &repository.DayBookingCount{DayID: id}
	}
	for _, s := range f.slots {
		c, ok := counts[s.DayID]
		if !ok {
			continue
		}
		c.SlotCount++
		if s.Booked() {
			c.BookedCount++
		}
	}
	out := make([]repository.DayBookingCount, 0, len(counts))
	for _, c := range counts {
		if c.SlotCount > 0 {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) InsertSlot(ctx context.Context, slot *entity.AvailableSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot.ID = uuid.New()
	f.slots[slot.ID] = slot
	return nil
}

func (f *fakeAvailabilityRepo) GetSlotByID(ctx context.Context, id uuid.UUID) (*entity.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots[id], nil
}

func (f *fakeAvailabilityRepo) GetSlotsByDayID(ctx context.Context, dayID uuid.UUID) ([]entity.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.AvailableSlot
	for _, s := range f.slots {
		if s.DayID == dayID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) DeleteUnbookedSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok || s.Booked() {
		return false, nil
	}
	delete(f.slots, slotID)
	return true, nil
}

func (f *fakeAvailabilityRepo) bookSlot(t *testing.T, slotID uuid.UUID) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	meetingID := uuid.New()
	f.slots[slotID].MeetingID = &meetingID
}

func (f *fakeAvailabilityRepo) firstSlotOfDay(t *testing.T, dayID uuid.UUID) *entity.AvailableSlot {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.DayID == dayID {
			return s
		}
	}
	t.Fatalf("no slot found for day %s", dayID)
	return nil
}

type fakeHostDirectory struct {
	zone string
}

func (f *fakeHostDirectory) GetTimezone(ctx context.Context, hostID uuid.UUID) (string, error) {
	return f.zone, nil
}

func newTestService(zone string) (AvailabilityService, *fakeAvailabilityRepo) {
	repo := newFakeAvailabilityRepo()
	svc := NewAvailabilityService(repo, NewSlotGenerator(), &fakeHostDirectory{zone: zone})
	return svc, repo
}

func window(from, to string, duration, brk int) dto.GenerationWindow {
	return dto.GenerationWindow{FromHour: from, ToHour: to, DurationMinutes: duration, BreakMinutes: brk}
}

func TestCreateDayPersistsGeneratedSlots(t *testing.T) {
	svc, _ := newTestService("UTC")

	day, err := svc.CreateDay(context.Background(), uuid.New(), &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "12:00", 60, 15),
	})
	require.NoError(t, err)
	require.Len(t, day.Slots, 2)
	assert.Equal(t, "2025-03-10", day.Date)
	for _, s := range day.Slots {
		assert.False(t, s.Booked)
	}
}

func TestCreateDayAppliesWindowDefaults(t *testing.T) {
	svc, _ := newTestService("UTC")

	// Omitted window falls back to the configured defaults
	// (09:00-18:00, hour-long slots, no breaks).
	day, err := svc.CreateDay(context.Background(), uuid.New(), &dto.CreateDayRequest{
		Date: "2025-03-10",
	})
	require.NoError(t, err)
	assert.Len(t, day.Slots, 8)
}

func TestCreateDayDuplicateDateRejected(t *testing.T) {
	svc, _ := newTestService("UTC")
	hostID := uuid.New()

	req := &dto.CreateDayRequest{Date: "2025-03-10", GenerationWindow: window("09:00", "12:00", 60, 0)}
	_, err := svc.CreateDay(context.Background(), hostID, req)
	require.NoError(t, err)

	_, err = svc.CreateDay(context.Background(), hostID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDayAlreadyExists))

	// A different host may open the same date.
	_, err = svc.CreateDay(context.Background(), uuid.New(), req)
	require.NoError(t, err)
}

func TestCreateDaysCollectsPerDateOutcomes(t *testing.T) {
	svc, _ := newTestService("UTC")
	hostID := uuid.New()

	// Pre-create one of the dates so the batch hits a duplicate.
	_, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-11",
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.NoError(t, err)

	results, err := svc.CreateDays(context.Background(), hostID, &dto.CreateDaysBatchRequest{
		Dates:            []string{"2025-03-10", "2025-03-11", "2025-03-12", "not-a-date"},
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "2025-03-10", results[0].Date)
	assert.NotNil(t, results[0].Day)
	assert.Empty(t, results[0].Error)

	assert.Nil(t, results[1].Day)
	assert.NotEmpty(t, results[1].Error)

	assert.NotNil(t, results[2].Day)

	assert.Nil(t, results[3].Day)
	assert.NotEmpty(t, results[3].Error)
}

func TestCreateDaysRequiresDates(t *testing.T) {
	svc, _ := newTestService("UTC")

	_, err := svc.CreateDays(context.Background(), uuid.New(), &dto.CreateDaysBatchRequest{
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestRegenerateDayReplacesSlots(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	day, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.NoError(t, err)
	require.Len(t, day.Slots, 2)

	dayID := uuid.MustParse(day.ID)
	regenerated, err := svc.RegenerateDay(context.Background(), hostID, dayID, &dto.RegenerateDayRequest{
		GenerationWindow: window("09:00", "18:00", 30, 0),
	})
	require.NoError(t, err)
	assert.Len(t, regenerated.Slots, 17)

	slots, _ := repo.GetSlotsByDayID(context.Background(), dayID)
	assert.Len(t, slots, 17)
}

func TestRegenerateDayRefusedWhileBooked(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	day, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.NoError(t, err)

	dayID := uuid.MustParse(day.ID)
	repo.bookSlot(t, repo.firstSlotOfDay(t, dayID).ID)

	_, err = svc.RegenerateDay(context.Background(), hostID, dayID, &dto.RegenerateDayRequest{
		GenerationWindow: window("09:00", "18:00", 30, 0),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDayHasBookings))

	// Nothing was replaced.
	slots, _ := repo.GetSlotsByDayID(context.Background(), dayID)
	assert.NotEmpty(t, slots)
}

func TestDayOwnershipEnforced(t *testing.T) {
	svc, _ := newTestService("UTC")

	day, err := svc.CreateDay(context.Background(), uuid.New(), &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.NoError(t, err)

	otherHost := uuid.New()
	err = svc.DeleteDay(context.Background(), otherHost, uuid.MustParse(day.ID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	err = svc.DeleteDay(context.Background(), otherHost, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestAddCustomSlotOverlapGuard(t *testing.T) {
	svc, _ := newTestService("UTC")
	hostID := uuid.New()

	day, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "11:00", 60, 0),
	})
	require.NoError(t, err)
	dayID := uuid.MustParse(day.ID)

	// Overlapping the 09:00-10:00 slot is rejected.
	_, err = svc.AddCustomSlot(context.Background(), hostID, dayID, &dto.AddCustomSlotRequest{
		StartTime: "2025-03-10T09:30:00Z",
		EndTime:   "2025-03-10T10:30:00Z",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSlotOverlap))

	// Touching an existing slot's endpoint is allowed.
	slot, err := svc.AddCustomSlot(context.Background(), hostID, dayID, &dto.AddCustomSlotRequest{
		StartTime: "2025-03-10T10:00:00Z",
		EndTime:   "2025-03-10T10:45:00Z",
	})
	require.NoError(t, err)
	assert.False(t, slot.Booked)

	// Inverted interval.
	_, err = svc.AddCustomSlot(context.Background(), hostID, dayID, &dto.AddCustomSlotRequest{
		StartTime: "2025-03-10T12:00:00Z",
		EndTime:   "2025-03-10T11:00:00Z",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestDeleteSlotGuards(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	day, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "11:30", 60, 0),
	})
	require.NoError(t, err)
	dayID := uuid.MustParse(day.ID)

	slot := repo.firstSlotOfDay(t, dayID)

	require.NoError(t, svc.DeleteSlot(context.Background(), hostID, slot.ID))

	booked := repo.firstSlotOfDay(t, dayID)
	repo.bookSlot(t, booked.ID)
	err = svc.DeleteSlot(context.Background(), hostID, booked.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSlotBooked))

	err = svc.DeleteSlot(context.Background(), hostID, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestFullyBookedDerivation(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	day, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "11:30", 60, 0),
	})
	require.NoError(t, err)
	dayID := uuid.MustParse(day.ID)

	slots, _ := repo.GetSlotsByDayID(context.Background(), dayID)
	assert.False(t, entity.FullyBooked(slots))
	assert.False(t, entity.FullyBooked(nil))

	for i := range slots {
		repo.bookSlot(t, slots[i].ID)
	}
	slots, _ = repo.GetSlotsByDayID(context.Background(), dayID)
	assert.True(t, entity.FullyBooked(slots))
}

func TestDeleteDayCascadeRefusedWhileBooked(t *testing.T) {
	svc, repo := newTestService("UTC")
	hostID := uuid.New()

	day, err := svc.CreateDay(context.Background(), hostID, &dto.CreateDayRequest{
		Date:             "2025-03-10",
		GenerationWindow: window("09:00", "12:00", 60, 0),
	})
	require.NoError(t, err)
	dayID := uuid.MustParse(day.ID)

	repo.bookSlot(t, repo.firstSlotOfDay(t, dayID).ID)

	err = svc.DeleteDay(context.Background(), hostID, dayID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDayHasBookings))

	d, _ := repo.GetDayByID(context.Background(), dayID)
	assert.NotNil(t, d)
}
