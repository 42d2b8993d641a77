package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"studio-api/core/errors"
	availentity "studio-api/modules/availability/entity"
	availrepo "studio-api/modules/availability/repository"
	"studio-api/modules/meeting/dto"
	"studio-api/modules/meeting/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entity.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entity.Meeting)}
}

func (f *fakeMeetingRepo) Create(ctx context.Context, meeting *entity.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	meeting.ID = uuid.New()
	meeting.CreatedAt = time.Now()
	stored := *meeting
	f.meetings[meeting.ID] = &stored
	return nil
}

func (f *fakeMeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meetings[id], nil
}

func (f *fakeMeetingRepo) GetByHostID(ctx context.Context, hostID uuid.UUID) ([]entity.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Meeting
	for _, m := range f.meetings {
		if m.HostID == hostID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.meetings, id)
	return nil
}

func (f *fakeMeetingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.meetings)
}

// slotStore is a minimal availability repository plus booking
// coordinator sharing one slot table.
type slotStore struct {
	mu    sync.Mutex
	days  map[uuid.UUID]*availentity.AvailableDay
	slots map[uuid.UUID]*availentity.AvailableSlot
}

func newSlotStore() *slotStore {
	return &slotStore{
		days:  make(map[uuid.UUID]*availentity.AvailableDay),
		slots: make(map[uuid.UUID]*availentity.AvailableSlot),
	}
}

func (s *slotStore) addSlot(hostID uuid.UUID) *availentity.AvailableSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := &availentity.AvailableDay{
		ID:     uuid.New(),
		HostID: hostID,
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	s.days[day.ID] = day
	slot := &availentity.AvailableSlot{
		ID:        uuid.New(),
		DayID:     day.ID,
		StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}
	s.slots[slot.ID] = slot
	return slot
}

// BookSlot implements the booking coordinator against the in-memory
// slot table with first-claim-wins semantics.
func (s *slotStore) BookSlot(ctx context.Context, slotID, meetingID uuid.UUID) (*availentity.AvailableSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}
	if slot.MeetingID != nil {
		return nil, errors.NewAppError(errors.ErrSlotAlreadyBooked, "slot is already booked", nil)
	}
	id := meetingID
	slot.MeetingID = &id
	claimed := *slot
	return &claimed, nil
}

func (s *slotStore) GetSlotByID(ctx context.Context, id uuid.UUID) (*availentity.AvailableSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[id], nil
}

func (s *slotStore) GetDayByID(ctx context.Context, id uuid.UUID) (*availentity.AvailableDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days[id], nil
}

func (s *slotStore) CreateDayWithSlots(ctx context.Context, day *availentity.AvailableDay, windows []availentity.SlotWindow) error {
	panic("not used")
}
func (s *slotStore) ReplaceSlots(ctx context.Context, dayID uuid.UUID, windows []availentity.SlotWindow) error {
	panic("not used")
}
func (s *slotStore) DeleteDayCascade(ctx context.Context, dayID uuid.UUID) error { panic("not used") }
func (s *slotStore) GetDayByHostAndDate(ctx context.Context, hostID uuid.UUID, date time.Time) (*availentity.AvailableDay, error) {
	panic("not used")
}
func (s *slotStore) GetDaysInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]availentity.AvailableDay, error) {
	panic("not used")
}
func (s *slotStore) CountSlotsByDayIDs(ctx context.Context, dayIDs []uuid.UUID) ([]availrepo.DayBookingCount, error) {
	panic("not used")
}
func (s *slotStore) InsertSlot(ctx context.Context, slot *availentity.AvailableSlot) error {
	panic("not used")
}
func (s *slotStore) GetSlotsByDayID(ctx context.Context, dayID uuid.UUID) ([]availentity.AvailableSlot, error) {
	panic("not used")
}
func (s *slotStore) DeleteUnbookedSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	panic("not used")
}

func TestScheduleMeetingHappyPath(t *testing.T) {
	store := newSlotStore()
	repo := newFakeMeetingRepo()
	hostID := uuid.New()
	slot := store.addSlot(hostID)

	svc := NewMeetingService(repo, store, store, nil)

	resp, err := svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID:     slot.ID.String(),
		GuestName:  "Dana",
		GuestEmail: "dana@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, hostID.String(), resp.HostID)
	assert.Equal(t, slot.ID.String(), resp.SlotID)
	assert.Equal(t, "Meeting with Dana", resp.Title)
	assert.Equal(t, "2025-03-10T09:00:00Z", resp.StartTime)
	assert.Equal(t, "2025-03-10T10:00:00Z", resp.EndTime)

	stored, _ := store.GetSlotByID(context.Background(), slot.ID)
	require.NotNil(t, stored.MeetingID)
	assert.Equal(t, resp.ID, stored.MeetingID.String())
}

func TestScheduleMeetingValidation(t *testing.T) {
	svc := NewMeetingService(newFakeMeetingRepo(), newSlotStore(), newSlotStore(), nil)

	_, err := svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID:     "not-a-uuid",
		GuestName:  "Dana",
		GuestEmail: "dana@example.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID: uuid.New().String(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID:     uuid.New().String(),
		GuestName:  "Dana",
		GuestEmail: "dana@example.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestScheduleMeetingCompensatesLostClaim(t *testing.T) {
	store := newSlotStore()
	repo := newFakeMeetingRepo()
	hostID := uuid.New()
	slot := store.addSlot(hostID)

	svc := NewMeetingService(repo, store, store, nil)

	first, err := svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID:     slot.ID.String(),
		GuestName:  "Dana",
		GuestEmail: "dana@example.com",
	})
	require.NoError(t, err)

	_, err = svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID:     slot.ID.String(),
		GuestName:  "Elliot",
		GuestEmail: "elliot@example.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSlotAlreadyBooked))

	// The losing meeting row was compensated away and the slot still
	// references the first booking.
	assert.Equal(t, 1, repo.count())
	stored, _ := store.GetSlotByID(context.Background(), slot.ID)
	assert.Equal(t, first.ID, stored.MeetingID.String())
}

func TestGetMeetingOwnership(t *testing.T) {
	store := newSlotStore()
	repo := newFakeMeetingRepo()
	hostID := uuid.New()
	slot := store.addSlot(hostID)

	svc := NewMeetingService(repo, store, store, nil)

	resp, err := svc.ScheduleMeeting(context.Background(), &dto.ScheduleMeetingRequest{
		SlotID:     slot.ID.String(),
		GuestName:  "Dana",
		GuestEmail: "dana@example.com",
	})
	require.NoError(t, err)
	meetingID := uuid.MustParse(resp.ID)

	got, err := svc.GetMeeting(context.Background(), hostID, meetingID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = svc.GetMeeting(context.Background(), uuid.New(), meetingID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	_, err = svc.GetMeeting(context.Background(), hostID, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
