package service

import (
	"context"

	"studio-api/core/cache"
	"studio-api/core/errors"
	"studio-api/core/logger"
	availentity "studio-api/modules/availability/entity"
	availrepo "studio-api/modules/availability/repository"
	availservice "studio-api/modules/availability/service"
	"studio-api/modules/booking/repository"

	"github.com/google/uuid"
)

// BookingCoordinator is the single path by which a slot transitions
// from unbooked to booked, and the only writer of the meeting link.
type BookingCoordinator interface {
	BookSlot(ctx context.Context, slotID, meetingID uuid.UUID) (*availentity.AvailableSlot, error)
}

type bookingCoordinator struct {
	repo      repository.BookingRepository
	availRepo availrepo.AvailabilityRepository
	cache     *cache.Cache
}

func NewBookingCoordinator(repo repository.BookingRepository, availRepo availrepo.AvailabilityRepository, c *cache.Cache) BookingCoordinator {
	return &bookingCoordinator{repo: repo, availRepo: availRepo, cache: c}
}

// BookSlot claims the slot for the meeting. First claim wins: a slot
// already holding any meeting reference fails with SlotAlreadyBooked,
// which is an expected outcome of a race or a double submission, not a
// system fault. The engine never retries; that choice belongs to the
// caller.
func (s *bookingCoordinator) BookSlot(ctx context.Context, slotID, meetingID uuid.UUID) (*availentity.AvailableSlot, error) {
	claimed, err := s.repo.ClaimSlot(ctx, slotID, meetingID)
	if err == repository.ErrSlotNotClaimed {
		return nil, s.resolveClaimFailure(ctx, slotID)
	}
	if err != nil {
		logger.Error("BookingCoordinator:BookSlot:Claim", "slot_id", slotID, "meeting_id", meetingID, "error", err)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to book slot", err)
	}

	logger.Info("BookingCoordinator:BookSlot:Success",
		"slot_id", slotID, "meeting_id", meetingID,
		"start_time", claimed.StartTime, "end_time", claimed.EndTime)

	s.invalidateMonthSummary(ctx, claimed)
	return claimed, nil
}

// resolveClaimFailure distinguishes a missing slot from a lost race.
func (s *bookingCoordinator) resolveClaimFailure(ctx context.Context, slotID uuid.UUID) error {
	slot, err := s.availRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to load slot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}
	return errors.NewAppError(errors.ErrSlotAlreadyBooked, "slot is already booked", nil)
}

// invalidateMonthSummary drops the host's cached month view so the
// fullyBooked projection reflects the new booking. Best effort only.
func (s *bookingCoordinator) invalidateMonthSummary(ctx context.Context, slot *availentity.AvailableSlot) {
	day, err := s.availRepo.GetDayByID(ctx, slot.DayID)
	if err != nil || day == nil {
		logger.Warn("BookingCoordinator:InvalidateMonthSummary:DayLookupFailed",
			"day_id", slot.DayID, "error", err)
		return
	}
	availservice.InvalidateMonth(ctx, s.cache, day.HostID, day.Date)
}
