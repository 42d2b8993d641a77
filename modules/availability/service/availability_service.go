package service

import (
	"context"
	"fmt"
	"time"

	"studio-api/core/config"
	"studio-api/core/constants"
	"studio-api/core/errors"
	"studio-api/core/logger"
	"studio-api/core/timeutil"
	"studio-api/modules/availability/dto"
	"studio-api/modules/availability/entity"
	"studio-api/modules/availability/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// HostDirectory resolves per-host settings owned by the auth module.
// The engine never hard-codes a zone; every host carries their own.
type HostDirectory interface {
	GetTimezone(ctx context.Context, hostID uuid.UUID) (string, error)
}

type AvailabilityService interface {
	CreateDay(ctx context.Context, hostID uuid.UUID, req *dto.CreateDayRequest) (*dto.DayResponse, error)
	CreateDays(ctx context.Context, hostID uuid.UUID, req *dto.CreateDaysBatchRequest) ([]dto.BatchDayResult, error)
	RegenerateDay(ctx context.Context, hostID, dayID uuid.UUID, req *dto.RegenerateDayRequest) (*dto.DayResponse, error)
	AddCustomSlot(ctx context.Context, hostID, dayID uuid.UUID, req *dto.AddCustomSlotRequest) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, hostID, slotID uuid.UUID) error
	DeleteDay(ctx context.Context, hostID, dayID uuid.UUID) error
}

type availabilityService struct {
	repo  repository.AvailabilityRepository
	gen   *SlotGenerator
	hosts HostDirectory
}

func NewAvailabilityService(repo repository.AvailabilityRepository, gen *SlotGenerator, hosts HostDirectory) AvailabilityService {
	return &availabilityService{repo: repo, gen: gen, hosts: hosts}
}

// CreateDay opens a day for the host and persists the generated slots
// with it as one atomic unit.
func (s *availabilityService) CreateDay(ctx context.Context, hostID uuid.UUID, req *dto.CreateDayRequest) (*dto.DayResponse, error) {
	zone, err := s.hostZone(ctx, hostID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	applyWindowDefaults(&req.GenerationWindow)
	windows, err := s.gen.Generate(req.Date, zone, req.FromHour, req.ToHour, req.DurationMinutes, req.BreakMinutes)
	if err != nil {
		return nil, err
	}

	day := &entity.AvailableDay{HostID: hostID, Date: date}
	if err := s.repo.CreateDayWithSlots(ctx, day, windows); err != nil {
		if err == repository.ErrDuplicateDay {
			return nil, errors.NewAppError(errors.ErrDayAlreadyExists,
				fmt.Sprintf("availability already configured for %s", req.Date), err)
		}
		logger.Error("AvailabilityService:CreateDay:Persist", "host_id", hostID, "date", req.Date, "error", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create availability day", err)
	}

	logger.Info("AvailabilityService:CreateDay:Success",
		"host_id", hostID, "date", req.Date, "slot_count", len(windows))

	return s.dayResponse(ctx, day)
}

// CreateDays configures several days with one window. The per-date
// creations run under a bounded errgroup and every outcome is collected
// before returning, so a partial failure is visible to the caller
// instead of being dropped mid-flight.
func (s *availabilityService) CreateDays(ctx context.Context, hostID uuid.UUID, req *dto.CreateDaysBatchRequest) ([]dto.BatchDayResult, error) {
	if len(req.Dates) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "dates is required", nil)
	}

	results := make([]dto.BatchDayResult, len(req.Dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.BatchDayConcurrency)

	for i, date := range req.Dates {
		i, date := i, date
		g.Go(func() error {
			day, err := s.CreateDay(gctx, hostID, &dto.CreateDayRequest{
				Date:             date,
				GenerationWindow: req.GenerationWindow,
			})
			if err != nil {
				results[i] = dto.BatchDayResult{Date: date, Error: err.Error()}
				return nil
			}
			results[i] = dto.BatchDayResult{Date: date, Day: day}
			return nil
		})
	}

	// Individual failures land in results; only a context abort ends
	// the group early.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// RegenerateDay destructively replaces the day's slots with a freshly
// generated set. Refused while any slot is booked.
func (s *availabilityService) RegenerateDay(ctx context.Context, hostID, dayID uuid.UUID, req *dto.RegenerateDayRequest) (*dto.DayResponse, error) {
	day, err := s.ownedDay(ctx, hostID, dayID)
	if err != nil {
		return nil, err
	}

	zone, err := s.hostZone(ctx, hostID)
	if err != nil {
		return nil, err
	}

	applyWindowDefaults(&req.GenerationWindow)
	dateStr := day.Date.Format(timeutil.DateLayout)
	windows, err := s.gen.Generate(dateStr, zone, req.FromHour, req.ToHour, req.DurationMinutes, req.BreakMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceSlots(ctx, dayID, windows); err != nil {
		if err == repository.ErrBookedSlotsRemain {
			return nil, errors.NewAppError(errors.ErrDayHasBookings,
				"day has booked slots and cannot be regenerated", err)
		}
		logger.Error("AvailabilityService:RegenerateDay:Replace", "day_id", dayID, "error", err)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to regenerate day", err)
	}

	logger.Info("AvailabilityService:RegenerateDay:Success",
		"host_id", hostID, "day_id", dayID, "slot_count", len(windows))

	return s.dayResponse(ctx, day)
}

// AddCustomSlot inserts a single manual slot, still subject to the
// non-overlap invariant against every existing slot of the day.
func (s *availabilityService) AddCustomSlot(ctx context.Context, hostID, dayID uuid.UUID, req *dto.AddCustomSlotRequest) (*dto.SlotResponse, error) {
	if _, err := s.ownedDay(ctx, hostID, dayID); err != nil {
		return nil, err
	}

	start, err := parseInstant(req.StartTime, "start_time")
	if err != nil {
		return nil, err
	}
	end, err := parseInstant(req.EndTime, "end_time")
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be before end_time", nil)
	}

	existing, err := s.repo.GetSlotsByDayID(ctx, dayID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load slots", err)
	}
	for i := range existing {
		if timeutil.IntervalsOverlap(start, end, existing[i].StartTime, existing[i].EndTime) {
			return nil, errors.NewAppError(errors.ErrSlotOverlap,
				fmt.Sprintf("slot overlaps existing slot %s", existing[i].ID), nil)
		}
	}

	slot := &entity.AvailableSlot{DayID: dayID, StartTime: start.UTC(), EndTime: end.UTC()}
	if err := s.repo.InsertSlot(ctx, slot); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to insert slot", err)
	}

	logger.Info("AvailabilityService:AddCustomSlot:Success",
		"host_id", hostID, "day_id", dayID, "slot_id", slot.ID)

	resp := slotResponse(slot, nil)
	return &resp, nil
}

// DeleteSlot removes an unbooked slot. A booked slot is never deleted.
func (s *availabilityService) DeleteSlot(ctx context.Context, hostID, slotID uuid.UUID) error {
	slot, err := s.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to load slot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}
	if _, err := s.ownedDay(ctx, hostID, slot.DayID); err != nil {
		return err
	}
	if slot.Booked() {
		return errors.NewAppError(errors.ErrSlotBooked, "slot is booked and cannot be deleted", nil)
	}

	deleted, err := s.repo.DeleteUnbookedSlot(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete slot", err)
	}
	if !deleted {
		// Lost a race with a booking between the read and the delete.
		return errors.NewAppError(errors.ErrSlotBooked, "slot is booked and cannot be deleted", nil)
	}

	logger.Info("AvailabilityService:DeleteSlot:Success", "host_id", hostID, "slot_id", slotID)
	return nil
}

// DeleteDay removes a day and its slots; surfaces an error (never a
// silent skip) when booked slots exist.
func (s *availabilityService) DeleteDay(ctx context.Context, hostID, dayID uuid.UUID) error {
	if _, err := s.ownedDay(ctx, hostID, dayID); err != nil {
		return err
	}

	if err := s.repo.DeleteDayCascade(ctx, dayID); err != nil {
		if err == repository.ErrBookedSlotsRemain {
			return errors.NewAppError(errors.ErrDayHasBookings,
				"day has booked slots and cannot be deleted", err)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete day", err)
	}

	logger.Info("AvailabilityService:DeleteDay:Success", "host_id", hostID, "day_id", dayID)
	return nil
}

// applyWindowDefaults fills omitted window fields from configuration,
// falling back to the compiled defaults before config is loaded.
func applyWindowDefaults(w *dto.GenerationWindow) {
	fromHour := constants.DefaultFromHour
	toHour := constants.DefaultToHour
	duration := constants.DefaultDurationMinutes
	brk := constants.DefaultBreakMinutes
	if cfg, ok := config.GetSafe(); ok {
		fromHour = cfg.Booking.FromHour
		toHour = cfg.Booking.ToHour
		duration = cfg.Booking.DurationMinutes
		brk = cfg.Booking.BreakMinutes
	}

	if w.FromHour == "" {
		w.FromHour = fromHour
	}
	if w.ToHour == "" {
		w.ToHour = toHour
	}
	if w.DurationMinutes == 0 {
		w.DurationMinutes = duration
	}
	if w.BreakMinutes == 0 {
		w.BreakMinutes = brk
	}
}

func (s *availabilityService) hostZone(ctx context.Context, hostID uuid.UUID) (string, error) {
	zone, err := s.hosts.GetTimezone(ctx, hostID)
	if err != nil {
		logger.Error("AvailabilityService:HostZone", "host_id", hostID, "error", err)
		return "", errors.NewAppError(errors.ErrGetFailed, "failed to resolve host timezone", err)
	}
	if zone == "" {
		zone = constants.DefaultHostTimezone
	}
	return zone, nil
}

func (s *availabilityService) ownedDay(ctx context.Context, hostID, dayID uuid.UUID) (*entity.AvailableDay, error) {
	day, err := s.repo.GetDayByID(ctx, dayID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load day", err)
	}
	if day == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "availability day not found", nil)
	}
	if day.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "day belongs to another host", nil)
	}
	return day, nil
}

func (s *availabilityService) dayResponse(ctx context.Context, day *entity.AvailableDay) (*dto.DayResponse, error) {
	slots, err := s.repo.GetSlotsByDayID(ctx, day.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load slots", err)
	}

	resp := &dto.DayResponse{
		ID:        day.ID.String(),
		HostID:    day.HostID.String(),
		Date:      day.Date.Format(timeutil.DateLayout),
		CreatedAt: day.CreatedAt.UTC().Format(time.RFC3339),
	}
	for i := range slots {
		resp.Slots = append(resp.Slots, slotResponse(&slots[i], nil))
	}
	return resp, nil
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(timeutil.DateLayout, date)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date), err)
	}
	return d, nil
}

func parseInstant(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("invalid %s %q, expected RFC3339", field, value), err)
	}
	return t, nil
}

func slotResponse(slot *entity.AvailableSlot, viewerLoc *time.Location) dto.SlotResponse {
	resp := dto.SlotResponse{
		ID:        slot.ID.String(),
		StartTime: slot.StartTime.UTC().Format(time.RFC3339),
		EndTime:   slot.EndTime.UTC().Format(time.RFC3339),
		Booked:    slot.Booked(),
	}
	if viewerLoc != nil {
		resp.StartLocal = slot.StartTime.In(viewerLoc).Format("2006-01-02 15:04")
		resp.EndLocal = slot.EndTime.In(viewerLoc).Format("2006-01-02 15:04")
	}
	return resp
}
