package service

import (
	"context"
	"fmt"
	"time"

	"studio-api/core/cache"
	"studio-api/core/constants"
	"studio-api/core/errors"
	"studio-api/core/logger"
	"studio-api/core/timeutil"
	"studio-api/modules/availability/dto"
	"studio-api/modules/availability/entity"
	"studio-api/modules/availability/repository"

	"github.com/google/uuid"
)

// AvailabilityQueryService answers read-only availability questions.
// It never mutates days or slots.
type AvailabilityQueryService interface {
	ListAvailableDays(ctx context.Context, hostID uuid.UUID, year int, month time.Month, viewerZone string) ([]dto.DaySummary, error)
	ListSlotsForDay(ctx context.Context, hostID uuid.UUID, date string, viewerZone string) ([]dto.SlotResponse, error)
	PreviewSlots(viewerZone string) ([]dto.SlotResponse, error)
}

type availabilityQueryService struct {
	repo  repository.AvailabilityRepository
	cache *cache.Cache
	now   func() time.Time
}

func NewAvailabilityQueryService(repo repository.AvailabilityRepository, c *cache.Cache) AvailabilityQueryService {
	return &availabilityQueryService{repo: repo, cache: c, now: time.Now}
}

// ListAvailableDays returns the host's configured days within the
// month. Month bounds are computed in UTC regardless of the host zone;
// clients near the boundary pre-adjust the query on their side (kept
// as-is deliberately, see DESIGN.md). Summaries are served from a
// short-TTL cache when possible; cache trouble is never fatal.
func (s *availabilityQueryService) ListAvailableDays(ctx context.Context, hostID uuid.UUID, year int, month time.Month, viewerZone string) ([]dto.DaySummary, error) {
	if _, err := viewerLocation(viewerZone); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%04d-%02d", constants.CacheKeyMonthSummary, hostID, year, int(month))
	var cached []dto.DaySummary
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	from, to := timeutil.MonthBoundsUTC(year, month)
	days, err := s.repo.GetDaysInRange(ctx, hostID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load days", err)
	}

	summaries := make([]dto.DaySummary, 0, len(days))
	if len(days) == 0 {
		return summaries, nil
	}

	dayIDs := make([]uuid.UUID, len(days))
	for i := range days {
		dayIDs[i] = days[i].ID
	}
	counts, err := s.repo.CountSlotsByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count slots", err)
	}
	byDay := make(map[uuid.UUID]repository.DayBookingCount, len(counts))
	for _, c := range counts {
		byDay[c.DayID] = c
	}

	for i := range days {
		c := byDay[days[i].ID]
		summaries = append(summaries, dto.DaySummary{
			ID:          days[i].ID.String(),
			Date:        days[i].Date.Format(timeutil.DateLayout),
			SlotCount:   c.SlotCount,
			BookedCount: c.BookedCount,
			// Vacuously false for a day with zero slots.
			FullyBooked: c.SlotCount > 0 && c.BookedCount == c.SlotCount,
		})
	}

	s.cache.SetJSON(ctx, key, summaries, constants.MonthSummaryCacheTTL)
	return summaries, nil
}

// ListSlotsForDay resolves the host's day for the date. No configured
// day and a configured day with zero slots are observably identical:
// both return an empty list, never an error.
func (s *availabilityQueryService) ListSlotsForDay(ctx context.Context, hostID uuid.UUID, date string, viewerZone string) ([]dto.SlotResponse, error) {
	loc, err := viewerLocation(viewerZone)
	if err != nil {
		return nil, err
	}

	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	day, err := s.repo.GetDayByHostAndDate(ctx, hostID, d)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load day", err)
	}
	if day == nil {
		return []dto.SlotResponse{}, nil
	}

	slots, err := s.repo.GetSlotsByDayID(ctx, day.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load slots", err)
	}

	resp := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		resp = append(resp, slotResponse(&slots[i], loc))
	}
	return resp, nil
}

// PreviewSlots is the anonymous-access fixture: a synthetic 12-hour day
// of hourly slots for preview UIs with no host context. It is a fully
// separate path and reads nothing from storage.
func (s *availabilityQueryService) PreviewSlots(viewerZone string) ([]dto.SlotResponse, error) {
	loc, err := viewerLocation(viewerZone)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(),
		constants.PreviewDayStartHour, 0, 0, 0, time.UTC)

	resp := make([]dto.SlotResponse, 0, constants.PreviewDayHours)
	for i := 0; i < constants.PreviewDayHours; i++ {
		slot := entity.AvailableSlot{
			ID:        uuid.New(),
			StartTime: dayStart.Add(time.Duration(i) * time.Hour),
			EndTime:   dayStart.Add(time.Duration(i+1) * time.Hour),
		}
		resp = append(resp, slotResponse(&slot, loc))
	}

	logger.Debug("AvailabilityQueryService:PreviewSlots", "count", len(resp))
	return resp, nil
}

// InvalidateMonth drops the cached month summary containing the date.
// Called by the booking path after a successful claim.
func InvalidateMonth(ctx context.Context, c *cache.Cache, hostID uuid.UUID, date time.Time) {
	key := fmt.Sprintf("%s:%s:%04d-%02d", constants.CacheKeyMonthSummary, hostID, date.Year(), int(date.Month()))
	c.Delete(ctx, key)
}

func viewerLocation(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("unknown timezone %q", zone), err)
	}
	return loc, nil
}
