package service

import (
	"context"
	"fmt"
	"time"

	"studio-api/core/errors"
	"studio-api/core/logger"
	availrepo "studio-api/modules/availability/repository"
	bookingservice "studio-api/modules/booking/service"
	"studio-api/modules/meeting/dto"
	"studio-api/modules/meeting/entity"
	"studio-api/modules/meeting/repository"
	notifdto "studio-api/modules/notification/dto"
	notifservice "studio-api/modules/notification/service"

	"github.com/google/uuid"
)

type MeetingService interface {
	ScheduleMeeting(ctx context.Context, req *dto.ScheduleMeetingRequest) (*dto.MeetingResponse, error)
	GetMyMeetings(ctx context.Context, hostID uuid.UUID) ([]dto.MeetingResponse, error)
	GetMeeting(ctx context.Context, hostID, meetingID uuid.UUID) (*dto.MeetingResponse, error)
}

type meetingService struct {
	repo        repository.MeetingRepositoryInterface
	availRepo   availrepo.AvailabilityRepository
	coordinator bookingservice.BookingCoordinator
	notifier    *notifservice.NotificationService
}

func NewMeetingService(
	repo repository.MeetingRepositoryInterface,
	availRepo availrepo.AvailabilityRepository,
	coordinator bookingservice.BookingCoordinator,
	notifier *notifservice.NotificationService,
) MeetingService {
	return &meetingService{
		repo:        repo,
		availRepo:   availRepo,
		coordinator: coordinator,
		notifier:    notifier,
	}
}

// ScheduleMeeting creates the meeting record and claims the chosen
// slot through the coordinator. The slot claim and the meeting
// back-link are one transactional unit inside the coordinator; the
// meeting row itself is compensated away when the claim loses.
func (s *meetingService) ScheduleMeeting(ctx context.Context, req *dto.ScheduleMeetingRequest) (*dto.MeetingResponse, error) {
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid slot_id", err)
	}
	if req.GuestName == "" || req.GuestEmail == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "guest_name and guest_email are required", nil)
	}

	slot, err := s.availRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}

	day, err := s.availRepo.GetDayByID(ctx, slot.DayID)
	if err != nil || day == nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load day", err)
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Meeting with %s", req.GuestName)
	}

	meeting := &entity.Meeting{
		HostID:     day.HostID,
		Title:      title,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
	}
	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create meeting", err)
	}

	claimed, err := s.coordinator.BookSlot(ctx, slotID, meeting.ID)
	if err != nil {
		// The claim failed, so the meeting record has nothing to anchor
		// to; remove it before surfacing the booking error.
		if delErr := s.repo.Delete(ctx, meeting.ID); delErr != nil {
			logger.Error("MeetingService:ScheduleMeeting:Compensate", "meeting_id", meeting.ID, "error", delErr)
		}
		return nil, err
	}

	meeting.SlotID = &claimed.ID
	meeting.StartTime = &claimed.StartTime
	meeting.EndTime = &claimed.EndTime

	logger.Info("MeetingService:ScheduleMeeting:Success",
		"meeting_id", meeting.ID, "slot_id", claimed.ID, "host_id", day.HostID)

	if s.notifier != nil {
		err := s.notifier.Create(ctx, &notifdto.CreateNotificationRequest{
			UserID:  day.HostID,
			Title:   "New booking",
			Message: fmt.Sprintf("%s booked %s", req.GuestName, claimed.StartTime.UTC().Format(time.RFC3339)),
			Type:    "slot_booked",
			Data: map[string]interface{}{
				"meeting_id": meeting.ID.String(),
				"slot_id":    claimed.ID.String(),
			},
		})
		if err != nil {
			// Notification delivery never fails the booking.
			logger.Error("MeetingService:ScheduleMeeting:Notify", "error", err)
		}
	}

	return meetingResponse(meeting), nil
}

func (s *meetingService) GetMyMeetings(ctx context.Context, hostID uuid.UUID) ([]dto.MeetingResponse, error) {
	meetings, err := s.repo.GetByHostID(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load meetings", err)
	}

	result := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		result = append(result, *meetingResponse(&meetings[i]))
	}
	return result, nil
}

func (s *meetingService) GetMeeting(ctx context.Context, hostID, meetingID uuid.UUID) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}
	if meeting.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "meeting belongs to another host", nil)
	}
	return meetingResponse(meeting), nil
}

func meetingResponse(m *entity.Meeting) *dto.MeetingResponse {
	resp := &dto.MeetingResponse{
		ID:         m.ID.String(),
		HostID:     m.HostID.String(),
		Title:      m.Title,
		GuestName:  m.GuestName,
		GuestEmail: m.GuestEmail,
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.SlotID != nil {
		resp.SlotID = m.SlotID.String()
	}
	if m.StartTime != nil {
		resp.StartTime = m.StartTime.UTC().Format(time.RFC3339)
	}
	if m.EndTime != nil {
		resp.EndTime = m.EndTime.UTC().Format(time.RFC3339)
	}
	return resp
}
