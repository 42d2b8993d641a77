package service

import (
	"context"
	"encoding/json"
	"time"

	"studio-api/core/constants"
	coreEntity "studio-api/core/entity"
	"studio-api/core/logger"
	"studio-api/core/params"
	"studio-api/core/queue"
	"studio-api/modules/notification/dto"
	"studio-api/modules/notification/entity"
	"studio-api/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type NotificationService struct {
	repo  *repository.NotificationRepository
	queue *queue.Client
}

func NewNotificationService(repo *repository.NotificationRepository, q *queue.Client) *NotificationService {
	return &NotificationService{repo: repo, queue: q}
}

// Create enqueues the notification for background delivery. When no
// queue is configured the row is written synchronously so callers see
// the same end state either way.
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	if s.queue == nil {
		return s.persist(ctx, req)
	}
	return s.queue.Enqueue(ctx, constants.TaskNotificationDeliver, req)
}

// HandleDeliverTask is the asynq handler persisting an enqueued
// notification.
func (s *NotificationService) HandleDeliverTask(ctx context.Context, t *asynq.Task) error {
	var req dto.CreateNotificationRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		logger.Error("NotificationService:HandleDeliverTask:Unmarshal", err)
		return err
	}
	return s.persist(ctx, &req)
}

func (s *NotificationService) persist(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.repo.Create(ctx, notif)
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
