package repository

import (
	"context"
	"database/sql"

	"studio-api/core/database"
	"studio-api/core/logger"
	"studio-api/modules/meeting/entity"

	"github.com/google/uuid"
)

type MeetingRepositoryInterface interface {
	Create(ctx context.Context, meeting *entity.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	GetByHostID(ctx context.Context, hostID uuid.UUID) ([]entity.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MeetingRepository struct {
	db database.IDatabase
}

func NewMeetingRepository(db database.IDatabase) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		INSERT INTO meetings (host_id, title, guest_name, guest_email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		meeting.HostID, meeting.Title, meeting.GuestName, meeting.GuestEmail,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)
	if err != nil {
		logger.Error("MeetingRepository:Create", err)
		return err
	}
	return nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `
		SELECT id, host_id, slot_id, title, guest_name, guest_email,
		       start_time, end_time, created_at, updated_at
		FROM meetings WHERE id = $1
	`
	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByID", err)
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) GetByHostID(ctx context.Context, hostID uuid.UUID) ([]entity.Meeting, error) {
	query := `
		SELECT id, host_id, slot_id, title, guest_name, guest_email,
		       start_time, end_time, created_at, updated_at
		FROM meetings
		WHERE host_id = $1
		ORDER BY created_at DESC
	`
	var meetings []entity.Meeting
	err := r.db.SelectContext(ctx, &meetings, query, hostID)
	if err != nil {
		logger.Error("MeetingRepository:GetByHostID", err)
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		logger.Error("MeetingRepository:Delete", err)
		return err
	}
	return nil
}
