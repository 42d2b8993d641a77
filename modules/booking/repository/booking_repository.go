package repository

import (
	"context"
	"database/sql"
	"errors"

	"studio-api/core/database"
	"studio-api/core/logger"
	availentity "studio-api/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrSlotNotClaimed is returned when the conditional update matched no
// row: the slot either does not exist or is already booked. The caller
// disambiguates with a follow-up read.
var ErrSlotNotClaimed = errors.New("slot not claimed")

type BookingRepository interface {
	ClaimSlot(ctx context.Context, slotID, meetingID uuid.UUID) (*availentity.AvailableSlot, error)
}

type bookingRepository struct {
	db database.IDatabase
}

func NewBookingRepository(db database.IDatabase) BookingRepository {
	return &bookingRepository{db: db}
}

// ClaimSlot atomically moves a slot from unbooked to booked and links
// the meeting back to it, all in one transaction. Serialization comes
// from the conditional UPDATE: the write only succeeds when meeting_id
// was still NULL, so concurrent claims on one slot resolve to exactly
// one winner regardless of process count. No application mutex is
// involved.
func (r *bookingRepository) ClaimSlot(ctx context.Context, slotID, meetingID uuid.UUID) (*availentity.AvailableSlot, error) {
	var claimed availentity.AvailableSlot

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		claimQuery := `
			UPDATE available_slots
			SET meeting_id = $2, updated_at = NOW()
			WHERE id = $1 AND meeting_id IS NULL
			RETURNING id, day_id, start_time, end_time, meeting_id, created_at, updated_at
		`
		err := tx.GetContext(ctx, &claimed, claimQuery, slotID, meetingID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrSlotNotClaimed
			}
			logger.Error("BookingRepository:ClaimSlot:Update", err)
			return err
		}

		// Back-link the meeting and pin its times to the slot's.
		linkQuery := `
			UPDATE meetings
			SET slot_id = $1, start_time = $2, end_time = $3, updated_at = NOW()
			WHERE id = $4
		`
		if _, err := tx.ExecContext(ctx, linkQuery, claimed.ID, claimed.StartTime, claimed.EndTime, meetingID); err != nil {
			logger.Error("BookingRepository:ClaimSlot:LinkMeeting", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}
