package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studio-api/core/database"
	"studio-api/core/logger"
	"studio-api/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrDuplicateDay is returned when the (host, date) unique constraint
// rejects an insert.
var ErrDuplicateDay = errors.New("available day already exists for host and date")

// ErrBookedSlotsRemain is returned by the destructive operations when
// the day still holds booked slots after removing the unbooked ones.
var ErrBookedSlotsRemain = errors.New("day has booked slots")

// DayBookingCount aggregates per-day slot counts for month listings.
type DayBookingCount struct {
	DayID       uuid.UUID `db:"day_id"`
	SlotCount   int       `db:"slot_count"`
	BookedCount int       `db:"booked_count"`
}

type AvailabilityRepository interface {
	CreateDayWithSlots(ctx context.Context, day *entity.AvailableDay, windows []entity.SlotWindow) error
	ReplaceSlots(ctx context.Context, dayID uuid.UUID, windows []entity.SlotWindow) error
	DeleteDayCascade(ctx context.Context, dayID uuid.UUID) error

	GetDayByID(ctx context.Context, id uuid.UUID) (*entity.AvailableDay, error)
	GetDayByHostAndDate(ctx context.Context, hostID uuid.UUID, date time.Time) (*entity.AvailableDay, error)
	GetDaysInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.AvailableDay, error)
	CountSlotsByDayIDs(ctx context.Context, dayIDs []uuid.UUID) ([]DayBookingCount, error)

	InsertSlot(ctx context.Context, slot *entity.AvailableSlot) error
	GetSlotByID(ctx context.Context, id uuid.UUID) (*entity.AvailableSlot, error)
	GetSlotsByDayID(ctx context.Context, dayID uuid.UUID) ([]entity.AvailableSlot, error)
	DeleteUnbookedSlot(ctx context.Context, slotID uuid.UUID) (bool, error)
}

type availabilityRepository struct {
	db database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

const insertSlotQuery = `
	INSERT INTO available_slots (day_id, start_time, end_time)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at
`

// CreateDayWithSlots persists the day and its generated slots in one
// transaction; a failure on any slot rolls back the day.
func (r *availabilityRepository) CreateDayWithSlots(ctx context.Context, day *entity.AvailableDay, windows []entity.SlotWindow) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO available_days (host_id, date)
			VALUES ($1, $2)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRowxContext(ctx, query, day.HostID, day.Date).
			Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateDay
			}
			logger.Error("AvailabilityRepository:CreateDayWithSlots:InsertDay", err)
			return err
		}

		for _, w := range windows {
			var slot entity.AvailableSlot
			err := tx.QueryRowxContext(ctx, insertSlotQuery, day.ID, w.Start, w.End).
				Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
			if err != nil {
				logger.Error("AvailabilityRepository:CreateDayWithSlots:InsertSlot", err)
				return err
			}
		}
		return nil
	})
}

// ReplaceSlots deletes all unbooked slots under the day and inserts the
// new windows. If any booked slot remains the transaction rolls back
// with ErrBookedSlotsRemain, leaving every slot untouched.
func (r *availabilityRepository) ReplaceSlots(ctx context.Context, dayID uuid.UUID, windows []entity.SlotWindow) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := deleteUnbookedGuarded(ctx, tx, dayID); err != nil {
			return err
		}

		for _, w := range windows {
			var slot entity.AvailableSlot
			err := tx.QueryRowxContext(ctx, insertSlotQuery, dayID, w.Start, w.End).
				Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
			if err != nil {
				logger.Error("AvailabilityRepository:ReplaceSlots:InsertSlot", err)
				return err
			}
		}
		return nil
	})
}

// DeleteDayCascade removes the day and its slots; refuses when any slot
// is booked. Never a silent cascade-skip: booked children surface as
// ErrBookedSlotsRemain.
func (r *availabilityRepository) DeleteDayCascade(ctx context.Context, dayID uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := deleteUnbookedGuarded(ctx, tx, dayID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM available_days WHERE id = $1`, dayID); err != nil {
			logger.Error("AvailabilityRepository:DeleteDayCascade:DeleteDay", err)
			return err
		}
		return nil
	})
}

// deleteUnbookedGuarded deletes the day's unbooked slots, then fails
// the transaction when booked slots remain. Running the check after the
// delete keeps the guard correct under a concurrent booking.
func deleteUnbookedGuarded(ctx context.Context, tx *sqlx.Tx, dayID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM available_slots WHERE day_id = $1 AND meeting_id IS NULL`, dayID)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteUnbooked", err)
		return err
	}

	var remaining int
	err = tx.GetContext(ctx, &remaining,
		`SELECT COUNT(*) FROM available_slots WHERE day_id = $1`, dayID)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteUnbooked:Count", err)
		return err
	}
	if remaining > 0 {
		return ErrBookedSlotsRemain
	}
	return nil
}

func (r *availabilityRepository) GetDayByID(ctx context.Context, id uuid.UUID) (*entity.AvailableDay, error) {
	query := `
		SELECT id, host_id, date, created_at, updated_at
		FROM available_days WHERE id = $1
	`
	var day entity.AvailableDay
	err := r.db.GetContext(ctx, &day, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetDayByID", err)
		return nil, err
	}
	return &day, nil
}

func (r *availabilityRepository) GetDayByHostAndDate(ctx context.Context, hostID uuid.UUID, date time.Time) (*entity.AvailableDay, error) {
	query := `
		SELECT id, host_id, date, created_at, updated_at
		FROM available_days WHERE host_id = $1 AND date = $2
	`
	var day entity.AvailableDay
	err := r.db.GetContext(ctx, &day, query, hostID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetDayByHostAndDate", err)
		return nil, err
	}
	return &day, nil
}

func (r *availabilityRepository) GetDaysInRange(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]entity.AvailableDay, error) {
	query := `
		SELECT id, host_id, date, created_at, updated_at
		FROM available_days
		WHERE host_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC
	`
	var days []entity.AvailableDay
	err := r.db.SelectContext(ctx, &days, query, hostID, from, to)
	if err != nil {
		logger.Error("AvailabilityRepository:GetDaysInRange", err)
		return nil, err
	}
	return days, nil
}

// CountSlotsByDayIDs returns total and booked slot counts per day in a
// single aggregate query; COUNT(meeting_id) only counts booked rows.
func (r *availabilityRepository) CountSlotsByDayIDs(ctx context.Context, dayIDs []uuid.UUID) ([]DayBookingCount, error) {
	if len(dayIDs) == 0 {
		return []DayBookingCount{}, nil
	}
	query := `
		SELECT day_id, COUNT(*) AS slot_count, COUNT(meeting_id) AS booked_count
		FROM available_slots
		WHERE day_id = ANY($1)
		GROUP BY day_id
	`
	var counts []DayBookingCount
	err := r.db.SelectContext(ctx, &counts, query, pq.Array(dayIDs))
	if err != nil {
		logger.Error("AvailabilityRepository:CountSlotsByDayIDs", err)
		return nil, err
	}
	return counts, nil
}

func (r *availabilityRepository) InsertSlot(ctx context.Context, slot *entity.AvailableSlot) error {
	err := r.db.QueryRowContext(ctx, insertSlotQuery, slot.DayID, slot.StartTime, slot.EndTime).
		Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		logger.Error("AvailabilityRepository:InsertSlot", err)
		return err
	}
	return nil
}

func (r *availabilityRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*entity.AvailableSlot, error) {
	query := `
		SELECT id, day_id, start_time, end_time, meeting_id, created_at, updated_at
		FROM available_slots WHERE id = $1
	`
	var slot entity.AvailableSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetSlotByID", err)
		return nil, err
	}
	return &slot, nil
}

func (r *availabilityRepository) GetSlotsByDayID(ctx context.Context, dayID uuid.UUID) ([]entity.AvailableSlot, error) {
	query := `
		SELECT id, day_id, start_time, end_time, meeting_id, created_at, updated_at
		FROM available_slots
		WHERE day_id = $1
		ORDER BY start_time ASC
	`
	var slots []entity.AvailableSlot
	err := r.db.SelectContext(ctx, &slots, query, dayID)
	if err != nil {
		logger.Error("AvailabilityRepository:GetSlotsByDayID", err)
		return nil, err
	}
	return slots, nil
}

// DeleteUnbookedSlot removes the slot only while unbooked; the booked
// guard rides in the statement itself. Returns whether a row went away.
func (r *availabilityRepository) DeleteUnbookedSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	res, err := r.db.NamedExecContext(ctx,
		`DELETE FROM available_slots WHERE id = :id AND meeting_id IS NULL`,
		map[string]any{"id": slotID})
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteUnbookedSlot", err)
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// isUniqueViolation reports a Postgres 23505 unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
