package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailableDay is one calendar day a host has opened for booking.
// At most one row exists per (host, date); the date column is date-only.
type AvailableDay struct {
	ID        uuid.UUID `db:"id" json:"id"`
	HostID    uuid.UUID `db:"host_id" json:"host_id"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AvailableSlot is a bookable [StartTime, EndTime) interval under one
// day. Instants are stored in UTC. MeetingID is the single source of
// truth for booked state: a slot is booked iff MeetingID is set.
type AvailableSlot struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	DayID     uuid.UUID  `db:"day_id" json:"day_id"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	EndTime   time.Time  `db:"end_time" json:"end_time"`
	MeetingID *uuid.UUID `db:"meeting_id" json:"meeting_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

func (s *AvailableSlot) Booked() bool {
	return s.MeetingID != nil
}

// FullyBooked reports whether every slot is booked. A day with zero
// slots is not fully booked.
func FullyBooked(slots []AvailableSlot) bool {
	if len(slots) == 0 {
		return false
	}
	for i := range slots {
		if !slots[i].Booked() {
			return false
		}
	}
	return true
}

// SlotWindow is a generated (start, end) candidate before persistence.
type SlotWindow struct {
	Start time.Time
	End   time.Time
}
