package entity

import (
	"time"

	"studio-api/core/entity"

	"github.com/google/uuid"
)

// Meeting is a host-side calendar item created when a guest schedules
// a slot. SlotID and the times are set the moment the booking
// coordinator claims the slot; until then the meeting is unanchored.
type Meeting struct {
	HostID     uuid.UUID  `db:"host_id" json:"host_id"`
	SlotID     *uuid.UUID `db:"slot_id" json:"slot_id,omitempty"`
	Title      string     `db:"title" json:"title"`
	GuestName  string     `db:"guest_name" json:"guest_name"`
	GuestEmail string     `db:"guest_email" json:"guest_email"`
	StartTime  *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime    *time.Time `db:"end_time" json:"end_time,omitempty"`
	entity.BaseEntity
}
