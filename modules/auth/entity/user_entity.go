package entity

import (
	"studio-api/core/entity"
)

type User struct {
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	DisplayName  string `db:"display_name" json:"display_name"`
	Timezone     string `db:"timezone" json:"timezone"`
	BookingSlug  string `db:"booking_slug" json:"booking_slug"`
	entity.BaseEntity
}
