package utils

import (
	"github.com/gosimple/slug"
)

// BookingSlug builds the public share handle for a host's booking page,
// e.g. "Ngọc Anh" -> "ngoc-anh-Xy3kP9a". The nanoid suffix keeps slugs
// unique across hosts with the same display name.
func BookingSlug(displayName string) string {
	base := slug.Make(displayName)
	if base == "" {
		base = "host"
	}
	return base + "-" + GenerateID()
}
