package dto

// GenerationWindow carries the slot-generation parameters of one day.
// Hours are 24-hour "HH:MM" strings interpreted in the host's zone.
type GenerationWindow struct {
	FromHour        string `json:"from_hour"`
	ToHour          string `json:"to_hour"`
	DurationMinutes int    `json:"duration_minutes"`
	BreakMinutes    int    `json:"break_minutes"`
}

type CreateDayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	GenerationWindow
}

type CreateDaysBatchRequest struct {
	Dates []string `json:"dates"`
	GenerationWindow
}

// BatchDayResult reports the outcome for one date of a batch request.
// Failed dates carry the error message; the rest carry the created day.
type BatchDayResult struct {
	Date  string       `json:"date"`
	Day   *DayResponse `json:"day,omitempty"`
	Error string       `json:"error,omitempty"`
}

type RegenerateDayRequest struct {
	GenerationWindow
}

type AddCustomSlotRequest struct {
	StartTime string `json:"start_time"` // RFC3339
	EndTime   string `json:"end_time"`   // RFC3339
}

type DayResponse struct {
	ID        string         `json:"id"`
	HostID    string         `json:"host_id"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// DaySummary is the month-listing projection. FullyBooked is derived:
// true iff the day has at least one slot and every slot is booked.
type DaySummary struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	SlotCount   int    `json:"slot_count"`
	BookedCount int    `json:"booked_count"`
	FullyBooked bool   `json:"fully_booked"`
}

// SlotResponse serializes instants as RFC3339 UTC. The *_local fields
// are display strings in the viewer's zone and are only present when
// the caller supplied one.
type SlotResponse struct {
	ID         string `json:"id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	StartLocal string `json:"start_local,omitempty"`
	EndLocal   string `json:"end_local,omitempty"`
	Booked     bool   `json:"booked"`
}
