package dto

// ScheduleMeetingRequest is the public guest-side booking payload.
type ScheduleMeetingRequest struct {
	SlotID     string `json:"slot_id"`
	Title      string `json:"title"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
}

type MeetingResponse struct {
	ID         string `json:"id"`
	HostID     string `json:"host_id"`
	SlotID     string `json:"slot_id,omitempty"`
	Title      string `json:"title"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	CreatedAt  string `json:"created_at"`
}
