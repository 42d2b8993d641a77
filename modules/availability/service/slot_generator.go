package service

import (
	"time"

	"studio-api/core/timeutil"
	"studio-api/modules/availability/entity"
)

// SlotGenerator deterministically produces the candidate slots for one
// day. It has no state and never touches storage.
type SlotGenerator struct{}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// Generate converts the working window to UTC in the host's zone and
// walks it in duration+break steps. A candidate is kept only while its
// end falls strictly before the window end, so a partial trailing slot
// is never emitted. A non-positive duration or an inverted window
// yields an empty list rather than an error.
func (g *SlotGenerator) Generate(date, zone, fromHour, toHour string, durationMinutes, breakMinutes int) ([]entity.SlotWindow, error) {
	from, err := timeutil.ToUTCInstant(date, fromHour, zone)
	if err != nil {
		return nil, err
	}
	to, err := timeutil.ToUTCInstant(date, toHour, zone)
	if err != nil {
		return nil, err
	}
	if breakMinutes < 0 {
		breakMinutes = 0
	}

	return g.walk(from, to, durationMinutes, breakMinutes), nil
}

func (g *SlotGenerator) walk(from, to time.Time, durationMinutes, breakMinutes int) []entity.SlotWindow {
	windows := []entity.SlotWindow{}
	if durationMinutes <= 0 || !from.Before(to) {
		return windows
	}

	current := from
	for {
		end := timeutil.AddMinutes(current, durationMinutes)
		if !end.Before(to) {
			break
		}
		windows = append(windows, entity.SlotWindow{Start: current, End: end})
		current = timeutil.AddMinutes(end, breakMinutes)
	}
	return windows
}
