package service

import (
	"testing"
	"time"

	"studio-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWalksWindowWithBreaks(t *testing.T) {
	gen := NewSlotGenerator()

	// 09:00-12:00, 60 minute slots, 15 minute breaks. The third
	// candidate (11:30-12:30) spills past the window and is dropped.
	windows, err := gen.Generate("2025-03-10", "UTC", "09:00", "12:00", 60, 15)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), windows[0].End)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 15, 0, 0, time.UTC), windows[1].Start)
	assert.Equal(t, time.Date(2025, 3, 10, 11, 15, 0, 0, time.UTC), windows[1].End)
}

func TestGenerateConvertsHostZoneToUTC(t *testing.T) {
	gen := NewSlotGenerator()

	// Ho Chi Minh City is UTC+7 year round.
	windows, err := gen.Generate("2025-03-10", "Asia/Ho_Chi_Minh", "09:00", "11:00", 60, 0)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC), windows[0].Start)
}

func TestGenerateAcrossDSTTransition(t *testing.T) {
	gen := NewSlotGenerator()

	// Berlin enters DST on 2025-03-30; 09:00 local is 07:00 UTC after
	// the jump instead of 08:00.
	windows, err := gen.Generate("2025-03-30", "Europe/Berlin", "09:00", "11:00", 60, 0)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, time.Date(2025, 3, 30, 7, 0, 0, 0, time.UTC), windows[0].Start)
}

func TestGenerateEmptyCases(t *testing.T) {
	gen := NewSlotGenerator()

	cases := []struct {
		name     string
		from, to string
		duration int
	}{
		{"zero duration", "09:00", "12:00", 0},
		{"negative duration", "09:00", "12:00", -30},
		{"inverted window", "12:00", "09:00", 60},
		{"empty window", "09:00", "09:00", 60},
		{"slot exactly fills window", "09:00", "10:00", 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			windows, err := gen.Generate("2025-03-10", "UTC", tc.from, tc.to, tc.duration, 0)
			require.NoError(t, err)
			assert.Empty(t, windows)
			assert.NotNil(t, windows)
		})
	}
}

func TestGenerateNegativeBreakTreatedAsZero(t *testing.T) {
	gen := NewSlotGenerator()

	windows, err := gen.Generate("2025-03-10", "UTC", "09:00", "11:30", 60, -15)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, windows[0].End, windows[1].Start)
}

func TestGenerateRejectsMalformedInput(t *testing.T) {
	gen := NewSlotGenerator()

	_, err := gen.Generate("2025-03-10", "UTC", "9:00", "12:00", 60, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidTimeFormat))

	_, err = gen.Generate("2025-03-10", "UTC", "09:00", "24:00", 60, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidTimeFormat))

	_, err = gen.Generate("2025-03-10", "Definitely/NotAZone", "09:00", "12:00", 60, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = gen.Generate("10-03-2025", "UTC", "09:00", "12:00", 60, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
