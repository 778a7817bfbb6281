package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessHoursRoundTrip(t *testing.T) {
	hours := BusinessHours{
		"monday": {IsOpen: true, Start: "08:00", End: "18:00"},
		"sunday": {IsOpen: false},
	}

	value, err := hours.Value()
	require.NoError(t, err)

	var decoded BusinessHours
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, hours, decoded)
}

func TestBusinessHoursNilColumn(t *testing.T) {
	var hours BusinessHours
	require.NoError(t, hours.Scan(nil))
	assert.Nil(t, hours)

	value, err := hours.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestBusinessHoursScanString(t *testing.T) {
	var hours BusinessHours
	require.NoError(t, hours.Scan(`{"friday":{"isOpen":true,"start":"09:00","end":"17:00"}}`))

	day, ok := hours.ForWeekday(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "09:00", day.Start)
}

func TestBusinessHoursScanRejectsUnknownType(t *testing.T) {
	var hours BusinessHours
	assert.Error(t, hours.Scan(42))
}

func TestWeekdayKey(t *testing.T) {
	assert.Equal(t, "monday", WeekdayKey(time.Monday))
	assert.Equal(t, "sunday", WeekdayKey(time.Sunday))
}
