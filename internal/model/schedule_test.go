package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("08:00"))
	assert.True(t, ValidClock("23:59"))
	assert.True(t, ValidClock("0:05"))

	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("12:60"))
	assert.False(t, ValidClock("noon"))
	assert.False(t, ValidClock("12"))
}

func TestScheduleOverlapsWith(t *testing.T) {
	base := Schedule{Day: "Monday", StartTime: "08:00", EndTime: "10:00"}

	assert.True(t, base.OverlapsWith(Schedule{Day: "Monday", StartTime: "09:00", EndTime: "11:00"}))
	assert.True(t, base.OverlapsWith(Schedule{Day: "Monday", StartTime: "07:00", EndTime: "09:00"}))
	assert.True(t, base.OverlapsWith(Schedule{Day: "Monday", StartTime: "08:30", EndTime: "09:30"}))
	assert.True(t, base.OverlapsWith(Schedule{Day: "Monday", StartTime: "07:00", EndTime: "11:00"}))

	// Different day never collides.
	assert.False(t, base.OverlapsWith(Schedule{Day: "Tuesday", StartTime: "08:00", EndTime: "10:00"}))

	// Back-to-back slots do not overlap.
	assert.False(t, base.OverlapsWith(Schedule{Day: "Monday", StartTime: "10:00", EndTime: "12:00"}))
	assert.False(t, base.OverlapsWith(Schedule{Day: "Monday", StartTime: "06:00", EndTime: "08:00"}))
}

func TestFormatRegistryNumber(t *testing.T) {
	assert.Equal(t, "0220000041", FormatRegistryNumber(RegistryPrefixStudent, 41))
	assert.Equal(t, "0110000001", FormatRegistryNumber(RegistryPrefixAdmin, 1))
	assert.Equal(t, "0991234567", FormatRegistryNumber(RegistryPrefixParent, 1234567))
}
