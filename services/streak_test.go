package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStreak_FirstCompletion(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	result := CalculateStreak(now, nil, 0)

	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, "First course completed, your streak begins!", result.Message)
	assert.True(t, result.Notify)
}

func TestCalculateStreak_SameDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	result := CalculateStreak(now, &earlier, 4)

	assert.Equal(t, 4, result.Streak)
	assert.False(t, result.Notify)
}

func TestCalculateStreak_ConsecutiveDay(t *testing.T) {
	now := time.Date(2025, 3, 11, 0, 15, 0, 0, time.UTC)
	yesterday := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)

	result := CalculateStreak(now, &yesterday, 4)

	assert.Equal(t, 5, result.Streak)
	assert.Equal(t, "5 day streak! Keep it up!", result.Message)
	assert.True(t, result.Notify)
}

func TestCalculateStreak_GapResets(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	threeDaysAgo := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	result := CalculateStreak(now, &threeDaysAgo, 12)

	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, "New streak started, welcome back!", result.Message)
	assert.True(t, result.Notify)
}

func TestCalculateStreak_DayBoundaryIsUTC(t *testing.T) {
	// 23:59 and 00:01 around UTC midnight land on consecutive days even
	// though only two minutes elapsed.
	last := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)

	result := CalculateStreak(now, &last, 2)

	assert.Equal(t, 3, result.Streak)
	assert.True(t, result.Notify)
}

func TestCalculateStreak_LocalTimezoneFolded(t *testing.T) {
	// Timestamps in a non-UTC zone are compared on the UTC calendar.
	trt := time.FixedZone("UTC+3", 3*60*60)
	last := time.Date(2025, 3, 11, 1, 0, 0, 0, trt) // 2025-03-10 22:00 UTC
	now := time.Date(2025, 3, 11, 23, 0, 0, 0, time.UTC)

	result := CalculateStreak(now, &last, 1)

	assert.Equal(t, 2, result.Streak)
}
