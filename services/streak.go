package services

import (
	"fmt"
	"time"
)

// StreakResult is the outcome of one streak evaluation.
type StreakResult struct {
	Streak  int
	Message string
	Notify  bool
}

// CalculateStreak applies the day-granularity streak table. Both timestamps
// are truncated to UTC midnight before comparison; local-time day boundaries
// proved too ambiguous across client timezones.
//
// Callers must only invoke this on the first passing completion of a course —
// repeat completions of an already-completed course never touch the streak.
func CalculateStreak(now time.Time, lastCompleted *time.Time, current int) StreakResult {
	if lastCompleted == nil {
		return StreakResult{
			Streak:  1,
			Message: "First course completed, your streak begins!",
			Notify:  true,
		}
	}

	today := truncateToUTCDay(now)
	lastDay := truncateToUTCDay(*lastCompleted)
	daysDiff := int(today.Sub(lastDay).Hours() / 24)

	switch daysDiff {
	case 0:
		return StreakResult{
			Streak:  current,
			Message: "Keep going, you already practiced today!",
			Notify:  false,
		}
	case 1:
		return StreakResult{
			Streak:  current + 1,
			Message: fmt.Sprintf("%d day streak! Keep it up!", current+1),
			Notify:  true,
		}
	default:
		return StreakResult{
			Streak:  1,
			Message: "New streak started, welcome back!",
			Notify:  true,
		}
	}
}

func truncateToUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
