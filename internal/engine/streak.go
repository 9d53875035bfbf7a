package engine

import (
	"time"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// CalculateStreak walks a goal-met history ordered newest first (index 0 is
// today). A missing day must be passed as false; it breaks a run like any
// other missed day.
//
// Current counts the run ending today. If today is not met yet it is still in
// progress, so the run ending yesterday counts instead. Longest is the
// longest run anywhere in the history.
func CalculateStreak(history []bool) domain.Streak {
	var s domain.Streak
	run := 0
	for _, met := range history {
		if met {
			run++
			s.Longest = max(s.Longest, run)
			continue
		}
		run = 0
	}

	start := 0
	if len(history) > 0 && !history[0] {
		start = 1
	}
	for i := start; i < len(history) && history[i]; i++ {
		s.Current++
	}
	return s
}

// DayHistory builds the newest-first goal-met history for the days days
// ending at today, looking each day up in met. Days absent from met are not
// met.
func DayHistory(today time.Time, days int, met map[string]bool) []bool {
	out := make([]bool, days)
	for i := range days {
		out[i] = met[today.AddDate(0, 0, -i).Format(domain.DayLayout)]
	}
	return out
}
