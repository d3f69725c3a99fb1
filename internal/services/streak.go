package services

import (
	"sort"
	"time"

	"portfolio.dev/internal/models"
)

const dayLayout = "2006-01-02"

// contributionStats counts activity days and streaks from event timestamps.
// Dates are bucketed by UTC day. The current streak only counts if the most
// recent active day is today or yesterday.
func contributionStats(events []time.Time, now time.Time) models.ContributionStats {
	stats := models.ContributionStats{TotalEvents: len(events)}
	if len(events) == 0 {
		return stats
	}

	seen := make(map[string]bool)
	days := make([]time.Time, 0, len(events))
	for _, ts := range events {
		d := ts.UTC().Truncate(24 * time.Hour)
		key := d.Format(dayLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	stats.ActiveDays = len(days)
	stats.LastActive = days[0].Format(dayLayout)

	run := 1
	stats.LongestStreak = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > stats.LongestStreak {
			stats.LongestStreak = run
		}
	}

	today := now.UTC().Truncate(24 * time.Hour)
	if gap := today.Sub(days[0]); gap == 0 || gap == 24*time.Hour {
		stats.CurrentStreak = 1
		for i := 1; i < len(days) && days[i-1].Sub(days[i]) == 24*time.Hour; i++ {
			stats.CurrentStreak++
		}
	}
	return stats
}
