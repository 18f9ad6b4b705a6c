package core

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// RawDay is one day of the upstream contribution calendar, before any
// derived metrics are computed.
type RawDay struct {
	Date  string
	Count int
}

// ComputeActiveDaysAndStreak counts days with at least one contribution and
// the longest run of consecutive calendar dates that are all active. A gap
// of more than one day between active dates resets the running streak.
// Days with unparseable dates are dropped.
func ComputeActiveDaysAndStreak(days []RawDay) (activeDays, maxStreakDays int) {
	type parsedDay struct {
		t     time.Time
		count int
	}

	parsed := make([]parsedDay, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(dayLayout, d.Date)
		if err != nil {
			continue
		}
		parsed = append(parsed, parsedDay{t: t, count: d.Count})
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].t.Before(parsed[j].t) })

	var streak int
	var prevActive time.Time
	havePrev := false

	for _, d := range parsed {
		if d.count <= 0 {
			continue
		}
		activeDays++

		if !havePrev {
			streak = 1
		} else if gapDays(prevActive, d.t) == 1 {
			streak++
		} else {
			streak = 1
		}
		if streak > maxStreakDays {
			maxStreakDays = streak
		}

		prevActive = d.t
		havePrev = true
	}

	return activeDays, maxStreakDays
}

func gapDays(from, to time.Time) int {
	return int(to.Sub(from).Round(24*time.Hour) / (24 * time.Hour))
}

// ComputeWeekendRate returns the fraction of active days that fall on a
// Saturday or Sunday, or 0 when there are no active days.
func ComputeWeekendRate(days []RawDay) float64 {
	var active, weekend int
	for _, d := range days {
		if d.Count <= 0 {
			continue
		}
		t, err := time.Parse(dayLayout, d.Date)
		if err != nil {
			continue
		}
		active++
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
	}
	if active == 0 {
		return 0
	}
	return clamp01(float64(weekend) / float64(active))
}

// BuildCalendar assigns each day a heatmap level relative to the busiest day
// in the set: level 0 for empty days, then 1..4 by quartile of count/max.
func BuildCalendar(days []RawDay) []ContributionDay {
	if len(days) == 0 {
		return nil
	}

	maxCount := 1
	for _, d := range days {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}

	out := make([]ContributionDay, 0, len(days))
	for _, d := range days {
		level := 0
		if d.Count > 0 {
			ratio := float64(d.Count) / float64(maxCount)
			switch {
			case ratio <= 0.25:
				level = 1
			case ratio <= 0.5:
				level = 2
			case ratio <= 0.75:
				level = 3
			default:
				level = 4
			}
		}
		out = append(out, ContributionDay{Date: d.Date, Count: d.Count, Level: level})
	}
	return out
}
