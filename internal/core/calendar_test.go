package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeActiveDaysAndStreak(t *testing.T) {
	tests := []struct {
		name       string
		days       []RawDay
		wantActive int
		wantStreak int
	}{
		{
			name:       "empty",
			days:       nil,
			wantActive: 0,
			wantStreak: 0,
		},
		{
			name:       "single active day",
			days:       []RawDay{{Date: "2024-03-10", Count: 5}},
			wantActive: 1,
			wantStreak: 1,
		},
		{
			name: "three consecutive then gap then one",
			days: []RawDay{
				{Date: "2024-01-01", Count: 2},
				{Date: "2024-01-02", Count: 1},
				{Date: "2024-01-03", Count: 4},
				{Date: "2024-01-10", Count: 1},
			},
			wantActive: 4,
			wantStreak: 3,
		},
		{
			name: "zero days do not extend streaks",
			days: []RawDay{
				{Date: "2024-01-01", Count: 1},
				{Date: "2024-01-02", Count: 0},
				{Date: "2024-01-03", Count: 1},
				{Date: "2024-01-04", Count: 1},
			},
			wantActive: 3,
			wantStreak: 2,
		},
		{
			name: "unsorted input",
			days: []RawDay{
				{Date: "2024-02-02", Count: 1},
				{Date: "2024-02-01", Count: 1},
				{Date: "2024-02-03", Count: 1},
			},
			wantActive: 3,
			wantStreak: 3,
		},
		{
			name: "unparseable dates are dropped",
			days: []RawDay{
				{Date: "not-a-date", Count: 9},
				{Date: "2024-01-01", Count: 1},
			},
			wantActive: 1,
			wantStreak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, streak := ComputeActiveDaysAndStreak(tt.days)
			assert.Equal(t, tt.wantActive, active)
			assert.Equal(t, tt.wantStreak, streak)
			assert.LessOrEqual(t, streak, active)
		})
	}
}

func TestComputeWeekendRate(t *testing.T) {
	t.Run("no active days", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeWeekendRate(nil))
		assert.Equal(t, 0.0, ComputeWeekendRate([]RawDay{{Date: "2024-03-09", Count: 0}}))
	})

	t.Run("half weekend", func(t *testing.T) {
		// 2024-03-08 Friday, 2024-03-09 Saturday, 2024-03-10 Sunday (inactive).
		days := []RawDay{
			{Date: "2024-03-08", Count: 1},
			{Date: "2024-03-09", Count: 2},
			{Date: "2024-03-10", Count: 0},
		}
		assert.InDelta(t, 0.5, ComputeWeekendRate(days), 1e-9)
	})

	t.Run("all weekend", func(t *testing.T) {
		days := []RawDay{
			{Date: "2024-03-09", Count: 3},
			{Date: "2024-03-10", Count: 1},
		}
		assert.InDelta(t, 1.0, ComputeWeekendRate(days), 1e-9)
	})
}

func TestBuildCalendarLevels(t *testing.T) {
	days := []RawDay{
		{Date: "2024-01-01", Count: 0},
		{Date: "2024-01-02", Count: 3},
		{Date: "2024-01-03", Count: 5},
		{Date: "2024-01-04", Count: 7},
		{Date: "2024-01-05", Count: 10},
	}

	cal := BuildCalendar(days)
	levels := make([]int, len(cal))
	for i, d := range cal {
		levels[i] = d.Level
	}
	assert.Equal(t, []int{0, 2, 2, 3, 4}, levels)
}

func TestBuildCalendarAllZero(t *testing.T) {
	cal := BuildCalendar([]RawDay{
		{Date: "2024-01-01", Count: 0},
		{Date: "2024-01-02", Count: 0},
	})
	for _, d := range cal {
		assert.Equal(t, 0, d.Level)
	}
}

func TestBuildCalendarEmpty(t *testing.T) {
	assert.Nil(t, BuildCalendar(nil))
}
