package core

// Changes holds the year-over-year percentage deltas for the counters that
// are comparable across years.
type Changes struct {
	Commits      float64 `json:"commits"`
	PullRequests float64 `json:"pullRequests"`
	Issues       float64 `json:"issues"`
	Reviews      float64 `json:"reviews"`
	ActiveDays   float64 `json:"activeDays"`
}

type YearComparison struct {
	Current  YearStats  `json:"current"`
	Previous *YearStats `json:"previous"`
	Changes  *Changes   `json:"changes"`
}

// CalcChange returns the relative change between two counters. A previous
// value of zero maps to 1 when the current value is positive (went from
// nothing to something) and 0 otherwise.
func CalcChange(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 1
		}
		return 0
	}
	return float64(current-previous) / float64(previous)
}

// BuildComparison pairs the current record with the previous year's, if any.
// Without a previous record the comparison carries no deltas.
func BuildComparison(current YearStats, previous *YearStats) YearComparison {
	if previous == nil {
		return YearComparison{Current: current}
	}
	return YearComparison{
		Current:  current,
		Previous: previous,
		Changes: &Changes{
			Commits:      CalcChange(current.Commits, previous.Commits),
			PullRequests: CalcChange(current.PullRequests, previous.PullRequests),
			Issues:       CalcChange(current.Issues, previous.Issues),
			Reviews:      CalcChange(current.Reviews, previous.Reviews),
			ActiveDays:   CalcChange(current.ActiveDays, previous.ActiveDays),
		},
	}
}
