package core

import "sort"

// AllTimeYear is the sentinel year meaning "every year since account creation".
const AllTimeYear = 0

const topLanguageLimit = 5

type LanguageShare struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

type RepoHighlight struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StarsGained int    `json:"starsGained"`
	MergedPRs   int    `json:"mergedPRs"`
}

// ContributionDay is one cell of the contribution heatmap. Level is 0 for an
// empty day and 1..4 bucketed by count relative to the busiest day in the set.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

type Profile struct {
	AvatarURL   string `json:"avatarUrl"`
	CreatedAt   string `json:"createdAt"`
	CreatedYear int    `json:"createdYear"`
}

// YearStats is the canonical statistics record for one account and one year
// (or all time, when Year is AllTimeYear). MergedPRs comes from a separate
// search query and is not required to stay below PullRequests.
type YearStats struct {
	Year        int    `json:"year"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`

	Commits      int `json:"commits"`
	PullRequests int `json:"pullRequests"`
	MergedPRs    int `json:"mergedPRs"`
	Issues       int `json:"issues"`
	Reviews      int `json:"reviews"`
	StarsGained  int `json:"starsGained"`

	ActiveDays    int     `json:"activeDays"`
	MaxStreakDays int     `json:"maxStreakDays"`
	NightOwlRate  float64 `json:"nightOwlRate"`
	WeekendRate   float64 `json:"weekendRate"`

	TopLanguages  []LanguageShare `json:"topLanguages"`
	HighlightRepo RepoHighlight   `json:"highlightRepo"`

	Calendar []ContributionDay `json:"contributionCalendar,omitempty"`
	Profile  *Profile          `json:"profile,omitempty"`
}

// RankShares turns per-language totals (byte sizes or repo counts) into the
// top five shares, normalized over that subset. Ties are broken by name so
// the ordering is stable across runs.
func RankShares(totals map[string]float64) []LanguageShare {
	if len(totals) == 0 {
		return nil
	}

	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(totals))
	for name, v := range totals {
		entries = append(entries, entry{name: name, value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].name < entries[j].name
	})

	if len(entries) > topLanguageLimit {
		entries = entries[:topLanguageLimit]
	}

	var total float64
	for _, e := range entries {
		total += e.value
	}
	if total == 0 {
		total = 1
	}

	shares := make([]LanguageShare, 0, len(entries))
	for _, e := range entries {
		shares = append(shares, LanguageShare{Name: e.name, Percent: clamp01(e.value / total)})
	}
	return shares
}

func clamp01(n float64) float64 {
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
