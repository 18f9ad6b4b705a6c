package personality

import (
	"fmt"

	"github.com/vukan322/ghrecap/internal/core"
)

// Result is the narrative identity generated from the best-scoring archetype.
type Result struct {
	Tag       string   `json:"tag"`
	Codename  string   `json:"codename"`
	OneLiner  string   `json:"oneLiner"`
	Why       []string `json:"why"`
	Signature string   `json:"signature"`
}

// archetype is one behavioral model: a weighted scoring function over the
// canonical statistics record plus the text it generates when it wins.
type archetype struct {
	key       string
	tag       string
	codename  string
	score     func(s core.YearStats) float64
	oneLiner  func(s core.YearStats) string
	why       func(s core.YearStats) []string
	signature func(s core.YearStats) string
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

// norm maps a raw value into [0,1] via a fixed clamp: below min is 0, above
// max is 1, linear in between.
func norm(n, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return clamp01((n - min) / (max - min))
}

func mergeRate(s core.YearStats) float64 {
	if s.PullRequests == 0 {
		return 0
	}
	return float64(s.MergedPRs) / float64(s.PullRequests)
}

// REST mode cannot supply night or weekend rates; the fallbacks keep those
// users from scoring zero in every night/weekend-weighted model.
func nightRate(s core.YearStats) float64 {
	if s.NightOwlRate > 0 {
		return s.NightOwlRate
	}
	return 0.22
}

func weekendRate(s core.YearStats) float64 {
	if s.WeekendRate > 0 {
		return s.WeekendRate
	}
	return 0.15
}

var archetypes = []archetype{
	{
		key:      "night_builder",
		tag:      "Night Builder",
		codename: "NEON: AFTERHOURS",
		score: func(s core.YearStats) float64 {
			volume := norm(float64(s.Commits), 50, 3000)
			streak := norm(float64(s.MaxStreakDays), 3, 60)
			return 0.55*nightRate(s) + 0.25*volume + 0.2*streak
		},
		oneLiner: func(s core.YearStats) string {
			return "When the world goes quiet, you make the systems louder."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("Night owl rate %.0f%%: the late hours are your build cache.", s.NightOwlRate*100),
				fmt.Sprintf("Longest streak %d days: steady rhythm, continuous output.", s.MaxStreakDays),
				fmt.Sprintf("%d commits: ideas land the moment they arrive.", s.Commits),
			}
		},
		signature: func(s core.YearStats) string {
			return "No sleep tonight, more stability tomorrow."
		},
	},
	{
		key:      "merge_conductor",
		tag:      "Merge Conductor",
		codename: "MERGE: CONDUCTOR",
		score: func(s core.YearStats) float64 {
			merge := clamp01(mergeRate(s))
			reviews := norm(float64(s.Reviews), 10, 500)
			prs := norm(float64(s.PullRequests), 5, 220)
			return 0.45*merge + 0.35*reviews + 0.2*prs
		},
		oneLiner: func(s core.YearStats) string {
			return "You don't just write code, you conduct the tempo of collaboration."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("PR merge rate %.0f%%: momentum that actually lands.", mergeRate(s)*100),
				fmt.Sprintf("%d code reviews: keeping the team accelerating on the same track.", s.Reviews),
				fmt.Sprintf("%d pull requests: you are the person who ships ideas.", s.PullRequests),
			}
		},
		signature: func(s core.YearStats) string {
			return "Compress the uncertainty into the main branch."
		},
	},
	{
		key:      "bug_hunter",
		tag:      "Bug Hunter",
		codename: "DEBUG: HUNTER",
		score: func(s core.YearStats) float64 {
			issues := norm(float64(s.Issues), 5, 160)
			reviews := norm(float64(s.Reviews), 10, 500)
			consistency := norm(float64(s.ActiveDays), 30, 300)
			return 0.45*issues + 0.25*reviews + 0.3*consistency
		},
		oneLiner: func(s core.YearStats) string {
			return "You find the real anomaly inside all the noise."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("%d issues: you face the problems head on.", s.Issues),
				fmt.Sprintf("Active %d days: bug hunting is persistence, not bursts.", s.ActiveDays),
				fmt.Sprintf("%d reviews: you spot the risk hiding in the edge cases.", s.Reviews),
			}
		},
		signature: func(s core.YearStats) string {
			return "Keep the system polite, even in its worst moments."
		},
	},
	{
		key:      "craft_tinkerer",
		tag:      "Neon Tinkerer",
		codename: "PATCH: ARTISAN",
		score: func(s core.YearStats) float64 {
			variety := clamp01(float64(len(s.TopLanguages)) / 6)
			volume := norm(float64(s.Commits), 50, 2800)
			return 0.35*variety + 0.45*volume + 0.2*weekendRate(s)
		},
		oneLiner: func(s core.YearStats) string {
			return "You break the complex into small pieces, then polish each one until it fits."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("%d languages in the mix: you go wherever you're needed.", len(s.TopLanguages)),
				fmt.Sprintf("%d commits: craftsmanship as a daily habit.", s.Commits),
				fmt.Sprintf("Weekend activity %.0f%%: inspiration doesn't check the calendar.", s.WeekendRate*100),
			}
		},
		signature: func(s core.YearStats) string {
			return "Small changes, stacked high, become a leap."
		},
	},
	{
		key:      "open_source_evangelist",
		tag:      "Open Source Evangelist",
		codename: "OPEN: EVANGELIST",
		score: func(s core.YearStats) float64 {
			stars := norm(float64(s.StarsGained), 10, 1000)
			langs := norm(float64(len(s.TopLanguages)), 2, 8)
			prs := norm(float64(s.PullRequests), 10, 200)
			return 0.5*stars + 0.25*langs + 0.25*prs
		},
		oneLiner: func(s core.YearStats) string {
			return "You believe code should be seen, used, and improved."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("%d stars collected: your code is already helping someone.", s.StarsGained),
				fmt.Sprintf("%d languages covered: breadth of stack is radius of impact.", len(s.TopLanguages)),
				fmt.Sprintf("%d pull requests: open source is an ensemble, not a solo.", s.PullRequests),
			}
		},
		signature: func(s core.YearStats) string {
			return "Let good code flow freely."
		},
	},
	{
		key:      "weekend_warrior",
		tag:      "Weekend Warrior",
		codename: "WEEKEND: WARRIOR",
		score: func(s core.YearStats) float64 {
			commits := norm(float64(s.Commits), 30, 1500)
			streak := norm(float64(s.MaxStreakDays), 2, 30)
			return 0.55*weekendRate(s) + 0.3*commits + 0.15*streak
		},
		oneLiner: func(s core.YearStats) string {
			return "While everyone else rests, you build the future."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("Weekend activity %.0f%%: the weekend is your main arena.", s.WeekendRate*100),
				fmt.Sprintf("%d commits: professional work on amateur hours.", s.Commits),
				fmt.Sprintf("%d-day streak: passion doesn't need weekdays.", s.MaxStreakDays),
			}
		},
		signature: func(s core.YearStats) string {
			return "The weekend is not a finish line, it's a starting block."
		},
	},
	{
		key:      "fullstack_explorer",
		tag:      "Full-Stack Explorer",
		codename: "STACK: EXPLORER",
		score: func(s core.YearStats) float64 {
			variety := norm(float64(len(s.TopLanguages)), 3, 10)
			commits := norm(float64(s.Commits), 50, 2000)
			active := norm(float64(s.ActiveDays), 30, 250)
			return 0.45*variety + 0.3*commits + 0.25*active
		},
		oneLiner: func(s core.YearStats) string {
			return "Frontend to backend, database to deploy: you want to try it all."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("%d languages: full stack as a daily practice, not a slogan.", len(s.TopLanguages)),
				fmt.Sprintf("Active %d days: explore continuously, grow continuously.", s.ActiveDays),
				fmt.Sprintf("%d commits: footprints in every layer.", s.Commits),
			}
		},
		signature: func(s core.YearStats) string {
			return "The edge of the stack is just the next target."
		},
	},
	{
		key:      "consistency_machine",
		tag:      "Steady Engine",
		codename: "STEADY: ENGINE",
		score: func(s core.YearStats) float64 {
			streak := norm(float64(s.MaxStreakDays), 14, 120)
			active := norm(float64(s.ActiveDays), 100, 350)
			commits := norm(float64(s.Commits), 100, 2500)
			return 0.4*streak + 0.35*active + 0.25*commits
		},
		oneLiner: func(s core.YearStats) string {
			return "You don't chase the spike, you show up every single day."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("Longest streak %d days: consistency is the most underrated superpower.", s.MaxStreakDays),
				fmt.Sprintf("Active %d days: writing code %d%% of the year.", s.ActiveDays, int(float64(s.ActiveDays)/365*100+0.5)),
				fmt.Sprintf("%d commits: compound interest, paid in code.", s.Commits),
			}
		},
		signature: func(s core.YearStats) string {
			return "One square a day keeps the entropy away."
		},
	},
	{
		key:      "code_reviewer",
		tag:      "Code Guardian",
		codename: "REVIEW: GUARDIAN",
		score: func(s core.YearStats) float64 {
			reviews := norm(float64(s.Reviews), 20, 600)
			prs := norm(float64(s.PullRequests), 5, 150)
			return 0.55*reviews + 0.25*clamp01(mergeRate(s)) + 0.2*prs
		},
		oneLiner: func(s core.YearStats) string {
			return "You are the last line of defense for the team's code quality."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("%d reviews: every line deserves serious attention.", s.Reviews),
				fmt.Sprintf("%d pull requests: you know what good code looks like.", s.PullRequests),
				fmt.Sprintf("%d merged PRs: quality and throughput can coexist.", s.MergedPRs),
			}
		},
		signature: func(s core.YearStats) string {
			return "Good code is reviewed into existence."
		},
	},
	{
		key:      "issue_closer",
		tag:      "Issue Terminator",
		codename: "ISSUE: TERMINATOR",
		score: func(s core.YearStats) float64 {
			issues := norm(float64(s.Issues), 10, 200)
			commits := norm(float64(s.Commits), 50, 1500)
			active := norm(float64(s.ActiveDays), 30, 200)
			return 0.5*issues + 0.3*commits + 0.2*active
		},
		oneLiner: func(s core.YearStats) string {
			return "Problems don't go away until you make them go away."
		},
		why: func(s core.YearStats) []string {
			return []string{
				fmt.Sprintf("%d issues handled: you are the problem's problem.", s.Issues),
				fmt.Sprintf("%d commits: find it, fix it, ship it, in one motion.", s.Commits),
				fmt.Sprintf("Active %d days: issues don't get to sleep over.", s.ActiveDays),
			}
		},
		signature: func(s core.YearStats) string {
			return "There is no unfixable bug, only an unfound cause."
		},
	},
}

// Match scores every catalog model against the record and returns the
// identity of the best one. The first model in declaration order wins ties,
// so matching is deterministic.
func Match(stats core.YearStats) Result {
	best := archetypes[0]
	bestScore := best.score(stats)

	for _, a := range archetypes[1:] {
		if score := a.score(stats); score > bestScore {
			best = a
			bestScore = score
		}
	}

	return Result{
		Tag:       best.tag,
		Codename:  best.codename,
		OneLiner:  best.oneLiner(stats),
		Why:       best.why(stats),
		Signature: best.signature(stats),
	}
}
