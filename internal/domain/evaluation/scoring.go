package evaluation

import (
	"math"
	"sort"
	"time"
)

// Percent maps the 1..5 raw scale onto 0..100: {1,2,3,4,5} -> {20,40,60,80,100}.
func Percent(raw float64) int {
	return int(math.Round(raw * 20))
}

// AveragePercent folds every score record of one evaluation into a single
// percent. The second return reports whether the evaluation held any scores
// at all; callers must treat (0, false) as "no data", not as 0%.
func AveragePercent(e Evaluation) (int, bool) {
	raw := e.RawScores()
	if len(raw) == 0 {
		return 0, false
	}
	sum := 0
	for _, score := range raw {
		sum += score
	}
	return Percent(float64(sum) / float64(len(raw))), true
}

type GroupStat struct {
	Sum   float64
	Count int
}

func (g GroupStat) Average() int {
	if g.Count == 0 {
		return 0
	}
	return int(math.Round(g.Sum / float64(g.Count)))
}

// GroupFold is the two-stage aggregation: each evaluation is reduced to its
// own average percent first, then those percents are accumulated per group
// key. This is deliberately NOT a flat mean over raw scores; evaluations
// with unequal category counts would otherwise shift the result.
// Evaluations with no scores are skipped.
func GroupFold(evals []Evaluation, keyFn func(Evaluation) string) map[string]GroupStat {
	stats := make(map[string]GroupStat)
	for _, e := range evals {
		pct, ok := AveragePercent(e)
		if !ok {
			continue
		}
		key := keyFn(e)
		stat := stats[key]
		stat.Sum += float64(pct)
		stat.Count++
		stats[key] = stat
	}
	return stats
}

func GroupAverage(evals []Evaluation, keyFn func(Evaluation) string) map[string]int {
	averages := make(map[string]int)
	for key, stat := range GroupFold(evals, keyFn) {
		averages[key] = stat.Average()
	}
	return averages
}

type RankedGroup struct {
	Key     string `json:"key"`
	Percent int    `json:"percent"`
}

// Rank sorts groups descending by percent and keeps the top n. Keys are
// pre-sorted ascending and the sort is stable, so ties break alphabetically
// and the result is deterministic.
func Rank(averages map[string]int, n int) []RankedGroup {
	keys := make([]string, 0, len(averages))
	for key := range averages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ranked := make([]RankedGroup, 0, len(keys))
	for _, key := range keys {
		ranked = append(ranked, RankedGroup{Key: key, Percent: averages[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Percent > ranked[j].Percent
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CategoryStats is the single-stage path: per category, the fold of the
// percent of every raw score occurrence across the evaluation set. It
// intentionally differs from the two-stage teacher/department/month path.
// A category no evaluation ever scored keeps Count 0.
func CategoryStats(evals []Evaluation, categories []Category) map[string]GroupStat {
	stats := make(map[string]GroupStat, len(categories))
	for _, cat := range categories {
		stats[cat.ID] = GroupStat{}
	}
	for _, e := range evals {
		for _, cat := range categories {
			record, ok := e.Sections[cat.Section][cat.ID]
			if !ok {
				continue
			}
			stat := stats[cat.ID]
			stat.Sum += float64(Percent(float64(record.Score)))
			stat.Count++
			stats[cat.ID] = stat
		}
	}
	return stats
}

func CategoryAverages(evals []Evaluation, categories []Category) map[string]int {
	stats := CategoryStats(evals, categories)
	averages := make(map[string]int, len(stats))
	for id, stat := range stats {
		averages[id] = stat.Average()
	}
	return averages
}

// MonthKey groups evaluations by the month of their creation timestamp.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
