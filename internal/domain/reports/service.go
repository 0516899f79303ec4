package reports

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"taqyim/internal/domain/auth"
	"taqyim/internal/domain/evaluation"
	"taqyim/internal/domain/teacher"
)

const (
	PeriodAll       = "all"
	PeriodCurrent   = "current"
	PeriodPrevious  = "previous"
	PeriodSemester1 = "semester1"
	PeriodSemester2 = "semester2"
)

type Filter struct {
	Department string
	Period     string
	Now        time.Time
}

type TeacherScore struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
	EvalCount  int    `json:"evalCount"`
	Score      int    `json:"score"`
}

type MonthScore struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

type DepartmentScore struct {
	Department string `json:"department"`
	EvalCount  int    `json:"evalCount"`
	Score      int    `json:"score"`
}

type DepartmentStat struct {
	Department   string `json:"department"`
	TeacherCount int    `json:"teacherCount"`
	EvalCount    int    `json:"evalCount"`
	Average      int    `json:"average"`
	Max          int    `json:"max"`
	Min          int    `json:"min"`
}

type CategoryScore struct {
	CategoryID string `json:"categoryId"`
	Label      string `json:"label"`
	Score      int    `json:"score"`
	HasData    bool   `json:"hasData"`
}

type Summary struct {
	EvaluationCount int               `json:"evaluationCount"`
	TeacherCount    int               `json:"teacherCount"`
	TopTeachers     []TeacherScore    `json:"topTeachers"`
	Monthly         []MonthScore      `json:"monthly"`
	Departments     []DepartmentScore `json:"departments"`
	DepartmentStats []DepartmentStat  `json:"departmentStats"`
	Categories      []CategoryScore   `json:"categories"`
}

type TeacherDetail struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Subject    string         `json:"subject"`
	Department string         `json:"department"`
	EvalCount  int            `json:"evalCount"`
	Average    int            `json:"average"`
	Categories map[string]int `json:"categories"`
}

type Service struct {
	Teachers *teacher.Store
	Evals    *evaluation.Store
}

func NewService(teachers *teacher.Store, evals *evaluation.Store) *Service {
	return &Service{Teachers: teachers, Evals: evals}
}

// fetch loads teachers and evaluations concurrently; aggregation only reads
// the joined result, so ordering between the two fetches does not matter.
func (s *Service) fetch(ctx context.Context, scope auth.Scope) ([]teacher.Teacher, []evaluation.Evaluation, error) {
	var teachers []teacher.Teacher
	var evals []evaluation.Evaluation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teachers, err = s.Teachers.List(gctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		evals, err = s.Evals.List(gctx, scope, evaluation.ListFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return teachers, evals, nil
}

func (s *Service) Summary(ctx context.Context, scope auth.Scope, filter Filter, categories []evaluation.Category) (Summary, error) {
	teachers, evals, err := s.fetch(ctx, scope)
	if err != nil {
		return Summary{}, err
	}
	return BuildSummary(teachers, evals, filter, categories), nil
}

func (s *Service) TeacherDetails(ctx context.Context, scope auth.Scope, filter Filter, categories []evaluation.Category) ([]TeacherDetail, error) {
	teachers, evals, err := s.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}
	return BuildTeacherDetails(teachers, evals, filter, categories), nil
}

// FilterEvaluations narrows an evaluation set by teacher department and
// reporting period relative to filter.Now.
func FilterEvaluations(evals []evaluation.Evaluation, teachers []teacher.Teacher, filter Filter) []evaluation.Evaluation {
	departments := make(map[string]string, len(teachers))
	for _, t := range teachers {
		departments[t.ID] = t.Department
	}

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	thisYear := now.Year()

	var out []evaluation.Evaluation
	for _, e := range evals {
		if filter.Department != "" && departments[e.TeacherID] != filter.Department {
			continue
		}
		year, month := e.CreatedAt.Year(), int(e.CreatedAt.Month())
		switch filter.Period {
		case PeriodCurrent:
			if year != thisYear {
				continue
			}
		case PeriodPrevious:
			if year != thisYear-1 {
				continue
			}
		case PeriodSemester1:
			if year != thisYear || month > 6 {
				continue
			}
		case PeriodSemester2:
			if year != thisYear || month < 7 {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

func BuildSummary(teachers []teacher.Teacher, evals []evaluation.Evaluation, filter Filter, categories []evaluation.Category) Summary {
	filtered := FilterEvaluations(evals, teachers, filter)

	profiles := make(map[string]teacher.Teacher, len(teachers))
	for _, t := range teachers {
		profiles[t.ID] = t
	}
	departmentOf := func(e evaluation.Evaluation) string {
		if dept := profiles[e.TeacherID].Department; dept != "" {
			return dept
		}
		return "unassigned"
	}

	teacherStats := evaluation.GroupFold(filtered, func(e evaluation.Evaluation) string { return e.TeacherID })
	monthStats := evaluation.GroupFold(filtered, func(e evaluation.Evaluation) string { return evaluation.MonthKey(e.CreatedAt) })
	deptStats := evaluation.GroupFold(filtered, departmentOf)

	summary := Summary{
		EvaluationCount: len(filtered),
		TeacherCount:    len(teachers),
	}

	teacherAverages := make(map[string]int, len(teacherStats))
	for id, stat := range teacherStats {
		teacherAverages[id] = stat.Average()
	}
	for _, ranked := range evaluation.Rank(teacherAverages, 5) {
		profile := profiles[ranked.Key]
		summary.TopTeachers = append(summary.TopTeachers, TeacherScore{
			ID:         ranked.Key,
			Name:       profile.Name,
			Subject:    profile.Subject,
			Department: profile.Department,
			EvalCount:  teacherStats[ranked.Key].Count,
			Score:      ranked.Percent,
		})
	}

	months := sortedKeys(monthStats)
	for _, month := range months {
		summary.Monthly = append(summary.Monthly, MonthScore{Month: month, Score: monthStats[month].Average()})
	}

	for _, dept := range sortedKeys(deptStats) {
		stat := deptStats[dept]
		summary.Departments = append(summary.Departments, DepartmentScore{
			Department: dept,
			EvalCount:  stat.Count,
			Score:      stat.Average(),
		})

		max, min, teacherCount := 0, 0, 0
		for _, t := range teachers {
			deptName := t.Department
			if deptName == "" {
				deptName = "unassigned"
			}
			if deptName != dept {
				continue
			}
			teacherCount++
			avg, ok := teacherAverages[t.ID]
			if !ok {
				continue
			}
			if min == 0 || avg < min {
				min = avg
			}
			if avg > max {
				max = avg
			}
		}
		summary.DepartmentStats = append(summary.DepartmentStats, DepartmentStat{
			Department:   dept,
			TeacherCount: teacherCount,
			EvalCount:    stat.Count,
			Average:      stat.Average(),
			Max:          max,
			Min:          min,
		})
	}

	categoryStats := evaluation.CategoryStats(filtered, categories)
	for _, cat := range categories {
		stat := categoryStats[cat.ID]
		summary.Categories = append(summary.Categories, CategoryScore{
			CategoryID: cat.ID,
			Label:      cat.Label,
			Score:      stat.Average(),
			HasData:    stat.Count > 0,
		})
	}

	return summary
}

func BuildTeacherDetails(teachers []teacher.Teacher, evals []evaluation.Evaluation, filter Filter, categories []evaluation.Category) []TeacherDetail {
	filtered := FilterEvaluations(evals, teachers, filter)

	byTeacher := make(map[string][]evaluation.Evaluation)
	for _, e := range filtered {
		byTeacher[e.TeacherID] = append(byTeacher[e.TeacherID], e)
	}

	var details []TeacherDetail
	for _, t := range teachers {
		own := byTeacher[t.ID]
		if len(own) == 0 {
			continue
		}
		stat := evaluation.GroupFold(own, func(evaluation.Evaluation) string { return t.ID })[t.ID]
		details = append(details, TeacherDetail{
			ID:         t.ID,
			Name:       t.Name,
			Subject:    t.Subject,
			Department: t.Department,
			EvalCount:  stat.Count,
			Average:    stat.Average(),
			Categories: evaluation.CategoryAverages(own, categories),
		})
	}
	sort.SliceStable(details, func(i, j int) bool { return details[i].Average > details[j].Average })
	return details
}

func sortedKeys(stats map[string]evaluation.GroupStat) []string {
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
