package reports

import (
	"testing"
	"time"

	"taqyim/internal/domain/evaluation"
	"taqyim/internal/domain/teacher"
)

var testCategories = []evaluation.Category{
	{ID: "preparation", Section: evaluation.SectionClassroom, Label: "Lesson preparation and planning"},
	{ID: "delivery", Section: evaluation.SectionClassroom, Label: "Lesson delivery"},
}

func fixtureEval(teacherID string, createdAt time.Time, scores map[string]int) evaluation.Evaluation {
	records := make(map[string]evaluation.ScoreRecord, len(scores))
	for id, score := range scores {
		records[id] = evaluation.ScoreRecord{Score: score}
	}
	return evaluation.Evaluation{
		TeacherID: teacherID,
		Status:    evaluation.StatusSubmitted,
		CreatedAt: createdAt,
		Sections: map[evaluation.Section]map[string]evaluation.ScoreRecord{
			evaluation.SectionClassroom: records,
		},
	}
}

func fixtureTeachers() []teacher.Teacher {
	return []teacher.Teacher{
		{ID: "t1", Name: "Huda", Subject: "Math", Department: "Science"},
		{ID: "t2", Name: "Omar", Subject: "Physics", Department: "Science"},
		{ID: "t3", Name: "Lina", Subject: "History", Department: "Humanities"},
	}
}

func TestFilterEvaluationsByDepartment(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	evals := []evaluation.Evaluation{
		fixtureEval("t1", now, map[string]int{"preparation": 4}),
		fixtureEval("t3", now, map[string]int{"preparation": 2}),
	}

	filtered := FilterEvaluations(evals, fixtureTeachers(), Filter{Department: "Science", Now: now})
	if len(filtered) != 1 || filtered[0].TeacherID != "t1" {
		t.Fatalf("expected only the Science evaluation, got %+v", filtered)
	}
}

func TestFilterEvaluationsByPeriod(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	march := fixtureEval("t1", time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), map[string]int{"preparation": 4})
	september := fixtureEval("t1", time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC), map[string]int{"preparation": 4})
	lastYear := fixtureEval("t1", time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), map[string]int{"preparation": 4})
	evals := []evaluation.Evaluation{march, september, lastYear}

	tests := []struct {
		name   string
		period string
		want   int
	}{
		{name: "all", period: PeriodAll, want: 3},
		{name: "current year", period: PeriodCurrent, want: 2},
		{name: "previous year", period: PeriodPrevious, want: 1},
		{name: "first semester", period: PeriodSemester1, want: 1},
		{name: "second semester", period: PeriodSemester2, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filtered := FilterEvaluations(evals, fixtureTeachers(), Filter{Period: tc.period, Now: now})
			if len(filtered) != tc.want {
				t.Fatalf("expected %d evaluations, got %d", tc.want, len(filtered))
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	evals := []evaluation.Evaluation{
		fixtureEval("t1", now, map[string]int{"preparation": 5, "delivery": 5}),
		fixtureEval("t1", now.AddDate(0, 1, 0), map[string]int{"preparation": 1, "delivery": 1}),
		fixtureEval("t2", now, map[string]int{"preparation": 5, "delivery": 4}),
		fixtureEval("t3", now, map[string]int{"preparation": 2, "delivery": 2}),
	}

	summary := BuildSummary(fixtureTeachers(), evals, Filter{Now: now}, testCategories)

	if summary.EvaluationCount != 4 {
		t.Fatalf("expected 4 evaluations, got %d", summary.EvaluationCount)
	}
	if len(summary.TopTeachers) != 3 {
		t.Fatalf("expected 3 ranked teachers, got %d", len(summary.TopTeachers))
	}
	if summary.TopTeachers[0].ID != "t2" || summary.TopTeachers[0].Score != 90 {
		t.Fatalf("expected t2 at 90, got %+v", summary.TopTeachers[0])
	}
	if summary.TopTeachers[1].ID != "t1" || summary.TopTeachers[1].Score != 60 {
		t.Fatalf("expected t1 at two-stage 60, got %+v", summary.TopTeachers[1])
	}

	if len(summary.Monthly) != 2 {
		t.Fatalf("expected 2 months, got %+v", summary.Monthly)
	}
	if summary.Monthly[0].Month != "2025-05" {
		t.Fatalf("expected months sorted ascending, got %+v", summary.Monthly)
	}

	var science DepartmentStat
	for _, stat := range summary.DepartmentStats {
		if stat.Department == "Science" {
			science = stat
		}
	}
	if science.TeacherCount != 2 || science.EvalCount != 3 {
		t.Fatalf("unexpected science stats: %+v", science)
	}
	if science.Max != 90 || science.Min != 60 {
		t.Fatalf("expected max 90 min 60, got %+v", science)
	}
}

func TestBuildSummaryEmptySet(t *testing.T) {
	summary := BuildSummary(fixtureTeachers(), nil, Filter{}, testCategories)
	if summary.EvaluationCount != 0 {
		t.Fatalf("expected zero evaluations, got %d", summary.EvaluationCount)
	}
	if len(summary.TopTeachers) != 0 {
		t.Fatalf("expected no ranked teachers, got %+v", summary.TopTeachers)
	}
	for _, cat := range summary.Categories {
		if cat.HasData {
			t.Fatalf("expected no-data categories, got %+v", cat)
		}
		if cat.Score != 0 {
			t.Fatalf("expected defined zero score, got %+v", cat)
		}
	}
}

func TestBuildSummaryUnscoredCategoryHasNoData(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	evals := []evaluation.Evaluation{
		fixtureEval("t1", now, map[string]int{"preparation": 4}),
	}

	summary := BuildSummary(fixtureTeachers(), evals, Filter{Now: now}, testCategories)

	byID := make(map[string]CategoryScore, len(summary.Categories))
	for _, cat := range summary.Categories {
		byID[cat.CategoryID] = cat
	}
	if cat := byID["preparation"]; !cat.HasData || cat.Score != 80 {
		t.Fatalf("expected scored category at 80, got %+v", cat)
	}
	// delivery was never scored even though evaluations exist
	if cat := byID["delivery"]; cat.HasData || cat.Score != 0 {
		t.Fatalf("expected unscored category without data, got %+v", cat)
	}
}

func TestBuildTeacherDetails(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	evals := []evaluation.Evaluation{
		fixtureEval("t1", now, map[string]int{"preparation": 5, "delivery": 3}),
		fixtureEval("t1", now, map[string]int{"preparation": 3, "delivery": 3}),
	}

	details := BuildTeacherDetails(fixtureTeachers(), evals, Filter{Now: now}, testCategories)
	if len(details) != 1 {
		t.Fatalf("expected one teacher with data, got %d", len(details))
	}
	detail := details[0]
	if detail.EvalCount != 2 {
		t.Fatalf("expected 2 evaluations, got %d", detail.EvalCount)
	}
	// per-category path is single-stage over raw occurrences
	if detail.Categories["preparation"] != 80 {
		t.Fatalf("expected preparation 80, got %d", detail.Categories["preparation"])
	}
	if detail.Categories["delivery"] != 60 {
		t.Fatalf("expected delivery 60, got %d", detail.Categories["delivery"])
	}
}

func TestSummaryPDF(t *testing.T) {
	summary := BuildSummary(fixtureTeachers(), []evaluation.Evaluation{
		fixtureEval("t1", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), map[string]int{"preparation": 4, "delivery": 4}),
	}, Filter{Now: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)}, testCategories)

	data, err := SummaryPDF(summary, "2025-05-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected pdf bytes")
	}
}
