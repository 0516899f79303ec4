package evaluationshandler

import (
	"testing"

	"taqyim/internal/domain/evaluation"
	"taqyim/internal/transport/http/shared"
)

func testCategories() []evaluation.Category {
	return []evaluation.Category{
		{ID: "preparation", Section: evaluation.SectionClassroom},
		{ID: "understanding", Section: evaluation.SectionStudent},
	}
}

func TestBuildFormAppliesScoresAndNotes(t *testing.T) {
	v := shared.NewValidator()
	form, ok := buildForm(v, testCategories(), createPayload{
		FinalNotes: "strong term",
		Sections: map[evaluation.Section]map[string]scorePayload{
			evaluation.SectionClassroom: {"preparation": {Score: 5, Notes: "well prepared"}},
		},
	})
	if !ok {
		t.Fatalf("unexpected issues: %+v", v.Issues())
	}

	record, _ := form.Score(evaluation.SectionClassroom, "preparation")
	if record.Score != 5 || record.Notes != "well prepared" {
		t.Fatalf("unexpected record: %+v", record)
	}

	// untouched category keeps the default
	untouched, _ := form.Score(evaluation.SectionStudent, "understanding")
	if untouched.Score != evaluation.DefaultScore {
		t.Fatalf("expected default score, got %d", untouched.Score)
	}
	if form.FinalNotes() != "strong term" {
		t.Fatalf("unexpected final notes %q", form.FinalNotes())
	}
}

func TestBuildFormRejectsOutOfRangeScore(t *testing.T) {
	v := shared.NewValidator()
	_, ok := buildForm(v, testCategories(), createPayload{
		Sections: map[evaluation.Section]map[string]scorePayload{
			evaluation.SectionClassroom: {"preparation": {Score: 9}},
		},
	})
	if ok {
		t.Fatal("expected validation failure")
	}
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "sections.classroom.preparation" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestBuildFormRejectsUnknownCategory(t *testing.T) {
	v := shared.NewValidator()
	_, ok := buildForm(v, testCategories(), createPayload{
		Sections: map[evaluation.Section]map[string]scorePayload{
			evaluation.SectionClassroom: {"mystery": {Score: 3}},
		},
	})
	if ok {
		t.Fatal("expected validation failure")
	}
}
