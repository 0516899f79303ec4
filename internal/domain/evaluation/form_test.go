package evaluation

import "testing"

func TestNewFormDefaults(t *testing.T) {
	form := NewForm(SeedCategories())
	for _, cat := range SeedCategories() {
		record, ok := form.Score(cat.Section, cat.ID)
		if !ok {
			t.Fatalf("missing record for %s/%s", cat.Section, cat.ID)
		}
		if record.Score != DefaultScore {
			t.Fatalf("expected default score %d, got %d", DefaultScore, record.Score)
		}
		if record.Notes != "" {
			t.Fatalf("expected empty notes, got %q", record.Notes)
		}
	}
}

func TestWithScoreDoesNotMutateReceiver(t *testing.T) {
	form := NewForm(SeedCategories())
	updated, err := form.WithScore(SectionClassroom, "preparation", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	original, _ := form.Score(SectionClassroom, "preparation")
	if original.Score != DefaultScore {
		t.Fatalf("receiver mutated: got %d", original.Score)
	}
	changed, _ := updated.Score(SectionClassroom, "preparation")
	if changed.Score != 5 {
		t.Fatalf("expected updated score 5, got %d", changed.Score)
	}
}

func TestWithScoreRejectsOutOfRange(t *testing.T) {
	form := NewForm(SeedCategories())
	for _, score := range []int{0, 6, -1} {
		if _, err := form.WithScore(SectionClassroom, "preparation", score); err == nil {
			t.Fatalf("expected error for score %d", score)
		}
	}
}

func TestWithScoreRejectsUnknownCategory(t *testing.T) {
	form := NewForm(SeedCategories())
	if _, err := form.WithScore(SectionClassroom, "nope", 4); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestWithNotesAndFinalNotes(t *testing.T) {
	form := NewForm(SeedCategories())
	withNotes, err := form.WithNotes(SectionStudent, "feedback", "consistent written feedback")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, _ := withNotes.Score(SectionStudent, "feedback")
	if record.Notes != "consistent written feedback" {
		t.Fatalf("unexpected notes %q", record.Notes)
	}

	withFinal := withNotes.WithFinalNotes("overall solid term")
	if withFinal.FinalNotes() != "overall solid term" {
		t.Fatalf("unexpected final notes %q", withFinal.FinalNotes())
	}
	if withNotes.FinalNotes() != "" {
		t.Fatal("receiver mutated by WithFinalNotes")
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	form := NewForm(SeedCategories())
	sections := form.Sections()
	sections[SectionClassroom]["preparation"] = ScoreRecord{Score: 1}

	record, _ := form.Score(SectionClassroom, "preparation")
	if record.Score != DefaultScore {
		t.Fatal("mutating the returned map must not affect the form")
	}
}
