package shared

import "testing"

func TestValidatorRequired(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	if !v.HasIssues() {
		t.Fatal("expected issue for blank value")
	}
}

func TestValidatorIntRange(t *testing.T) {
	v := NewValidator()
	v.IntRange("score", 6, 1, 5, "score must be between 1 and 5")
	v.IntRange("weight", 3, 1, 5, "weight must be between 1 and 5")
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "score" {
		t.Fatalf("expected single score issue, got %+v", issues)
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Date("joinDate", "2024-09-01"); !ok {
		t.Fatal("expected valid date")
	}
	if _, ok := v.Date("birthDate", "not-a-date"); ok {
		t.Fatal("expected invalid date")
	}
	if len(v.Issues()) != 1 {
		t.Fatalf("expected one issue, got %+v", v.Issues())
	}
}

func TestValidatorIssuesSorted(t *testing.T) {
	v := NewValidator()
	v.Add("b", "second")
	v.Add("a", "first")
	issues := v.Issues()
	if issues[0].Field != "a" || issues[1].Field != "b" {
		t.Fatalf("expected sorted issues, got %+v", issues)
	}
}
