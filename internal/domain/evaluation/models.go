package evaluation

import "time"

const (
	MinScore = 1
	MaxScore = 5

	// DefaultScore is the value every category starts from when a form is
	// initialized, so a touched category is never partially filled.
	DefaultScore = 3
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

type ScoreRecord struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

// Evaluation is immutable once submitted: there is no update or delete path.
type Evaluation struct {
	ID           string                             `json:"id"`
	TeacherID    string                             `json:"teacherId"`
	SupervisorID string                             `json:"supervisorId"`
	Status       string                             `json:"status"`
	FinalNotes   string                             `json:"finalNotes"`
	CreatedAt    time.Time                          `json:"createdAt"`
	Sections     map[Section]map[string]ScoreRecord `json:"sections"`
}

// RawScores flattens every score record across all sections. Order follows
// the canonical section order, category order within a section is map order
// (callers that need determinism aggregate, they do not index).
func (e Evaluation) RawScores() []int {
	var raw []int
	for _, section := range Sections() {
		for _, record := range e.Sections[section] {
			raw = append(raw, record.Score)
		}
	}
	return raw
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
