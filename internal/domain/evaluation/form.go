package evaluation

import "fmt"

// Form is an immutable value object for an in-progress evaluation. Updates
// return a new Form, leaving the receiver untouched, which keeps the
// aggregator trivially testable against constructed fixtures.
type Form struct {
	sections   map[Section]map[string]ScoreRecord
	finalNotes string
}

// NewForm initializes every given category to the default score with empty
// notes, mirroring how the evaluation workflow seeds its tabs.
func NewForm(categories []Category) Form {
	sections := make(map[Section]map[string]ScoreRecord, 3)
	for _, cat := range categories {
		if sections[cat.Section] == nil {
			sections[cat.Section] = make(map[string]ScoreRecord)
		}
		sections[cat.Section][cat.ID] = ScoreRecord{Score: DefaultScore}
	}
	return Form{sections: sections}
}

func (f Form) WithScore(section Section, categoryID string, score int) (Form, error) {
	if !ValidScore(score) {
		return f, fmt.Errorf("score %d outside range %d..%d", score, MinScore, MaxScore)
	}
	record, ok := f.sections[section][categoryID]
	if !ok {
		return f, fmt.Errorf("unknown category %s/%s", section, categoryID)
	}
	record.Score = score
	return f.withRecord(section, categoryID, record), nil
}

func (f Form) WithNotes(section Section, categoryID, notes string) (Form, error) {
	record, ok := f.sections[section][categoryID]
	if !ok {
		return f, fmt.Errorf("unknown category %s/%s", section, categoryID)
	}
	record.Notes = notes
	return f.withRecord(section, categoryID, record), nil
}

func (f Form) WithFinalNotes(notes string) Form {
	next := f.clone()
	next.finalNotes = notes
	return next
}

func (f Form) Score(section Section, categoryID string) (ScoreRecord, bool) {
	record, ok := f.sections[section][categoryID]
	return record, ok
}

func (f Form) FinalNotes() string {
	return f.finalNotes
}

// Sections returns a deep copy so callers cannot mutate the form through it.
func (f Form) Sections() map[Section]map[string]ScoreRecord {
	return copySections(f.sections)
}

func (f Form) withRecord(section Section, categoryID string, record ScoreRecord) Form {
	next := f.clone()
	next.sections[section][categoryID] = record
	return next
}

func (f Form) clone() Form {
	return Form{sections: copySections(f.sections), finalNotes: f.finalNotes}
}

func copySections(sections map[Section]map[string]ScoreRecord) map[Section]map[string]ScoreRecord {
	out := make(map[Section]map[string]ScoreRecord, len(sections))
	for section, records := range sections {
		inner := make(map[string]ScoreRecord, len(records))
		for id, record := range records {
			inner[id] = record
		}
		out[section] = inner
	}
	return out
}
