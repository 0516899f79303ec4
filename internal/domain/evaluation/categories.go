package evaluation

type Section string

const (
	SectionClassroom    Section = "classroom"
	SectionStudent      Section = "student"
	SectionProfessional Section = "professional"
)

func Sections() []Section {
	return []Section{SectionClassroom, SectionStudent, SectionProfessional}
}

type Category struct {
	ID          string  `json:"id"`
	Section     Section `json:"section"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// SeedCategories is the default evaluation form: ten categories across the
// three sections. The active set is configuration (see settings), this list
// only seeds it.
func SeedCategories() []Category {
	return []Category{
		{ID: "preparation", Section: SectionClassroom, Label: "Lesson preparation and planning", Description: "How well the teacher prepares and plans the lesson"},
		{ID: "delivery", Section: SectionClassroom, Label: "Lesson delivery", Description: "Clarity of explanation and flow of ideas"},
		{ID: "engagement", Section: SectionClassroom, Label: "Student engagement", Description: "How actively students participate in the lesson"},
		{ID: "time", Section: SectionClassroom, Label: "Class time management", Description: "Making the best use of class time"},
		{ID: "understanding", Section: SectionStudent, Label: "Subject understanding", Description: "How well students understand the material"},
		{ID: "feedback", Section: SectionStudent, Label: "Feedback to students", Description: "Giving students appropriate feedback"},
		{ID: "assessment", Section: SectionStudent, Label: "Assessment methods", Description: "Variety of student assessment methods"},
		{ID: "knowledge", Section: SectionProfessional, Label: "Subject knowledge", Description: "Command of the subject being taught"},
		{ID: "development", Section: SectionProfessional, Label: "Professional development", Description: "Pursuit of continuous professional growth"},
		{ID: "collaboration", Section: SectionProfessional, Label: "Collaboration with colleagues", Description: "Cooperation with colleagues and administration"},
	}
}

func CategoriesBySection(categories []Category) map[Section][]Category {
	grouped := make(map[Section][]Category, 3)
	for _, cat := range categories {
		grouped[cat.Section] = append(grouped[cat.Section], cat)
	}
	return grouped
}
