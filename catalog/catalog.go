// Package catalog holds the onboarding catalog: class options, the subject
// library and the class-to-subject map the wizard screens are built from.
package catalog

import "sort"

type ClassOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle"`
}

var ClassOptions = []ClassOption{
	{ID: "5", Label: "Class 5", Subtitle: "Build strong basics"},
	{ID: "6", Label: "Class 6", Subtitle: "Discover new topics"},
	{ID: "7", Label: "Class 7", Subtitle: "Strengthen core skills"},
	{ID: "8", Label: "Class 8", Subtitle: "Dive into projects"},
	{ID: "9", Label: "Class 9", Subtitle: "Prepare for boards"},
	{ID: "10", Label: "Class 10", Subtitle: "Master fundamentals"},
	{ID: "11", Label: "Class 11", Subtitle: "Specialise for streams"},
	{ID: "12", Label: "Class 12", Subtitle: "Get exam ready"},
}

type SubjectOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var subjectLibrary = map[string]SubjectOption{
	"english": {
		ID:          "english",
		Title:       "English",
		Description: "Grow reading & speaking skills",
		Icon:        "book-outline",
	},
	"marathi_hindi": {
		ID:          "marathi_hindi",
		Title:       "Marathi / Hindi",
		Description: "Stay confident in native languages",
		Icon:        "chatbubble-ellipses-outline",
	},
	"hindi": {
		ID:          "hindi",
		Title:       "Hindi",
		Description: "Improve Hindi fluency",
		Icon:        "create-outline",
	},
	"hindi_sanskrit": {
		ID:          "hindi_sanskrit",
		Title:       "Hindi / Sanskrit",
		Description: "Blend classical and modern language skills",
		Icon:        "school-outline",
	},
	"math": {
		ID:          "math",
		Title:       "Mathematics",
		Description: "Problem solving & logic",
		Icon:        "calculator-outline",
	},
	"evs": {
		ID:          "evs",
		Title:       "EVS",
		Description: "Environmental awareness & basics",
		Icon:        "leaf-outline",
	},
	"science_computer": {
		ID:          "science_computer",
		Title:       "Science & Computers",
		Description: "Introduction to science and computer skills",
		Icon:        "desktop-outline",
	},
	"science": {
		ID:          "science",
		Title:       "Science",
		Description: "Physics, chemistry & biology fundamentals",
		Icon:        "flask-outline",
	},
	"history": {
		ID:          "history",
		Title:       "History",
		Description: "Civilisations & events",
		Icon:        "time-outline",
	},
	"civics": {
		ID:          "civics",
		Title:       "Civics",
		Description: "Citizenship & social structure",
		Icon:        "people-outline",
	},
	"geography": {
		ID:          "geography",
		Title:       "Geography",
		Description: "Maps, earth systems & resources",
		Icon:        "earth-outline",
	},
	"history_ps": {
		ID:          "history_ps",
		Title:       "History + Political Science",
		Description: "Modern history & civics combined",
		Icon:        "library-outline",
	},
	"economics": {
		ID:          "economics",
		Title:       "Economics",
		Description: "Money, trade & decision making",
		Icon:        "cash-outline",
	},
	"disaster_management": {
		ID:          "disaster_management",
		Title:       "Disaster Management",
		Description: "Plan, prepare and stay safe",
		Icon:        "warning-outline",
	},
}

var classSubjectMap = map[string][]string{
	"5":  {"english", "marathi_hindi", "hindi", "math", "evs", "science_computer"},
	"6":  {"english", "marathi_hindi", "hindi_sanskrit", "math", "science", "history", "civics", "geography"},
	"7":  {"english", "marathi_hindi", "hindi_sanskrit", "math", "science", "history", "civics", "geography"},
	"8":  {"english", "marathi_hindi", "hindi_sanskrit", "math", "science", "history", "civics", "geography"},
	"9":  {"english", "marathi_hindi", "math", "science", "geography", "history_ps", "economics", "disaster_management"},
	"10": {"english", "marathi_hindi", "math", "science", "geography", "history_ps", "economics", "disaster_management"},
}

// SubjectsForClass returns the subjects offered to a class, in the class map
// order. An unknown class gets the whole library.
func SubjectsForClass(classID string) []SubjectOption {
	subjectIDs, ok := classSubjectMap[classID]
	if !ok {
		subjects := make([]SubjectOption, 0, len(subjectLibrary))
		for _, subject := range subjectLibrary {
			subjects = append(subjects, subject)
		}
		sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
		return subjects
	}

	subjects := make([]SubjectOption, 0, len(subjectIDs))
	for _, id := range subjectIDs {
		if subject, ok := subjectLibrary[id]; ok {
			subjects = append(subjects, subject)
		}
	}
	return subjects
}

// SubjectDefinition looks a subject up by id.
func SubjectDefinition(subjectID string) (SubjectOption, bool) {
	subject, ok := subjectLibrary[subjectID]
	return subject, ok
}
