package domain

import "time"

type Student struct {
	ID               uint      `json:"id"`
	RepresentativeID *uint64   `json:"representative_id"` // nil once detached
	Name             string    `json:"name"`
	Grade            string    `json:"grade"`
	Section          string    `json:"section"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// gradeLabels maps the grade codes to their display names: six primary
// grades followed by five secondary years.
var gradeLabels = map[string]string{
	"1":  "1er. grado",
	"2":  "2do. grado",
	"3":  "3er. grado",
	"4":  "4to. grado",
	"5":  "5to. grado",
	"6":  "6to. grado",
	"7":  "1er. año",
	"8":  "2do. año",
	"9":  "3er. año",
	"10": "4to. año",
	"11": "5to. año",
}

var sectionLabels = []string{"U", "A", "B"}

func IsValidGrade(grade string) bool {
	_, ok := gradeLabels[grade]
	return ok
}

func IsValidSection(section string) bool {
	for _, s := range sectionLabels {
		if s == section {
			return true
		}
	}
	return false
}

// GradeLabel returns the display name for a grade code, or the code
// itself when unknown.
func GradeLabel(grade string) string {
	if label, ok := gradeLabels[grade]; ok {
		return label
	}
	return grade
}
