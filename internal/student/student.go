// Package student holds the in-memory student record store and the rules
// that keep it consistent: unique positive ids, normalized grades, and
// insertion-ordered iteration.
package student

import (
	"slices"
	"strings"
)

// Student is one record in the store.
type Student struct {
	ID         int
	Name       string
	Age        int
	Grade      string
	Department string
}

// Patch carries optional field replacements for Update. Nil fields keep
// their current value.
type Patch struct {
	Name       *string
	Age        *int
	Grade      *string
	Department *string
}

var allowedGrades = []string{"A+", "A", "B+", "B", "C", "D", "E", "F"}

// Grades returns the allowed grades in display order.
func Grades() []string {
	return slices.Clone(allowedGrades)
}

// NormalizeGrade upper-cases and trims a raw grade.
func NormalizeGrade(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidGrade reports whether raw normalizes into the allowed set.
func ValidGrade(raw string) bool {
	return slices.Contains(allowedGrades, NormalizeGrade(raw))
}

// Criterion names the field FilterBy compares against.
type Criterion string

const (
	ByGrade      Criterion = "grade"
	ByDepartment Criterion = "department"
	ByAge        Criterion = "age"
)

// Criteria returns the supported filter criteria in menu order.
func Criteria() []Criterion {
	return []Criterion{ByGrade, ByDepartment, ByAge}
}

// seedStudents is the sample set every new store starts with.
func seedStudents() []Student {
	return []Student{
		{ID: 1, Name: "Alice", Age: 20, Grade: "A", Department: "Computer Science"},
		{ID: 2, Name: "Bob", Age: 22, Grade: "B", Department: "Electronics"},
		{ID: 3, Name: "Charlie", Age: 21, Grade: "A", Department: "Mechanical"},
	}
}
