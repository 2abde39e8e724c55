package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/studentdb/internal/prompt"
	"github.com/jask/studentdb/internal/student"
)

const (
	fieldID         = "id"
	fieldName       = "name"
	fieldAge        = "age"
	fieldGrade      = "grade"
	fieldDepartment = "department"
	fieldCriteria   = "criteria"
	fieldValue      = "value"
)

const (
	invalidIDReason   = "Please enter a valid positive number for the ID."
	duplicateIDReason = "This student ID already exists."
)

func gradeReason() string {
	return fmt.Sprintf("Kindly enter your Correct Grade (Allowed: %s)", strings.Join(student.Grades(), ", "))
}

func validateGrade(v string) error {
	if !student.ValidGrade(v) {
		return prompt.Reject(gradeReason())
	}
	return nil
}

// validateNewID rejects ids that are not positive or already taken.
func (d *Dispatcher) validateNewID(v string) error {
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return prompt.Reject(invalidIDReason)
	}
	if _, err := d.store.FindByID(id); err == nil {
		return prompt.Reject(duplicateIDReason)
	}
	return nil
}

func (d *Dispatcher) addFields() []prompt.Field {
	return []prompt.Field{
		{Name: fieldID, Message: "Enter student ID:", Kind: prompt.Number, Validate: d.validateNewID},
		{Name: fieldName, Message: "Enter student name:"},
		{Name: fieldAge, Message: "Enter student age:", Kind: prompt.Number},
		{
			Name:      fieldGrade,
			Message:   "Enter student grade:",
			Validate:  validateGrade,
			Normalize: student.NormalizeGrade,
		},
		{Name: fieldDepartment, Message: "Enter student department:"},
	}
}

// updateFields asks for every editable field, defaulting to the current value.
func updateFields(current student.Student) []prompt.Field {
	return []prompt.Field{
		{Name: fieldName, Message: "New name:", Default: current.Name},
		{Name: fieldAge, Message: "New age:", Kind: prompt.Number, Default: strconv.Itoa(current.Age)},
		{
			Name:      fieldGrade,
			Message:   "New grade:",
			Default:   current.Grade,
			Validate:  validateGrade,
			Normalize: student.NormalizeGrade,
		},
		{Name: fieldDepartment, Message: "New department:", Default: current.Department},
	}
}

func idLookupFields(message string) []prompt.Field {
	return []prompt.Field{{Name: fieldID, Message: message, Kind: prompt.Number}}
}

func searchFields() []prompt.Field {
	return []prompt.Field{{Name: fieldName, Message: "Enter name to search:"}}
}

func filterFields() []prompt.Field {
	criteria := student.Criteria()
	choices := make([]string, 0, len(criteria))
	for _, c := range criteria {
		choices = append(choices, string(c))
	}
	return []prompt.Field{
		{Name: fieldCriteria, Message: "Select filter criteria:", Kind: prompt.Choice, Choices: choices},
		{Name: fieldValue, Message: "Enter value to filter by:"},
	}
}

func studentFromAnswers(a prompt.Answers) (student.Student, error) {
	id, err := a.Int(fieldID)
	if err != nil {
		return student.Student{}, err
	}
	age, err := a.Int(fieldAge)
	if err != nil {
		return student.Student{}, err
	}
	return student.Student{
		ID:         id,
		Name:       a.String(fieldName),
		Age:        age,
		Grade:      a.String(fieldGrade),
		Department: a.String(fieldDepartment),
	}, nil
}

// patchFromAnswers keeps only the fields that differ from current and
// describes each change.
func patchFromAnswers(current student.Student, a prompt.Answers) (student.Patch, []string, error) {
	var p student.Patch
	var changes []string

	if name := a.String(fieldName); name != current.Name {
		p.Name = &name
		changes = append(changes, fmt.Sprintf("name: %s -> %s", current.Name, name))
	}
	age, err := a.Int(fieldAge)
	if err != nil {
		return student.Patch{}, nil, err
	}
	if age != current.Age {
		p.Age = &age
		changes = append(changes, fmt.Sprintf("age: %d -> %d", current.Age, age))
	}
	if grade := a.String(fieldGrade); grade != current.Grade {
		p.Grade = &grade
		changes = append(changes, fmt.Sprintf("grade: %s -> %s", current.Grade, grade))
	}
	if dept := a.String(fieldDepartment); dept != current.Department {
		p.Department = &dept
		changes = append(changes, fmt.Sprintf("department: %s -> %s", current.Department, dept))
	}
	return p, changes, nil
}
