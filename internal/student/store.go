package student

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Store owns the student records. Records are kept as pointers so that the
// value returned by FindByID stays valid across appends and deletes.
// A Store is not safe for concurrent use.
type Store struct {
	records []*Student
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewSeededStore returns a store holding the three sample students.
func NewSeededStore() *Store {
	s := NewStore()
	for _, st := range seedStudents() {
		// seed data is known-good
		_ = s.Add(st)
	}
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// List returns copies of the records in insertion order, keeping only those
// for which match returns true. A nil match keeps everything. The result is
// never nil.
func (s *Store) List(match func(Student) bool) []Student {
	out := make([]Student, 0, len(s.records))
	for _, r := range s.records {
		if match != nil && !match(*r) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// Add appends candidate after checking its id and grade. The stored grade is
// the normalized form.
func (s *Store) Add(candidate Student) error {
	if candidate.ID <= 0 {
		return fmt.Errorf("add student %d: %w", candidate.ID, ErrInvalidID)
	}
	if s.indexOf(candidate.ID) >= 0 {
		return fmt.Errorf("add student %d: %w", candidate.ID, ErrDuplicateID)
	}
	if !ValidGrade(candidate.Grade) {
		return fmt.Errorf("add student %d: %w: %q", candidate.ID, ErrInvalidGrade, candidate.Grade)
	}
	candidate.Grade = NormalizeGrade(candidate.Grade)
	s.records = append(s.records, &candidate)
	return nil
}

// FindByID returns the stored record itself, not a copy.
func (s *Store) FindByID(id int) (*Student, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("find student %d: %w", id, ErrNotFound)
	}
	return s.records[idx], nil
}

// Update overwrites the fields present in p. Nothing is written when the
// patch carries an invalid grade.
func (s *Store) Update(id int, p Patch) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("update student %d: %w", id, ErrNotFound)
	}
	if p.Grade != nil && !ValidGrade(*p.Grade) {
		return fmt.Errorf("update student %d: %w: %q", id, ErrInvalidGrade, *p.Grade)
	}
	r := s.records[idx]
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Age != nil {
		r.Age = *p.Age
	}
	if p.Grade != nil {
		r.Grade = NormalizeGrade(*p.Grade)
	}
	if p.Department != nil {
		r.Department = *p.Department
	}
	return nil
}

// DeleteByID removes the record with the given id, keeping the order of the
// rest.
func (s *Store) DeleteByID(id int) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete student %d: %w", id, ErrNotFound)
	}
	s.records = slices.Delete(s.records, idx, idx+1)
	return nil
}

// SearchByName returns records whose name contains query, ignoring case.
// An empty query matches every record.
func (s *Store) SearchByName(query string) []Student {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.List(func(r Student) bool {
		return strings.Contains(strings.ToLower(r.Name), q)
	})
}

// FilterBy returns records whose criterion field equals the trimmed rawValue.
// Age must parse as an integer; grade and department compare
// case-insensitively.
func (s *Store) FilterBy(criterion Criterion, rawValue string) ([]Student, error) {
	value := strings.TrimSpace(rawValue)
	switch criterion {
	case ByAge:
		age, err := strconv.Atoi(value)
		if err != nil {
			return []Student{}, fmt.Errorf("filter by age %q: %w", rawValue, ErrMalformedFilter)
		}
		return s.List(func(r Student) bool { return r.Age == age }), nil
	case ByGrade:
		return s.List(func(r Student) bool { return strings.EqualFold(r.Grade, value) }), nil
	case ByDepartment:
		return s.List(func(r Student) bool { return strings.EqualFold(r.Department, value) }), nil
	default:
		return []Student{}, fmt.Errorf("filter by %q: %w", criterion, ErrUnknownCriterion)
	}
}

func (s *Store) indexOf(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
