package student

import "errors"

var (
	// ErrInvalidID is returned when an id is not a positive integer.
	ErrInvalidID = errors.New("invalid student id: must be a positive integer")

	// ErrDuplicateID is returned when an id is already taken.
	ErrDuplicateID = errors.New("student id already exists")

	// ErrInvalidGrade is returned when a grade is outside the allowed set.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrMalformedFilter is returned when an age filter value is not an integer.
	ErrMalformedFilter = errors.New("malformed filter value")

	// ErrUnknownCriterion is returned for filter criteria other than grade, department or age.
	ErrUnknownCriterion = errors.New("unknown filter criterion")
)
