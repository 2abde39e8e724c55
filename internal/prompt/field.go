// Package prompt collects named answers from the terminal. Each field is
// re-asked until its value is accepted.
package prompt

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind is the expected shape of an answer.
type Kind int

const (
	Text Kind = iota
	Number
	Choice
)

// ErrAborted is returned by Ask when the user cancels with ctrl+c or esc.
var ErrAborted = errors.New("prompt aborted")

// Field describes one question.
//
// Validate sees the value after defaults are applied and, for Number fields,
// after it has been parsed and re-formatted. A non-nil error rejects the value
// and its message is shown as the reason. Normalize runs on accepted values.
type Field struct {
	Name      string
	Message   string
	Kind      Kind
	Default   string
	Choices   []string
	Validate  func(string) error
	Normalize func(string) string
}

// Answers maps field names to accepted, normalized values.
type Answers map[string]string

// String returns the answer for name, or "" if absent.
func (a Answers) String(name string) string {
	return a[name]
}

// Int parses the answer for name as an integer.
func (a Answers) Int(name string) (int, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("answer %q missing", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("answer %q: %w", name, err)
	}
	return n, nil
}

// Rejection is a user-facing reason for refusing a value.
type Rejection string

func (r Rejection) Error() string { return string(r) }

// Reject returns reason as a validation error.
func Reject(reason string) error {
	return Rejection(reason)
}

const errNotNumber = Rejection("Please enter a valid number.")

// Accept applies the default, the shape check, Validate and Normalize to raw.
// It is the single acceptance rule for every prompter.
func (f Field) Accept(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		v = f.Default
	}
	switch f.Kind {
	case Number:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return "", errNotNumber
		}
		v = strconv.Itoa(n)
	case Choice:
		if !slices.Contains(f.Choices, v) {
			return "", Reject("Please choose one of: " + strings.Join(f.Choices, ", "))
		}
	}
	if f.Validate != nil {
		if err := f.Validate(v); err != nil {
			return "", err
		}
	}
	if f.Normalize != nil {
		v = f.Normalize(v)
	}
	return v, nil
}

func checkFields(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return errors.New("field without a name")
		}
		if seen[f.Name] {
			return fmt.Errorf("field %q declared twice", f.Name)
		}
		seen[f.Name] = true
		if f.Kind == Choice && len(f.Choices) == 0 {
			return fmt.Errorf("field %q: choice without choices", f.Name)
		}
	}
	return nil
}
