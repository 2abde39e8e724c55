// Package display renders student records and status messages to a writer.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/studentdb/internal/journal"
	"github.com/jask/studentdb/internal/student"
	"github.com/jask/studentdb/internal/theme"
)

// EmptyNotice replaces the table when there is nothing to show.
const EmptyNotice = "No students found!"

// Level selects the style of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

var studentHeaders = []string{"ID", "Name", "Age", "Grade", "Department"}

const gradeCol = 3

// Renderer writes tables and notices to w.
type Renderer struct {
	w      io.Writer
	styles theme.Styles
}

// New returns a Renderer writing to w with the given styles.
func New(w io.Writer, styles theme.Styles) *Renderer {
	return &Renderer{w: w, styles: styles}
}

// Students renders rows under title, or EmptyNotice when rows is empty.
func (r *Renderer) Students(title string, rows []student.Student) {
	fmt.Fprintln(r.w)
	if title != "" {
		fmt.Fprintln(r.w, r.styles.Title.Render(title))
	}
	if len(rows) == 0 {
		fmt.Fprintln(r.w, r.styles.Muted.Render(EmptyNotice))
		return
	}

	cells := make([][]string, 0, len(rows))
	for _, s := range rows {
		cells = append(cells, []string{
			strconv.Itoa(s.ID),
			s.Name,
			strconv.Itoa(s.Age),
			s.Grade,
			s.Department,
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border).
		Headers(studentHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			if col == gradeCol && row >= 0 && row < len(cells) {
				return r.styles.Cell.Foreground(theme.GradeColor(cells[row][gradeCol]))
			}
			return r.styles.Cell
		})
	fmt.Fprintln(r.w, t.Render())
}

// Notice renders a single status line.
func (r *Renderer) Notice(level Level, msg string) {
	style := r.styles.Info
	switch level {
	case LevelSuccess:
		style = r.styles.Success
	case LevelError:
		style = r.styles.Error
	}
	fmt.Fprintln(r.w, style.Render(msg))
}

// History renders journal entries, newest first as given.
func (r *Renderer) History(entries []journal.Entry) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Title.Render("Session History"))
	if len(entries) == 0 {
		fmt.Fprintln(r.w, r.styles.Muted.Render("No changes yet."))
		return
	}
	cells := make([][]string, 0, len(entries))
	for _, e := range entries {
		cells = append(cells, []string{
			e.At.Local().Format("15:04:05"),
			string(e.Action),
			strconv.Itoa(e.StudentID),
			e.Detail,
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border).
		Headers("Time", "Action", "ID", "Detail").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return r.styles.Cell
		})
	fmt.Fprintln(r.w, t.Render())
}
