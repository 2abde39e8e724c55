package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/studentdb/internal/display"
	"github.com/jask/studentdb/internal/journal"
	"github.com/jask/studentdb/internal/student"
)

// Action identifies a menu entry.
type Action string

const (
	ActionViewAll Action = "view"
	ActionAdd     Action = "add"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionSearch  Action = "search"
	ActionFilter  Action = "filter"
	ActionHistory Action = "history"
	ActionExit    Action = "exit"
)

// ---------------------------------------------------------------------------
// Action table: single source of truth for the menu and for routing
// ---------------------------------------------------------------------------
//
// The menu lists every entry whose guard passes, in table order. Perform
// routes through the same filtered list, so a hidden entry cannot run.
// Exit has no handler; Run handles it.

type actionEntry struct {
	action  Action
	label   string
	guard   func(d *Dispatcher) bool
	handler func(d *Dispatcher, ctx context.Context) error
}

func actionTable() []actionEntry {
	return []actionEntry{
		{action: ActionViewAll, label: "View All Students", handler: (*Dispatcher).viewAll},
		{action: ActionAdd, label: "Add Student", handler: (*Dispatcher).add},
		{action: ActionUpdate, label: "Update Student", handler: (*Dispatcher).update},
		{action: ActionDelete, label: "Delete Student", handler: (*Dispatcher).remove},
		{action: ActionSearch, label: "Search Student (by Name)", handler: (*Dispatcher).search},
		{action: ActionFilter, label: "Filter Students", handler: (*Dispatcher).filter},
		{
			action:  ActionHistory,
			label:   "Session History",
			guard:   func(d *Dispatcher) bool { return d.journal != nil },
			handler: (*Dispatcher).history,
		},
		{action: ActionExit, label: "Exit"},
	}
}

const listTitle = "Current Students List:"

func (d *Dispatcher) viewAll(ctx context.Context) error {
	d.out.Students(listTitle, d.store.List(nil))
	return nil
}

func (d *Dispatcher) add(ctx context.Context) error {
	answers, err := d.prompts.Ask(ctx, d.addFields())
	if err != nil {
		return err
	}
	s, err := studentFromAnswers(answers)
	if err != nil {
		return err
	}
	if err := d.store.Add(s); err != nil {
		d.reportStoreError("add", s.ID, err)
		return nil
	}
	d.log.Info("student added", zap.Int("id", s.ID))
	d.out.Notice(display.LevelSuccess, "Student added successfully!")
	d.record(ctx, journal.ActionAdd, s.ID, s.Name)
	d.out.Students(listTitle, d.store.List(nil))
	return nil
}

func (d *Dispatcher) update(ctx context.Context) error {
	if d.store.Len() == 0 {
		d.out.Notice(display.LevelInfo, "No students to update!")
		return nil
	}
	d.out.Students(listTitle, d.store.List(nil))

	id, err := d.askID(ctx, "Enter ID of student to update:")
	if err != nil {
		return err
	}
	current, err := d.store.FindByID(id)
	if err != nil {
		d.reportStoreError("update", id, err)
		return nil
	}
	// copy so the prompts below see stable defaults
	before := *current

	answers, err := d.prompts.Ask(ctx, updateFields(before))
	if err != nil {
		return err
	}
	patch, changes, err := patchFromAnswers(before, answers)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		d.out.Notice(display.LevelInfo, "Nothing to update.")
		return nil
	}
	if err := d.store.Update(id, patch); err != nil {
		d.reportStoreError("update", id, err)
		return nil
	}
	d.log.Info("student updated", zap.Int("id", id), zap.Strings("changes", changes))
	d.out.Notice(display.LevelSuccess, "Student updated successfully!")
	d.record(ctx, journal.ActionUpdate, id, strings.Join(changes, "; "))
	d.out.Students(listTitle, d.store.List(nil))
	return nil
}

func (d *Dispatcher) remove(ctx context.Context) error {
	if d.store.Len() == 0 {
		d.out.Notice(display.LevelInfo, "No students to delete!")
		return nil
	}
	d.out.Students(listTitle, d.store.List(nil))

	id, err := d.askID(ctx, "Enter ID of student to delete:")
	if err != nil {
		return err
	}
	name := ""
	if s, err := d.store.FindByID(id); err == nil {
		name = s.Name
	}
	if err := d.store.DeleteByID(id); err != nil {
		d.reportStoreError("delete", id, err)
		return nil
	}
	d.log.Info("student deleted", zap.Int("id", id))
	d.out.Notice(display.LevelSuccess, "Student deleted successfully!")
	d.record(ctx, journal.ActionDelete, id, name)
	d.out.Students(listTitle, d.store.List(nil))
	return nil
}

func (d *Dispatcher) search(ctx context.Context) error {
	answers, err := d.prompts.Ask(ctx, searchFields())
	if err != nil {
		return err
	}
	query := answers.String(fieldName)
	rows := d.store.SearchByName(query)
	d.log.Debug("search", zap.String("query", query), zap.Int("matches", len(rows)))
	d.out.Students(fmt.Sprintf("Search Results for %q:", query), rows)
	if len(rows) == 0 && d.suggest {
		if name, ok := d.store.ClosestName(query); ok {
			d.out.Notice(display.LevelInfo, fmt.Sprintf("Did you mean %q?", name))
		}
	}
	return nil
}

func (d *Dispatcher) filter(ctx context.Context) error {
	answers, err := d.prompts.Ask(ctx, filterFields())
	if err != nil {
		return err
	}
	criterion := student.Criterion(answers.String(fieldCriteria))
	value := answers.String(fieldValue)
	rows, err := d.store.FilterBy(criterion, value)
	switch {
	case errors.Is(err, student.ErrMalformedFilter):
		d.log.Warn("malformed filter", zap.String("criterion", string(criterion)), zap.String("value", value))
		d.out.Notice(display.LevelError, "Please enter a valid number for age filtering.")
		return nil
	case err != nil:
		d.log.Warn("filter failed", zap.Error(err))
		d.out.Notice(display.LevelError, "Invalid filter criteria.")
		return nil
	}
	d.out.Students(fmt.Sprintf("Filtered Students (%s: %s):", criterion, value), rows)
	return nil
}

func (d *Dispatcher) history(ctx context.Context) error {
	entries, err := d.journal.Recent(ctx, d.limit)
	if err != nil {
		d.log.Warn("load history", zap.Error(err))
		d.out.Notice(display.LevelError, "Could not load session history.")
		return nil
	}
	d.out.History(entries)
	return nil
}

func (d *Dispatcher) askID(ctx context.Context, message string) (int, error) {
	answers, err := d.prompts.Ask(ctx, idLookupFields(message))
	if err != nil {
		return 0, err
	}
	return answers.Int(fieldID)
}

// reportStoreError turns a store failure into a notice. None of them end the
// session.
func (d *Dispatcher) reportStoreError(op string, id int, err error) {
	d.log.Warn("store operation failed", zap.String("op", op), zap.Int("id", id), zap.Error(err))
	switch {
	case errors.Is(err, student.ErrNotFound):
		d.out.Notice(display.LevelError, "Student not found!")
	case errors.Is(err, student.ErrDuplicateID):
		d.out.Notice(display.LevelError, duplicateIDReason)
	case errors.Is(err, student.ErrInvalidID):
		d.out.Notice(display.LevelError, invalidIDReason)
	case errors.Is(err, student.ErrInvalidGrade):
		d.out.Notice(display.LevelError, gradeReason())
	default:
		d.out.Notice(display.LevelError, err.Error())
	}
}

func (d *Dispatcher) record(ctx context.Context, act journal.Action, id int, detail string) {
	if d.journal == nil {
		return
	}
	if _, err := d.journal.Record(ctx, journal.Entry{Action: act, StudentID: id, Detail: detail}); err != nil {
		d.log.Warn("journal record failed", zap.String("action", string(act)), zap.Int("id", id), zap.Error(err))
	}
}
