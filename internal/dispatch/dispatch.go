// Package dispatch runs the interactive menu loop. It turns a selected
// action into calls on the student store, gathering input through a Prompter
// and showing results through a Display.
package dispatch

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jask/studentdb/internal/display"
	"github.com/jask/studentdb/internal/journal"
	"github.com/jask/studentdb/internal/prompt"
	"github.com/jask/studentdb/internal/student"
)

// Prompter collects answers for a set of fields.
type Prompter interface {
	Ask(ctx context.Context, fields []prompt.Field) (prompt.Answers, error)
}

// Display renders records and notices.
type Display interface {
	Students(title string, rows []student.Student)
	Notice(level display.Level, msg string)
	History(entries []journal.Entry)
}

// Journal records store mutations for the History action.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) (journal.Entry, error)
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
}

// Options configures optional dispatcher behavior.
type Options struct {
	// Journal enables the History action when non-nil.
	Journal      Journal
	HistoryLimit int
	// Suggest enables "did you mean" hints for empty name searches.
	Suggest bool
	Logger  *zap.Logger
}

// Dispatcher owns the menu loop. The store is only ever changed through its
// own operations.
type Dispatcher struct {
	store   *student.Store
	prompts Prompter
	out     Display
	journal Journal
	limit   int
	suggest bool
	log     *zap.Logger
}

// New returns a Dispatcher over store.
func New(store *student.Store, prompts Prompter, out Display, opts Options) *Dispatcher {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		store:   store,
		prompts: prompts,
		out:     out,
		journal: opts.Journal,
		limit:   opts.HistoryLimit,
		suggest: opts.Suggest,
		log:     log,
	}
}

// Run shows the menu until Exit is chosen or the menu prompt is cancelled,
// then returns nil. Store failures never end the loop; only prompt or context
// failures are returned.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		act, err := d.selectAction(ctx)
		if errors.Is(err, prompt.ErrAborted) {
			act = ActionExit
		} else if err != nil {
			return err
		}
		if act == ActionExit {
			d.log.Info("exit requested")
			d.out.Notice(display.LevelInfo, "Exiting Student Management System. Goodbye!")
			return nil
		}
		if err := d.Perform(ctx, act); err != nil {
			return err
		}
	}
}

// Perform runs one action. Unknown actions render an error notice. A prompt
// cancelled inside the action only ends that action.
func (d *Dispatcher) Perform(ctx context.Context, act Action) error {
	entry, ok := d.lookup(act)
	if !ok {
		d.log.Warn("unrecognized action", zap.String("action", string(act)))
		d.out.Notice(display.LevelError, "Invalid choice. Please try again.")
		return nil
	}
	d.log.Debug("perform action", zap.String("action", string(act)))
	err := entry.handler(d, ctx)
	if errors.Is(err, prompt.ErrAborted) {
		d.out.Notice(display.LevelInfo, "Cancelled.")
		return nil
	}
	return err
}

func (d *Dispatcher) selectAction(ctx context.Context) (Action, error) {
	entries := d.menu()
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.label)
	}
	answers, err := d.prompts.Ask(ctx, []prompt.Field{{
		Name:    "choice",
		Message: "Select an action:",
		Kind:    prompt.Choice,
		Choices: labels,
	}})
	if err != nil {
		return "", err
	}
	choice := answers.String("choice")
	for _, e := range entries {
		if e.label == choice {
			return e.action, nil
		}
	}
	return Action(choice), nil
}

// menu returns the table entries whose guard passes, in menu order.
func (d *Dispatcher) menu() []actionEntry {
	var out []actionEntry
	for _, e := range actionTable() {
		if e.guard != nil && !e.guard(d) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (d *Dispatcher) lookup(act Action) (actionEntry, bool) {
	for _, e := range d.menu() {
		if e.action == act && e.handler != nil {
			return e, true
		}
	}
	return actionEntry{}, false
}
