package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jask/studentdb/internal/display"
	"github.com/jask/studentdb/internal/journal"
	"github.com/jask/studentdb/internal/prompt"
	"github.com/jask/studentdb/internal/student"
)

// scriptedPrompter answers fields from a queue of raw inputs, re-asking a
// field until prompt.Field.Accept takes the value. An exhausted script
// behaves like the user pressing ctrl+c.
type scriptedPrompter struct {
	inputs     []string
	rejections []string
	asked      [][]string
}

func (p *scriptedPrompter) Ask(_ context.Context, fields []prompt.Field) (prompt.Answers, error) {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	p.asked = append(p.asked, names)

	out := prompt.Answers{}
	for _, f := range fields {
		for {
			if len(p.inputs) == 0 {
				return nil, prompt.ErrAborted
			}
			raw := p.inputs[0]
			p.inputs = p.inputs[1:]
			v, err := f.Accept(raw)
			if err != nil {
				p.rejections = append(p.rejections, err.Error())
				continue
			}
			out[f.Name] = v
			break
		}
	}
	return out, nil
}

type tableCall struct {
	title string
	rows  []student.Student
}

type recordingDisplay struct {
	tables  []tableCall
	notices []string
	history [][]journal.Entry
}

func (r *recordingDisplay) Students(title string, rows []student.Student) {
	r.tables = append(r.tables, tableCall{title: title, rows: rows})
}

func (r *recordingDisplay) Notice(_ display.Level, msg string) {
	r.notices = append(r.notices, msg)
}

func (r *recordingDisplay) History(entries []journal.Entry) {
	r.history = append(r.history, entries)
}

func (r *recordingDisplay) lastTable(t *testing.T) tableCall {
	t.Helper()
	if len(r.tables) == 0 {
		t.Fatal("no table rendered")
	}
	return r.tables[len(r.tables)-1]
}

func (r *recordingDisplay) hasNotice(msg string) bool {
	for _, n := range r.notices {
		if n == msg {
			return true
		}
	}
	return false
}

func label(act Action) string {
	for _, e := range actionTable() {
		if e.action == act {
			return e.label
		}
	}
	return ""
}

func rowNames(rows []student.Student) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func newTestDispatcher(store *student.Store, inputs ...string) (*Dispatcher, *scriptedPrompter, *recordingDisplay) {
	p := &scriptedPrompter{inputs: inputs}
	out := &recordingDisplay{}
	return New(store, p, out, Options{Suggest: true}), p, out
}

func TestRunExitReturnsNil(t *testing.T) {
	d, _, out := newTestDispatcher(student.NewSeededStore(), label(ActionExit))
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.notices) == 0 || !strings.Contains(out.notices[len(out.notices)-1], "Goodbye") {
		t.Fatalf("expected goodbye notice, got %v", out.notices)
	}
}

func TestRunAbortedMenuExits(t *testing.T) {
	d, _, _ := newTestDispatcher(student.NewSeededStore())
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, _, _ := newTestDispatcher(student.NewSeededStore(), label(ActionViewAll))
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err=%v, want context.Canceled", err)
	}
}

type failingPrompter struct{ err error }

func (p failingPrompter) Ask(context.Context, []prompt.Field) (prompt.Answers, error) {
	return nil, p.err
}

func TestRunReturnsPromptFailures(t *testing.T) {
	boom := errors.New("terminal gone")
	d := New(student.NewSeededStore(), failingPrompter{err: boom}, &recordingDisplay{}, Options{})
	if err := d.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run err=%v, want %v", err, boom)
	}
}

func TestViewAllThenExit(t *testing.T) {
	d, p, out := newTestDispatcher(student.NewSeededStore(), label(ActionViewAll), label(ActionExit))
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(p.asked) != 2 {
		t.Fatalf("menu shown %d times, want 2", len(p.asked))
	}
	got := out.lastTable(t)
	if got.title != listTitle {
		t.Fatalf("title=%q", got.title)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob", "Charlie"}, rowNames(got.rows)); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
}

func TestUnrecognizedSelectionLoops(t *testing.T) {
	d, _, out := newTestDispatcher(student.NewSeededStore())
	if err := d.Perform(context.Background(), Action("launch")); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if !out.hasNotice("Invalid choice. Please try again.") {
		t.Fatalf("notices=%v", out.notices)
	}
}

func TestAddRepromptsThenAppends(t *testing.T) {
	store := student.NewSeededStore()
	d, p, out := newTestDispatcher(store,
		"abc", "0", "2", "4", // id: not a number, not positive, taken, ok
		"Dana",
		"x", "19",
		"Z", " b+ ",
		"Physics",
	)
	if err := d.Perform(context.Background(), ActionAdd); err != nil {
		t.Fatalf("Perform: %v", err)
	}

	wantRejections := []string{"Please enter a valid number.", invalidIDReason, duplicateIDReason, "Please enter a valid number.", gradeReason()}
	if diff := cmp.Diff(wantRejections, p.rejections); diff != "" {
		t.Fatalf("rejections (-want +got):\n%s", diff)
	}
	got, err := store.FindByID(4)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	want := student.Student{ID: 4, Name: "Dana", Age: 19, Grade: "B+", Department: "Physics"}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("stored (-want +got):\n%s", diff)
	}
	if !out.hasNotice("Student added successfully!") {
		t.Fatalf("notices=%v", out.notices)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob", "Charlie", "Dana"}, rowNames(out.lastTable(t).rows)); diff != "" {
		t.Fatalf("list after add (-want +got):\n%s", diff)
	}
}

func TestAddCancelledMidwayLeavesStore(t *testing.T) {
	store := student.NewSeededStore()
	d, _, out := newTestDispatcher(store, "5", "Eve")
	if err := d.Perform(context.Background(), ActionAdd); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("Len=%d, want 3", store.Len())
	}
	if !out.hasNotice("Cancelled.") {
		t.Fatalf("notices=%v", out.notices)
	}
}

func TestUpdateKeepsDefaultsAndNormalizesGrade(t *testing.T) {
	store := student.NewSeededStore()
	d, _, out := newTestDispatcher(store, "1", "", "", "b", "")
	if err := d.Perform(context.Background(), ActionUpdate); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	got, _ := store.FindByID(1)
	want := student.Student{ID: 1, Name: "Alice", Age: 20, Grade: "B", Department: "Computer Science"}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("updated (-want +got):\n%s", diff)
	}
	if !out.hasNotice("Student updated successfully!") {
		t.Fatalf("notices=%v", out.notices)
	}
	// list before the id prompt and after the update
	if len(out.tables) != 2 {
		t.Fatalf("tables=%d, want 2", len(out.tables))
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := student.NewSeededStore()
	d, p, out := newTestDispatcher(store, "99")
	if err := d.Perform(context.Background(), ActionUpdate); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if !out.hasNotice("Student not found!") {
		t.Fatalf("notices=%v", out.notices)
	}
	if len(p.asked) != 1 {
		t.Fatalf("asked %d prompts, want only the id prompt", len(p.asked))
	}
}

func TestUpdateWithoutChanges(t *testing.T) {
	d, _, out := newTestDispatcher(student.NewSeededStore(), "2", "", "", "", "")
	if err := d.Perform(context.Background(), ActionUpdate); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if !out.hasNotice("Nothing to update.") {
		t.Fatalf("notices=%v", out.notices)
	}
}

func TestUpdateAndDeleteOnEmptyStore(t *testing.T) {
	d, p, out := newTestDispatcher(student.NewStore())
	if err := d.Perform(context.Background(), ActionUpdate); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := d.Perform(context.Background(), ActionDelete); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if diff := cmp.Diff([]string{"No students to update!", "No students to delete!"}, out.notices); diff != "" {
		t.Fatalf("notices (-want +got):\n%s", diff)
	}
	if len(p.asked) != 0 {
		t.Fatalf("empty store should not prompt, asked=%v", p.asked)
	}
}

func TestDeleteThenReuseID(t *testing.T) {
	store := student.NewSeededStore()
	d, _, out := newTestDispatcher(store,
		"2",
		"2", "Bianca", "24", "c", "Chemistry",
	)
	ctx := context.Background()
	if err := d.Perform(ctx, ActionDelete); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !out.hasNotice("Student deleted successfully!") {
		t.Fatalf("notices=%v", out.notices)
	}
	if err := d.Perform(ctx, ActionAdd); err != nil {
		t.Fatalf("add: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice", "Charlie", "Bianca"}, rowNames(store.List(nil))); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}

func TestDeleteNotFoundKeepsLooping(t *testing.T) {
	store := student.NewSeededStore()
	d, _, out := newTestDispatcher(store,
		label(ActionDelete), "77",
		label(ActionExit),
	)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.hasNotice("Student not found!") {
		t.Fatalf("notices=%v", out.notices)
	}
	if store.Len() != 3 {
		t.Fatalf("Len=%d, want 3", store.Len())
	}
}

func TestSearch(t *testing.T) {
	d, _, out := newTestDispatcher(student.NewSeededStore(), "ali", "", "alise")
	ctx := context.Background()

	if err := d.Perform(ctx, ActionSearch); err != nil {
		t.Fatalf("search: %v", err)
	}
	got := out.lastTable(t)
	if got.title != `Search Results for "ali":` {
		t.Fatalf("title=%q", got.title)
	}
	if diff := cmp.Diff([]string{"Alice"}, rowNames(got.rows)); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}

	if err := d.Perform(ctx, ActionSearch); err != nil {
		t.Fatalf("empty search: %v", err)
	}
	if n := len(out.lastTable(t).rows); n != 3 {
		t.Fatalf("empty search matched %d, want 3", n)
	}

	if err := d.Perform(ctx, ActionSearch); err != nil {
		t.Fatalf("miss search: %v", err)
	}
	if n := len(out.lastTable(t).rows); n != 0 {
		t.Fatalf("alise matched %d, want 0", n)
	}
	if !out.hasNotice(`Did you mean "Alice"?`) {
		t.Fatalf("notices=%v", out.notices)
	}
}

func TestSearchSuggestionDisabled(t *testing.T) {
	p := &scriptedPrompter{inputs: []string{"zzz"}}
	out := &recordingDisplay{}
	d := New(student.NewSeededStore(), p, out, Options{})
	if err := d.Perform(context.Background(), ActionSearch); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out.notices) != 0 {
		t.Fatalf("unexpected notices %v", out.notices)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name       string
		inputs     []string
		wantRows   []string
		wantNotice string
	}{
		{name: "age", inputs: []string{"age", "22"}, wantRows: []string{"Bob"}},
		{name: "age malformed", inputs: []string{"age", "xx"}, wantNotice: "Please enter a valid number for age filtering."},
		{name: "department", inputs: []string{"department", "mechanical"}, wantRows: []string{"Charlie"}},
		{name: "grade", inputs: []string{"grade", "a"}, wantRows: []string{"Alice", "Charlie"}},
		{name: "bad criterion reprompted", inputs: []string{"name", "grade", "B"}, wantRows: []string{"Bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, out := newTestDispatcher(student.NewSeededStore(), tt.inputs...)
			if err := d.Perform(context.Background(), ActionFilter); err != nil {
				t.Fatalf("Perform: %v", err)
			}
			if tt.wantNotice != "" {
				if !out.hasNotice(tt.wantNotice) {
					t.Fatalf("notices=%v, want %q", out.notices, tt.wantNotice)
				}
				if len(out.tables) != 0 {
					t.Fatalf("malformed filter should not render a table")
				}
				return
			}
			if diff := cmp.Diff(tt.wantRows, rowNames(out.lastTable(t).rows)); diff != "" {
				t.Fatalf("rows (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHistoryHiddenWithoutJournal(t *testing.T) {
	d, _, out := newTestDispatcher(student.NewSeededStore())
	for _, e := range d.menu() {
		if e.action == ActionHistory {
			t.Fatal("history should be hidden without a journal")
		}
	}
	if err := d.Perform(context.Background(), ActionHistory); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if !out.hasNotice("Invalid choice. Please try again.") {
		t.Fatalf("notices=%v", out.notices)
	}
}

func TestHistoryListsMutations(t *testing.T) {
	ctx := context.Background()
	j, err := journal.Open(ctx)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	p := &scriptedPrompter{inputs: []string{
		label(ActionDelete), "3",
		label(ActionUpdate), "1", "", "21", "", "",
		label(ActionHistory),
		label(ActionExit),
	}}
	out := &recordingDisplay{}
	d := New(student.NewSeededStore(), p, out, Options{Journal: j, HistoryLimit: 10})
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.history) != 1 {
		t.Fatalf("history rendered %d times, want 1", len(out.history))
	}
	got := out.history[0]
	if len(got) != 2 {
		t.Fatalf("entries=%d, want 2", len(got))
	}
	if got[0].Action != journal.ActionUpdate || got[0].StudentID != 1 || got[0].Detail != "age: 20 -> 21" {
		t.Fatalf("newest entry=%+v", got[0])
	}
	if got[1].Action != journal.ActionDelete || got[1].Detail != "Charlie" {
		t.Fatalf("oldest entry=%+v", got[1])
	}
}
