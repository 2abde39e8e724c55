package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/studentdb/internal/theme"
)

// form walks the fields in order. It is a tea.Model but holds no terminal
// state, so tests can drive Update directly.
type form struct {
	fields   []Field
	idx      int
	input    textinput.Model
	choice   *choiceState
	answers  Answers
	answered []string
	errMsg   string
	aborted  bool
	styles   theme.Styles
}

func newForm(fields []Field, styles theme.Styles) *form {
	ti := textinput.New()
	ti.Prompt = ""
	f := &form{
		fields:  fields,
		input:   ti,
		answers: make(Answers, len(fields)),
		styles:  styles,
	}
	f.load()
	return f
}

func (f *form) Init() tea.Cmd {
	return textinput.Blink
}

func (f *form) done() bool {
	return f.idx >= len(f.fields)
}

func (f *form) current() Field {
	return f.fields[f.idx]
}

// load prepares the widgets for the current field.
func (f *form) load() {
	if f.done() {
		f.input.Blur()
		f.choice = nil
		return
	}
	fl := f.current()
	if fl.Kind == Choice {
		f.choice = newChoice(fl.Choices, fl.Default)
		f.input.Blur()
		return
	}
	f.choice = nil
	f.input.Reset()
	f.input.Placeholder = fl.Default
	f.input.Focus()
}

func (f *form) raw() string {
	if f.choice != nil {
		return f.choice.Selected()
	}
	return f.input.Value()
}

// submit tries raw for the current field and advances on success.
func (f *form) submit(raw string) bool {
	fl := f.current()
	v, err := fl.Accept(raw)
	if err != nil {
		f.errMsg = err.Error()
		return false
	}
	f.answers[fl.Name] = v
	f.answered = append(f.answered, f.renderQuestion(fl)+f.styles.Answer.Render(v))
	f.errMsg = ""
	f.idx++
	f.load()
	return true
}

func (f *form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.done() || f.aborted {
		return f, tea.Quit
	}
	if _, ok := msg.(eofMsg); ok {
		f.aborted = true
		return f, tea.Quit
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			f.aborted = true
			return f, tea.Quit
		case "enter":
			if f.submit(f.raw()) && f.done() {
				return f, tea.Quit
			}
			return f, nil
		}
		if f.choice != nil {
			f.choice.HandleKey(msg.String())
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *form) renderQuestion(fl Field) string {
	return f.styles.Cursor.Render("? ") + f.styles.Question.Render(fl.Message) + " "
}

func (f *form) View() string {
	var b strings.Builder
	for _, line := range f.answered {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if f.done() || f.aborted {
		return b.String()
	}
	fl := f.current()
	b.WriteString(f.renderQuestion(fl))
	if f.choice != nil {
		b.WriteString("\n")
		b.WriteString(renderChoice(f.choice, f.styles))
	} else {
		b.WriteString(f.input.View())
	}
	b.WriteString("\n")
	if f.errMsg != "" {
		b.WriteString(f.styles.Error.Render(">> " + f.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}
