package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/jask/studentdb/internal/theme"
)

// Prompter runs one inline bubbletea program per Ask call.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles theme.Styles
}

// New returns a Prompter reading keys from in and drawing to out.
func New(in io.Reader, out io.Writer, styles theme.Styles) *Prompter {
	return &Prompter{in: in, out: out, styles: styles}
}

// Ask asks every field in order and returns the accepted answers. Each field
// is re-asked until it is accepted. It returns ErrAborted if the user cancels.
func (p *Prompter) Ask(ctx context.Context, fields []Field) (Answers, error) {
	if err := checkFields(fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return Answers{}, nil
	}
	f := newForm(fields, p.styles)
	var prog *tea.Program
	in := watchEOF(p.in, func() { prog.Send(eofMsg{}) })
	prog = tea.NewProgram(f,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	res, ok := final.(*form)
	if !ok {
		return nil, fmt.Errorf("unexpected prompt model %T", final)
	}
	if res.aborted {
		return nil, ErrAborted
	}
	return res.answers, nil
}

// eofMsg tells the form that no more input will arrive.
type eofMsg struct{}

// eofReader calls onEOF the first time the wrapped reader reports io.EOF.
type eofReader struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
}

func (e *eofReader) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) {
		e.once.Do(e.onEOF)
	}
	return n, err
}

// watchEOF wraps in so that end of input aborts the form. Terminals are
// returned as is: bubbletea only enables raw mode for a real tty, and a tty
// never reports io.EOF.
func watchEOF(in io.Reader, onEOF func()) io.Reader {
	if f, ok := in.(term.File); ok && term.IsTerminal(f.Fd()) {
		return in
	}
	return &eofReader{r: in, onEOF: onEOF}
}
