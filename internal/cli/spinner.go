package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

// spinnerModel shows progress while a build backend runs.
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

// spinnerDoneMsg signals that the wrapped operation returned.
type spinnerDoneMsg struct{}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styleIconSpinner
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + StyleDim.Render(m.message)
}

// withSpinner runs fn while animating message on w. The animation is
// skipped when w is not a terminal.
func withSpinner(ctx context.Context, w io.Writer, message string, fn func(context.Context) error) error {
	if !isTerminal(w) {
		return fn(ctx)
	}

	p := tea.NewProgram(newSpinnerModel(message),
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	errc := make(chan error, 1)
	go func() {
		errc <- fn(ctx)
		p.Send(spinnerDoneMsg{})
	}()

	// The program ends on spinnerDoneMsg or when ctx is cancelled; fn's
	// result decides the outcome either way.
	_, _ = p.Run()
	return <-errc
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
