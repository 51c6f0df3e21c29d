package formatter

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerDoneMsg stops a spinner program.
type SpinnerDoneMsg struct{}

// SpinnerModel shows a dot spinner next to a message until it receives
// SpinnerDoneMsg.
type SpinnerModel struct {
	spin    spinner.Model
	message string
	done    bool
}

func NewSpinnerModel(message string) SpinnerModel {
	return SpinnerModel{
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(StylePurple)),
		message: message,
	}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("  %s %s", m.spin.View(), Dim(m.message))
}

// RunWithSpinner runs fn while a spinner animates on out. If the spinner
// program stops early (Ctrl-C or ctx done), the context passed to fn is
// cancelled and the program's error is returned once fn has returned.
func RunWithSpinner(ctx context.Context, out io.Writer, message string, fn func(ctx context.Context)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSpinnerModel(message),
		tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		fn(ctx)
		p.Send(SpinnerDoneMsg{})
	}()

	_, err := p.Run()
	if err != nil {
		cancel()
	}
	<-finished
	return err
}
