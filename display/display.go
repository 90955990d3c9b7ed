package display

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	logging "github.com/ipfs/go-log/v2"
	"github.com/mattn/go-isatty"
)

var log = logging.Logger("display")

// tickMsg advances the animation by one frame.
type tickMsg time.Time

// Model is a Bubble Tea model cycling through pre-rendered frames.
type Model struct {
	frames   []string
	interval time.Duration
	index    int
	quitting bool
}

// NewModel creates a model showing frames at fps frames per second.
func NewModel(frames []string, fps int) Model {
	return Model{
		frames:   frames,
		interval: time.Second / time.Duration(fps),
	}
}

// Init implements tea.Model. A single frame has nothing to animate,
// so the loop only starts ticking with two or more.
func (m Model) Init() tea.Cmd {
	if len(m.frames) < 2 {
		return nil
	}
	return m.tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.index = (m.index + 1) % len(m.frames)
		return m, m.tick()

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return m.frames[m.index] + "\n" + help
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Run shows the frames in the terminal until the user quits. It
// refuses to start when stdout is not a terminal, since an animation
// written to a pipe is just garbage bytes.
func Run(frames []string, fps int) error {
	if len(frames) == 0 {
		return errors.New("display: no frames to show")
	}
	if fps < 1 {
		return fmt.Errorf("display: fps must be at least 1, got %d", fps)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("display: stdout is not a terminal, export to files instead")
	}

	log.Debugf("showing %d frames at %d fps", len(frames), fps)
	p := tea.NewProgram(NewModel(frames, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
