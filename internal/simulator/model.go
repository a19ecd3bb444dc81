package simulator

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mewp/lcdmenu/internal/config"
	"github.com/mewp/lcdmenu/internal/logging"
	"github.com/mewp/lcdmenu/internal/menu"
)

// tickMsg drives the controller's Render step, standing in for the
// hardware control loop's ticker.
type tickMsg time.Time

// keyMap defines the simulator key bindings.
type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Inc   key.Binding
	Dec   key.Binding
	Sleep key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Inc, k.Dec, k.Sleep, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Inc, k.Dec},
		{k.Sleep, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous item"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next item"),
		),
		Inc: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "increase"),
		),
		Dec: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "decrease"),
		),
		Sleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sleep now"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the Bubble Tea model for the virtual LCD.
type Model struct {
	ctrl *menu.Controller
	disp *virtualDisplay

	keys keyMap
	help help.Model

	tick      time.Duration
	lastEvent *string
	quitting  bool
}

// New builds a simulator from the configuration: virtual display,
// controller, and the configured menu section.
func New(cfg *config.Config) (Model, error) {
	width := cfg.Display.Width
	if width <= 0 {
		width = 16
	}
	disp := newVirtualDisplay(width)

	ctrl, err := menu.NewController(disp,
		menu.WithSleepTimeout(time.Duration(cfg.Display.SleepTimeoutMs)*time.Millisecond))
	if err != nil {
		return Model{}, fmt.Errorf("failed to create controller: %w", err)
	}

	lastEvent := new(string)
	section, err := cfg.BuildSection(func(e menu.Event) {
		*lastEvent = fmt.Sprintf("id=%d value=%s", e.Source, e.Param.DisplayValue())
		logging.Debug("Parameter changed",
			zap.Int("id", e.Source),
			zap.Float64("value", e.Value))
	})
	if err != nil {
		return Model{}, err
	}
	ctrl.AddSection(section, nil)

	return Model{
		ctrl:      ctrl,
		disp:      disp,
		keys:      defaultKeyMap(),
		help:      help.New(),
		tick:      time.Duration(cfg.Display.TickMs) * time.Millisecond,
		lastEvent: lastEvent,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.ctrl.PrevItem()
		case key.Matches(msg, m.keys.Next):
			m.ctrl.NextItem()
		case key.Matches(msg, m.keys.Inc):
			m.ctrl.IncCurrentParameter(1)
		case key.Matches(msg, m.keys.Dec):
			m.ctrl.IncCurrentParameter(-1)
		case key.Matches(msg, m.keys.Sleep):
			m.ctrl.Sleep()
		}
		return m, nil

	case tickMsg:
		if err := m.ctrl.Render(); err != nil {
			logging.Error("Render failed", zap.Error(err))
		}
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := screenOnStyle
	if !m.disp.Backlight() {
		screen = screenOffStyle
	}

	view := titleStyle.Render("lcdmenu simulator") + "\n\n"
	view += screen.Render(m.disp.Row(0)+"\n"+m.disp.Row(1)) + "\n"

	if section := m.ctrl.CurrentSection(); section != nil && section.Len() > 0 {
		view += statusStyle.Render(fmt.Sprintf("item %d/%d", section.Index()+1, section.Len())) + "\n"
	}
	if *m.lastEvent != "" {
		view += statusStyle.Render("last change: "+*m.lastEvent) + "\n"
	}

	view += "\n" + m.help.View(m.keys) + "\n"
	return view
}

// Run starts the simulator and blocks until the user quits.
func Run(cfg *config.Config) error {
	model, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("simulator exited with error: %w", err)
	}
	return nil
}
