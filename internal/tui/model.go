package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/unionviz/internal/command"
	"github.com/papapumpkin/unionviz/internal/scenario"
	"github.com/papapumpkin/unionviz/internal/scene"
	"github.com/papapumpkin/unionviz/internal/ui"
)

// maxMessages bounds the message log kept in memory.
const maxMessages = 100

// AppModel is the root BubbleTea model: the forest canvas, the node panel,
// the command line, and the bars around them.
type AppModel struct {
	Scene     *scene.Scene
	NewScene  func() *scene.Scene // builds a fresh scene for scenario replays
	StatusBar StatusBar
	Panel     NodePanel
	Input     textinput.Model
	Spinner   spinner.Model
	Keys      KeyMap
	Width     int
	Height    int
	FPS       int
	StartTime time.Time
	ShowPanel bool
	Typing    bool
	Messages  []string // recent info/error messages

	Scenario *scenario.Scenario
	Watcher  *scenario.Watcher

	version uint64
}

// NewAppModel creates a root model around a scene factory. The factory is
// called once now and again for every scenario replay.
func NewAppModel(newScene func() *scene.Scene, fps int) AppModel {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "press : to type a command (help for the list)"
	ti.CharLimit = 128

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent).Background(colorSurface)

	m := AppModel{
		Scene:     newScene(),
		NewScene:  newScene,
		Panel:     NewNodePanel(10),
		Input:     ti,
		Spinner:   s,
		Keys:      DefaultKeyMap(),
		FPS:       max(fps, 1),
		StartTime: time.Now(),
		ShowPanel: true,
	}
	m.StatusBar.StartTime = m.StartTime
	m.sync()
	return m
}

// Init starts the spinner, the frame clock and the scenario watcher.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.Spinner.Tick, frameCmd(m.FPS)}
	if m.Watcher != nil {
		cmds = append(cmds, watchCmd(m.Watcher))
	}
	return tea.Batch(cmds...)
}

// frameCmd schedules the next animation frame.
func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return MsgFrame{Time: t}
	})
}

// watchCmd blocks until the watcher reports a change.
func watchCmd(w *scenario.Watcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes
		if !ok {
			return MsgWatchClosed{}
		}
		return MsgScenarioChanged{Change: change}
	}
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Input.Width = max(msg.Width-8, 10)
		_, rows := canvasSize(m.Width, m.Height, m.panelVisible())
		m.Panel.SetHeight(rows)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case MsgFrame:
		m.Scene.Tick()
		m.sync()
		cmds = append(cmds, frameCmd(m.FPS))

	case MsgScenarioChanged:
		if msg.Change.Removed {
			m.addMessage("scenario %s removed; keeping the current forest", msg.Change.Path)
		} else if sc, err := scenario.Load(msg.Change.Path); err != nil {
			m.addMessage("error: %v", err)
		} else {
			m.replay(sc)
		}
		if m.Watcher != nil {
			cmds = append(cmds, watchCmd(m.Watcher))
		}

	case MsgWatchClosed:
		// Nothing left to watch.
	}

	return m, tea.Batch(cmds...)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Typing {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Input):
		m.Typing = true
		return m, m.Input.Focus()

	case key.Matches(msg, m.Keys.Compress):
		m.apply(command.Command{Verb: command.VerbCompress, Switch: command.SwitchToggle})

	case key.Matches(msg, m.Keys.Rank):
		m.apply(command.Command{Verb: command.VerbRank, Switch: command.SwitchToggle})

	case key.Matches(msg, m.Keys.Reset):
		m.apply(command.Command{Verb: command.VerbReset})

	case key.Matches(msg, m.Keys.Panel):
		m.ShowPanel = !m.ShowPanel
		_, rows := canvasSize(m.Width, m.Height, m.panelVisible())
		m.Panel.SetHeight(rows)

	case key.Matches(msg, m.Keys.Pause):
		m.Scene.SetPaused(!m.Scene.Paused())

	case key.Matches(msg, m.Keys.Skip):
		m.Scene.FlushAnimation()

	case key.Matches(msg, m.Keys.Up):
		if m.panelVisible() {
			m.Panel.MoveUp()
		}

	case key.Matches(msg, m.Keys.Down):
		if m.panelVisible() {
			m.Panel.MoveDown()
		}
	}
	m.sync()
	return m, nil
}

func (m AppModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := InputKeyMap()
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit

	case key.Matches(msg, km.Cancel):
		m.Typing = false
		m.Input.Blur()
		m.Input.SetValue("")
		return m, nil

	case key.Matches(msg, km.Submit):
		line := strings.TrimSpace(m.Input.Value())
		m.Input.SetValue("")
		switch strings.ToLower(line) {
		case "":
			return m, nil
		case "quit", "exit", "q":
			return m, tea.Quit
		}
		m.run(line)
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// run parses and applies one typed line.
func (m *AppModel) run(line string) {
	cmd, err := command.Parse(line)
	if err != nil {
		m.addMessage("error: %v", err)
		return
	}
	m.apply(cmd)
}

func (m *AppModel) apply(cmd command.Command) {
	res, err := command.Apply(m.Scene, cmd)
	if err != nil {
		m.addMessage("error: %v", err)
		return
	}
	if cmd.Verb == command.VerbHelp {
		for _, line := range command.Usage() {
			m.addMessage("%s", line)
		}
		return
	}
	m.addMessage("%s", res.Message)
}

// LoadScenario plays sc on a fresh scene before the program starts.
func (m *AppModel) LoadScenario(sc *scenario.Scenario) {
	m.replay(sc)
}

// replay plays sc on a fresh scene and makes it the current one.
func (m *AppModel) replay(sc *scenario.Scenario) {
	fresh := m.NewScene()
	failed := scenario.Play(fresh, sc, func(step int, _ command.Result, err error) {
		if err != nil {
			m.addMessage("error: step %d: %v", step, err)
		}
	})
	fresh.SetPaused(m.Scene.Paused())
	m.Scene = fresh
	m.Scenario = sc
	m.StatusBar.Name = sc.Name
	m.Panel.Cursor = 0
	m.version = 0
	m.addMessage("replayed %q: %d step(s), %d failed", sc.Name, len(sc.Commands), failed)
	m.sync()
}

// addMessage appends a formatted message to the messages log.
func (m *AppModel) addMessage(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	m.Messages = append(m.Messages, msg)
	if len(m.Messages) > maxMessages {
		m.Messages = m.Messages[len(m.Messages)-maxMessages:]
	}
}

// sync copies scene state into the bars and the node panel. The panel
// rows are rebuilt only when the scene version moved.
func (m *AppModel) sync() {
	snap := m.Scene.Snapshot()
	m.StatusBar.PathCompression = snap.Options.PathCompression
	m.StatusBar.UnionByRank = snap.Options.UnionByRank
	m.StatusBar.Paused = snap.Paused
	m.StatusBar.Animating = snap.Animating
	if snap.Version != m.version || m.version == 0 {
		m.version = snap.Version
		m.StatusBar.Elements = len(snap.Nodes)
		m.StatusBar.Sets = len(m.Scene.Engine().Components())
		m.Panel.SetNodes(snap.Nodes)
	}
	m.Panel.Detail = m.describeSelected()
}

// describeSelected summarizes the node under the panel cursor.
func (m AppModel) describeSelected() string {
	n, ok := m.Panel.Selected()
	if !ok {
		return ""
	}
	depth, err := m.Scene.Engine().Depth(n.ID)
	if err != nil {
		return ""
	}
	if n.Parent == n.ID {
		return fmt.Sprintf("%d %q: root, rank %d", n.ID, n.Value, n.Rank)
	}
	return fmt.Sprintf("%d %q: depth %d, %s", n.ID, n.Value, depth, n.Status)
}

// panelVisible reports whether the node panel fits and is toggled on.
func (m AppModel) panelVisible() bool {
	return m.ShowPanel && m.Width >= PanelMinWidth
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.Width == 0 {
		return "initializing..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return fmt.Sprintf("terminal too small (%dx%d, need %dx%d)", m.Width, m.Height, MinWidth, MinHeight)
	}

	sb := m.StatusBar
	sb.Spinner = m.Spinner.View()
	sections := []string{sb.View(), m.renderMain(), m.renderMessages(), m.renderInput(), m.buildFooter().View()}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMain draws the canvas and, when visible, the node panel beside it.
func (m AppModel) renderMain() string {
	cols, rows := canvasSize(m.Width, m.Height, m.panelVisible())
	c := ui.NewCanvas(cols, rows)
	c.Draw(m.Scene.Snapshot())
	canvas := lipgloss.NewStyle().Width(cols).Height(rows).Render(renderCanvas(c))
	if !m.panelVisible() {
		return canvas
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.Panel.View())
}

// renderMessages shows the newest messages, padded to a fixed height.
func (m AppModel) renderMessages() string {
	start := max(len(m.Messages)-messageRows, 0)
	lines := make([]string, 0, messageRows)
	for _, msg := range m.Messages[start:] {
		style := styleMessage
		if strings.HasPrefix(msg, "error:") {
			style = styleMessageError
		}
		lines = append(lines, style.Render(TruncateWithEllipsis(msg, m.Width-1)))
	}
	for len(lines) < messageRows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderInput() string {
	view := m.Input.View()
	if m.Typing {
		view = styleInputPrompt.Render("▸") + view
	} else {
		view = " " + view
	}
	return styleInput.Width(m.Width).Render(view)
}

// buildFooter creates the footer with the bindings for the current focus.
func (m AppModel) buildFooter() Footer {
	f := Footer{Width: m.Width}
	switch {
	case m.Typing:
		f.Bindings = InputFooterBindings(InputKeyMap())
	case m.panelVisible():
		f.Bindings = PanelFooterBindings(m.Keys)
	default:
		f.Bindings = CanvasFooterBindings(m.Keys)
	}
	return f
}
