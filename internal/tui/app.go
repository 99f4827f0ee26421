package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tikitko/magichome/internal/device"
	"github.com/tikitko/magichome/internal/protocol"
)

// Messages for async session operations
type connectCompleteMsg struct {
	reply *protocol.StatusReply
	err   error
}

type statusCompleteMsg struct {
	reply *protocol.StatusReply
	err   error
}

type commandCompleteMsg struct {
	err error
}

// controllerKeyMap defines key bindings for the controller screen
type controllerKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	BigUp   key.Binding
	BigDown key.Binding
	Apply   key.Binding
	Power   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k controllerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.Apply, k.Power, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k controllerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.BigUp, k.BigDown, k.Apply, k.Power},
		{k.Refresh, k.Quit},
	}
}

func newControllerKeyMap() controllerKeyMap {
	return controllerKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "channel"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next channel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "adjust"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "decrease"),
		),
		BigUp: key.NewBinding(
			key.WithKeys("pgup", "K"),
			key.WithHelp("pgup/pgdn", "adjust by 16"),
		),
		BigDown: key.NewBinding(
			key.WithKeys("pgdown", "J"),
			key.WithHelp("pgdn", "decrease by 16"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply color"),
		),
		Power: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "toggle power"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the interactive controller screen: live state on top, three
// adjustable channel sliders below. Edits are local until applied with
// enter so a fat-fingered arrow key never spams the device.
type Model struct {
	session *device.Session
	addr    string

	// Device state (last reply from the controller)
	reply *protocol.StatusReply
	power bool

	// Pending channel values being edited locally
	channels [3]uint8
	cursor   int // Selected channel: 0=red 1=green 2=blue

	// UI state
	connecting bool
	busy       bool
	err        error
	width      int
	height     int

	spinner spinner.Model
	help    help.Model
	keys    controllerKeyMap
}

// NewModel creates a controller model for a session that has not connected yet.
func NewModel(sess *device.Session, addr string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		session:    sess,
		addr:       addr,
		connecting: true,
		spinner:    s,
		help:       help.New(),
		keys:       newControllerKeyMap(),
	}
}

// Init starts the connection attempt and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, connectCmd(m.session, m.addr))
}

// connectCmd dials the controller and fetches the initial state
func connectCmd(sess *device.Session, addr string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Connect(addr); err != nil {
			return connectCompleteMsg{err: err}
		}
		reply, err := sess.Status()
		return connectCompleteMsg{reply: reply, err: err}
	}
}

// statusCmd re-queries the controller state
func statusCmd(sess *device.Session) tea.Cmd {
	return func() tea.Msg {
		reply, err := sess.Status()
		return statusCompleteMsg{reply: reply, err: err}
	}
}

// applyColorCmd sends the pending channel values to the controller
func applyColorCmd(sess *device.Session, r, g, b uint8) tea.Cmd {
	return func() tea.Msg {
		return commandCompleteMsg{err: sess.SetColor(r, g, b)}
	}
}

// setPowerCmd sends an absolute power target to the controller
func setPowerCmd(sess *device.Session, on bool) tea.Cmd {
	return func() tea.Msg {
		return commandCompleteMsg{err: sess.SetPower(on)}
	}
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.connecting && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case connectCompleteMsg:
		m.connecting = false
		m.err = msg.err
		if msg.err == nil {
			m.applyReply(msg.reply)
		}
		return m, nil

	case statusCompleteMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.applyReply(msg.reply)
		}
		return m, nil

	case commandCompleteMsg:
		m.err = msg.err
		if msg.err != nil {
			m.busy = false
			return m, nil
		}
		// Confirm the command landed by re-reading state
		return m, statusCmd(m.session)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyReply folds a fresh status reply into the model, resetting the
// pending channel values to what the device reports.
func (m *Model) applyReply(reply *protocol.StatusReply) {
	m.reply = reply
	m.power = reply.On()
	m.channels = [3]uint8{reply.Red, reply.Green, reply.Blue}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Ignore everything else until the session is settled
	if m.connecting || m.busy {
		return m, nil
	}
	if m.err != nil && m.reply == nil {
		// Connection never came up; only refresh (retry) is meaningful
		if key.Matches(msg, m.keys.Refresh) {
			m.connecting = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, connectCmd(m.session, m.addr))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor + 2) % 3

	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % 3

	case key.Matches(msg, m.keys.Up):
		m.channels[m.cursor] = clampedAdd(m.channels[m.cursor], 1)

	case key.Matches(msg, m.keys.Down):
		m.channels[m.cursor] = clampedAdd(m.channels[m.cursor], -1)

	case key.Matches(msg, m.keys.BigUp):
		m.channels[m.cursor] = clampedAdd(m.channels[m.cursor], 16)

	case key.Matches(msg, m.keys.BigDown):
		m.channels[m.cursor] = clampedAdd(m.channels[m.cursor], -16)

	case key.Matches(msg, m.keys.Apply):
		m.busy = true
		return m, tea.Batch(m.spinner.Tick,
			applyColorCmd(m.session, m.channels[0], m.channels[1], m.channels[2]))

	case key.Matches(msg, m.keys.Power):
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, setPowerCmd(m.session, !m.power))

	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, statusCmd(m.session))
	}

	return m, nil
}

// clampedAdd adjusts a channel value without wrapping at the byte bounds.
func clampedAdd(value uint8, delta int) uint8 {
	next := int(value) + delta
	if next < 0 {
		return 0
	}
	if next > 255 {
		return 255
	}
	return uint8(next)
}

// View renders the controller screen
func (m Model) View() string {
	if m.width > 0 && m.width < MinTerminalWidth {
		return ErrorStyle.Render(fmt.Sprintf("Terminal too narrow (need %d columns)", MinTerminalWidth))
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(AppName))
	b.WriteString("\n")

	if m.connecting {
		b.WriteString(fmt.Sprintf("%s Connecting to %s...\n", m.spinner.View(), m.addr))
		b.WriteString(m.helpView())
		return b.String()
	}

	if m.err != nil && m.reply == nil {
		b.WriteString(ErrorStyle.Render(device.GetShortErrorMessage(m.err)))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("r retry • q quit"))
		return b.String()
	}

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.slidersView())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(device.GetShortErrorMessage(m.err)))
		b.WriteString("\n")
	}

	b.WriteString(m.helpView())
	return b.String()
}

// statusView renders the device state box: power, preview swatch, reply details
func (m Model) statusView() string {
	power := PowerOffStyle.Render("● OFF")
	if m.power {
		power = PowerOnStyle.Render("● ON")
	}

	// Preview swatch of the pending color
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", m.channels[0], m.channels[1], m.channels[2]))).
		Render(strings.Repeat(" ", 16))

	var lines []string
	lines = append(lines, fmt.Sprintf("Device:  %s", m.addr))
	lines = append(lines, fmt.Sprintf("Power:   %s", power))
	lines = append(lines, fmt.Sprintf("Color:   %s  #%02X%02X%02X", swatch, m.channels[0], m.channels[1], m.channels[2]))
	if m.reply != nil {
		lines = append(lines, SubtitleStyle.Render(fmt.Sprintf("mode %s • pattern 0x%02x • fw 0x%02x",
			protocol.ColorModeName(m.reply.ColorMode), m.reply.PresetPattern, m.reply.Version)))
	}
	if m.busy {
		lines = append(lines, fmt.Sprintf("%s working...", m.spinner.View()))
	}

	return InfoBoxStyle.Render(strings.Join(lines, "\n"))
}

// slidersView renders the three channel sliders with the cursor marker
func (m Model) slidersView() string {
	labels := []string{"R", "G", "B"}
	colors := []lipgloss.Color{RedChannelColor, GreenChannelColor, BlueChannelColor}

	var b strings.Builder
	for i := range labels {
		label := ChannelStyle.Render("  " + labels[i])
		if i == m.cursor {
			label = SelectedChannelStyle.Render("→ " + labels[i])
		}

		filled := int(m.channels[i]) * SliderWidth / 255
		bar := lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(SubtleColor).Render(strings.Repeat("░", SliderWidth-filled))

		marker := " "
		if m.pendingChange(i) {
			marker = PendingStyle.Render("*")
		}

		b.WriteString(fmt.Sprintf("%s %s %3d %s\n", label, bar, m.channels[i], marker))
	}

	if m.hasPendingChanges() {
		b.WriteString(HelpStyle.Render("pending changes - press enter to apply"))
		b.WriteString("\n")
	}
	return b.String()
}

// pendingChange reports whether a channel differs from the last device reply.
func (m Model) pendingChange(i int) bool {
	if m.reply == nil {
		return false
	}
	reported := [3]uint8{m.reply.Red, m.reply.Green, m.reply.Blue}
	return m.channels[i] != reported[i]
}

func (m Model) hasPendingChanges() bool {
	return m.pendingChange(0) || m.pendingChange(1) || m.pendingChange(2)
}

func (m Model) helpView() string {
	return HelpStyle.Render(m.help.View(m.keys)) + "\n" +
		StatusBarStyle.Render(GitHubURL)
}

// Run starts the interactive controller against an unconnected session.
// It blocks until the user quits and closes the session on the way out.
func Run(sess *device.Session, addr string) error {
	defer sess.Close()

	program := tea.NewProgram(NewModel(sess, addr), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interactive controller: %w", err)
	}
	return nil
}
