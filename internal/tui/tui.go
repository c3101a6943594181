// Package tui is the Bubble Tea terminal client: a scrolling hand log, a
// sidebar with the table and an input line for commands.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/client"
	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/protocol"
)

var _ client.TUIInterface = (*TUIModel)(nil)

// TUIModel represents the Bubble Tea model for the poker client. The network
// side updates it from another goroutine, so the display state sits behind
// mu.
type TUIModel struct {
	logger  *log.Logger
	program *tea.Program

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	mu           sync.Mutex
	gameLog      []string
	state        protocol.StateData
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// ActionResult represents the result of a user action
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
	Error    error
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// refreshMsg asks Bubble Tea to redraw after an update from the network
type refreshMsg struct{}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "deal, check, call, fold, bet <total>, quit"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		actionInput:  ti,
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1, // Start with input focused
		testMode:     testMode,
		state:        protocol.StateData{Snapshot: game.Snapshot{Turn: -1}},
	}
}

// SetProgram lets the model request redraws when state arrives from the
// network.
func (m *TUIModel) SetProgram(p *tea.Program) {
	m.program = p
}

func (m *TUIModel) refresh() {
	if m.program != nil && !m.testMode {
		go m.program.Send(refreshMsg{})
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.sendResult(ActionResult{Action: "quit", Continue: false})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.processAction(strings.TrimSpace(m.actionInput.Value()))
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(FocusColor).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1))
	actionPane := actionStyle.Render(actionContent)

	// Sidebar pane (right of the log, same height)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BlurColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Log pane (top left, fills what is left)
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// Start at the newest entries once the viewport has a real size
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logBorder := BlurColor
	if m.focusedPane == 0 {
		logBorder = FocusColor
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(logBorder).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the board, the pot and every seat
func (m *TUIModel) renderSidebarPane() string {
	snap := m.state.Snapshot
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(snap.Phase.String()))))
	if snap.Phase == game.PhaseBetting {
		content.WriteString(" " + InfoStyle.Render(snap.Street.String()))
	}
	content.WriteString("\n\n")

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: %d", snap.Pot)))
	if snap.CurrentBet > 0 {
		content.WriteString(" | ")
		content.WriteString(WarningStyle.Render(fmt.Sprintf("Bet: %d", snap.CurrentBet)))
	}
	content.WriteString("\n")
	if len(snap.Community) > 0 {
		content.WriteString("Board: " + m.formatCards(snap.Community) + "\n")
	}
	content.WriteString("\n")

	if len(snap.Players) == 0 {
		content.WriteString(InfoStyle.Render("No players seated"))
		return content.String()
	}

	content.WriteString(InfoStyle.Render("Players:"))
	content.WriteString("\n")
	for i, p := range snap.Players {
		marker := "  "
		if i == snap.Turn {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s: %d", marker, p.Name, p.Chips)
		if p.StreetBet > 0 {
			line += fmt.Sprintf(" (%d in)", p.StreetBet)
		}
		if len(p.Hole) > 0 {
			line += " " + m.formatCards(p.Hole)
		}

		switch {
		case p.Folded:
			line = FoldedStyle.Render(line + " folded")
		case p.Name == m.state.You:
			line = SuccessStyle.Render(line)
		default:
			line = PlayerInfoStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	for _, w := range snap.Winners {
		content.WriteString("\n")
		content.WriteString(SuccessStyle.Render(fmt.Sprintf("%s wins %d", w.Name, w.Amount)))
	}
	return content.String()
}

// renderActionPane renders the action input pane
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if m.isMyTurn() {
		content.WriteString(m.renderHandInfo())
		content.WriteString("\n")
		content.WriteString(m.renderAvailableActions())
		content.WriteString("\n")
	} else {
		content.WriteString(HandInfoStyle.Render(m.waitingText()))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(HelpStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(HelpStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

func (m *TUIModel) isMyTurn() bool {
	turn, ok := m.state.Snapshot.TurnPlayer()
	return ok && m.state.You != "" && turn == m.state.You
}

func (m *TUIModel) waitingText() string {
	snap := m.state.Snapshot
	switch {
	case m.state.You == "":
		return "Watching the table"
	case snap.Phase == game.PhaseBetting:
		turn, _ := snap.TurnPlayer()
		return fmt.Sprintf("Waiting for %s...", turn)
	default:
		return "Type deal to start the next hand"
	}
}

// renderHandInfo renders current hand information
func (m *TUIModel) renderHandInfo() string {
	me, _ := m.state.Snapshot.Player(m.state.You)
	info := fmt.Sprintf("Hand: %s  Pot: %d  To call: %d", m.formatCards(me.Hole), m.state.Snapshot.Pot, me.Owes(m.state.Snapshot.CurrentBet))
	if m.state.TimeoutSeconds > 0 {
		info += fmt.Sprintf("  (%ds to act)", m.state.TimeoutSeconds)
	}
	return HandInfoStyle.Render(info)
}

// renderAvailableActions renders the legal actions sent by the server
func (m *TUIModel) renderAvailableActions() string {
	var actions []string
	for _, va := range m.state.ValidActions {
		switch va.Action {
		case game.Fold:
			actions = append(actions, ErrorStyle.Render("[fold]"))
		case game.Check:
			actions = append(actions, SuccessStyle.Render("[check]"))
		case game.Call:
			actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[call %d]", va.Min)))
		case game.Bet:
			actions = append(actions, WarningStyle.Render(fmt.Sprintf("[bet %d-%d]", va.Min, va.Max)))
		}
	}
	if len(actions) == 0 {
		actions = append(actions, ErrorStyle.Render("[no actions available]"))
	}
	return ActionsStyle.Render("Actions: " + strings.Join(actions, " "))
}

// formatCards formats cards with colors
func (m *TUIModel) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			formatted[i] = RedCardStyle.Render(card.String())
		} else {
			formatted[i] = BlackCardStyle.Render(card.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// FormatCards formats cards for log lines
func (m *TUIModel) FormatCards(cards []deck.Card) string {
	return m.formatCards(cards)
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.mu.Lock()
	m.gameLog = append(m.gameLog, entry)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
	m.mu.Unlock()
	m.refresh()
}

// UpdateTable replaces the displayed table state
func (m *TUIModel) UpdateTable(state protocol.StateData) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	m.refresh()
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameLog = nil
}

// processAction splits a command line and hands it to WaitForAction
func (m *TUIModel) processAction(input string) {
	parts := strings.Fields(strings.ToLower(input))

	var action string
	var args []string
	if len(parts) > 0 {
		action = parts[0]
		args = parts[1:]
	}

	if action != "" {
		m.AddLogEntry("> " + input)
	}
	m.sendResult(ActionResult{Action: action, Args: args, Continue: true})
}

// sendResult drops input typed while the previous command is still pending
func (m *TUIModel) sendResult(result ActionResult) {
	select {
	case m.actionResult <- result:
	default:
		m.logger.Debug("Dropping input, previous command pending", "action", result.Action)
	}
}

// WaitForAction waits for user input (for use by the network agent)
func (m *TUIModel) WaitForAction() (string, []string, bool, error) {
	result := <-m.actionResult
	return result.Action, result.Args, result.Continue, result.Error
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an action (test mode only)
func (m *TUIModel) InjectAction(action string, args []string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{Action: action, Args: args, Continue: true}:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
