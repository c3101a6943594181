package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/protocol"
)

var ErrUnknownCommand = errors.New("unknown command")

// TUIInterface defines the interface between NetworkAgent and TUI
type TUIInterface interface {
	AddLogEntry(string)
	UpdateTable(state protocol.StateData)
	WaitForAction() (string, []string, bool, error)
	FormatCards(cards []deck.Card) string
}

// CommandKind is what the user asked for at the prompt
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandAction
	CommandDeal
	CommandLeave
	CommandHelp
	CommandQuit
)

// Command is a parsed line of user input
type Command struct {
	Kind   CommandKind
	Action game.Action
	Amount int
}

// ParseCommand parses a prompt command: deal, leave, help, quit, or a
// betting action such as "call" or "bet 120". Bet amounts are street totals.
func ParseCommand(action string, args []string) (Command, error) {
	switch strings.ToLower(action) {
	case "":
		return Command{Kind: CommandNone}, nil
	case "deal", "d", "next":
		return Command{Kind: CommandDeal}, nil
	case "leave":
		return Command{Kind: CommandLeave}, nil
	case "help", "h", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CommandQuit}, nil
	case "fold", "f":
		return Command{Kind: CommandAction, Action: game.Fold}, nil
	case "check", "k":
		return Command{Kind: CommandAction, Action: game.Check}, nil
	case "call", "c":
		return Command{Kind: CommandAction, Action: game.Call}, nil
	case "bet", "b", "raise", "r":
		if len(args) > 0 && args[0] == "to" {
			args = args[1:]
		}
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%s needs an amount, e.g. %s 100", action, action)
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil || amount <= 0 {
			return Command{}, fmt.Errorf("invalid amount %q", args[0])
		}
		return Command{Kind: CommandAction, Action: game.Bet, Amount: amount}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, action)
}

const helpText = "Commands: deal, check, call, fold, bet <total>, leave, quit"

// NetworkAgent drives a seat at a remote table: it turns server messages into
// log lines and table updates, and prompt commands into client requests.
type NetworkAgent struct {
	client *Client
	tui    TUIInterface
	logger *log.Logger

	// Handlers run on the client's event goroutine, one at a time, so these
	// need no lock.
	handID  string
	logSeen int
}

// NewNetworkAgent creates a new network agent
func NewNetworkAgent(client *Client, tui TUIInterface, logger *log.Logger) *NetworkAgent {
	na := &NetworkAgent{
		client: client,
		tui:    tui,
		logger: logger.WithPrefix("network-agent"),
	}

	// Register event handlers
	na.setupEventHandlers()

	return na
}

// setupEventHandlers registers handlers for the server's messages
func (na *NetworkAgent) setupEventHandlers() {
	na.client.AddEventHandler(protocol.TypeJoined, na.handleJoined)
	na.client.AddEventHandler(protocol.TypeLeft, na.handleLeft)
	na.client.AddEventHandler(protocol.TypeState, na.handleState)
	na.client.AddEventHandler(protocol.TypeTimeout, na.handleTimeout)
	na.client.AddEventHandler(protocol.TypeError, na.handleError)
}

// Run reads commands from the UI until the user quits, the connection drops
// or ctx is cancelled.
func (na *NetworkAgent) Run(ctx context.Context) error {
	na.tui.AddLogEntry(helpText)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-na.client.Done():
			return ErrNotConnected
		default:
		}

		action, args, cont, err := na.tui.WaitForAction()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}

		quit, err := na.Execute(action, args)
		if err != nil {
			na.tui.AddLogEntry("Error: " + err.Error())
			continue
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one prompt command. It reports true when the user asked to
// quit.
func (na *NetworkAgent) Execute(action string, args []string) (bool, error) {
	cmd, err := ParseCommand(action, args)
	if err != nil {
		return false, err
	}

	switch cmd.Kind {
	case CommandNone:
		return false, nil
	case CommandHelp:
		na.tui.AddLogEntry(helpText)
		return false, nil
	case CommandQuit:
		return true, nil
	case CommandDeal:
		return false, na.client.Deal()
	case CommandLeave:
		return false, na.client.Leave()
	default:
		na.logger.Debug("Sending action", "action", cmd.Action, "amount", cmd.Amount)
		return false, na.client.Act(cmd.Action, cmd.Amount)
	}
}

// Event Handlers

func (na *NetworkAgent) handleJoined(msg *protocol.Message) {
	var data protocol.JoinedData
	if err := msg.Decode(&data); err != nil {
		na.logger.Error("Failed to parse joined", "error", err)
		return
	}
	na.tui.AddLogEntry(fmt.Sprintf("Seated as %s in seat %d with %d chips", data.Name, data.Seat+1, data.Chips))
}

func (na *NetworkAgent) handleLeft(msg *protocol.Message) {
	var data protocol.LeftData
	if err := msg.Decode(&data); err != nil {
		na.logger.Error("Failed to parse left", "error", err)
		return
	}
	na.tui.AddLogEntry(fmt.Sprintf("Left the table with %d chips", data.Chips))
}

func (na *NetworkAgent) handleTimeout(msg *protocol.Message) {
	var data protocol.TimeoutData
	if err := msg.Decode(&data); err != nil {
		na.logger.Error("Failed to parse timeout", "error", err)
		return
	}
	na.tui.AddLogEntry(fmt.Sprintf("%s timed out after %ds and was folded", data.Player, data.TimeoutSeconds))
}

func (na *NetworkAgent) handleError(msg *protocol.Message) {
	var data protocol.ErrorData
	if err := msg.Decode(&data); err != nil {
		na.logger.Error("Failed to parse error", "error", err)
		return
	}
	na.tui.AddLogEntry(fmt.Sprintf("Error (%s): %s", data.Code, data.Message))
}

func (na *NetworkAgent) handleState(msg *protocol.Message) {
	var state protocol.StateData
	if err := msg.Decode(&state); err != nil {
		na.logger.Error("Failed to parse state", "error", err)
		return
	}

	snap := state.Snapshot
	if snap.HandID != "" && snap.HandID != na.handID {
		na.handID = snap.HandID
		na.logSeen = 0
		na.tui.AddLogEntry("")
		na.tui.AddLogEntry(fmt.Sprintf("=== Hand %s ===", snap.HandID))
		if me, ok := snap.Player(state.You); ok && len(me.Hole) > 0 {
			na.tui.AddLogEntry("Your cards: " + na.tui.FormatCards(me.Hole))
		}
	}

	// The log only grows within a hand
	for _, e := range snap.Log[min(na.logSeen, len(snap.Log)):] {
		na.tui.AddLogEntry(e.String())
	}
	na.logSeen = len(snap.Log)

	if turn, ok := snap.TurnPlayer(); ok && turn == state.You {
		na.tui.AddLogEntry(fmt.Sprintf("Your turn: %d to call, pot %d", na.owed(state), snap.Pot))
	}
	na.tui.UpdateTable(state)
}

func (na *NetworkAgent) owed(state protocol.StateData) int {
	me, ok := state.Snapshot.Player(state.You)
	if !ok {
		return 0
	}
	return me.Owes(state.Snapshot.CurrentBet)
}
