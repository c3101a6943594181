package game

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/evaluator"
	"github.com/ianwalkeruk/vibe-poker/internal/fileutil"
)

// EntryKind classifies an action log entry.
type EntryKind string

const (
	EntryAction   EntryKind = "action"
	EntryStreet   EntryKind = "street"
	EntryShowdown EntryKind = "showdown"
	EntryWin      EntryKind = "win"
)

// LogEntry is one line of a hand's action log.
type LogEntry struct {
	Kind   EntryKind   `json:"kind"`
	Street Street      `json:"street"`
	Player string      `json:"player,omitempty"`
	Action Action      `json:"action,omitempty"`
	Amount int         `json:"amount,omitempty"` // street total for bets and calls, chips won for wins
	Cards  []deck.Card `json:"cards,omitempty"`
	Hand   string      `json:"hand,omitempty"`
}

func (e LogEntry) String() string {
	switch e.Kind {
	case EntryStreet:
		return fmt.Sprintf("*** %s *** %s", strings.ToUpper(e.Street.String()), formatCards(e.Cards))
	case EntryShowdown:
		return fmt.Sprintf("%s: shows %s (%s)", e.Player, formatCards(e.Cards), e.Hand)
	case EntryWin:
		if e.Hand != "" {
			return fmt.Sprintf("%s wins %d with %s", e.Player, e.Amount, e.Hand)
		}
		return fmt.Sprintf("%s wins %d", e.Player, e.Amount)
	}
	switch e.Action {
	case Fold:
		return e.Player + ": folds"
	case Check:
		return e.Player + ": checks"
	case Call:
		return fmt.Sprintf("%s: calls %d", e.Player, e.Amount)
	case Bet:
		return fmt.Sprintf("%s: bets %d", e.Player, e.Amount)
	}
	return fmt.Sprintf("%s: %s %d", e.Player, e.Action, e.Amount)
}

// Winner is a player's share of a completed hand. Hand is nil when everyone
// else folded.
type Winner struct {
	Name        string          `json:"name"`
	Amount      int             `json:"amount"`
	Hand        *evaluator.Hand `json:"hand,omitempty"`
	Description string          `json:"description,omitempty"`
}

// FormatHistory renders a snapshot's action log as a plain text hand history.
func FormatHistory(s Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== HAND %s ===\n", s.HandID)
	for i, p := range s.Players {
		fmt.Fprintf(&b, "Seat %d: %s (%d chips)", i+1, p.Name, p.Chips)
		if len(p.Hole) > 0 {
			fmt.Fprintf(&b, " %s", formatCards(p.Hole))
		}
		b.WriteString("\n")
	}
	b.WriteString("*** PREFLOP ***\n")
	for _, e := range s.Log {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total pot: %d\n", s.Pot)
	b.WriteString("=== END HAND ===\n")
	return b.String()
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// HistoryWriter persists completed hand histories.
type HistoryWriter interface {
	WriteHandHistory(handID string, content string) error
}

// FileHistoryWriter writes one file per hand into a directory.
type FileHistoryWriter struct {
	directory string
}

func NewFileHistoryWriter(directory string) *FileHistoryWriter {
	return &FileHistoryWriter{directory: directory}
}

// WriteHandHistory writes hand_<id>.txt, creating the directory if needed.
// Tools tailing the directory never see a half-written hand.
func (w *FileHistoryWriter) WriteHandHistory(handID string, content string) error {
	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%s.txt", handID))
	if err := fileutil.WriteFileAtomic(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write hand history: %w", err)
	}
	return nil
}

// NopHistoryWriter discards histories.
type NopHistoryWriter struct{}

func (NopHistoryWriter) WriteHandHistory(string, string) error { return nil }
