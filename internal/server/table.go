package server

import (
	"errors"
	"slices"

	"github.com/ianwalkeruk/vibe-poker/internal/bot"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/protocol"
)

// Join seats a player. A buy-in of zero takes the configured starting
// stack.
func (s *Server) Join(name string, buyIn int) (game.Player, error) {
	p, _, err := s.join(name, buyIn, nil)
	return p, err
}

// join seats a player and returns their seat. A non-nil conn is bound to the
// player only once the seat is taken, before the state broadcast, so the
// connection never sees the table as a player it failed to become.
func (s *Server) join(name string, buyIn int, conn *Connection) (game.Player, int, error) {
	s.tableMu.Lock()
	defer s.tableMu.Unlock()

	if buyIn == 0 {
		buyIn = s.cfg.Table.StartingChips
	}
	if err := s.round.AddPlayer(name, buyIn); err != nil {
		return game.Player{}, -1, err
	}
	delete(s.departed, name)

	p, _ := s.round.Player(name)
	seat := slices.IndexFunc(s.round.Players(), func(sp game.Player) bool { return sp.Name == p.Name })
	if conn != nil {
		conn.SetPlayer(p.Name)
	}

	s.logger.Info("Player joined", "player", p.Name, "seat", seat, "chips", p.Chips)
	s.afterChange()
	return p, seat, nil
}

// Leave gives up a seat between hands and returns the player's stack.
func (s *Server) Leave(name string) (int, error) {
	s.tableMu.Lock()
	defer s.tableMu.Unlock()

	chips, err := s.round.RemovePlayer(name)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Player left", "player", name, "chips", chips)
	s.afterChange()
	return chips, nil
}

// Deal starts the next hand.
func (s *Server) Deal() error {
	s.tableMu.Lock()
	defer s.tableMu.Unlock()

	if err := s.round.Deal(); err != nil {
		return err
	}
	s.logger.Info("Hand started", "hand", s.round.HandID(), "players", len(s.round.Players()))
	s.afterChange()
	return nil
}

// Act applies a player's action.
func (s *Server) Act(name string, action game.Action, amount int) error {
	s.tableMu.Lock()
	defer s.tableMu.Unlock()

	if err := s.round.Act(name, action, amount); err != nil {
		return err
	}
	s.afterChange()
	return nil
}

// Snapshot returns the full table state, hole cards included.
func (s *Server) Snapshot() game.Snapshot {
	return s.round.Snapshot()
}

// disconnected handles a player whose connection went away. Between hands
// the seat is freed at once; mid-hand the player folds when next on turn
// and leaves once the hand is over.
func (s *Server) disconnected(name string) {
	s.tableMu.Lock()
	defer s.tableMu.Unlock()

	chips, err := s.round.RemovePlayer(name)
	switch {
	case err == nil:
		s.logger.Info("Removed disconnected player", "player", name, "chips", chips)
	case errors.Is(err, game.ErrRoundInProgress):
		s.departed[name] = true
		s.logger.Info("Player disconnected mid-hand", "player", name)
	default:
		return
	}
	s.afterChange()
}

// afterChange runs after every successful table change: it plays out turns
// that need no human, settles a finished hand, tells every connection and
// re-arms the action timer. Callers hold tableMu.
func (s *Server) afterChange() {
	s.playAutomaticTurns()

	if snap := s.round.Snapshot(); snap.Phase == game.PhaseComplete && snap.HandID != s.lastHand {
		s.handComplete(snap)
	}

	s.broadcastState()
	s.armTimer()
}

// playAutomaticTurns acts for bots and folds for departed players until a
// connected human is on turn or the hand ends.
func (s *Server) playAutomaticTurns() {
	for s.round.Phase() == game.PhaseBetting {
		name, ok := s.round.Turn()
		if !ok {
			return
		}

		if s.departed[name] {
			if err := s.round.Fold(name); err != nil {
				s.logger.Error("Failed to fold departed player", "player", name, "error", err)
				return
			}
			continue
		}

		strategy, ok := s.npcs[name]
		if !ok {
			return
		}
		d, err := bot.Play(s.round, name, strategy)
		if err != nil {
			s.logger.Error("Bot action failed", "bot", name, "error", err)
			return
		}
		s.logger.Debug("Bot acted", "bot", name, "action", d.Action, "amount", d.Amount, "reasoning", d.Reasoning)
	}
}

func (s *Server) handComplete(snap game.Snapshot) {
	s.lastHand = snap.HandID
	for _, w := range snap.Winners {
		s.logger.Info("Hand won", "hand", snap.HandID, "player", w.Name, "amount", w.Amount, "hand_rank", w.Description)
	}

	if err := s.history.WriteHandHistory(snap.HandID, game.FormatHistory(snap)); err != nil {
		s.logger.Error("Failed to write hand history", "hand", snap.HandID, "error", err)
	}

	for name := range s.departed {
		if _, err := s.round.RemovePlayer(name); err != nil && !errors.Is(err, game.ErrPlayerNotFound) {
			s.logger.Error("Failed to remove departed player", "player", name, "error", err)
			continue
		}
		delete(s.departed, name)
	}
}

// broadcastState sends every connection its own view of the table.
func (s *Server) broadcastState() {
	snap := s.round.Snapshot()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.connections {
		s.sendState(conn, snap)
	}
}

func (s *Server) sendState(conn *Connection, snap game.Snapshot) {
	name := conn.GetPlayer()
	data := protocol.StateData{Snapshot: snap.Redact(name), You: name}
	if turn, ok := snap.TurnPlayer(); ok && name != "" && turn == name {
		data.ValidActions = s.round.ValidActions(name)
		data.TimeoutSeconds = int(s.timeout.Seconds())
	}

	msg, err := protocol.NewMessage(protocol.TypeState, data)
	if err != nil {
		s.logger.Error("Failed to create state message", "error", err)
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		s.logger.Debug("Failed to send state", "player", name, "error", err)
	}
}

// broadcast sends the same message to every connection
func (s *Server) broadcast(messageType protocol.MessageType, data any) {
	msg, err := protocol.NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for conn := range s.connections {
		if err := conn.SendMessage(msg); err == nil {
			count++
		}
	}
	s.logger.Debug("Broadcast message", "type", messageType, "recipients", count)
}

// armTimer starts the action clock for the human on turn, replacing any
// earlier timer. Callers hold tableMu.
func (s *Server) armTimer() {
	s.stopTimer()
	if s.timeout <= 0 {
		return
	}
	name, ok := s.round.Turn()
	if !ok {
		return
	}
	if _, isBot := s.npcs[name]; isBot {
		return
	}

	seq := s.timerSeq
	s.timer = s.clock.AfterFunc(s.timeout, func() { s.expire(seq, name) }, "action-timeout")
}

func (s *Server) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerSeq++
}

// expire folds a player whose action clock ran out. A timer that was
// replaced before it fired does nothing.
func (s *Server) expire(seq uint64, name string) {
	s.tableMu.Lock()
	defer s.tableMu.Unlock()

	if seq != s.timerSeq {
		return
	}
	s.timer = nil

	if err := s.round.Fold(name); err != nil {
		s.logger.Debug("Timeout fold rejected", "player", name, "error", err)
		return
	}
	s.logger.Warn("Action timeout, folding", "player", name, "timeout", s.timeout)

	s.broadcast(protocol.TypeTimeout, protocol.TimeoutData{
		Player:         name,
		Action:         game.Fold.String(),
		TimeoutSeconds: int(s.timeout.Seconds()),
	})
	s.afterChange()
}
