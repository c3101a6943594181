package game

import (
	"errors"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/evaluator"
)

var (
	ErrRoundInProgress       = errors.New("round in progress")
	ErrNotEnoughPlayers      = errors.New("not enough players")
	ErrNotPlayersTurn        = errors.New("not player's turn")
	ErrInvalidPhaseForAction = errors.New("invalid phase for action")
	ErrInsufficientChips     = errors.New("insufficient chips")
	ErrIllegalCheck          = errors.New("illegal check")

	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("duplicate player")
	ErrInvalidName     = errors.New("invalid player name")
	ErrTableFull       = errors.New("table full")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrBetTooSmall     = errors.New("bet too small")
	ErrUnknownAction   = errors.New("unknown action")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrRoundInProgress, "round_in_progress"},
	{ErrNotEnoughPlayers, "not_enough_players"},
	{ErrNotPlayersTurn, "not_players_turn"},
	{ErrInvalidPhaseForAction, "invalid_phase_for_action"},
	{ErrInsufficientChips, "insufficient_chips"},
	{ErrIllegalCheck, "illegal_check"},
	{ErrPlayerNotFound, "player_not_found"},
	{ErrDuplicatePlayer, "duplicate_player"},
	{ErrInvalidName, "invalid_name"},
	{ErrTableFull, "table_full"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrBetTooSmall, "bet_too_small"},
	{ErrUnknownAction, "unknown_action"},
	{deck.ErrDeckExhausted, "deck_exhausted"},
	{evaluator.ErrInsufficientCards, "insufficient_cards"},
	{evaluator.ErrTooManyCards, "too_many_cards"},
	{evaluator.ErrDuplicateCard, "duplicate_card"},
	{evaluator.ErrInvalidHole, "invalid_hole"},
	{evaluator.ErrInvalidCard, "invalid_card"},
}

// ErrorCode returns the stable wire code for err, "internal" for errors the
// game does not define and "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
