package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/acquire/internal/engine"
)

// ReplayMismatchError reports a stored move whose replay did not reproduce
// the stored player or state hash.
type ReplayMismatchError struct {
	GameID string
	Seq    int64
	Field  string
	Want   string
	Got    string
}

func (e *ReplayMismatchError) Error() string {
	return fmt.Sprintf("game %s move %d: %s mismatch: stored %s, replayed %s",
		e.GameID, e.Seq, e.Field, e.Want, e.Got)
}

// IsReplayMismatch reports whether err is a ReplayMismatchError.
func IsReplayMismatch(err error) bool {
	var e *ReplayMismatchError
	return errors.As(err, &e)
}

// ReplayGame rebuilds a game from its stored log.
//
// Every move is re-applied through the engine. The acting player, decision
// kind and state hash of each replayed move must match the stored row.
func (s *Store) ReplayGame(ctx context.Context, gameID string) (*engine.Game, error) {
	snap, err := s.ReadSnapshot(ctx, gameID)
	if err != nil {
		return nil, err
	}
	moves, err := s.ReadMoves(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("replay game %s: %w", gameID, err)
	}

	g, err := engine.NewGame(snap.Config())
	if err != nil {
		return nil, fmt.Errorf("replay game %s: %w", gameID, err)
	}

	for _, stored := range moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		player := g.Top().PlayerID()
		if player != stored.Player {
			return nil, &ReplayMismatchError{
				GameID: gameID,
				Seq:    stored.Seq,
				Field:  "player",
				Want:   fmt.Sprint(stored.Player),
				Got:    fmt.Sprint(player),
			}
		}
		if _, err := g.Apply(player, stored.Action, stored.Timestamp); err != nil {
			return nil, fmt.Errorf("replay game %s move %d: %w", gameID, stored.Seq, err)
		}

		all := g.Moves()
		rec := all[len(all)-1]
		if rec.Kind != stored.Kind {
			return nil, &ReplayMismatchError{
				GameID: gameID,
				Seq:    stored.Seq,
				Field:  "kind",
				Want:   stored.Kind.String(),
				Got:    rec.Kind.String(),
			}
		}
		if rec.StateHash != stored.StateHash {
			return nil, &ReplayMismatchError{
				GameID: gameID,
				Seq:    stored.Seq,
				Field:  "state hash",
				Want:   stored.StateHash,
				Got:    rec.StateHash,
			}
		}
	}

	slog.Debug("replayed game", "game", gameID, "moves", len(moves))
	return g, nil
}
