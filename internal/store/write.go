package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/acquire/internal/engine"
)

var (
	// ErrGameExists is returned when a game id is reused with a different
	// configuration.
	ErrGameExists = errors.New("game already exists with a different configuration")

	// ErrGameNotFound is returned when no game has the requested id.
	ErrGameNotFound = errors.New("game not found")
)

// SeqError reports a move that does not extend the stored log.
type SeqError struct {
	GameID string
	Seq    int64
	Last   int64
}

func (e *SeqError) Error() string {
	return fmt.Sprintf("game %s: move seq %d does not follow %d", e.GameID, e.Seq, e.Last)
}

// IsSeqError reports whether err is a SeqError.
func IsSeqError(err error) bool {
	var e *SeqError
	return errors.As(err, &e)
}

// CreateGame records a new game from its snapshot configuration.
// Moves in the snapshot are ignored; append them with AppendMove.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: creating the same game
// twice is a no-op, but reusing an id for a different configuration returns
// ErrGameExists.
func (s *Store) CreateGame(ctx context.Context, id string, snap engine.Snapshot) error {
	config, hash, err := marshalConfig(snap)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create game: begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, config, config_hash)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, config, hash)
	if err != nil {
		return fmt.Errorf("create game: insert: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create game: rows affected: %w", err)
	}
	if n == 0 {
		var existing string
		if err := tx.QueryRowContext(ctx,
			`SELECT config_hash FROM games WHERE id = ?`, id,
		).Scan(&existing); err != nil {
			return fmt.Errorf("create game: select existing: %w", err)
		}
		if existing != hash {
			return fmt.Errorf("create game %s: %w", id, ErrGameExists)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create game: commit: %w", err)
	}
	return nil
}

// AppendMove appends a move record to a game's log and reports whether a row
// was inserted.
//
// The move's Seq must be exactly one past the last stored seq. Writing the
// same move again is a no-op (inserted=false); writing a different move at a
// stored seq returns a SeqError. A move that leaves GameOver on top marks the
// game finished in the same transaction.
func (s *Store) AppendMove(ctx context.Context, gameID string, m engine.MoveRecord) (inserted bool, err error) {
	action, err := marshalAction(m.Action)
	if err != nil {
		return false, fmt.Errorf("append move: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("append move: begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games WHERE id = ?`, gameID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("append move: %w", err)
	}
	if exists == 0 {
		return false, fmt.Errorf("append move %s: %w", gameID, ErrGameNotFound)
	}

	var last int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM moves WHERE game_id = ?`, gameID,
	).Scan(&last); err != nil {
		return false, fmt.Errorf("append move: last seq: %w", err)
	}

	if m.Seq <= last {
		var stored string
		if err := tx.QueryRowContext(ctx,
			`SELECT state_hash FROM moves WHERE game_id = ? AND seq = ?`, gameID, m.Seq,
		).Scan(&stored); err != nil {
			return false, fmt.Errorf("append move: select existing: %w", err)
		}
		if stored != m.StateHash {
			return false, &SeqError{GameID: gameID, Seq: m.Seq, Last: last}
		}
		return false, nil
	}
	if m.Seq != last+1 {
		return false, &SeqError{GameID: gameID, Seq: m.Seq, Last: last}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO moves
		(game_id, seq, player, kind, action, timestamp, state_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id, seq) DO NOTHING
	`,
		gameID,
		m.Seq,
		m.Player,
		m.Kind.String(),
		action,
		m.Timestamp,
		m.StateHash,
	)
	if err != nil {
		return false, fmt.Errorf("append move: insert: %w", err)
	}

	if m.Next != nil && m.Next.Kind() == engine.KindGameOver {
		if _, err := tx.ExecContext(ctx,
			`UPDATE games SET finished = 1 WHERE id = ?`, gameID,
		); err != nil {
			return false, fmt.Errorf("append move: mark finished: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("append move: commit: %w", err)
	}
	return true, nil
}
