package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/acquire/internal/engine"
)

// StoredMove is one row of a game's move log.
type StoredMove struct {
	Seq       int64
	Player    int
	Kind      engine.DecisionKind
	Action    engine.Action
	Timestamp *int64
	StateHash string
}

// GameSummary describes a stored game for listings.
type GameSummary struct {
	ID        string
	Mode      engine.GameMode
	Usernames []string
	Moves     int64
	Finished  bool
}

// ReadMoves returns a game's moves ordered by seq ASC.
//
// Returns an empty slice (not nil) if the game has no moves yet.
func (s *Store) ReadMoves(ctx context.Context, gameID string) ([]StoredMove, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, player, kind, action, timestamp, state_hash
		FROM moves
		WHERE game_id = ?
		ORDER BY seq ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	moves := []StoredMove{}
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return moves, nil
}

// ReadSnapshot rebuilds a game's snapshot from its stored configuration and
// moves. Returns ErrGameNotFound if no game has the id.
func (s *Store) ReadSnapshot(ctx context.Context, gameID string) (engine.Snapshot, error) {
	var config string
	err := s.db.QueryRowContext(ctx,
		`SELECT config FROM games WHERE id = ?`, gameID,
	).Scan(&config)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Snapshot{}, fmt.Errorf("read snapshot %s: %w", gameID, ErrGameNotFound)
	}
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	snap, err := unmarshalConfig(config)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("read snapshot %s: %w", gameID, err)
	}

	moves, err := s.ReadMoves(ctx, gameID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("read snapshot %s: %w", gameID, err)
	}
	for _, m := range moves {
		snap.Moves = append(snap.Moves, engine.SnapshotMove{Action: m.Action, Timestamp: m.Timestamp})
	}
	return snap, nil
}

// ListGames returns stored games ordered by id COLLATE BINARY.
// With unfinishedOnly set, finished games are skipped.
func (s *Store) ListGames(ctx context.Context, unfinishedOnly bool) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.config, g.finished,
			(SELECT COUNT(*) FROM moves m WHERE m.game_id = g.id)
		FROM games g
		WHERE g.finished = 0 OR ? = 0
		ORDER BY g.id COLLATE BINARY ASC
	`, unfinishedOnly)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := []GameSummary{}
	for rows.Next() {
		var (
			g        GameSummary
			config   string
			finished int
		)
		if err := rows.Scan(&g.ID, &config, &finished, &g.Moves); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		snap, err := unmarshalConfig(config)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ID, err)
		}
		g.Mode = snap.Mode
		g.Usernames = snap.Usernames
		g.Finished = finished != 0
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

// LastSeq returns the seq of a game's last stored move, or 0 if none.
func (s *Store) LastSeq(ctx context.Context, gameID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM moves WHERE game_id = ?`, gameID,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq, nil
}

func scanMove(rows *sql.Rows) (StoredMove, error) {
	var (
		m         StoredMove
		kind      string
		action    string
		timestamp sql.NullInt64
	)
	if err := rows.Scan(&m.Seq, &m.Player, &kind, &action, &timestamp, &m.StateHash); err != nil {
		return StoredMove{}, fmt.Errorf("scan move: %w", err)
	}

	var err error
	if m.Kind, err = engine.ParseDecisionKind(kind); err != nil {
		return StoredMove{}, fmt.Errorf("move %d: %w", m.Seq, err)
	}
	if m.Action, err = unmarshalAction(action); err != nil {
		return StoredMove{}, fmt.Errorf("move %d: %w", m.Seq, err)
	}
	if timestamp.Valid {
		ts := timestamp.Int64
		m.Timestamp = &ts
	}
	return m, nil
}
