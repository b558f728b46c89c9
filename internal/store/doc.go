// Package store provides SQLite-backed durable storage for game move logs.
//
// A game is stored as its starting configuration plus an append-only list of
// moves. Each move row keeps the canonical action JSON and the state hash the
// engine computed after applying it, so a replay can prove it reached the
// same positions:
//   - games: one row per game, config stored as a canonical snapshot
//   - moves: one row per applied action, UNIQUE(game_id, seq)
//
// # Ordering
//
// Moves are ordered by seq, the engine's logical clock. Timestamps are
// caller metadata and never used for ordering. Games are listed by id
// COLLATE BINARY; UUIDv7 ids sort by creation.
//
// # Connections
//
// A Store holds a single connection in WAL mode, so AppendMove's seq check
// and insert see the same last row. Foreign keys tie every move to its game.
// Older logs are upgraded in place by the migrations in store.go.
package store
