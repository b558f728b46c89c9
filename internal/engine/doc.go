// Package engine implements the authoritative rules engine for the
// tile-placement / stock-trading game.
//
// The engine owns the board, the tile bag, the score board and the stack of
// pending decisions. It is the single source of truth: transports and UIs
// submit one Action at a time and render the derived View.
//
// ARCHITECTURE:
//
// Decision Stack:
// Every point where the game waits for a player is a Decision on an explicit
// stack. Apply executes the top decision with the submitted Action, pushes the
// follow-up decisions it returns, then "prepares" each new top decision until
// one needs player input. Decisions that need no input (a unique merger
// survivor, a single free chain, a player without shares) resolve themselves
// during preparation.
//
// Atomic Apply:
// Apply works on a deep clone of the game and swaps it in only after the
// action and every invariant check succeeded. A rejected action leaves the
// game byte-for-byte unchanged.
//
// Determinism:
// The engine never reads wall-clock time or randomness. The tile bag order is
// an input, move timestamps are opaque metadata, and moves are stamped from a
// logical clock. Replaying a Snapshot rebuilds identical state.
//
// The engine is single-threaded. Callers that share a Game between goroutines
// must serialize access (see internal/table).
package engine
