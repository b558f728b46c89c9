// Package table runs games for many users at once.
//
// The engine is single-threaded and applies one action at a time. A Table
// wraps one engine.Game with a mutex so concurrent submissions are applied
// in order, and rejects users who are not seated or whose turn it is not
// before the engine sees their action. Listeners receive each applied move
// redacted for their own seat.
//
// A Manager creates tables with UUIDv7 ids and, when given a store, persists
// every game and move and reloads stored games by replaying them.
package table
