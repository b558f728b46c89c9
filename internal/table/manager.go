package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/store"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStore persists every game and move.
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithIDGenerator sets the game id generator. Defaults to UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(m *Manager) { m.ids = g }
}

// WithClock sets the move timestamp source. Defaults to wall time.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

type wallClock struct{}

func (wallClock) Now() int64 { return time.Now().UnixMilli() }

// Manager creates tables and loads stored games on demand.
type Manager struct {
	mu     sync.Mutex
	tables map[string]*Table
	store  Store
	ids    IDGenerator
	clock  Clock
}

// NewManager creates a manager. Without WithStore games live in memory only.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		tables: make(map[string]*Table),
		ids:    UUIDv7Generator{},
		clock:  wallClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new game table waiting for the host's StartGame.
func (m *Manager) Create(ctx context.Context, cfg engine.Config) (*Table, error) {
	g, err := engine.NewGame(cfg)
	if err != nil {
		return nil, &TableError{Code: ErrCodeTableSetup, Message: "create game", Err: err}
	}

	id := m.ids.Generate()
	if m.store != nil {
		if err := m.store.CreateGame(ctx, id, g.Snapshot()); err != nil {
			return nil, &TableError{Code: ErrCodePersist, GameID: id, Message: "create game", Err: err}
		}
	}

	t := newTable(id, g, m.store, m.clock)
	m.mu.Lock()
	m.tables[id] = t
	m.mu.Unlock()

	slog.Info("game created", "game", id, "mode", cfg.Mode, "players", len(cfg.UserIDs))
	return t, nil
}

// Get returns the table for a game, replaying it from the store if it is
// not loaded yet.
func (m *Manager) Get(ctx context.Context, id string) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	if m.store == nil {
		return nil, &TableError{Code: ErrCodeNotFound, GameID: id, Message: "no such game"}
	}

	g, err := m.store.ReplayGame(ctx, id)
	if errors.Is(err, store.ErrGameNotFound) {
		return nil, &TableError{Code: ErrCodeNotFound, GameID: id, Message: "no such game", Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	t := newTable(id, g, m.store, m.clock)
	m.tables[id] = t
	slog.Debug("game loaded", "game", id, "moves", g.Seq())
	return t, nil
}

// Loaded returns the ids of games held in memory, sorted.
func (m *Manager) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.tables))
	for id := range m.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Unload drops a game from memory. Stored games can be loaded again with Get.
func (m *Manager) Unload(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, id)
}
