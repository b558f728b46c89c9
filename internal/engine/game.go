package engine

import (
	"log/slog"
)

// Config is the fixed input handed over by the lobby when a game is created.
type Config struct {
	Mode        GameMode
	Arrangement PlayerArrangementMode

	// Advisory time control, in milliseconds. Nil when the game is untimed.
	TimeControlStartingAmount  *int64
	TimeControlIncrementAmount *int64

	// UserIDs and Usernames are ordered by seat.
	UserIDs    []int
	Usernames  []string
	HostUserID int

	// TileBag is the draw order. Missing tiles are appended in ascending
	// order, so an empty bag draws 1A, 1B, ... in sequence.
	TileBag []Tile
}

func (c Config) clone() Config {
	c.UserIDs = append([]int(nil), c.UserIDs...)
	c.Usernames = append([]string(nil), c.Usernames...)
	c.TileBag = append([]Tile(nil), c.TileBag...)
	if c.TimeControlStartingAmount != nil {
		v := *c.TimeControlStartingAmount
		c.TimeControlStartingAmount = &v
	}
	if c.TimeControlIncrementAmount != nil {
		v := *c.TimeControlIncrementAmount
		c.TimeControlIncrementAmount = &v
	}
	return c
}

type player struct {
	rack [RackSize]Tile
	// revealed marks rack slots that every viewer may see.
	revealed [RackSize]bool
}

// Game is one game in progress. It is not safe for concurrent use.
type Game struct {
	cfg      Config
	hostSlot int

	board   *Board
	bag     *TileBag
	score   *ScoreBoard
	players []player
	dead    []Tile

	stack []Decision
	moves []MoveRecord
	clock *Clock

	turnPlayer             int
	turnsWithoutPlayedTile int
	over                   bool

	// Scratch state for the move being applied.
	history     []HistoryMessage
	bagReveals  []RevealedBagTile
	rackReveals []RevealedRackTile
}

// maxSettleSteps bounds automatic resolution within one move. A six player
// merger of four chains needs well under a hundred steps.
const maxSettleSteps = 1000

// NewGame creates a game waiting for the host to start it.
func NewGame(cfg Config) (*Game, error) {
	if !cfg.Mode.Valid() {
		return nil, newValidationError(ErrCodeInvalidSetup, "unknown game mode %d", int(cfg.Mode))
	}
	if !cfg.Arrangement.Valid() {
		return nil, newValidationError(ErrCodeInvalidSetup, "unknown player arrangement mode %d", int(cfg.Arrangement))
	}
	n := cfg.Mode.NumPlayers()
	if len(cfg.UserIDs) != n {
		return nil, newValidationError(ErrCodeInvalidSetup, "%s needs %d players, got %d", cfg.Mode, n, len(cfg.UserIDs))
	}
	if len(cfg.Usernames) != n {
		return nil, newValidationError(ErrCodeInvalidSetup, "got %d usernames for %d players", len(cfg.Usernames), n)
	}
	hostSlot := -1
	seen := make(map[int]bool, n)
	for i, id := range cfg.UserIDs {
		if seen[id] {
			return nil, newValidationError(ErrCodeInvalidSetup, "user %d is seated twice", id)
		}
		seen[id] = true
		if id == cfg.HostUserID {
			hostSlot = i
		}
	}
	if hostSlot < 0 {
		return nil, newValidationError(ErrCodeInvalidSetup, "host %d is not seated", cfg.HostUserID)
	}
	tiles, err := completeTileBag(cfg.TileBag)
	if err != nil {
		return nil, err
	}

	cfg = cfg.clone()
	cfg.TileBag = tiles

	g := &Game{
		cfg:        cfg,
		hostSlot:   hostSlot,
		board:      NewBoard(),
		bag:        newTileBag(tiles),
		score:      newScoreBoard(n),
		players:    make([]player, n),
		stack:      []Decision{StartGameDecision{Player: hostSlot}},
		clock:      NewClock(),
		turnPlayer: -1,
	}
	for i := range g.players {
		for j := range g.players[i].rack {
			g.players[i].rack[j] = TileNone
		}
	}
	return g, nil
}

// Apply resolves the top decision with action on behalf of player.
//
// Either the action applies completely, or the game is unchanged and an error
// is returned: a *ValidationError for a rejected action, an *InternalError if
// applying it would break an invariant. The returned messages are unredacted;
// use View or RedactedHistory before showing them to players.
func (g *Game) Apply(player int, action Action, timestamp *int64) ([]HistoryMessage, error) {
	top := g.Top()
	if top.Kind() == KindGameOver {
		return nil, newValidationError(ErrCodeGameOver, "game is over")
	}
	kind, err := action.Kind()
	if err != nil {
		return nil, err
	}
	if kind != top.Kind() {
		return nil, newValidationError(ErrCodeWrongDecision, "expected %s, got %s", top.Kind(), kind)
	}
	if player != top.PlayerID() {
		return nil, newValidationError(ErrCodeWrongPlayer, "%s is up to player %d, not %d", top.Kind(), top.PlayerID(), player)
	}

	next := g.clone()
	next.pop()
	pushes, err := next.execute(top, action)
	if err == nil {
		next.push(pushes...)
		err = next.settle()
	}
	if err == nil {
		err = next.checkInvariants()
	}
	if err != nil {
		if IsInternalError(err) {
			slog.Error("action broke engine invariant",
				"player", player,
				"kind", kind.String(),
				"error", err,
			)
		}
		return nil, err
	}

	hash, err := next.StateHash()
	if err != nil {
		return nil, newInternalError("state", "hash state: %v", err)
	}

	rec := MoveRecord{
		Seq:               next.clock.Next(),
		Player:            player,
		Kind:              kind,
		Action:            action,
		History:           next.history,
		RevealedBagTiles:  next.bagReveals,
		RevealedRackTiles: next.rackReveals,
		Next:              next.Top(),
		StateHash:         hash,
	}
	if timestamp != nil {
		ts := *timestamp
		rec.Timestamp = &ts
	}
	next.moves = append(next.moves, rec)
	next.history, next.bagReveals, next.rackReveals = nil, nil, nil

	*g = *next

	slog.Debug("applied action",
		"seq", rec.Seq,
		"player", player,
		"kind", kind.String(),
		"next", rec.Next.Kind().String(),
		"next_player", rec.Next.PlayerID(),
	)

	return copyHistory(rec.History), nil
}

// execute resolves d with the player's action and returns the follow-up
// decisions in the order they must be resolved.
func (g *Game) execute(d Decision, a Action) ([]Decision, error) {
	switch d := d.(type) {
	case StartGameDecision:
		return g.startGame(d)
	case PlayTileDecision:
		return g.playTile(d, a.PlayTile.Tile)
	case SelectNewChainDecision:
		return g.selectNewChain(d, a.SelectNewChain.Chain)
	case SelectMergerSurvivorDecision:
		return g.selectMergerSurvivor(d, a.SelectMergerSurvivor.Chain, true)
	case SelectChainToDisposeOfNextDecision:
		return g.selectChainToDisposeOfNext(d, a.SelectChainToDisposeOfNext.Chain, true)
	case DisposeOfSharesDecision:
		return g.disposeOfShares(d, *a.DisposeOfShares)
	case PurchaseSharesDecision:
		return g.purchaseShares(d, *a.PurchaseShares)
	case GameOverDecision:
		return nil, newValidationError(ErrCodeGameOver, "game is over")
	default:
		return nil, newInternalError("decision", "cannot execute %T", d)
	}
}

// prepare runs when d reaches the top of the stack. It reports resolved=true
// when d needed no player input, along with the follow-up decisions.
func (g *Game) prepare(d Decision) (next []Decision, resolved bool, err error) {
	switch d := d.(type) {
	case StartGameDecision:
		return nil, false, nil
	case PlayTileDecision:
		return g.preparePlayTile(d)
	case SelectNewChainDecision:
		if len(d.AvailableChains) != 1 {
			return nil, false, nil
		}
		next, err = g.selectNewChain(d, d.AvailableChains[0])
		return next, true, err
	case SelectMergerSurvivorDecision:
		if len(d.ChainsBySize) == 0 {
			return nil, false, newInternalError("merger", "no chains to merge")
		}
		if len(d.ChainsBySize[0]) != 1 {
			return nil, false, nil
		}
		next, err = g.selectMergerSurvivor(d, d.ChainsBySize[0][0], false)
		return next, true, err
	case SelectChainToDisposeOfNextDecision:
		if len(d.DefunctChains) == 0 {
			g.completeMerger(d)
			return nil, true, nil
		}
		if len(d.DefunctChains[0]) != 1 {
			return nil, false, nil
		}
		next, err = g.selectChainToDisposeOfNext(d, d.DefunctChains[0][0], false)
		return next, true, err
	case DisposeOfSharesDecision:
		return nil, false, nil
	case PurchaseSharesDecision:
		return g.preparePurchaseShares(d)
	case GameOverDecision:
		return nil, false, nil
	default:
		return nil, false, newInternalError("decision", "cannot prepare %T", d)
	}
}

// settle prepares decisions until the top one needs player input.
func (g *Game) settle() error {
	for step := 0; step < maxSettleSteps; step++ {
		top := g.Top()
		next, resolved, err := g.prepare(top)
		if err != nil {
			return err
		}
		if !resolved {
			return nil
		}
		g.pop()
		g.push(next...)
	}
	return newInternalError("settle", "no decision needed input after %d steps", maxSettleSteps)
}

// push places ds on the stack so that ds[0] is resolved first.
func (g *Game) push(ds ...Decision) {
	for i := len(ds) - 1; i >= 0; i-- {
		g.stack = append(g.stack, ds[i])
	}
}

func (g *Game) pop() Decision {
	d := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	return d
}

func (g *Game) emit(m HistoryMessage) {
	g.history = append(g.history, m)
}

// clone deep-copies every mutable part of the game. Decisions and move
// records are immutable and shared.
func (g *Game) clone() *Game {
	c := *g
	c.board = g.board.clone()
	c.bag = g.bag.clone()
	c.score = g.score.clone()
	c.players = append([]player(nil), g.players...)
	c.dead = g.dead[:len(g.dead):len(g.dead)]
	c.stack = append([]Decision(nil), g.stack...)
	c.moves = g.moves[:len(g.moves):len(g.moves)]
	c.clock = g.clock.clone()
	c.history, c.bagReveals, c.rackReveals = nil, nil, nil
	return &c
}

// Accessors.

// Config returns a copy of the game's configuration with the completed bag.
func (g *Game) Config() Config { return g.cfg.clone() }

// Mode returns the game mode.
func (g *Game) Mode() GameMode { return g.cfg.Mode }

// NumPlayers returns the number of seats.
func (g *Game) NumPlayers() int { return len(g.players) }

// HostSlot returns the seat of the host.
func (g *Game) HostSlot() int { return g.hostSlot }

// UserID returns the external id of the player in seat.
func (g *Game) UserID(seat int) int { return g.cfg.UserIDs[seat] }

// Username returns the display name of the player in seat.
func (g *Game) Username(seat int) string { return g.cfg.Usernames[seat] }

// SeatOf returns the seat of the user, or -1 if the user is not playing.
func (g *Game) SeatOf(userID int) int {
	for i, id := range g.cfg.UserIDs {
		if id == userID {
			return i
		}
	}
	return -1
}

// Top returns the pending decision.
func (g *Game) Top() Decision { return g.stack[len(g.stack)-1] }

// Stack returns a copy of the decision stack, bottom first.
func (g *Game) Stack() []Decision { return append([]Decision(nil), g.stack...) }

// TurnPlayer returns the seat whose turn it is, or -1 before the game starts.
func (g *Game) TurnPlayer() int { return g.turnPlayer }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Board returns a copy of the board.
func (g *Game) Board() *Board { return g.board.clone() }

// ScoreBoard returns a copy of the score board.
func (g *Game) ScoreBoard() *ScoreBoard { return g.score.clone() }

// BagRemaining returns the number of undrawn tiles.
func (g *Game) BagRemaining() int { return g.bag.Remaining() }

// DeadTiles returns the tiles retired as permanently unplayable, in order.
func (g *Game) DeadTiles() []Tile { return append([]Tile(nil), g.dead...) }

// Rack returns the rack of the player in seat. Empty slots hold TileNone.
func (g *Game) Rack(seat int) [RackSize]Tile { return g.players[seat].rack }

// Moves returns a copy of the move log.
func (g *Game) Moves() []MoveRecord {
	out := make([]MoveRecord, len(g.moves))
	for i, m := range g.moves {
		out[i] = m.copy()
	}
	return out
}

// Seq returns the sequence number of the last applied move.
func (g *Game) Seq() int64 { return g.clock.Current() }
