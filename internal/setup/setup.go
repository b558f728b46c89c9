package setup

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// File is a decoded setup file.
type File struct {
	Mode        string       `json:"mode" yaml:"mode"`
	Arrangement string       `json:"arrangement,omitempty" yaml:"arrangement"`
	Host        int          `json:"host" yaml:"host"`
	Players     []Player     `json:"players" yaml:"players"`
	TimeControl *TimeControl `json:"timeControl,omitempty" yaml:"timeControl"`
	TileBag     []string     `json:"tileBag,omitempty" yaml:"tileBag"`
	Seed        *int64       `json:"seed,omitempty" yaml:"seed"`
}

// Player is one listed player. Team is only read in SpecifyTeams mode.
type Player struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Team *int   `json:"team,omitempty" yaml:"team"`
}

// TimeControl is advisory, in milliseconds.
type TimeControl struct {
	StartingAmount  int64 `json:"startingAmount" yaml:"startingAmount"`
	IncrementAmount int64 `json:"incrementAmount" yaml:"incrementAmount"`
}

// Load reads and validates a setup file. The format follows the extension:
// .yaml, .yml or .cue.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadError(ErrCodeRead, "read setup: %v", err)
	}
	return Parse(path, data)
}

// Parse validates setup data. filename selects the format and appears in
// error positions.
func Parse(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	var value cue.Value
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		f, err := decodeYAML(data)
		if err != nil {
			return nil, err
		}
		value = ctx.Encode(f)
	case ".cue":
		value = ctx.CompileBytes(data, cue.Filename(filename))
	default:
		return nil, newLoadError(ErrCodeFormat, "unsupported setup format %q", filepath.Ext(filename))
	}
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParse, err)
	}

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile setup schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Setup")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}

	var f File
	if err := unified.Decode(&f); err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}
	return &f, nil
}

// decodeYAML decodes strictly: unknown keys are errors.
func decodeYAML(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, newLoadError(ErrCodeParse, "%v", err)
	}
	if f.Arrangement == "" {
		f.Arrangement = engine.ExactOrder.String()
	}
	return &f, nil
}

// cueLoadError converts the first CUE error to a LoadError with its position.
func cueLoadError(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: err.Error()}
	if list := cueerrors.Errors(err); len(list) > 0 {
		le.Message = list[0].Error()
		le.Pos = list[0].Position()
	}
	return le
}

// Config converts the setup to an engine configuration, seating players
// according to the arrangement mode.
//
// RandomOrder shuffles seats with the seed. Without an explicit tile bag a
// seed also shuffles the bag; with neither, tiles are drawn in ascending
// order.
func (f *File) Config() (engine.Config, error) {
	mode, err := engine.ParseGameMode(f.Mode)
	if err != nil {
		return engine.Config{}, newLoadError(ErrCodeInvalid, "%v", err)
	}
	arrangement, err := engine.ParsePlayerArrangementMode(f.Arrangement)
	if err != nil {
		return engine.Config{}, newLoadError(ErrCodeInvalid, "%v", err)
	}
	if len(f.Players) != mode.NumPlayers() {
		return engine.Config{}, newLoadError(ErrCodeInvalid,
			"%s needs %d players, got %d", mode, mode.NumPlayers(), len(f.Players))
	}

	seen := make(map[int]bool, len(f.Players))
	hosted := false
	for _, p := range f.Players {
		if seen[p.ID] {
			return engine.Config{}, newLoadError(ErrCodeInvalid, "player %d is listed twice", p.ID)
		}
		seen[p.ID] = true
		hosted = hosted || p.ID == f.Host
	}
	if !hosted {
		return engine.Config{}, newLoadError(ErrCodeInvalid, "host %d is not a listed player", f.Host)
	}

	var rng *rand.Rand
	if f.Seed != nil {
		rng = rand.New(rand.NewSource(*f.Seed))
	}

	seats, err := arrange(mode, arrangement, f.Players, rng)
	if err != nil {
		return engine.Config{}, err
	}

	cfg := engine.Config{
		Mode:        mode,
		Arrangement: arrangement,
		HostUserID:  f.Host,
	}
	for _, p := range seats {
		cfg.UserIDs = append(cfg.UserIDs, p.ID)
		cfg.Usernames = append(cfg.Usernames, ir.NormalizeName(p.Name))
	}
	if f.TimeControl != nil {
		start, inc := f.TimeControl.StartingAmount, f.TimeControl.IncrementAmount
		cfg.TimeControlStartingAmount = &start
		cfg.TimeControlIncrementAmount = &inc
	}

	switch {
	case len(f.TileBag) > 0:
		for _, name := range f.TileBag {
			t, err := engine.ParseTile(name)
			if err != nil || !t.Valid() {
				return engine.Config{}, newLoadError(ErrCodeInvalid, "tile bag: invalid tile %q", name)
			}
			cfg.TileBag = append(cfg.TileBag, t)
		}
	case rng != nil:
		for _, n := range rng.Perm(engine.NumTiles) {
			cfg.TileBag = append(cfg.TileBag, engine.Tile(n))
		}
	}

	if _, err := engine.NewGame(cfg); err != nil {
		var ve *engine.ValidationError
		if errors.As(err, &ve) {
			return engine.Config{}, newLoadError(ErrCodeInvalid, "%s", ve.Message)
		}
		return engine.Config{}, err
	}
	return cfg, nil
}

func arrange(mode engine.GameMode, arrangement engine.PlayerArrangementMode, players []Player, rng *rand.Rand) ([]Player, error) {
	seats := append([]Player(nil), players...)
	switch arrangement {
	case engine.ExactOrder:
		return seats, nil
	case engine.RandomOrder:
		if rng == nil {
			return nil, newLoadError(ErrCodeInvalid, "RandomOrder needs a seed")
		}
		rng.Shuffle(len(seats), func(i, j int) { seats[i], seats[j] = seats[j], seats[i] })
		return seats, nil
	case engine.SpecifyTeams:
		return seatTeams(mode, players)
	}
	return nil, newLoadError(ErrCodeInvalid, "unknown arrangement %s", arrangement)
}

// seatTeams seats the k-th listed member of team t at seat t + k*teams, so
// teammates alternate around the table.
func seatTeams(mode engine.GameMode, players []Player) ([]Player, error) {
	teams := mode.NumTeams()
	if teams == 0 {
		return nil, newLoadError(ErrCodeInvalid, "SpecifyTeams needs a team mode, got %s", mode)
	}
	size := len(players) / teams
	members := make([][]Player, teams)
	for _, p := range players {
		if p.Team == nil {
			return nil, newLoadError(ErrCodeInvalid, "player %d has no team", p.ID)
		}
		t := *p.Team
		if t < 0 || t >= teams {
			return nil, newLoadError(ErrCodeInvalid, "player %d: team %d out of range for %s", p.ID, t, mode)
		}
		members[t] = append(members[t], p)
	}
	seats := make([]Player, len(players))
	for t, ms := range members {
		if len(ms) != size {
			return nil, newLoadError(ErrCodeInvalid, "team %d has %d players, want %d", t, len(ms), size)
		}
		for k, p := range ms {
			seats[t+k*teams] = p
		}
	}
	return seats, nil
}
