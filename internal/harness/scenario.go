package harness

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/notation"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if _, err := s.Game.Config(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	for i, step := range s.Flow {
		if _, _, err := parseStep(step.Action); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		if step.Expect != nil && step.Expect.Error != "" && (step.Expect.Next != "" || len(step.Expect.History) > 0) {
			return fmt.Errorf("flow[%d].expect: error cannot be combined with next or history", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	needPlayer := func() error {
		if a.Player == nil {
			return fmt.Errorf("assertions[%d]: player is required for %s", index, a.Type)
		}
		return nil
	}
	needChain := func() error {
		if _, err := notation.ParseChainLetter(a.Chain); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		return nil
	}
	needValue := func() error {
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
		return nil
	}

	var errs []error
	switch a.Type {
	case AssertCash, AssertNetWorth:
		errs = []error{needPlayer(), needValue()}
	case AssertShares:
		errs = []error{needPlayer(), needChain(), needValue()}
	case AssertChainSize:
		errs = []error{needChain(), needValue()}
	case AssertNext:
		if a.Decision == "" {
			return fmt.Errorf("assertions[%d]: decision is required for next", index)
		}
	case AssertOver:
		if a.Over == nil {
			return fmt.Errorf("assertions[%d]: over is required for over", index)
		}
	case AssertHistoryContains:
		if a.Message == "" {
			return fmt.Errorf("assertions[%d]: message is required for history_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// Config converts the setup into an engine configuration.
func (gs GameSetup) Config() (engine.Config, error) {
	mode, err := engine.ParseGameMode(gs.Mode)
	if err != nil {
		return engine.Config{}, err
	}
	arrangement := engine.ExactOrder
	if gs.Arrangement != "" {
		if arrangement, err = engine.ParsePlayerArrangementMode(gs.Arrangement); err != nil {
			return engine.Config{}, err
		}
	}
	bag := make([]engine.Tile, len(gs.TileBag))
	for i, name := range gs.TileBag {
		if bag[i], err = engine.ParseTile(name); err != nil {
			return engine.Config{}, fmt.Errorf("tile_bag[%d]: %w", i, err)
		}
	}

	cfg := engine.Config{
		Mode:                       mode,
		Arrangement:                arrangement,
		TimeControlStartingAmount:  gs.TimeControlStartingAmount,
		TimeControlIncrementAmount: gs.TimeControlIncrementAmount,
		HostUserID:                 gs.Host,
		TileBag:                    bag,
	}
	for _, u := range gs.Users {
		cfg.UserIDs = append(cfg.UserIDs, u.ID)
		cfg.Usernames = append(cfg.Usernames, u.Name)
	}
	if gs.Me != nil && indexOf(cfg.UserIDs, *gs.Me) < 0 {
		return engine.Config{}, fmt.Errorf("me: user %d is not seated", *gs.Me)
	}
	return cfg, nil
}

// parseStep splits "<seat> <Kind> [params...]" into a seat and an action.
func parseStep(line string) (int, engine.Action, error) {
	seatStr, rest, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok {
		return 0, engine.Action{}, fmt.Errorf("action %q: want \"<seat> <Kind> [params...]\"", line)
	}
	seat, err := strconv.Atoi(seatStr)
	if err != nil {
		return 0, engine.Action{}, fmt.Errorf("action %q: bad seat: %w", line, err)
	}
	action, err := notation.ParseAction(rest)
	if err != nil {
		return 0, engine.Action{}, fmt.Errorf("action %q: %w", line, err)
	}
	return seat, action, nil
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
