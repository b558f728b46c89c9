package harness

import "github.com/roach88/acquire/internal/engine"

// Scenario is a game fixture with expectations.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Game        GameSetup   `yaml:"game"`
	Flow        []Step      `yaml:"flow"`
	Assertions  []Assertion `yaml:"assertions,omitempty"`

	// RecordRejections renders rejected actions without failing the run
	// unless the step expects something else. Text fixtures set it.
	RecordRejections bool `yaml:"record_rejections,omitempty"`
}

// GameSetup is the configuration a fixture starts from.
type GameSetup struct {
	Mode        string   `yaml:"mode"`
	Arrangement string   `yaml:"arrangement,omitempty"` // default ExactOrder
	TileBag     []string `yaml:"tile_bag,omitempty"`
	Users       []User   `yaml:"users"`
	Host        int      `yaml:"host"`

	// Me is the user whose view is rendered. Nil renders the spectator view.
	Me *int `yaml:"me,omitempty"`

	TimeControlStartingAmount  *int64 `yaml:"time_control_starting_amount,omitempty"`
	TimeControlIncrementAmount *int64 `yaml:"time_control_increment_amount,omitempty"`
}

// User is one seated user.
type User struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Step is one action in a scenario flow.
type Step struct {
	// Action is "<seat> <Kind> [params...]", e.g. "0 PlayTile 5E".
	Action    string  `yaml:"action"`
	Timestamp *int64  `yaml:"timestamp,omitempty"`
	Expect    *Expect `yaml:"expect,omitempty"`
}

// Expect states what a step must lead to.
type Expect struct {
	// Error is the validation code the action must be rejected with.
	Error string `yaml:"error,omitempty"`

	// Next is the pending decision after the step, e.g. "1 PlayTile".
	Next string `yaml:"next,omitempty"`

	// History lists messages the move must produce, e.g. "0 FormedChain L".
	History []string `yaml:"history,omitempty"`
}

// Assertion checks the final game state.
type Assertion struct {
	Type     string `yaml:"type"`
	Player   *int   `yaml:"player,omitempty"`
	Chain    string `yaml:"chain,omitempty"`
	Value    *int   `yaml:"value,omitempty"`
	Decision string `yaml:"decision,omitempty"`
	Over     *bool  `yaml:"over,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

// Assertion types.
const (
	AssertCash            = "cash"
	AssertShares          = "shares"
	AssertChainSize       = "chain_size"
	AssertNetWorth        = "net_worth"
	AssertNext            = "next"
	AssertOver            = "over"
	AssertHistoryContains = "history_contains"
)

// Result is the outcome of running a fixture.
type Result struct {
	Pass       bool     `json:"pass"`
	Transcript []string `json:"transcript"`
	Errors     []string `json:"errors,omitempty"`

	// Rejected counts actions the engine refused.
	Rejected int `json:"rejected"`

	// Game is the game after the last step.
	Game *engine.Game `json:"-"`
}

// Text returns the transcript as file content.
func (r *Result) Text() string {
	return joinLines(r.Transcript)
}
