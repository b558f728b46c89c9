package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/store"
)

// Harness runs fixtures. The zero configuration runs games in memory only.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithStore records every applied move in st under the scenario name and
// checks after the run that replaying the stored log reproduces the game.
func WithStore(st *store.Store) Option {
	return func(h *Harness) { h.store = st }
}

// WithLogger sets the harness logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario in memory.
func Run(s *Scenario) (*Result, error) {
	return New().Run(context.Background(), s)
}

// Run executes a scenario and returns its transcript and any failed
// expectations. An error is returned only when the scenario cannot be run at
// all; rejected actions and failed assertions are reported in the Result.
//
// Execution flow:
//  1. Create the game from the scenario setup
//  2. Apply each step, rendering the move or the rejection
//  3. Check step expectations and final-state assertions
//  4. Append the game JSON
func (h *Harness) Run(ctx context.Context, s *Scenario) (*Result, error) {
	cfg, err := s.Game.Config()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	g, err := engine.NewGame(cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: create game: %w", s.Name, err)
	}
	if h.store != nil {
		if err := h.store.CreateGame(ctx, s.Name, g.Snapshot()); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	}

	viewer := engine.Spectator
	if s.Game.Me != nil {
		viewer = g.SeatOf(*s.Game.Me)
	}

	res := &Result{Game: g, Transcript: headerLines(s.Game, cfg)}

	for i, step := range s.Flow {
		seat, action, err := parseStep(step.Action)
		if err != nil {
			return nil, fmt.Errorf("flow[%d]: %w", i, err)
		}
		res.Transcript = append(res.Transcript, "")

		if _, err := g.Apply(seat, action, step.Timestamp); err != nil {
			if !engine.IsValidationError(err) {
				return nil, fmt.Errorf("flow[%d]: %w", i, err)
			}
			h.logger.Debug("action rejected",
				"scenario", s.Name,
				"step", i,
				"code", string(engine.ValidationCode(err)),
			)
			res.Rejected++
			res.Transcript = append(res.Transcript, rejectedLines(step, err)...)
			if !s.RecordRejections || step.Expect != nil {
				res.Errors = append(res.Errors, checkRejected(i, step, err)...)
			}
			continue
		}

		moves := g.Moves()
		rec := moves[len(moves)-1]
		if h.store != nil {
			if _, err := h.store.AppendMove(ctx, s.Name, rec); err != nil {
				return nil, fmt.Errorf("flow[%d]: %w", i, err)
			}
		}
		lines, err := moveLines(g, rec, viewer)
		if err != nil {
			return nil, fmt.Errorf("flow[%d]: %w", i, err)
		}
		res.Transcript = append(res.Transcript, lines...)
		res.Errors = append(res.Errors, checkApplied(i, step, rec)...)
	}

	for _, a := range s.Assertions {
		if err := evaluateAssertion(g, a); err != nil {
			res.Errors = append(res.Errors, err.Error())
		}
	}

	if h.store != nil {
		if err := h.verifyStored(ctx, s.Name, g); err != nil {
			res.Errors = append(res.Errors, err.Error())
		}
	}

	jsonLines, err := gameJSONLines(g.Snapshot())
	if err != nil {
		return nil, err
	}
	res.Transcript = append(res.Transcript, "")
	res.Transcript = append(res.Transcript, jsonLines...)

	res.Pass = len(res.Errors) == 0
	h.logger.Info("scenario finished",
		"scenario", s.Name,
		"steps", len(s.Flow),
		"rejected", res.Rejected,
		"pass", res.Pass,
	)
	return res, nil
}

func (h *Harness) verifyStored(ctx context.Context, id string, g *engine.Game) error {
	replayed, err := h.store.ReplayGame(ctx, id)
	if err != nil {
		return fmt.Errorf("stored replay: %w", err)
	}
	want, err := g.StateHash()
	if err != nil {
		return err
	}
	got, err := replayed.StateHash()
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("stored replay: state hash %s, want %s", got, want)
	}
	return nil
}

func checkRejected(i int, step Step, err error) []string {
	code := string(engine.ValidationCode(err))
	if step.Expect == nil || step.Expect.Error == "" {
		return []string{fmt.Sprintf("flow[%d] %q: unexpected rejection: %v", i, step.Action, err)}
	}
	if step.Expect.Error != code {
		return []string{fmt.Sprintf("flow[%d] %q: rejected with %s, want %s", i, step.Action, code, step.Expect.Error)}
	}
	return nil
}

func checkApplied(i int, step Step, rec engine.MoveRecord) []string {
	if step.Expect == nil {
		return nil
	}
	var errs []string
	if step.Expect.Error != "" {
		errs = append(errs, fmt.Sprintf("flow[%d] %q: applied, want rejection with %s", i, step.Action, step.Expect.Error))
	}
	if step.Expect.Next != "" {
		if got := formatNext(rec.Next); got != step.Expect.Next {
			errs = append(errs, fmt.Sprintf("flow[%d] %q: next action %q, want %q", i, step.Action, got, step.Expect.Next))
		}
	}
	for _, want := range step.Expect.History {
		if !containsHistory(rec.History, want) {
			errs = append(errs, fmt.Sprintf("flow[%d] %q: history has no %q", i, step.Action, want))
		}
	}
	return errs
}
