package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/acquire/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Unfinished bool // only games that are not over
}

// ReplayGameResult holds the replay result for a single game.
type ReplayGameResult struct {
	GameID    string `json:"game_id"`
	Moves     int64  `json:"moves"`
	Over      bool   `json:"over"`
	StateHash string `json:"state_hash,omitempty"`
	Verified  bool   `json:"verified"`
	Error     string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Games       []ReplayGameResult `json:"games"`
	TotalGames  int                `json:"total_games"`
	AllVerified bool               `json:"all_verified"`
}

// Lines implements lineRenderer.
func (r ReplayResult) Lines() []string {
	if r.TotalGames == 0 {
		return []string{"No games found in database."}
	}
	lines := []string{fmt.Sprintf("Replay Summary: %d game(s)", r.TotalGames), ""}
	for _, g := range r.Games {
		status := "✓"
		if !g.Verified {
			status = "✗"
		}
		lines = append(lines, fmt.Sprintf("%s Game: %s", status, g.GameID))
		if g.Verified {
			state := "in progress"
			if g.Over {
				state = "over"
			}
			lines = append(lines, fmt.Sprintf("  Moves: %d, %s", g.Moves, state))
		} else {
			lines = append(lines, "  "+g.Error)
		}
		lines = append(lines, "")
	}
	if r.AllVerified {
		return append(lines, "✓ All games replayed identically")
	}
	return append(lines, "✗ Replay verification failed")
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [game-id...]",
		Short: "Replay stored games and verify them",
		Long: `Replay stored move logs through the engine.

Every stored move is applied again from the game's setup. The acting player,
decision kind and state hash of each replayed move must match the stored row.
Without arguments every stored game is replayed.

Exit codes:
  0 - All games replayed identically
  1 - A replay diverged from the stored log
  2 - Command error (database not found, etc.)

Examples:
  acquire replay --db ./acquire.db
  acquire replay 0190... --db ./acquire.db
  acquire replay --unfinished --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Unfinished, "unfinished", false, "replay only games that are not over")

	return cmd
}

func runReplay(opts *ReplayOptions, ids []string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := newFormatter(cmd, opts.RootOptions)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(ids) == 0 {
		games, err := st.ListGames(ctx, opts.Unfinished)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list games", err)
		}
		for _, g := range games {
			ids = append(ids, g.ID)
		}
	}

	result := ReplayResult{
		Games:       make([]ReplayGameResult, 0, len(ids)),
		TotalGames:  len(ids),
		AllVerified: true,
	}
	for _, id := range ids {
		out.VerboseLog("replaying %s", id)
		res, err := replayGame(ctx, st, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay game %s", id), err)
		}
		result.Games = append(result.Games, res)
		result.AllVerified = result.AllVerified && res.Verified
	}

	if err := out.Success(result); err != nil {
		return err
	}
	if !result.AllVerified {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// replayGame replays one game. A divergence from the stored log or a stored
// move the engine now rejects is reported in the result; only database
// errors are returned.
func replayGame(ctx context.Context, st *store.Store, id string) (ReplayGameResult, error) {
	res := ReplayGameResult{GameID: id}
	g, err := st.ReplayGame(ctx, id)
	switch {
	case err == nil:
	case store.IsReplayMismatch(err), isRejection(err):
		res.Error = err.Error()
		return res, nil
	default:
		return res, err
	}

	hash, err := g.StateHash()
	if err != nil {
		return res, err
	}
	res.Moves = g.Seq()
	res.Over = g.Over()
	res.StateHash = hash
	res.Verified = true
	return res, nil
}

func isRejection(err error) bool {
	_, exit := classify(err)
	return exit == ExitFailure
}
