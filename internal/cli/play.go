package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/notation"
	"github.com/roach88/acquire/internal/table"
)

// PlayResult describes an applied move as seen by the acting user.
type PlayResult struct {
	GameID  string   `json:"game_id"`
	Seq     int64    `json:"seq"`
	Kind    string   `json:"kind"`
	History []string `json:"history"`
	Next    string   `json:"next"`
	Over    bool     `json:"over"`
}

// Lines implements lineRenderer.
func (r PlayResult) Lines() []string {
	lines := []string{fmt.Sprintf("Move %d (%s) applied to %s", r.Seq, r.Kind, r.GameID)}
	for _, h := range r.History {
		lines = append(lines, "  "+h)
	}
	if r.Over {
		return append(lines, "Game over")
	}
	return append(lines, "Next: "+r.Next)
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <game-id> <user-id> <action...>",
		Short: "Submit an action for a user",
		Long: `Submit an action on behalf of a seated user.

The action uses the notation of transcripts: the decision kind followed by
its parameters. History messages are shown as the acting user sees them.

Exit codes:
  0 - Move applied
  1 - Move rejected (wrong player, illegal tile, etc.)
  2 - Command error (database errors, unparseable action)

Examples:
  acquire play 0190... 1 StartGame
  acquire play 0190... 2 PlayTile 5E
  acquire play 0190... 2 PurchaseShares L,L,T 0
  acquire play 0190... 1 DisposeOfShares 2 1 --format json`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(rootOpts, args[0], args[1], strings.Join(args[2:], " "), cmd)
		},
	}
	return cmd
}

func runPlay(opts *RootOptions, gameID, user, line string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := newFormatter(cmd, opts)

	userID, err := strconv.Atoi(user)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid user id %q", user))
	}
	action, err := notation.ParseAction(line)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid action", err)
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := table.NewManager(table.WithStore(st)).Get(ctx, gameID)
	if err != nil {
		return out.Fail("failed to load game", err)
	}
	rec, err := t.Submit(ctx, userID, action)
	if err != nil {
		return out.Fail("move rejected", err)
	}

	rec = engine.RedactMove(rec, t.View(userID).Viewer)
	result := PlayResult{
		GameID:  gameID,
		Seq:     rec.Seq,
		Kind:    rec.Kind.String(),
		History: make([]string, 0, len(rec.History)),
		Next:    notation.FormatDecision(rec.Next),
		Over:    rec.Next.Kind() == engine.KindGameOver,
	}
	for _, m := range rec.History {
		result.History = append(result.History, notation.FormatHistory(m))
	}
	return out.Success(result)
}
