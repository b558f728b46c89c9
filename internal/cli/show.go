package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/notation"
	"github.com/roach88/acquire/internal/table"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	User    int
	History bool
}

// ShowResult is a game as seen by one user.
type ShowResult struct {
	GameID       string     `json:"game_id"`
	Seq          int64      `json:"seq"`
	Viewer       int        `json:"viewer"`
	Board        []string   `json:"board"`
	Rack         string     `json:"rack,omitempty"`
	BagRemaining int        `json:"bag_remaining"`
	Next         string     `json:"next"`
	Over         bool       `json:"over"`
	History      [][]string `json:"history,omitempty"`
}

// Lines implements lineRenderer.
func (r ShowResult) Lines() []string {
	lines := []string{fmt.Sprintf("Game %s after move %d", r.GameID, r.Seq)}
	for _, row := range r.Board {
		lines = append(lines, "  "+row)
	}
	if r.Rack != "" {
		lines = append(lines, "Rack: "+r.Rack)
	}
	lines = append(lines, fmt.Sprintf("Tiles in bag: %d", r.BagRemaining))
	for i, move := range r.History {
		lines = append(lines, fmt.Sprintf("Move %d:", i+1))
		for _, m := range move {
			lines = append(lines, "  "+m)
		}
	}
	if r.Over {
		return append(lines, "Game over")
	}
	return append(lines, "Next: "+r.Next)
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show the board, score board and rack",
		Long: `Show a stored game as one user sees it.

Other players' rack tiles and privately drawn tiles stay hidden. Users who are
not seated, including the default, see the spectator view.

Examples:
  acquire show 0190...
  acquire show 0190... --user 2 --history
  acquire show 0190... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.User, "user", -1, "user id to view as (default: spectator)")
	cmd.Flags().BoolVar(&opts.History, "history", false, "include every move's history")

	return cmd
}

func runShow(opts *ShowOptions, gameID string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := newFormatter(cmd, opts.RootOptions)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := table.NewManager(table.WithStore(st)).Get(ctx, gameID)
	if err != nil {
		return out.Fail("failed to load game", err)
	}

	v := t.View(opts.User)
	result := ShowResult{
		GameID:       gameID,
		Seq:          v.Seq,
		Viewer:       v.Viewer,
		Board:        notation.BoardAndScoreLines(v),
		BagRemaining: v.BagRemaining,
		Next:         notation.FormatDecision(v.Next),
		Over:         v.Over,
	}
	if v.Viewer != engine.Spectator {
		result.Rack = notation.RackString(v.Racks[v.Viewer], v.RackCells, true)
	}
	if opts.History {
		for _, move := range t.History(opts.User) {
			lines := make([]string, 0, len(move))
			for _, m := range move {
				lines = append(lines, notation.FormatHistory(m))
			}
			result.History = append(result.History, lines)
		}
	}
	return out.Success(result)
}
