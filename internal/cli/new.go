package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/acquire/internal/setup"
	"github.com/roach88/acquire/internal/table"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	ID string // optional fixed game id
}

// NewResult describes a created game.
type NewResult struct {
	GameID      string   `json:"game_id"`
	Mode        string   `json:"mode"`
	Arrangement string   `json:"arrangement"`
	UserIDs     []int    `json:"user_ids"`
	Usernames   []string `json:"usernames"`
	Host        int      `json:"host"`
}

// Lines implements lineRenderer.
func (r NewResult) Lines() []string {
	lines := []string{
		fmt.Sprintf("Created game %s (%s, %s)", r.GameID, r.Mode, r.Arrangement),
	}
	for seat, id := range r.UserIDs {
		host := ""
		if id == r.Host {
			host = " (host)"
		}
		lines = append(lines, fmt.Sprintf("  seat %d: user %d %s%s", seat, id, r.Usernames[seat], host))
	}
	return lines
}

// fixedID hands out a single caller-chosen game id.
type fixedID string

func (f fixedID) Generate() string { return string(f) }

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <setup-file>",
		Short: "Create a game from a setup file",
		Long: `Create a game from a .yaml, .yml or .cue setup file and store it.

The setup is validated against the setup schema, players are seated according
to the arrangement mode, and the game waits for the host's StartGame.

Exit codes:
  0 - Game created
  1 - Setup rejected
  2 - Command error (unreadable database, etc.)

Examples:
  acquire new ./singles.yaml --db ./acquire.db
  acquire new ./teams.cue --id league-7 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "game id (default: a new UUIDv7)")

	return cmd
}

func runNew(opts *NewOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := newFormatter(cmd, opts.RootOptions)

	f, err := setup.Load(path)
	if err != nil {
		return out.Fail("failed to load setup", err)
	}
	cfg, err := f.Config()
	if err != nil {
		return out.Fail("invalid setup", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	mopts := []table.Option{table.WithStore(st)}
	if id := strings.TrimSpace(opts.ID); id != "" {
		mopts = append(mopts, table.WithIDGenerator(fixedID(id)))
	}
	t, err := table.NewManager(mopts...).Create(ctx, cfg)
	if err != nil {
		return out.Fail("failed to create game", err)
	}
	out.VerboseLog("stored game %s in %s", t.ID(), opts.Database)

	return out.Success(NewResult{
		GameID:      t.ID(),
		Mode:        cfg.Mode.String(),
		Arrangement: cfg.Arrangement.String(),
		UserIDs:     cfg.UserIDs,
		Usernames:   cfg.Usernames,
		Host:        cfg.HostUserID,
	})
}
