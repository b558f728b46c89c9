package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <game-id>",
		Short: "Export a game's snapshot JSON",
		Long: `Export a stored game as its snapshot: the setup tuple followed by every
move and its timestamp, in canonical JSON. The snapshot rebuilds the game
exactly when replayed.

Examples:
  acquire export 0190... > game.json
  acquire export 0190... -o game.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(opts *ExportOptions, gameID string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := newFormatter(cmd, opts.RootOptions)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.ReadSnapshot(ctx, gameID)
	if err != nil {
		return out.Fail("failed to read game", err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode snapshot", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, append(data, '\n'), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output file", err)
		}
		return out.Success(fmt.Sprintf("Exported %s to %s (%d moves)", gameID, opts.Output, len(snap.Moves)))
	}
	if opts.Format == "json" {
		return out.Success(json.RawMessage(data))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
