package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update   bool   // regenerate golden files and fixtures
	Filter   string // scenario filter (glob pattern)
	Random   int    // number of random games for property checks
	Mode     string // game mode of random games
	MaxMoves int    // move limit of random games
}

// ScenarioResult holds the result of a single scenario or fixture.
type ScenarioResult struct {
	Name     string   `json:"name"`
	Pass     bool     `json:"pass"`
	Rejected int      `json:"rejected"`
	Updated  bool     `json:"updated,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios  []ScenarioResult        `json:"scenarios"`
	Properties *harness.PropertyReport `json:"properties,omitempty"`
	Passed     int                     `json:"passed"`
	Failed     int                     `json:"failed"`
	Total      int                     `json:"total"`
}

// Lines implements lineRenderer.
func (r TestResult) Lines() []string {
	var lines []string
	if r.Total == 0 && r.Properties == nil {
		return []string{"No scenarios found."}
	}
	for _, s := range r.Scenarios {
		switch {
		case s.Pass && s.Updated:
			lines = append(lines, fmt.Sprintf("✓ %s (updated)", s.Name))
		case s.Pass:
			lines = append(lines, "✓ "+s.Name)
		default:
			lines = append(lines, "✗ "+s.Name)
			for _, e := range s.Errors {
				lines = append(lines, "  "+e)
			}
		}
	}
	if p := r.Properties; p != nil {
		status := "✓"
		if !p.Pass() {
			status = "✗"
		}
		lines = append(lines, fmt.Sprintf("%s properties: %d %s games, %d finished, %d moves",
			status, p.Games, p.Mode, p.Finished, p.Moves))
		for _, v := range p.Violations {
			lines = append(lines, "  "+v.String())
		}
	}
	if r.Total > 0 {
		lines = append(lines, "", fmt.Sprintf("Results: %d passed, %d failed, %d total", r.Passed, r.Failed, r.Total))
	}
	return lines
}

func (r TestResult) pass() bool {
	return r.Failed == 0 && (r.Properties == nil || r.Properties.Pass())
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test [path...]",
		Short: "Run scenarios, fixtures and property checks",
		Long: `Run YAML scenarios (.yaml, .yml) and text fixtures (.txt).

Paths may be files or directories. A scenario passes when every step
expectation and assertion holds and, if golden/<name>.golden exists next to
it, its transcript matches the golden file. A fixture passes when its
transcript reproduces the file exactly. With --update golden files and
fixtures are rewritten from the current transcripts.

With --random N, N games seeded 1..N are played by a random player and the
game's properties are checked after every move.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  acquire test ./testdata/scenarios
  acquire test ./testdata --filter "merger-*"
  acquire test ./testdata/fixtures --update
  acquire test --random 50 --mode Teams2vs2vs2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files and fixtures")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().IntVar(&opts.Random, "random", 0, "number of random games to check")
	cmd.Flags().StringVar(&opts.Mode, "mode", "Singles4", "game mode of random games")
	cmd.Flags().IntVar(&opts.MaxMoves, "max-moves", 2000, "move limit of random games")

	return cmd
}

func runTests(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	ctx := context.Background()
	out := newFormatter(cmd, opts.RootOptions)
	h := harness.New(harness.WithLogger(slog.Default()))

	var files []string
	for _, p := range paths {
		found, err := findScenarioFiles(p, opts.Filter)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to find scenarios", err)
		}
		files = append(files, found...)
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, f := range files {
		out.VerboseLog("running %s", f)
		res := runScenarioFile(ctx, h, f, opts.Update)
		result.Scenarios = append(result.Scenarios, res)
		if res.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Random > 0 {
		mode, err := engine.ParseGameMode(opts.Mode)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --mode", err)
		}
		seeds := make([]int64, opts.Random)
		for i := range seeds {
			seeds[i] = int64(i + 1)
		}
		report, err := h.CheckProperties(ctx, mode, seeds, opts.MaxMoves)
		if err != nil {
			return WrapExitError(ExitCommandError, "property check failed to run", err)
		}
		result.Properties = report
	}

	if err := out.Success(result); err != nil {
		return err
	}
	if !result.pass() {
		return NewExitError(ExitFailure, "tests failed")
	}
	return nil
}

// findScenarioFiles returns the scenario and fixture files under path,
// sorted. Files under golden/ directories are skipped.
func findScenarioFiles(path string, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" && ext != ".txt" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(p), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, p)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// runScenarioFile runs one scenario or fixture. Load and run errors are
// reported as a failed result.
func runScenarioFile(ctx context.Context, h *harness.Harness, path string, update bool) ScenarioResult {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	failed := func(format string, args ...any) ScenarioResult {
		return ScenarioResult{Name: name, Errors: []string{fmt.Sprintf(format, args...)}}
	}

	if filepath.Ext(path) == ".txt" {
		run := h.RunFixture
		if update {
			run = h.UpdateFixture
		}
		res, err := run(ctx, path)
		if err != nil {
			return failed("fixture error: %v", err)
		}
		return ScenarioResult{Name: name, Pass: res.Pass, Rejected: res.Rejected, Updated: update, Errors: res.Errors}
	}

	s, err := harness.LoadScenario(path)
	if err != nil {
		return failed("failed to load scenario: %v", err)
	}
	res, err := h.Run(ctx, s)
	if err != nil {
		return failed("execution failed: %v", err)
	}
	out := ScenarioResult{Name: s.Name, Pass: res.Pass, Rejected: res.Rejected, Errors: res.Errors}

	goldenPath := goldenFilePath(path)
	if update {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			return failed("failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(res.Text()), 0o644); err != nil {
			return failed("failed to write golden file: %v", err)
		}
		out.Updated = true
		return out
	}

	want, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		return out
	}
	if err != nil {
		return failed("failed to read golden file: %v", err)
	}
	if diff := harness.FirstDifference(string(want), res.Text()); diff != "" {
		out.Pass = false
		out.Errors = append(out.Errors, "golden mismatch (run with --update to regenerate): "+diff)
	}
	return out
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}
