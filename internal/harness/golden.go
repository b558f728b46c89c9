package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the transcript against a
// golden file. The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The test fails if the scenario cannot run, if any expectation fails, or if
// the transcript differs from the golden file.
func RunWithGolden(t *testing.T, s *Scenario) *Result {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		t.Fatalf("scenario %s failed to run: %v", s.Name, err)
	}
	for _, e := range result.Errors {
		t.Errorf("scenario %s: %s", s.Name, e)
	}

	AssertGolden(t, s.Name, result)
	return result
}

// AssertGolden compares an already computed result's transcript against
// testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Text()))
}
