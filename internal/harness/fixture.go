package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseFixture parses a text fixture. Output lines (indented lines, error
// lines and everything from "Game JSON:" on) are skipped, so a transcript
// parses back into the fixture that produced it.
func ParseFixture(name string, data []byte) (*Scenario, error) {
	s := &Scenario{Name: name, RecordRejections: true}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	i := 0
	for ; i < len(lines) && lines[i] != ""; i++ {
		key, value, ok := strings.Cut(lines[i], ": ")
		if !ok {
			return nil, fmt.Errorf("line %d: unrecognized line: %s", i+1, lines[i])
		}
		if err := parseHeader(&s.Game, key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	var timestamp *int64
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "Game JSON:" {
			break
		}
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		key, value, _ := strings.Cut(line, ": ")
		switch key {
		case "timestamp":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: timestamp: %w", i+1, err)
			}
			timestamp = &ts
		case "action":
			s.Flow = append(s.Flow, Step{Action: value, Timestamp: timestamp})
			timestamp = nil
		default:
			return nil, fmt.Errorf("line %d: unrecognized line: %s", i+1, line)
		}
	}

	if err := validateScenario(s); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	return s, nil
}

func parseHeader(gs *GameSetup, key, value string) error {
	switch key {
	case "game mode":
		gs.Mode = value
	case "player arrangement mode":
		gs.Arrangement = value
	case "tile bag":
		gs.TileBag = strings.Split(value, ", ")
	case "time control":
		start, inc, ok := strings.Cut(value, " ")
		if !ok {
			return fmt.Errorf("time control: want \"<starting amount> <increment amount>\"")
		}
		s, err := strconv.ParseInt(start, 10, 64)
		if err != nil {
			return fmt.Errorf("time control: %w", err)
		}
		n, err := strconv.ParseInt(inc, 10, 64)
		if err != nil {
			return fmt.Errorf("time control: %w", err)
		}
		gs.TimeControlStartingAmount, gs.TimeControlIncrementAmount = &s, &n
	case "user":
		idStr, name, _ := strings.Cut(value, " ")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return fmt.Errorf("user: %w", err)
		}
		gs.Users = append(gs.Users, User{ID: id, Name: name})
	case "host":
		id, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("host: %w", err)
		}
		gs.Host = id
	case "me":
		if value == "null" {
			gs.Me = nil
			return nil
		}
		id, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("me: %w", err)
		}
		gs.Me = &id
	default:
		return fmt.Errorf("unrecognized header %q", key)
	}
	return nil
}

// LoadFixture reads and parses a text fixture. The scenario is named after
// the file.
func LoadFixture(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseFixture(name, data)
}

// RunFixture runs the fixture at path and compares the transcript with the
// file content. The first differing line is reported in Result.Errors.
func (h *Harness) RunFixture(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := ParseFixture(name, data)
	if err != nil {
		return nil, err
	}
	res, err := h.Run(ctx, s)
	if err != nil {
		return nil, err
	}
	if diff := FirstDifference(string(data), res.Text()); diff != "" {
		res.Errors = append(res.Errors, diff)
		res.Pass = false
	}
	return res, nil
}

// UpdateFixture runs the fixture at path and rewrites the file with the
// transcript.
func (h *Harness) UpdateFixture(ctx context.Context, path string) (*Result, error) {
	s, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	res, err := h.Run(ctx, s)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(res.Text()), 0o644); err != nil {
		return nil, fmt.Errorf("write fixture: %w", err)
	}
	return res, nil
}

// FirstDifference describes the first line where got differs from want, or
// returns "" when they are equal.
func FirstDifference(want, got string) string {
	if want == got {
		return ""
	}
	w := strings.Split(want, "\n")
	g := strings.Split(got, "\n")
	for i := 0; i < len(w) || i < len(g); i++ {
		var wl, gl string
		if i < len(w) {
			wl = w[i]
		}
		if i < len(g) {
			gl = g[i]
		}
		if wl != gl || i >= len(w) || i >= len(g) {
			return fmt.Sprintf("transcript line %d: want %q, got %q", i+1, wl, gl)
		}
	}
	return "transcript differs"
}
