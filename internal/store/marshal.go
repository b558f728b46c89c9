package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/ir"
)

// marshalConfig stores a snapshot's starting configuration as canonical JSON
// with an empty move list. Returns the JSON and its snapshot hash.
func marshalConfig(s engine.Snapshot) (string, string, error) {
	s.Moves = nil
	data, err := s.MarshalJSON()
	if err != nil {
		return "", "", fmt.Errorf("marshal config: %w", err)
	}
	return string(data), ir.SnapshotHash(data), nil
}

func unmarshalConfig(data string) (engine.Snapshot, error) {
	var s engine.Snapshot
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return engine.Snapshot{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

// marshalAction converts an action to canonical JSON TEXT for storage.
func marshalAction(a engine.Action) (string, error) {
	if _, err := a.Kind(); err != nil {
		return "", fmt.Errorf("marshal action: %w", err)
	}
	data, err := ir.MarshalCanonical(a.Value())
	if err != nil {
		return "", fmt.Errorf("marshal action: %w", err)
	}
	return string(data), nil
}

// unmarshalAction parses action JSON TEXT. The decoded action must set
// exactly one kind.
func unmarshalAction(data string) (engine.Action, error) {
	var a engine.Action
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return engine.Action{}, fmt.Errorf("unmarshal action: %w", err)
	}
	if _, err := a.Kind(); err != nil {
		return engine.Action{}, fmt.Errorf("unmarshal action: %w", err)
	}
	return a, nil
}
