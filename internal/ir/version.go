package ir

// Version constants for the snapshot format and engine.
const (
	// SnapshotVersion is the snapshot tuple format version.
	SnapshotVersion = "1"

	// EngineVersion is the rules engine version.
	EngineVersion = "0.1.0"
)
