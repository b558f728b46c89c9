// Package ir provides the canonical wire representation shared by the engine,
// the store and the CLI.
//
// Snapshots, move records and state digests are encoded with MarshalCanonical
// so that the same game always produces the same bytes. ir imports nothing
// internal; every other package may import it.
//
// Key design constraints:
//   - NO float values - money and counts are integers
//   - Object keys are emitted in RFC 8785 order (UTF-16 code units)
//   - Strings are NFC normalized at the serialization boundary
//   - Logical sequence numbers order moves, never wall-clock time
package ir
