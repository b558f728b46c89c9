package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed digests.
// Version suffix enables future algorithm migration.
const (
	DomainState    = "acquire/state/v1"
	DomainSnapshot = "acquire/snapshot/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StateHash digests the canonical form of a derived game state.
// Two games with identical boards, holdings, racks, bag position and decision
// stack produce the same hash.
func StateHash(state map[string]any) (string, error) {
	canonical, err := MarshalCanonical(state)
	if err != nil {
		return "", fmt.Errorf("StateHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainState, canonical), nil
}

// SnapshotHash digests an already canonical snapshot encoding.
func SnapshotHash(canonical []byte) string {
	return hashWithDomain(DomainSnapshot, canonical)
}
