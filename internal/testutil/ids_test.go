package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs_Counts(t *testing.T) {
	gen := NewSequentialIDs("g-")

	assert.Equal(t, "g-0001", gen.Generate())
	assert.Equal(t, "g-0002", gen.Generate())
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "game-0001", NewSequentialIDs("").Generate())
}
