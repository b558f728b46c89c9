package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
)

func TestExportCommand_Stdout(t *testing.T) {
	db := startedGame(t)

	out, err := execute(t, "export", "g1", "--db", db)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `["Singles2","ExactOrder",null,null,[1,2],["alice","bob"],1,[`), out)
	assert.Contains(t, out, `{"startGame":{}}`)

	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Moves, 1)

	g, err := engine.FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, engine.KindPlayTile, g.Top().Kind())
}

func TestExportCommand_File(t *testing.T) {
	db := startedGame(t)
	path := filepath.Join(t.TempDir(), "game.json")

	out, err := execute(t, "export", "g1", "-o", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported g1 to "+path+" (1 moves)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestExportCommand_JSON(t *testing.T) {
	db := newGame(t)

	out, err := execute(t, "export", "g1", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   engine.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, engine.Singles2, resp.Data.Mode)
	assert.Empty(t, resp.Data.Moves)
}

func TestExportCommand_UnknownGame(t *testing.T) {
	db := newGame(t)

	out, err := execute(t, "export", "g9", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}
