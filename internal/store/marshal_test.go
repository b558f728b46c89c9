package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
)

func TestMarshalAction_Canonical(t *testing.T) {
	data, err := marshalAction(engine.PurchaseShares([]engine.Chain{engine.Tower, engine.Luxor}, true))
	require.NoError(t, err)
	assert.Equal(t, `{"purchaseShares":{"chains":[1,0],"endGame":true}}`, data)
}

func TestMarshalAction_RejectsEmpty(t *testing.T) {
	_, err := marshalAction(engine.Action{})
	assert.Error(t, err)
}

func TestUnmarshalAction(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    engine.Action
		wantErr bool
	}{
		{"play tile", `{"playTile":{"tile":5}}`, engine.PlayTile(5), false},
		{"dispose", `{"disposeOfShares":{"sellAmount":1,"tradeAmount":2}}`, engine.DisposeOfShares(2, 1), false},
		{"empty object", `{}`, engine.Action{}, true},
		{"two kinds", `{"startGame":{},"playTile":{"tile":1}}`, engine.Action{}, true},
		{"invalid json", `{`, engine.Action{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unmarshalAction(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	g := createTestGame(t, 4)

	data, hash, err := marshalConfig(g.Snapshot())
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	snap, err := unmarshalConfig(data)
	require.NoError(t, err)
	assert.Equal(t, g.Config().TileBag, snap.TileBag)
	assert.Equal(t, g.Config().Usernames, snap.Usernames)
	assert.Empty(t, snap.Moves)
}
