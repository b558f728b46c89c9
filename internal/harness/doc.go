// Package harness runs game fixtures against the rules engine.
//
// A fixture is a game setup plus a list of actions. Running it applies each
// action in turn and renders a transcript of the game after every move: the
// board next to the score board, every rack with its classification, the
// tiles revealed by the move and what each viewer was allowed to see, the
// history messages and the decision the game is waiting on.
//
// # Scenario Format
//
// YAML scenarios add expectations to each step and assertions on the final
// state:
//
//	name: merger_bonus
//	description: "Luxor is absorbed by Tower and the majority holder is paid"
//	game:
//	  mode: Singles2
//	  tile_bag: [1A, 1B, 1C, ...]
//	  users:
//	    - {id: 1, name: p1}
//	    - {id: 2, name: p2}
//	  host: 1
//	flow:
//	  - action: 0 StartGame
//	  - action: 0 PlayTile 1C
//	    expect:
//	      next: 0 SelectNewChain L,T,A,F,W,C,I
//	  - action: 1 SelectNewChain L
//	    expect:
//	      error: WRONG_PLAYER
//	assertions:
//	  - type: cash
//	    player: 0
//	    value: 5700
//	  - type: chain_size
//	    chain: L
//	    value: 3
//
// # Text Fixtures
//
// Text fixtures use the transcript layout itself. The header names the game
// mode, player arrangement, tile bag, users, host and optionally the viewer,
// followed by a blank line and "action:" lines. Indented lines are output and
// are ignored on input, so a fixture is its own expected transcript:
//
//	game mode: Singles2
//	player arrangement mode: ExactOrder
//	user: 1 p1
//	user: 2 p2
//	host: 1
//
//	action: 0 StartGame
//	  ...
//
// # Assertion Types
//
//   - cash: a player's cash
//   - shares: a player's shares of a chain
//   - chain_size: the size of a chain, zero when inactive
//   - next: the pending decision in notation form
//   - over: whether the game has ended
//   - history_contains: a history message appears in some move
//   - net_worth: a player's net worth
//
// # Properties
//
// CheckProperties plays seeded random games to the end and checks tile and
// share conservation, replay determinism and rack redaction after every move.
//
// # Golden Files
//
// RunWithGolden compares a scenario's transcript against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
