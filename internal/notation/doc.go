// Package notation renders and parses the human-readable encoding of games.
//
// Tiles are written column then row ("1A" .. "12I"), chains by a single
// letter (L T A F W C I), chain lists comma separated with "x" for an empty
// list, and actions as "<Kind> <params...>":
//
//	StartGame
//	PlayTile 5E
//	SelectNewChain F
//	SelectMergerSurvivor L
//	SelectChainToDisposeOfNext T
//	DisposeOfShares 2 1
//	PurchaseShares L,L,C 0
//
// The board renders one glyph per cell and the score board as a fixed-width
// table. Nothing here affects game rules.
package notation
