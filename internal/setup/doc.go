// Package setup loads game setup files.
//
// A setup names the game mode, the seated players, the host and optionally
// the tile bag order and an advisory time control. Files are YAML or CUE:
//
//	mode: Singles4
//	arrangement: RandomOrder
//	host: 1
//	players:
//	  - {id: 1, name: alice}
//	  - {id: 2, name: bob}
//	  - {id: 3, name: carol}
//	  - {id: 4, name: dave}
//	seed: 42
//
// Every file is validated against the embedded CUE schema (schema.cue)
// before it becomes an engine.Config. The player arrangement mode decides
// seating: ExactOrder keeps the listed order, RandomOrder shuffles with the
// seed, and SpecifyTeams seats each listed team so that seat % teams matches.
package setup
