package engine

import "fmt"

// GameMode fixes the number of players and whether they play in teams.
type GameMode int

const (
	Singles1 GameMode = iota + 1
	Singles2
	Singles3
	Singles4
	Singles5
	Singles6
	Teams2vs2
	Teams2vs2vs2
	Teams3vs3
)

var gameModeNames = map[GameMode]string{
	Singles1:     "Singles1",
	Singles2:     "Singles2",
	Singles3:     "Singles3",
	Singles4:     "Singles4",
	Singles5:     "Singles5",
	Singles6:     "Singles6",
	Teams2vs2:    "Teams2vs2",
	Teams2vs2vs2: "Teams2vs2vs2",
	Teams3vs3:    "Teams3vs3",
}

// NumPlayers returns the number of seats in the mode.
func (m GameMode) NumPlayers() int {
	switch m {
	case Singles1, Singles2, Singles3, Singles4, Singles5, Singles6:
		return int(m)
	case Teams2vs2:
		return 4
	case Teams2vs2vs2, Teams3vs3:
		return 6
	}
	return 0
}

// NumTeams returns the number of teams, or 0 for singles modes.
func (m GameMode) NumTeams() int {
	switch m {
	case Teams2vs2, Teams3vs3:
		return 2
	case Teams2vs2vs2:
		return 3
	}
	return 0
}

// Team returns the team of the player in seat, or -1 in singles modes.
// Teammates sit across from each other, so seat i plays for team i % NumTeams.
func (m GameMode) Team(seat int) int {
	n := m.NumTeams()
	if n == 0 {
		return -1
	}
	return seat % n
}

// Valid reports whether m is a known mode.
func (m GameMode) Valid() bool {
	_, ok := gameModeNames[m]
	return ok
}

func (m GameMode) String() string {
	if name, ok := gameModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("GameMode(%d)", int(m))
}

// ParseGameMode returns the mode with the given name.
func ParseGameMode(name string) (GameMode, error) {
	for m, n := range gameModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown game mode %q", name)
}

// PlayerArrangementMode records how the lobby seated the players.
// The engine keeps it for the snapshot; it does not change any rule.
type PlayerArrangementMode int

const (
	RandomOrder PlayerArrangementMode = iota + 1
	ExactOrder
	SpecifyTeams
)

var arrangementNames = map[PlayerArrangementMode]string{
	RandomOrder:  "RandomOrder",
	ExactOrder:   "ExactOrder",
	SpecifyTeams: "SpecifyTeams",
}

// Valid reports whether m is a known arrangement mode.
func (m PlayerArrangementMode) Valid() bool {
	_, ok := arrangementNames[m]
	return ok
}

func (m PlayerArrangementMode) String() string {
	if name, ok := arrangementNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PlayerArrangementMode(%d)", int(m))
}

// ParsePlayerArrangementMode returns the arrangement mode with the given name.
func ParsePlayerArrangementMode(name string) (PlayerArrangementMode, error) {
	for m, n := range arrangementNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown player arrangement mode %q", name)
}
