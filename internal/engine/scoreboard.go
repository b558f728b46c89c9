package engine

// ScoreBoard tracks cash, share holdings, bank inventory and chain sizes.
// Player rows are indexed by seat.
type ScoreBoard struct {
	shares    [][NumChains]int
	cash      []int
	available [NumChains]int
	sizes     [NumChains]int
}

func newScoreBoard(numPlayers int) *ScoreBoard {
	s := &ScoreBoard{
		shares: make([][NumChains]int, numPlayers),
		cash:   make([]int, numPlayers),
	}
	for i := range s.cash {
		s.cash[i] = StartingCash
	}
	for i := range s.available {
		s.available[i] = SharesPerChain
	}
	return s
}

// Shares returns how many shares of c the player holds.
func (s *ScoreBoard) Shares(player int, c Chain) int { return s.shares[player][c] }

// Cash returns the player's cash.
func (s *ScoreBoard) Cash(player int) int { return s.cash[player] }

// Available returns the bank's unissued shares of c.
func (s *ScoreBoard) Available(c Chain) int { return s.available[c] }

// ChainSize returns the number of board cells owned by c.
func (s *ScoreBoard) ChainSize(c Chain) int { return s.sizes[c] }

// Active reports whether c is on the board.
func (s *ScoreBoard) Active(c Chain) bool { return s.sizes[c] > 0 }

// Safe reports whether c can no longer be absorbed by a merger.
func (s *ScoreBoard) Safe(c Chain) bool { return s.sizes[c] >= SafeChainSize }

// Price returns the current per-share price of c.
func (s *ScoreBoard) Price(c Chain) int { return Price(c, s.sizes[c]) }

// Holdings returns every player's share count of c, by seat.
func (s *ScoreBoard) Holdings(c Chain) []int {
	out := make([]int, len(s.shares))
	for p := range s.shares {
		out[p] = s.shares[p][c]
	}
	return out
}

// NetWorth is cash plus the value of held shares plus the bonuses the player
// would receive if every active chain were paid out now.
func (s *ScoreBoard) NetWorth(player int) int {
	total := s.cash[player]
	for _, c := range Chains {
		if !s.Active(c) {
			continue
		}
		total += s.shares[player][c] * s.Price(c)
		for _, b := range ComputeBonuses(s.Holdings(c), s.Price(c)) {
			if b.Player == player {
				total += b.Amount
			}
		}
	}
	return total
}

// transferFromBank moves n shares of c from the bank to the player.
// Negative n returns shares to the bank.
func (s *ScoreBoard) transferFromBank(player int, c Chain, n int) {
	s.shares[player][c] += n
	s.available[c] -= n
}

func (s *ScoreBoard) adjustCash(player, delta int) {
	s.cash[player] += delta
}

func (s *ScoreBoard) setSizesFrom(b *Board) {
	for _, c := range Chains {
		s.sizes[c] = b.Count(ChainCell(c))
	}
}

func (s *ScoreBoard) clone() *ScoreBoard {
	c := &ScoreBoard{
		shares:    append([][NumChains]int(nil), s.shares...),
		cash:      append([]int(nil), s.cash...),
		available: s.available,
		sizes:     s.sizes,
	}
	return c
}
