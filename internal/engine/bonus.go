package engine

import "sort"

// Bonus is a majority or minority payout to one player.
type Bonus struct {
	Player int
	Amount int
}

// SplitBonus divides amount between n players, rounding each share up to the
// next multiple of 100.
func SplitBonus(amount, n int) int {
	if n <= 0 {
		return 0
	}
	per := (amount + n - 1) / n
	return (per + 99) / 100 * 100
}

// ComputeBonuses returns the majority and minority payouts for a chain whose
// per-share price is price, given every player's holdings by seat.
//
// Majority is 10x price and minority 5x price. A sole holder takes both. A tie
// for first splits both between the tied players. With a unique first place
// the minority goes to second place, split if tied. Players without shares
// receive nothing. The result is ordered by seat.
func ComputeBonuses(holdings []int, price int) []Bonus {
	majority, minority := price*10, price*5

	counts := make([]int, 0, len(holdings))
	for _, n := range holdings {
		if n > 0 {
			counts = append(counts, n)
		}
	}
	if len(counts) == 0 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	first := counts[0]
	var firstPlayers, secondPlayers []int
	second := 0
	for _, n := range counts {
		if n < first {
			second = n
			break
		}
	}
	for p, n := range holdings {
		switch {
		case n > 0 && n == first:
			firstPlayers = append(firstPlayers, p)
		case n > 0 && n == second:
			secondPlayers = append(secondPlayers, p)
		}
	}

	amounts := make(map[int]int)
	switch {
	case len(firstPlayers) > 1:
		each := SplitBonus(majority+minority, len(firstPlayers))
		for _, p := range firstPlayers {
			amounts[p] = each
		}
	case len(secondPlayers) == 0:
		amounts[firstPlayers[0]] = majority + minority
	default:
		amounts[firstPlayers[0]] = majority
		each := SplitBonus(minority, len(secondPlayers))
		for _, p := range secondPlayers {
			amounts[p] = each
		}
	}

	out := make([]Bonus, 0, len(amounts))
	for p := range holdings {
		if amt, ok := amounts[p]; ok {
			out = append(out, Bonus{Player: p, Amount: amt})
		}
	}
	return out
}
