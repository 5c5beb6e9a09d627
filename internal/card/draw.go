package card

import "github.com/lox/highcard/internal/randutil"

// Draw returns one uniformly random card out of the 52 suit/rank combinations.
// Draws are independent; nothing is removed from a deck.
func Draw(src randutil.Source) Card {
	suit := Suit(src.IntN(NumSuits))
	rank := Rank(src.IntN(NumRanks) + 1)
	return New(suit, rank)
}
