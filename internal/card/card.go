package card

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// NumSuits is the size of the suit domain.
const NumSuits = 4

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Color returns the colour class of the suit
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Color is the display colour class derived from a suit.
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Rank is a card rank in the range 1..13. Aces are low.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the size of the rank domain.
const NumRanks = 13

// String returns the display label of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.Valid() {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Valid reports whether r lies within Ace..King.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// New creates a new card
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "K♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Label returns the rank label shown in the card corners.
func (c Card) Label() string {
	return c.Rank.String()
}

// Color returns the colour class of the card's suit
func (c Card) Color() Color {
	return c.Suit.Color()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Color() == Red
}

// IsZero reports whether c has not been dealt.
func (c Card) IsZero() bool {
	return c == Card{}
}

// Compare orders two cards by rank only. It returns a positive number when
// c outranks other, a negative number when other outranks c and zero on a tie.
func (c Card) Compare(other Card) int {
	return int(c.Rank) - int(other.Rank)
}
