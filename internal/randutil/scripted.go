package randutil

// Scripted is a Source that replays a fixed list of values, wrapping around
// when exhausted. Each value is reduced modulo the requested bound so any
// script stays in range.
type Scripted struct {
	values []int
	next   int
}

// NewScripted returns a Scripted source over values. It panics when values is empty.
func NewScripted(values ...int) *Scripted {
	if len(values) == 0 {
		panic("randutil: scripted source needs at least one value")
	}
	return &Scripted{values: values}
}

// IntN returns the next scripted value modulo n.
func (s *Scripted) IntN(n int) int {
	if n <= 0 {
		panic("randutil: invalid argument to IntN")
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Calls returns how many values have been consumed.
func (s *Scripted) Calls() int {
	return s.next
}

// Cards turns (suit, rank) pairs into a script for card.Draw. Ranks are the
// 1..13 card ranks, so they are shifted to the 0-based draw index here.
func Cards(pairs ...[2]int) []int {
	out := make([]int, 0, len(pairs)*2)
	for _, p := range pairs {
		out = append(out, p[0], p[1]-1)
	}
	return out
}
