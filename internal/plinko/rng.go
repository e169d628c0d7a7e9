package plinko

import (
	cryptoRand "crypto/rand"
	"math/rand/v2"
)

// BitSource yields the left/right decisions of a drop.
type BitSource interface {
	NextBool() bool
}

// crypto random : default generation method
type cryptoBits struct{}

func (cryptoBits) NextBool() bool {
	var buf [1]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.IntN(2) == 1
	}
	return buf[0]&1 == 1
}

func DefaultSource() BitSource { return cryptoBits{} }

// Replicable source (e.g. Monte Carlo, replays)
type seededBits struct{ r *rand.Rand }

func NewSeededSource(seed uint64) BitSource {
	return &seededBits{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededBits) NextBool() bool { return s.r.IntN(2) == 1 }

// Sequence replays a fixed list of decisions, wrapping around at the end.
type Sequence struct {
	bits []bool
	pos  int
}

// NewSequence creates a scripted source. An empty sequence always yields false.
func NewSequence(bits ...bool) *Sequence {
	return &Sequence{bits: append([]bool(nil), bits...)}
}

// Moves builds a Sequence from +1/-1 moves.
func Moves(moves ...int) *Sequence {
	bits := make([]bool, len(moves))
	for i, m := range moves {
		bits[i] = m > 0
	}
	return &Sequence{bits: bits}
}

func (s *Sequence) NextBool() bool {
	if len(s.bits) == 0 {
		return false
	}
	b := s.bits[s.pos%len(s.bits)]
	s.pos++
	return b
}

// Consumed reports how many decisions have been drawn.
func (s *Sequence) Consumed() int { return s.pos }
