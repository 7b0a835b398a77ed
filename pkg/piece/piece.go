package piece

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultAlphabet holds the piece kinds used when no alphabet is configured.
const DefaultAlphabet = "IOTL"

// Piece is a single game piece. It is copied by value in and out of containers.
type Piece struct {
	Symbol rune
	ID     int
}

// String renders the piece the way the console shows it, e.g. "[T 4]".
func (p Piece) String() string {
	return fmt.Sprintf("[%c %d]", p.Symbol, p.ID)
}

// Source hands out new pieces.
type Source interface {
	// Next returns a fresh piece. IDs never repeat for the lifetime of the source.
	Next() Piece
}

// RandomSource draws symbols uniformly from an alphabet and numbers pieces
// from 0 upwards.
type RandomSource struct {
	alphabet []rune
	rng      *rand.Rand
	nextID   int
}

// NewRandomSource creates a source over alphabet. A zero seed picks one from
// the clock. An empty alphabet falls back to DefaultAlphabet.
func NewRandomSource(alphabet string, seed uint64) *RandomSource {
	s := &RandomSource{}
	s.alphabet = []rune(alphabet)
	if len(s.alphabet) == 0 {
		s.alphabet = []rune(DefaultAlphabet)
	}
	s.Reset(seed)
	return s
}

// Reset rewinds the id counter to 0 and reseeds the generator.
func (s *RandomSource) Reset(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.nextID = 0
}

// Next implements Source.
func (s *RandomSource) Next() Piece {
	p := Piece{
		Symbol: s.alphabet[s.rng.IntN(len(s.alphabet))],
		ID:     s.nextID,
	}
	s.nextID++
	return p
}

// Issued reports how many pieces have been handed out since the last reset.
func (s *RandomSource) Issued() int { return s.nextID }

// SequenceSource replays a fixed list of symbols, cycling when it runs out.
// IDs still count up from the configured start, which makes it handy for
// deterministic scenarios.
type SequenceSource struct {
	symbols []rune
	pos     int
	nextID  int
}

// NewSequenceSource returns a source that yields symbols in order, starting at id firstID.
func NewSequenceSource(symbols string, firstID int) *SequenceSource {
	if symbols == "" {
		symbols = DefaultAlphabet
	}
	return &SequenceSource{symbols: []rune(symbols), nextID: firstID}
}

// Next implements Source.
func (s *SequenceSource) Next() Piece {
	p := Piece{Symbol: s.symbols[s.pos%len(s.symbols)], ID: s.nextID}
	s.pos++
	s.nextID++
	return p
}
