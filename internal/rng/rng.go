// Package rng provides the injectable random source used by event selection,
// outcome probability gates, and application decision timing. Gameplay code
// never reaches for ambient randomness; it draws from a Source so tests can
// substitute a deterministic sequence.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
	"sync"
)

// Source is the random interface threaded through the simulation.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Intn returns a uniform draw in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// seeded is a Source backed by math/rand with a fixed seed, for reproducible
// runs and replayable saves.
type seeded struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

// NewSeeded returns a reproducible Source.
func NewSeeded(seed int64) Source {
	return &seeded{r: mathrand.New(mathrand.NewSource(seed))}
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// cryptoSource draws from crypto/rand. Used when no seed is requested.
type cryptoSource struct{}

// NewCrypto returns a Source backed by the operating system's entropy.
func NewCrypto() Source {
	return cryptoSource{}
}

func (cryptoSource) Float64() float64 {
	return cryptoFloat()
}

func (c cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(math.Floor(cryptoFloat() * float64(n)))
}

// cryptoFloat generates a uniform float64 in [0, 1) from crypto/rand.
func cryptoFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe neutral draw.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
