// Package slug generates short human-readable identifiers of the form
// "<adjective>-<noun>". The candidate space is deliberately small (100
// combinations): readability wins over unguessability, and uniqueness is
// the caller's problem.
package slug

import (
	"math/rand"
	"sync"
)

var adjectives = []string{
	"blue", "fast", "smart", "cool", "wild",
	"bright", "silent", "happy", "bold", "rapid",
}

var nouns = []string{
	"tiger", "rocket", "cloud", "pixel", "storm",
	"falcon", "wave", "shadow", "spark", "planet",
}

// SpaceSize is the number of distinct slugs a Generator can produce.
const SpaceSize = 100

// Generator produces slug candidates from a caller-supplied randomness
// source. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a Generator backed by src. Seed the source for
// deterministic output in tests.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Next returns one slug candidate. Both words are picked independently
// and uniformly; repeat calls can return the same candidate.
func (g *Generator) Next() string {
	g.mu.Lock()
	adj := adjectives[g.rnd.Intn(len(adjectives))]
	noun := nouns[g.rnd.Intn(len(nouns))]
	g.mu.Unlock()

	return adj + "-" + noun
}
