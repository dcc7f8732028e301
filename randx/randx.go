package randx

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// defaultSeed is the fixed "zero" seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultSeed uint64 = 1

// Source is a single seedable random stream. All draws of one
// synthesis run flow through one Source unless substreams are derived
// explicitly for parallel workers.
type Source struct {
	src *rand.Rand
}

// New returns a deterministic Source.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed is used verbatim.
func New(seed uint64) *Source {
	s := seed
	if s == 0 {
		s = defaultSeed
	}

	return &Source{src: rand.New(rand.NewSource(s))}
}

// Seed reseeds the stream in place. Interleaving Seed with draws
// forfeits reproducibility of the overall run; the pipeline only
// seeds once, before any stage starts.
func (s *Source) Seed(seed uint64) {
	if seed == 0 {
		seed = defaultSeed
	}
	s.src.Seed(seed)
}

// Uniform returns a draw from [0,1).
func (s *Source) Uniform() float64 { return s.src.Float64() }

// Intn returns a uniform integer in [0,n). n must be positive.
func (s *Source) Intn(n int) int { return s.src.Intn(n) }

// Normal returns a draw from N(mu, sigma²).
func (s *Source) Normal(mu, sigma float64) float64 {
	n := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}

	return n.Rand()
}

// Beta returns a draw from Beta(alpha, beta). Valid for any
// alpha, beta ∈ (0,∞); distuv samples via two gamma variates.
func (s *Source) Beta(alpha, beta float64) float64 {
	b := distuv.Beta{Alpha: alpha, Beta: beta, Src: s.src}

	return b.Rand()
}

// Derive creates an independent deterministic substream identified by
// stream. The parent stream is advanced once so accidental stream-id
// reuse still yields distinct children.
//
// Call during setup, never in hot loops.
func (s *Source) Derive(stream uint64) *Source {
	parent := s.src.Uint64()

	return &Source{src: rand.New(rand.NewSource(mix(parent, stream)))}
}

// mix applies a SplitMix64-style finalizer to decorrelate substreams.
// Constants are the canonical SplitMix64 multipliers (Vigna 2014).
func mix(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}
