package oracle

import (
	"math/rand/v2"

	"github.com/joshuapare/g1sim/heap/object"
)

// DefaultReachableProbability is the share of objects a Random oracle keeps.
const DefaultReachableProbability = 0.9

// Random flips an independent coin for every object on every evaluation.
// Two oracles built with the same seed produce the same verdict sequence.
type Random struct {
	p   float64
	rng *rand.Rand
}

// NewRandom returns a seeded oracle that marks each object reachable with
// probability p. Out-of-range probabilities are clamped to [0, 1].
func NewRandom(p float64, seed uint64) *Random {
	p = max(0, min(1, p))
	return &Random{
		p:   p,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Evaluate implements Oracle.
func (r *Random) Evaluate(objs []*object.Object) Verdicts {
	v := make(Verdicts, len(objs))
	for _, obj := range objs {
		v[obj.ID] = r.rng.Float64() < r.p
	}
	return v
}
