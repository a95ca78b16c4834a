package generator

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// Generator draws synthetic samples. It is not safe for concurrent use.
type Generator struct {
	src rand.Source
}

// New creates a generator whose output is fully determined by seed
func New(seed uint64) *Generator {
	return &Generator{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// NewUnseeded creates a generator seeded from the runtime's entropy
func NewUnseeded() *Generator {
	return New(rand.Uint64())
}

// NewFromSeed picks New or NewUnseeded depending on whether a seed is given
func NewFromSeed(seed *uint64) *Generator {
	if seed == nil {
		return NewUnseeded()
	}
	return New(*seed)
}

// Generate draws count independent values: from U[0,1) for the uniform family
// and from N(0,1) for the normal family.
func (g *Generator) Generate(family domain.Family, count int) (domain.Sample, error) {
	if count <= 0 {
		return nil, errors.InvalidSize(fmt.Sprintf("sample size must be a positive integer, got %d", count))
	}

	var draw func() float64
	switch family {
	case domain.FamilyUniform:
		draw = distuv.Uniform{Min: 0, Max: 1, Src: g.src}.Rand
	case domain.FamilyNormal:
		draw = distuv.Normal{Mu: 0, Sigma: 1, Src: g.src}.Rand
	default:
		return nil, errors.UnknownFamily(string(family))
	}

	sample := make(domain.Sample, count)
	for i := range sample {
		sample[i] = draw()
	}
	return sample, nil
}
