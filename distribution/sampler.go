package distribution

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws values from a Sampling with replacement.
type Sampler struct {
	values        []float64
	probabilities []float64
	dist          distuv.Categorical
}

// NewSampler fails unless s is a valid distribution, so Draw never sees
// weights that don't sum to 1. A nil src uses the global source.
func NewSampler(s Sampling, src rand.Source) (*Sampler, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{
		values:        s.Values,
		probabilities: s.Probabilities,
		dist:          distuv.NewCategorical(s.Probabilities, src),
	}, nil
}

func (s *Sampler) Draw() float64 {
	for {
		// a uniform draw of exactly 0 lands on index 0 whatever its weight
		i := int(s.dist.Rand())
		if s.probabilities[i] > 0 {
			return s.values[i]
		}
	}
}

func (s *Sampler) DrawN(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = s.Draw()
	}
	return res
}
