package validate

import (
	"fmt"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/utils"
)

// DefaultElement embeds the element at its template node positions
func DefaultElement(v FE2D.Variant) *FE2D.Element {
	return FE2D.NewElement(v.ElementType(), v.Y0())
}

// RandomPointInElement is a random convex combination of the template nodes,
// so it lies inside any convex reference cell
func RandomPointInElement(v FE2D.Variant, rnd *utils.Random) (Y utils.Point) {
	var (
		Y0   = v.Y0()
		lamb = make([]float64, len(Y0))
		sum  float64
	)
	for n := range lamb {
		lamb[n] = rnd.Float64()
		sum += lamb[n]
	}
	if sum == 0 {
		return Y0[0]
	}
	for n := range Y0 {
		Y = Y.Add(Y0[n].Scale(lamb[n] / sum))
	}
	return
}

// RandomElement draws node positions in [-1,1]^2 until the embedding passes
// CheckEmbedding at cfg.SamplePoints random interior points. No ordering of
// the nodes in embedded space is implied.
func RandomElement(v FE2D.Variant, rnd *utils.Random, cfg Config) (el *FE2D.Element, err error) {
	for iter := 0; iter < cfg.Retries; iter++ {
		el = FE2D.NewElement(v.ElementType(), rnd.Points(v.NodeCount()))
		samples := make([]utils.Point, cfg.SamplePoints)
		for i := range samples {
			samples[i] = RandomPointInElement(v, rnd)
		}
		if el.CheckEmbedding(samples, cfg.DetTol) == nil {
			return
		}
	}
	el = nil
	err = fmt.Errorf("%w: %s after %d attempts", ErrConstruction, v.ElementType(), cfg.Retries)
	return
}
