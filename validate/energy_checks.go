package validate

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/models"
	"github.com/notargets/isofem/utils"
)

// IsoparametricCheck requires the energy of random displacement fields to
// depend on the embedding: summed over random elements and fields, the
// energies on a random element must differ from those on the default one
func IsoparametricCheck(v FE2D.Variant, model models.Model, rnd *utils.Random, cfg Config) (err error) {
	var (
		standard = DefaultElement(v)
		total    float64
		el       *FE2D.Element
	)
	for i := 0; i < cfg.Elements; i++ {
		if el, err = RandomElement(v, rnd, cfg); err != nil {
			return
		}
		for j := 0; j < cfg.Fields; j++ {
			u := rnd.Points(v.NodeCount())
			total += math.Abs(standard.Energy(model, u) - el.Energy(model, u))
		}
	}
	if total < shapeTol {
		return failf("IsoparametricCheck", "energy is unchanged by the embedding, total |dW| = %v", total)
	}
	return
}

// EnergyDerivative compares DEnergy with a forward difference of Energy and
// DDEnergy with a forward difference of DEnergy on random elements. Every
// entry is held to energyTol relative to the larger of its two values, or
// absolutely below 1.
func EnergyDerivative(v FE2D.Variant, model models.Model, rnd *utils.Random, cfg Config) (err error) {
	var (
		N         = v.NodeCount()
		energySum float64
		el        *FE2D.Element
	)
	for iter := 0; iter < cfg.Elements; iter++ {
		if el, err = RandomElement(v, rnd, cfg); err != nil {
			return
		}
		var (
			u = utils.Flatten(rnd.Points(N))
			W = func(x []float64) float64 {
				return el.Energy(model, utils.Unflatten(x))
			}
			DW = func(y, x []float64) {
				copy(y, utils.Flatten(el.DEnergy(model, utils.Unflatten(x))))
			}
			W0 = W(u)
		)
		energySum += math.Abs(W0)

		exact := utils.Flatten(el.DEnergy(model, utils.Unflatten(u)))
		numerical := fd.Gradient(nil, W, u, &fd.Settings{
			Formula: fd.Forward, Step: fdStep, OriginKnown: true, OriginValue: W0})
		for a := range exact {
			if relDiff(exact[a], numerical[a], 1) > energyTol {
				return failf("EnergyDerivative", "element %d DW: n=%d i=%d exact = %v, numerical = %v",
					iter, a/2, a%2, exact[a], numerical[a])
			}
		}

		hessian := mat.NewDense(2*N, 2*N, nil)
		fd.Jacobian(hessian, DW, u, &fd.JacobianSettings{
			Formula: fd.Forward, Step: fdStep, OriginValue: exact})
		DDW := el.DDEnergy(model, utils.Unflatten(u))
		for n := 0; n < N; n++ {
			for m := 0; m < N; m++ {
				for i := 0; i < 2; i++ {
					for j := 0; j < 2; j++ {
						// d DW_m[j] / d u_n[i]
						num := hessian.At(2*m+j, 2*n+i)
						ex := DDW[n][m].At(i, j)
						if relDiff(ex, num, 1) > energyTol {
							return failf("EnergyDerivative", "element %d DDW: n=%d m=%d i=%d j=%d exact = %v, numerical = %v",
								iter, n, m, i, j, ex, num)
						}
					}
				}
			}
		}
	}
	if energySum < shapeTol {
		return failf("EnergyDerivative", "energy is identically zero, sum |W| = %v", energySum)
	}
	return
}
