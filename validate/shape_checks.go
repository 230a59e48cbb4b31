package validate

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/utils"
)

const (
	shapeTol      = 1.e-8
	fdStep        = 1.e-8
	etaDerivTol   = 1.e-4
	energyTol     = 1.e-3
	modelDerivTol = 1.e-6
)

// relDiff normalizes the difference of a and b by the larger magnitude,
// never by less than floor
func relDiff(a, b, floor float64) float64 {
	norm := math.Max(math.Max(math.Abs(a), math.Abs(b)), floor)
	return math.Abs(a-b) / norm
}

// Dirac checks eta_m(Y0[n]) = delta_nm
func Dirac(v FE2D.Variant) error {
	for n, Y := range v.Y0() {
		for m, eta := range v.Eta(Y) {
			var expected float64
			if n == m {
				expected = 1
			}
			if math.Abs(eta-expected) > shapeTol {
				return failf("Dirac", "n=%d m=%d eta^m(y^n) = %v != %v", n, m, eta, expected)
			}
		}
	}
	return nil
}

// SumToUnity checks the shape functions form a partition of unity at random
// interior points
func SumToUnity(v FE2D.Variant, rnd *utils.Random, cfg Config) error {
	for iter := 0; iter < cfg.Points; iter++ {
		Y := RandomPointInElement(v, rnd)
		if sum := floats.Sum(v.Eta(Y)); math.Abs(sum-1) > shapeTol {
			return failf("SumToUnity", "sum=%v for Y = [%v, %v]", sum, Y[0], Y[1])
		}
	}
	return nil
}

// Quadrature integrates the sum of the shape functions over the reference
// cell and compares with the exact cell area
func Quadrature(v FE2D.Variant) error {
	var (
		Aexact     = v.ReferenceArea()
		Anumerical float64
		Qw         = v.QuadratureWeights()
	)
	for q, Y := range v.QuadraturePoints() {
		Anumerical += Qw[q] * floats.Sum(v.Eta(Y))
	}
	switch {
	case math.Abs(Aexact) < shapeTol:
		return failf("Quadrature", "exact area of element is zero")
	case math.Abs(Anumerical) < shapeTol:
		return failf("Quadrature", "got zero computed area")
	case math.Abs(Aexact-Anumerical) > shapeTol:
		return failf("Quadrature", "Aexact = %v, Anumerical = %v", Aexact, Anumerical)
	}
	return nil
}

// QuadratureExactness integrates every monomial the rule claims to integrate
// exactly and compares with the closed form integral over the reference cell
func QuadratureExactness(v FE2D.Variant) error {
	var (
		Qp      = v.QuadraturePoints()
		Qw      = v.QuadratureWeights()
		P       = v.Degree()
		simplex = v.ElementType().IsSimplex()
	)
	for a := 0; a <= P; a++ {
		for b := 0; b <= P; b++ {
			if simplex && a+b > P {
				continue
			}
			term := FE2D.Monomial{I: a, J: b}
			var numerical float64
			for q, Y := range Qp {
				numerical += Qw[q] * term.Eval(Y)
			}
			exact := monomialIntegral(a, b, simplex)
			if math.Abs(numerical-exact) > shapeTol {
				return failf("QuadratureExactness", "integral of r^%d s^%d: exact = %v, numerical = %v",
					a, b, exact, numerical)
			}
		}
	}
	return nil
}

// monomialIntegral of r^a s^b over the unit right triangle or [-1,1]^2
func monomialIntegral(a, b int, simplex bool) float64 {
	if simplex {
		return utils.Factorial(a) * utils.Factorial(b) / utils.Factorial(a+b+2)
	}
	line := func(k int) float64 {
		if k%2 == 1 {
			return 0
		}
		return 2. / float64(k+1)
	}
	return line(a) * line(b)
}

// EtaDerivative compares Deta with a forward difference of Eta
func EtaDerivative(v FE2D.Variant, rnd *utils.Random, cfg Config) error {
	settings := &fd.Settings{Formula: fd.Forward, Step: fdStep}
	for iter := 0; iter < cfg.Points; iter++ {
		var (
			Y    = RandomPointInElement(v, rnd)
			deta = v.Deta(Y)
		)
		for n := range deta {
			for d := 0; d < 2; d++ {
				etaAlong := func(t float64) float64 {
					Yp := Y
					Yp[d] = t
					return v.Eta(Yp)[n]
				}
				numerical := fd.Derivative(etaAlong, Y[d], settings)
				if relDiff(deta[n][d], numerical, 1) > etaDerivTol {
					return failf("EtaDerivative", "n=%d d=%d Y = [%v, %v]: exact = %v, numerical = %v",
						n, d, Y[0], Y[1], deta[n][d], numerical)
				}
			}
		}
	}
	return nil
}
