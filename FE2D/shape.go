package FE2D

import (
	"github.com/notargets/isofem/utils"
)

// Variant is the capability set shared by all element types, the validation
// checks are written once against it
type Variant interface {
	ElementType() utils.ElementType
	NodeCount() int
	Dimension() int
	QuadratureCount() int
	Y0() []utils.Point
	QuadraturePoints() []utils.Point
	QuadratureWeights() []float64
	ReferenceArea() float64
	Degree() int
	Eta(Y utils.Point) []float64
	Deta(Y utils.Point) []utils.Point
}

// Monomial is the term R^I * S^J
type Monomial struct {
	I, J int
}

func (m Monomial) Eval(Y utils.Point) float64 {
	return utils.POW(Y[0], m.I) * utils.POW(Y[1], m.J)
}

func (m Monomial) Gradient(Y utils.Point) (G utils.Point) {
	if m.I > 0 {
		G[0] = float64(m.I) * utils.POW(Y[0], m.I-1) * utils.POW(Y[1], m.J)
	}
	if m.J > 0 {
		G[1] = float64(m.J) * utils.POW(Y[0], m.I) * utils.POW(Y[1], m.J-1)
	}
	return
}

// MonomialBasis returns the polynomial space of each element type: complete
// polynomials of the order for triangles, tensor products for quadrilaterals
func MonomialBasis(et utils.ElementType) (basis []Monomial) {
	switch et {
	case utils.Triangle, utils.Triangle6:
		P := 1
		if et == utils.Triangle6 {
			P = 2
		}
		for n := 0; n <= P; n++ {
			for j := 0; j <= n; j++ {
				basis = append(basis, Monomial{n - j, j})
			}
		}
	case utils.Quad, utils.Quad9:
		P := 1
		if et == utils.Quad9 {
			P = 2
		}
		for j := 0; j <= P; j++ {
			for i := 0; i <= P; i++ {
				basis = append(basis, Monomial{i, j})
			}
		}
	}
	return
}

// Vandermonde evaluates each basis term (column) at each node (row)
func Vandermonde(basis []Monomial, R []utils.Point) (V utils.Matrix) {
	V = utils.NewMatrix(len(R), len(basis))
	for sk, term := range basis {
		for n, Y := range R {
			V.M.Set(n, sk, term.Eval(Y))
		}
	}
	return
}

// Eta evaluates all shape functions at template point Y
func (ref *Reference) Eta(Y utils.Point) (eta []float64) {
	var (
		P = make([]float64, len(ref.Basis))
	)
	for k, term := range ref.Basis {
		P[k] = term.Eval(Y)
	}
	eta = make([]float64, ref.Np)
	for m := range eta {
		for k := range P {
			eta[m] += P[k] * ref.C.At(k, m)
		}
	}
	return
}

// Deta evaluates the template space gradient of all shape functions at Y
func (ref *Reference) Deta(Y utils.Point) (deta []utils.Point) {
	var (
		G = make([]utils.Point, len(ref.Basis))
	)
	for k, term := range ref.Basis {
		G[k] = term.Gradient(Y)
	}
	deta = make([]utils.Point, ref.Np)
	for m := range deta {
		for k := range G {
			deta[m] = deta[m].Add(G[k].Scale(ref.C.At(k, m)))
		}
	}
	return
}
