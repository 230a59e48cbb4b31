package FE2D

import (
	"fmt"
	"math"

	"github.com/notargets/isofem/utils"
)

// Reference holds the template space data shared by every element of one
// type: node layout, quadrature rule and the shape function coefficients.
// Node ordering follows the VTK cell definitions so mesh files map directly.
type Reference struct {
	Type   utils.ElementType
	Np, Nq int
	R0     []utils.Point // Template space node positions [Np]
	Qp     []utils.Point // Quadrature points [Nq]
	Qw     []float64     // Quadrature weights [Nq]
	Basis  []Monomial    // Polynomial basis spanning the shape functions [Np]
	C      utils.Matrix  // Inverse Vandermonde, column m holds the coefficients of eta_m
	area   float64
	degree int
}

var references = make(map[utils.ElementType]*Reference)

func init() {
	var (
		third   = 1. / 3.
		sixth   = 1. / 6.
		gauss2  = []float64{-1. / math.Sqrt(3.), 1. / math.Sqrt(3.)}
		gauss2W = []float64{1, 1}
		gauss3  = []float64{-math.Sqrt(0.6), 0, math.Sqrt(0.6)}
		gauss3W = []float64{5. / 9., 8. / 9., 5. / 9.}
	)
	cstNodes := []utils.Point{{0, 0}, {1, 0}, {0, 1}}
	references[utils.Triangle] = NewReference(utils.Triangle,
		cstNodes,
		[]utils.Point{{third, third}}, []float64{0.5},
		0.5, 1)

	references[utils.Triangle6] = NewReference(utils.Triangle6,
		append(cstNodes, utils.Point{0.5, 0}, utils.Point{0.5, 0.5}, utils.Point{0, 0.5}),
		[]utils.Point{{sixth, sixth}, {2 * third, sixth}, {sixth, 2 * third}}, []float64{sixth, sixth, sixth},
		0.5, 2)

	q4Nodes := []utils.Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	qp, qw := TensorGauss(gauss2, gauss2W)
	references[utils.Quad] = NewReference(utils.Quad, q4Nodes, qp, qw, 4, 3)

	qp, qw = TensorGauss(gauss3, gauss3W)
	references[utils.Quad9] = NewReference(utils.Quad9,
		append(q4Nodes,
			utils.Point{0, -1}, utils.Point{1, 0}, utils.Point{0, 1}, utils.Point{-1, 0},
			utils.Point{0, 0}),
		qp, qw, 4, 5)
}

// GetReference returns the shared reference data for an element type
func GetReference(et utils.ElementType) (ref *Reference) {
	var ok bool
	if ref, ok = references[et]; !ok {
		panic(fmt.Errorf("no reference element for type %s", et))
	}
	return
}

// NewReference builds the shape function coefficients for a node layout by
// inverting the Vandermonde matrix of the type's monomial basis at the nodes,
// which makes eta_m(R0[n]) = delta_nm hold by construction.
func NewReference(et utils.ElementType, R0, Qp []utils.Point, Qw []float64, area float64, degree int) (ref *Reference) {
	var (
		err error
	)
	if len(R0) != et.GetNumNodes() {
		panic(fmt.Errorf("element %s needs %d nodes, have %d", et, et.GetNumNodes(), len(R0)))
	}
	if len(Qp) != len(Qw) {
		panic(fmt.Errorf("quadrature points and weights differ in length: %d != %d", len(Qp), len(Qw)))
	}
	ref = &Reference{
		Type:   et,
		Np:     len(R0),
		Nq:     len(Qp),
		R0:     R0,
		Qp:     Qp,
		Qw:     Qw,
		Basis:  MonomialBasis(et),
		area:   area,
		degree: degree,
	}
	V := Vandermonde(ref.Basis, R0)
	if ref.C, err = V.Inverse(); err != nil {
		panic(fmt.Errorf("singular Vandermonde matrix for %s: %w", et, err))
	}
	return
}

// TensorGauss forms the tensor product of a 1D Gauss rule, R varies fastest
func TensorGauss(x, w []float64) (Qp []utils.Point, Qw []float64) {
	for j, s := range x {
		for i, r := range x {
			Qp = append(Qp, utils.Point{r, s})
			Qw = append(Qw, w[i]*w[j])
		}
	}
	return
}

func (ref *Reference) ElementType() utils.ElementType { return ref.Type }
func (ref *Reference) NodeCount() int                 { return ref.Np }
func (ref *Reference) Dimension() int                 { return 2 }
func (ref *Reference) QuadratureCount() int           { return ref.Nq }
func (ref *Reference) ReferenceArea() float64         { return ref.area }

// Degree is the polynomial degree integrated exactly by the quadrature rule,
// in total degree for triangles and per axis for quadrilaterals
func (ref *Reference) Degree() int { return ref.degree }

// Y0 returns a copy of the template node positions
func (ref *Reference) Y0() (Y []utils.Point) {
	Y = make([]utils.Point, ref.Np)
	copy(Y, ref.R0)
	return
}

// QuadraturePoints returns a copy of the quadrature points
func (ref *Reference) QuadraturePoints() (Qp []utils.Point) {
	Qp = make([]utils.Point, ref.Nq)
	copy(Qp, ref.Qp)
	return
}

// QuadratureWeights returns a copy of the quadrature weights
func (ref *Reference) QuadratureWeights() (Qw []float64) {
	Qw = make([]float64, ref.Nq)
	copy(Qw, ref.Qw)
	return
}

// Shape names the reference cell, "triangle" or "quadrilateral"
func (ref *Reference) Shape() string {
	if ref.Type.IsSimplex() {
		return "triangle"
	}
	return "quadrilateral"
}
