package FE2D

import (
	"fmt"
	"math"

	"github.com/notargets/isofem/models"
	"github.com/notargets/isofem/utils"
)

// quadratureGeometry holds the physical shape function gradients and the
// Jacobian weight at one quadrature point
type quadratureGeometry struct {
	B []utils.Point
	w float64 // w_q * |det J|
}

func (el *Element) geometry() (geo []quadratureGeometry) {
	geo = make([]quadratureGeometry, el.Nq)
	for q, Y := range el.Qp {
		B, det, err := el.PhysicalGradients(Y)
		if err != nil {
			panic(fmt.Errorf("quadrature point %d: %w", q, err))
		}
		geo[q] = quadratureGeometry{B: B, w: el.Qw[q] * math.Abs(det)}
	}
	return
}

// DisplacementGradient returns grad u_ij = sum_n u_n[i] * B_n[j]
func DisplacementGradient(u, B []utils.Point) (G utils.Matrix) {
	G = utils.NewMatrix(2, 2)
	for n := range B {
		G.Add(u[n].Outer(B[n]))
	}
	return
}

func (el *Element) checkDisplacement(u []utils.Point) {
	if len(u) != el.Np {
		panic(fmt.Errorf("element %s needs %d nodal displacements, have %d", el.Type, el.Np, len(u)))
	}
}

// Energy integrates the model energy density over the embedded element
func (el *Element) Energy(model models.Model, u []utils.Point) (W float64) {
	el.checkDisplacement(u)
	for _, g := range el.geometry() {
		W += g.w * model.W(DisplacementGradient(u, g.B))
	}
	return
}

// DEnergy is the gradient of Energy with respect to each nodal displacement,
// DW_n[i] = sum_q w_q |J| sum_j DWm_ij B_n[j]
func (el *Element) DEnergy(model models.Model, u []utils.Point) (DW []utils.Point) {
	el.checkDisplacement(u)
	DW = make([]utils.Point, el.Np)
	for _, g := range el.geometry() {
		P := model.DW(DisplacementGradient(u, g.B))
		for n, Bn := range g.B {
			DW[n] = DW[n].Add(utils.Point(P.MulVec(Bn[:])).Scale(g.w))
		}
	}
	return
}

// DDEnergy returns the Np x Np blocks of the Hessian, block [n][m] holds
// d2W / du_n[i] du_m[k] = sum_q w_q |J| sum_jl DDWm_ijkl B_n[j] B_m[l]
func (el *Element) DDEnergy(model models.Model, u []utils.Point) (DDW [][]utils.Matrix) {
	el.checkDisplacement(u)
	DDW = make([][]utils.Matrix, el.Np)
	for n := range DDW {
		DDW[n] = make([]utils.Matrix, el.Np)
		for m := range DDW[n] {
			DDW[n][m] = utils.NewMatrix(2, 2)
		}
	}
	for _, g := range el.geometry() {
		C := model.DDW(DisplacementGradient(u, g.B))
		for n, Bn := range g.B {
			for m, Bm := range g.B {
				K := DDW[n][m]
				for i := 0; i < 2; i++ {
					for j := 0; j < 2; j++ {
						// CB_k = sum_l C_ijkl B_m[l]
						CB := C.Slice(i, j).MulVec(Bm[:])
						for k := 0; k < 2; k++ {
							K.Set(i, k, K.At(i, k)+g.w*Bn[j]*CB[k])
						}
					}
				}
			}
		}
	}
	return
}
