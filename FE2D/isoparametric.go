package FE2D

import (
	"fmt"
	"math"

	"github.com/notargets/isofem/utils"
)

// Map is the isoparametric map from template point Y to embedded space
func (el *Element) Map(Y utils.Point) (P utils.Point) {
	eta := el.Eta(Y)
	for n, X := range el.X {
		P = P.Add(X.Scale(eta[n]))
	}
	return
}

// Jacobian J_ij = dX_i/dY_j = sum_n X_n[i] * Deta_n[j]
func (el *Element) Jacobian(Y utils.Point) (J utils.Matrix) {
	J = utils.NewMatrix(2, 2)
	for n, deta := range el.Deta(Y) {
		J.Add(el.X[n].Outer(deta))
	}
	return
}

func (el *Element) DetJ(Y utils.Point) float64 {
	return el.Jacobian(Y).Det()
}

// InverseJacobian returns J^-1 and det J at Y
func (el *Element) InverseJacobian(Y utils.Point) (Jinv utils.Matrix, det float64, err error) {
	J := el.Jacobian(Y)
	det = J.Det()
	if det == 0 {
		err = fmt.Errorf("%w: zero Jacobian at %v", ErrDegenerate, Y)
		return
	}
	if Jinv, err = J.Inverse(); err != nil {
		err = fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	return
}

// CheckEmbedding requires |det J| >= tol at every sample with no sign change
func (el *Element) CheckEmbedding(samples []utils.Point, tol float64) (err error) {
	var (
		sign float64
	)
	for _, Y := range samples {
		det := el.DetJ(Y)
		if math.Abs(det) < tol {
			return fmt.Errorf("%w: |det J| = %.3e < %.3e at %v", ErrDegenerate, math.Abs(det), tol, Y)
		}
		switch {
		case sign == 0:
			sign = math.Copysign(1, det)
		case sign*det < 0:
			return fmt.Errorf("%w: det J changes sign at %v", ErrDegenerate, Y)
		}
	}
	return
}

// PhysicalGradients returns the embedded space gradient of every shape
// function, B_n = J^-T Deta_n, and det J at template point Y
func (el *Element) PhysicalGradients(Y utils.Point) (B []utils.Point, det float64, err error) {
	var (
		Jinv utils.Matrix
	)
	if Jinv, det, err = el.InverseJacobian(Y); err != nil {
		return
	}
	B = make([]utils.Point, el.Np)
	for n, deta := range el.Deta(Y) {
		for j := 0; j < 2; j++ {
			B[n][j] = deta.Dot(utils.Point{Jinv.At(0, j), Jinv.At(1, j)})
		}
	}
	return
}

// Integrate evaluates the integral over the embedded element of a function
// expressed in template coordinates
func (el *Element) Integrate(f func(Y utils.Point) float64) (sum float64) {
	for q, Y := range el.Qp {
		sum += el.Qw[q] * f(Y) * math.Abs(el.DetJ(Y))
	}
	return
}

// Area of the embedded element
func (el *Element) Area() float64 {
	return el.Integrate(func(utils.Point) float64 { return 1 })
}
