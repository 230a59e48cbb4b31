package models

import (
	"math"

	"github.com/notargets/isofem/utils"
)

// NeoHookean is the compressible neo-Hookean law in terms of F = I + grad u,
// W = Mu/2 (tr F^T F - 2) - Mu ln J + Lambda/2 (ln J)^2.
// W is +Inf when J <= 0, the derivatives are only meaningful for J > 0.
type NeoHookean struct {
	Mu, Lambda float64
}

func NewNeoHookean(mu, lambda float64) *NeoHookean {
	return &NeoHookean{Mu: mu, Lambda: lambda}
}

func newNeoHookean(prms map[string]float64) (m Model, err error) {
	var mu, lambda float64
	if mu, lambda, err = lame(prms, 1, 1); err != nil {
		return
	}
	m = NewNeoHookean(mu, lambda)
	return
}

func (nh *NeoHookean) Name() string { return "neohookean" }

func deformation(gradu utils.Matrix) (F utils.Matrix, J float64) {
	F = gradu.Copy().Add(utils.NewIdentity(2))
	J = F.Det()
	return
}

func (nh *NeoHookean) W(gradu utils.Matrix) float64 {
	F, J := deformation(gradu)
	if J <= 0 {
		return math.Inf(1)
	}
	var (
		lnJ = math.Log(J)
		C   = F.Transpose().Mul(F) // Right Cauchy-Green
	)
	return 0.5*nh.Mu*(C.Trace()-2) - nh.Mu*lnJ + 0.5*nh.Lambda*lnJ*lnJ
}

// DW is the first Piola-Kirchhoff stress, P = Mu F + (Lambda ln J - Mu) F^-T
func (nh *NeoHookean) DW(gradu utils.Matrix) (P utils.Matrix) {
	F, J := deformation(gradu)
	FinvT := inverse2(F, J).Transpose()
	P = F.Copy().Scale(nh.Mu).Add(FinvT.Scale(nh.Lambda*math.Log(J) - nh.Mu))
	return
}

func (nh *NeoHookean) DDW(gradu utils.Matrix) (C utils.Tensor4) {
	var (
		F, J = deformation(gradu)
		Fi   = inverse2(F, J)
		c    = nh.Lambda*math.Log(J) - nh.Mu
	)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					C[i][j][k][l] = nh.Mu*delta(i, k)*delta(j, l) +
						nh.Lambda*Fi.At(j, i)*Fi.At(l, k) -
						c*Fi.At(j, k)*Fi.At(l, i)
				}
			}
		}
	}
	return
}

// inverse2 is the closed form inverse of a 2x2 matrix with determinant J
func inverse2(F utils.Matrix, J float64) utils.Matrix {
	return utils.NewMatrix(2, 2, []float64{
		F.At(1, 1) / J, -F.At(0, 1) / J,
		-F.At(1, 0) / J, F.At(0, 0) / J,
	})
}
