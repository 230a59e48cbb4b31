package models

import (
	"github.com/notargets/isofem/utils"
)

// Isotropic is small strain linear elasticity,
// W = Mu e:e + Lambda/2 tr(e)^2 with e = sym(grad u)
type Isotropic struct {
	Mu, Lambda float64
}

func NewIsotropic(mu, lambda float64) *Isotropic {
	return &Isotropic{Mu: mu, Lambda: lambda}
}

func newIsotropic(prms map[string]float64) (m Model, err error) {
	var mu, lambda float64
	if mu, lambda, err = lame(prms, 3, 2); err != nil {
		return
	}
	m = NewIsotropic(mu, lambda)
	return
}

func (iso *Isotropic) Name() string { return "isotropic" }

func strain(gradu utils.Matrix) (eps utils.Matrix) {
	eps = gradu.Copy().Add(gradu.Transpose()).Scale(0.5)
	return
}

func (iso *Isotropic) W(gradu utils.Matrix) float64 {
	eps := strain(gradu)
	tr := eps.Trace()
	return iso.Mu*eps.Contract(eps) + 0.5*iso.Lambda*tr*tr
}

// DW = C : grad u = 2 Mu e + Lambda tr(e) I
func (iso *Isotropic) DW(gradu utils.Matrix) (S utils.Matrix) {
	S = iso.DDW(gradu).Contract(gradu)
	return
}

// DDW is constant in grad u
func (iso *Isotropic) DDW(utils.Matrix) (C utils.Tensor4) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					C[i][j][k][l] = iso.Mu*(delta(i, k)*delta(j, l)+delta(i, l)*delta(j, k)) +
						iso.Lambda*delta(i, j)*delta(k, l)
				}
			}
		}
	}
	return
}
