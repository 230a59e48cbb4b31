package validate

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/isofem/models"
	"github.com/notargets/isofem/utils"
)

// ModelDerivative compares DW with a backward difference of W and DDW with a
// backward difference of DW at random displacement gradients
func ModelDerivative(model models.Model, rnd *utils.Random, cfg Config) error {
	var (
		asMatrix = func(x []float64) utils.Matrix {
			return utils.NewMatrix(2, 2, append([]float64(nil), x...))
		}
		W = func(x []float64) float64 {
			return model.W(asMatrix(x))
		}
		DW = func(y, x []float64) {
			copy(y, model.DW(asMatrix(x)).Data())
		}
		// Normalization used for the model derivatives
		differs = func(a, b float64) bool {
			return math.Abs(a-b)/math.Max(math.Abs(a)+math.Abs(b), 1) > modelDerivTol
		}
	)
	for iter := 0; iter < cfg.Points; iter++ {
		var (
			gradu = rnd.Matrix(2, 2, cfg.GradientScale)
			x     = gradu.Data()
			dw    = model.DW(gradu)
			ddw   = model.DDW(gradu)
		)
		numerical := fd.Gradient(nil, W, x, &fd.Settings{Formula: fd.Backward, Step: fdStep})
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				if differs(dw.At(i, j), numerical[2*i+j]) {
					return failf("ModelDerivative", "%s DW: i=%d j=%d exact = %v, numerical = %v",
						model.Name(), i, j, dw.At(i, j), numerical[2*i+j])
				}
			}
		}
		jac := mat.NewDense(4, 4, nil)
		fd.Jacobian(jac, DW, x, &fd.JacobianSettings{Formula: fd.Backward, Step: fdStep})
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 2; k++ {
					for l := 0; l < 2; l++ {
						num := jac.At(2*i+j, 2*k+l)
						if differs(ddw[i][j][k][l], num) {
							return failf("ModelDerivative", "%s DDW: i=%d j=%d k=%d l=%d exact = %v, numerical = %v",
								model.Name(), i, j, k, l, ddw[i][j][k][l], num)
						}
					}
				}
			}
		}
	}
	return nil
}
