package utils

// Tensor4 is a fourth order tensor in two dimensions, indexed [i][j][k][l]
type Tensor4 [2][2][2][2]float64

// Contract returns the 2x2 matrix A_ij = T_ijkl B_kl
func (t Tensor4) Contract(B Matrix) (A Matrix) {
	A = NewMatrix(2, 2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum float64
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					sum += t[i][j][k][l] * B.At(k, l)
				}
			}
			A.M.Set(i, j, sum)
		}
	}
	return
}

// Slice returns the 2x2 matrix T_ijkl for fixed (i,j)
func (t Tensor4) Slice(i, j int) (A Matrix) {
	A = NewMatrix(2, 2)
	for k := 0; k < 2; k++ {
		for l := 0; l < 2; l++ {
			A.M.Set(k, l, t[i][j][k][l])
		}
	}
	return
}
