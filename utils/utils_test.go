package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	A := NewMatrix(2, 2, []float64{4, 7, 2, 6})
	{
		Ainv, err := A.Inverse()
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.6, -0.7, -0.2, 0.4}, Ainv.Data(), 1.e-14)
		assert.InDeltaSlice(t, NewIdentity(2).Data(), A.Mul(Ainv).Data(), 1.e-14)
		// Receiver is untouched
		assert.Equal(t, []float64{4, 7, 2, 6}, A.Data())
	}
	assert.InDelta(t, 10, A.Det(), 1.e-14)
	assert.Equal(t, 10., A.Trace())
	assert.Equal(t, []float64{4, 2, 7, 6}, A.Transpose().Data())
	assert.Equal(t, 4*4+7*7+2*2+6*6., A.Contract(A))
	assert.Equal(t, []float64{11, 8}, A.MulVec([]float64{1, 1}))
	assert.Equal(t, []float64{8, 14, 4, 12}, A.Copy().Scale(2).Data())
	assert.Equal(t, []float64{5, 7, 2, 7}, A.Copy().Add(NewIdentity(2)).Data())
	{
		_, err := NewMatrix(2, 2, []float64{1, 2, 2, 4}).Inverse()
		assert.Error(t, err)
		_, err = NewMatrix(2, 3).Inverse()
		assert.Error(t, err)
	}
	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
	assert.Panics(t, func() { A.MulVec([]float64{1}) })
}

func TestPoint(t *testing.T) {
	p, q := Point{3, 4}, Point{1, -2}
	assert.Equal(t, Point{4, 2}, p.Add(q))
	assert.Equal(t, Point{2, 6}, p.Sub(q))
	assert.Equal(t, Point{6, 8}, p.Scale(2))
	assert.Equal(t, -5., p.Dot(q))
	assert.Equal(t, 5., p.Norm())
	assert.Equal(t, []float64{3, -6, 4, -8}, p.Outer(q).Data())
	P := []Point{p, q}
	assert.Equal(t, []float64{3, 4, 1, -2}, Flatten(P))
	assert.Equal(t, P, Unflatten(Flatten(P)))
}

func TestTensor4(t *testing.T) {
	var T Tensor4
	// T_ijkl = delta_ik delta_jl maps B to itself
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			T[i][j][i][j] = 1
		}
	}
	B := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	assert.Equal(t, B.Data(), T.Contract(B).Data())
	assert.Equal(t, []float64{0, 1, 0, 0}, T.Slice(0, 1).Data())
}

func TestMathFunctions(t *testing.T) {
	assert.Equal(t, 1., Factorial(0))
	assert.Equal(t, 120., Factorial(5))
	for p := -9; p <= 9; p++ {
		assert.InDelta(t, math.Pow(1.3, float64(p)), POW(1.3, p), 1.e-12)
	}
}

func TestRandom(t *testing.T) {
	r1, r2 := NewRandom(5), NewRandom(5)
	for i := 0; i < 100; i++ {
		a := r1.Float64()
		assert.Equal(t, a, r2.Float64(), "same seed, same sequence")
		assert.True(t, a >= 0 && a < 1)
		s := r1.Symmetric()
		r2.Symmetric()
		assert.True(t, s >= -1 && s < 1)
	}
	M := r1.Matrix(3, 2, 0.1)
	nr, nc := M.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 2, nc)
	for _, val := range M.Data() {
		assert.True(t, math.Abs(val) <= 0.1)
	}
	assert.Len(t, r1.Points(4), 4)
	assert.NotEqual(t, NewRandom(1).Float64(), NewRandom(2).Float64())
}

func TestElementTypes(t *testing.T) {
	assert.Equal(t, []ElementType{Triangle, Quad, Triangle6, Quad9}, ElementTypes)
	for _, et := range ElementTypes {
		back, ok := FromVTKCode(et.VTKCode())
		assert.True(t, ok)
		assert.Equal(t, et, back)
		parsed, err := ParseElementType(et.ShortName())
		require.NoError(t, err)
		assert.Equal(t, et, parsed)
	}
	assert.Equal(t, 22, Triangle6.VTKCode())
	assert.Equal(t, 28, Quad9.VTKCode())
	assert.Equal(t, 9, Quad9.GetNumNodes())
	assert.True(t, Triangle6.IsSimplex())
	assert.False(t, Quad.IsSimplex())
	_, ok := FromVTKCode(3)
	assert.False(t, ok)
	_, err := ParseElementType("hex8")
	assert.Error(t, err)
	assert.Equal(t, "Invalid", ElementType(42).String())
}
