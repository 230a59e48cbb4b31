package utils

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Random is a seeded source of uniform samples. Each owner holds its own
// instance, there is no package level generator.
type Random struct {
	src     rand.Source
	unit    distuv.Uniform
	balance distuv.Uniform
}

func NewRandom(seed uint64) (r *Random) {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	r = &Random{
		src:     src,
		unit:    distuv.Uniform{Min: 0, Max: 1, Src: src},
		balance: distuv.Uniform{Min: -1, Max: 1, Src: src},
	}
	return
}

// Float64 returns a sample in [0,1)
func (r *Random) Float64() float64 { return r.unit.Rand() }

// Symmetric returns a sample in [-1,1)
func (r *Random) Symmetric() float64 { return r.balance.Rand() }

// Point returns a point with both coordinates in [-1,1)
func (r *Random) Point() Point { return Point{r.Symmetric(), r.Symmetric()} }

// Points returns N random points, see Point
func (r *Random) Points(N int) (P []Point) {
	P = make([]Point, N)
	for n := range P {
		P[n] = r.Point()
	}
	return
}

// Matrix returns an nr x nc matrix with entries in [-scale,scale)
func (r *Random) Matrix(nr, nc int, scale float64) (R Matrix) {
	R = NewMatrix(nr, nc)
	data := R.Data()
	for i := range data {
		data[i] = scale * r.Symmetric()
	}
	return
}
