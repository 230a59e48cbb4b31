package utils

import (
	"math"
)

// Point is a location or a vector in two dimensional space, used for both
// template (R,S) coordinates and embedded (X,Y) coordinates
type Point [2]float64

func (p Point) Add(a Point) Point     { return Point{p[0] + a[0], p[1] + a[1]} }
func (p Point) Sub(a Point) Point     { return Point{p[0] - a[0], p[1] - a[1]} }
func (p Point) Scale(a float64) Point { return Point{a * p[0], a * p[1]} }
func (p Point) Dot(a Point) float64   { return p[0]*a[0] + p[1]*a[1] }
func (p Point) Norm() float64         { return math.Hypot(p[0], p[1]) }

// Outer returns the 2x2 matrix p ⊗ a
func (p Point) Outer(a Point) (R Matrix) {
	return NewMatrix(2, 2, []float64{
		p[0] * a[0], p[0] * a[1],
		p[1] * a[0], p[1] * a[1],
	})
}

// Flatten packs points into a single slice ordered [p0x, p0y, p1x, p1y, ...]
func Flatten(P []Point) (f []float64) {
	f = make([]float64, 2*len(P))
	for n, p := range P {
		f[2*n], f[2*n+1] = p[0], p[1]
	}
	return
}

// Unflatten is the inverse of Flatten
func Unflatten(f []float64) (P []Point) {
	P = make([]Point, len(f)/2)
	for n := range P {
		P[n] = Point{f[2*n], f[2*n+1]}
	}
	return
}
