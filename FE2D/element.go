package FE2D

import (
	"errors"
	"fmt"

	"github.com/notargets/isofem/utils"
)

// ErrDegenerate reports an embedding whose Jacobian is singular or inverted
var ErrDegenerate = errors.New("degenerate element embedding")

// Element is an isoparametric element: the shared reference data of its type
// and the embedded position of each node
type Element struct {
	*Reference
	X   []utils.Point // Embedded node positions [Np]
	IDs []int         // Mesh point index of each node, nil when built standalone
}

// NewElement copies the embedded positions, the element never aliases X
func NewElement(et utils.ElementType, X []utils.Point) (el *Element) {
	ref := GetReference(et)
	if len(X) != ref.Np {
		panic(fmt.Errorf("element %s needs %d embedded positions, have %d", et, ref.Np, len(X)))
	}
	el = &Element{
		Reference: ref,
		X:         make([]utils.Point, ref.Np),
	}
	copy(el.X, X)
	return
}

// NewElementFromPoints builds an element from mesh point indices
func NewElementFromPoints(et utils.ElementType, points []utils.Point, ids []int) (el *Element, err error) {
	var (
		ref = GetReference(et)
		X   = make([]utils.Point, ref.Np)
	)
	if len(ids) != ref.Np {
		err = fmt.Errorf("element %s needs %d node indices, have %d", et, ref.Np, len(ids))
		return
	}
	for n, id := range ids {
		if id < 0 || id >= len(points) {
			err = fmt.Errorf("node index %d out of range [0,%d)", id, len(points))
			return
		}
		X[n] = points[id]
	}
	el = NewElement(et, X)
	el.IDs = make([]int, len(ids))
	copy(el.IDs, ids)
	return
}

func NewCST(X []utils.Point) *Element { return NewElement(utils.Triangle, X) }
func NewLST(X []utils.Point) *Element { return NewElement(utils.Triangle6, X) }
func NewQ4(X []utils.Point) *Element  { return NewElement(utils.Quad, X) }
func NewQ9(X []utils.Point) *Element  { return NewElement(utils.Quad9, X) }

// NewDefault embeds the element at its template node positions
func NewDefault(et utils.ElementType) *Element {
	return NewElement(et, GetReference(et).R0)
}
