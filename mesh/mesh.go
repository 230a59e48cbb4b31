package mesh

import (
	"fmt"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/utils"
)

// Mesh holds point positions and one element array per type, elements
// reference points by index into Points
type Mesh struct {
	Points []utils.Point
	CSTs   []*FE2D.Element
	LSTs   []*FE2D.Element
	Q4s    []*FE2D.Element
	Q9s    []*FE2D.Element

	// Boundary line segments by marker tag, only read from SU2 files
	Markers map[string][][]int
}

func NewMesh() *Mesh {
	return &Mesh{}
}

// AddPoint appends a point and returns its index
func (m *Mesh) AddPoint(p utils.Point) int {
	m.Points = append(m.Points, p)
	return len(m.Points) - 1
}

// AddElement builds an element from point indices and appends it to the
// array for its type
func (m *Mesh) AddElement(et utils.ElementType, ids []int) (el *FE2D.Element, err error) {
	if et.GetNumNodes() == 0 {
		err = fmt.Errorf("unsupported element type %s", et)
		return
	}
	if el, err = FE2D.NewElementFromPoints(et, m.Points, ids); err != nil {
		return
	}
	switch et {
	case utils.Triangle:
		m.CSTs = append(m.CSTs, el)
	case utils.Triangle6:
		m.LSTs = append(m.LSTs, el)
	case utils.Quad:
		m.Q4s = append(m.Q4s, el)
	case utils.Quad9:
		m.Q9s = append(m.Q9s, el)
	}
	return
}

// Elements returns the element array for a type
func (m *Mesh) Elements(et utils.ElementType) []*FE2D.Element {
	switch et {
	case utils.Triangle:
		return m.CSTs
	case utils.Triangle6:
		return m.LSTs
	case utils.Quad:
		return m.Q4s
	case utils.Quad9:
		return m.Q9s
	}
	return nil
}

// AllElements concatenates the element arrays in output order
func (m *Mesh) AllElements() (els []*FE2D.Element) {
	for _, et := range utils.ElementTypes {
		els = append(els, m.Elements(et)...)
	}
	return
}

func (m *Mesh) NumElements() int {
	return len(m.CSTs) + len(m.LSTs) + len(m.Q4s) + len(m.Q9s)
}

// NElementNodes is the CELLS size entry, one count plus the node indices per element
func (m *Mesh) NElementNodes() (n int) {
	for _, et := range utils.ElementTypes {
		n += (et.GetNumNodes() + 1) * len(m.Elements(et))
	}
	return
}

// BoundaryLength sums the segment lengths of a marker, zero for an unknown tag
func (m *Mesh) BoundaryLength(tag string) (length float64) {
	for _, seg := range m.Markers[tag] {
		length += m.Points[seg[1]].Sub(m.Points[seg[0]]).Norm()
	}
	return
}

// Area is the summed physical area of all elements
func (m *Mesh) Area() (area float64) {
	for _, el := range m.AllElements() {
		area += el.Area()
	}
	return
}
