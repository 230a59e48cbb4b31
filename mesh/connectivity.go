package mesh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/james-bowman/sparse"

	"github.com/notargets/isofem/FE2D"
	"github.com/notargets/isofem/utils"
)

// Connectivity relates elements through shared points. Elements are indexed
// in AllElements order.
type Connectivity struct {
	Elements  []*FE2D.Element
	Incidence *sparse.CSR // Element to point, 1 where the element uses the point
	Valence   []int       // Number of elements using each point
	Neighbors [][]int     // Elements sharing at least two points with each element
}

// Connectivity builds the element to point incidence matrix and derives point
// valence from Incidence^T * Incidence and neighbors from Incidence * Incidence^T
func (m *Mesh) Connectivity() (c *Connectivity) {
	var (
		els = m.AllElements()
		K   = len(els)
		Np  = len(m.Points)
	)
	c = &Connectivity{
		Elements:  els,
		Valence:   make([]int, Np),
		Neighbors: make([][]int, K),
	}
	if K == 0 || Np == 0 {
		return
	}
	EToPTmp := sparse.NewDOK(K, Np)
	PToE := make([][]int, Np)
	for k, el := range els {
		for _, id := range el.IDs {
			EToPTmp.Set(k, id, 1)
			PToE[id] = append(PToE[id], k)
		}
	}
	c.Incidence = EToPTmp.ToCSR()

	PToP := sparse.NewCSR(Np, Np, nil, nil, nil)
	PToP.Mul(c.Incidence.T(), c.Incidence)
	for p := 0; p < Np; p++ {
		c.Valence[p] = int(PToP.At(p, p))
	}

	// Entry (k,kk) counts the points shared by elements k and kk
	EToE := sparse.NewCSR(K, K, nil, nil, nil)
	EToE.Mul(c.Incidence, c.Incidence.T())
	for k, el := range els {
		seen := map[int]bool{k: true}
		for _, id := range el.IDs {
			for _, kk := range PToE[id] {
				if seen[kk] {
					continue
				}
				seen[kk] = true
				if EToE.At(k, kk) >= 2 {
					c.Neighbors[k] = append(c.Neighbors[k], kk)
				}
			}
		}
		sort.Ints(c.Neighbors[k])
	}
	return
}

// Unreferenced lists the points no element uses
func (c *Connectivity) Unreferenced() (ids []int) {
	for p, v := range c.Valence {
		if v == 0 {
			ids = append(ids, p)
		}
	}
	return
}

// Summary describes a mesh for verbose output
type Summary struct {
	NPoints      int
	Counts       map[utils.ElementType]int
	Unreferenced []int
	Area         float64
	Boundaries   map[string]float64 // Length of each marker
}

func (m *Mesh) Summary() (s Summary) {
	s = Summary{
		NPoints:      len(m.Points),
		Counts:       make(map[utils.ElementType]int),
		Unreferenced: m.Connectivity().Unreferenced(),
		Area:         m.Area(),
		Boundaries:   make(map[string]float64),
	}
	for _, et := range utils.ElementTypes {
		s.Counts[et] = len(m.Elements(et))
	}
	for tag := range m.Markers {
		s.Boundaries[tag] = m.BoundaryLength(tag)
	}
	return
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "points: %d", s.NPoints)
	for _, et := range utils.ElementTypes {
		fmt.Fprintf(&b, ", %s: %d", et.ShortName(), s.Counts[et])
	}
	fmt.Fprintf(&b, ", unreferenced points: %d, area: %g", len(s.Unreferenced), s.Area)
	tags := make([]string, 0, len(s.Boundaries))
	for tag := range s.Boundaries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(&b, ", %s length: %g", tag, s.Boundaries[tag])
	}
	return b.String()
}
