package mesh

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/isofem/utils"
)

// Unit square split into two CSTs, a Q4 to the right, an LST and a Q9 on
// top of it and a VTK_LINE cell that has no planar element
const mixedVTK = `# vtk DataFile Version 2.0
test mesh
ASCII
DATASET UNSTRUCTURED_GRID
POINTS 17 double
0 0 0
1 0 0
1 1 0
0 1 0
2 0 0
2 1 0
0.5 1 0
0.5 1.5 0
0 1.5 0 0 2 0
1 2 0
1.5 1 0
2 1.5 0
1.5 2 0
1 1.5 0
1.5 1.5 0
2 2 0

CELLS 7 38
3 0 1 2
3 0 2 3
4 1 4 5 2
6 3 2 9 6 7 8
9 2 5 16 10 11 12 13 14 15
2 0 1
4 1 4 5 2

CELL_TYPES 7
5
5
9
22
28
3
9
`

func TestParseVTK(t *testing.T) {
	msh, err := ParseVTK(strings.NewReader(mixedVTK), false)
	require.NoError(t, err)
	assert.Len(t, msh.Points, 17)
	assert.Equal(t, utils.Point{0, 2}, msh.Points[9], "multiple points on one line")
	assert.Len(t, msh.CSTs, 2)
	assert.Len(t, msh.Q4s, 2)
	assert.Len(t, msh.LSTs, 1)
	assert.Len(t, msh.Q9s, 1)
	assert.Equal(t, 6, msh.NumElements())
	assert.Equal(t, 2*4+2*5+7+10, msh.NElementNodes())
	assert.Equal(t, []int{0, 2, 3}, msh.CSTs[1].IDs)
	assert.Equal(t, msh.Points[5], msh.Q9s[0].X[1])
	// The second Q4 overlaps the first
	assert.InDelta(t, 0.5+0.5+1+1+0.5+1, msh.Area(), 1.e-12)
}

func TestVTKRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "mixed.vtk")
	out := filepath.Join(dir, "mixed_out.vtk")
	require.NoError(t, os.WriteFile(in, []byte(mixedVTK), 0644))

	msh, err := ReadVTK(in, false)
	require.NoError(t, err)
	require.NoError(t, msh.WriteVTK(out))

	back, err := ReadVTK(out, false)
	require.NoError(t, err)
	assert.Equal(t, msh.Points, back.Points)
	for _, et := range utils.ElementTypes {
		els, backEls := msh.Elements(et), back.Elements(et)
		require.Len(t, backEls, len(els), et.String())
		for k := range els {
			assert.Equal(t, els[k].IDs, backEls[k].IDs)
			assert.Equal(t, els[k].X, backEls[k].X)
		}
	}
	{ // Writing again reproduces the file exactly
		var b1, b2 bytes.Buffer
		require.NoError(t, msh.Write(&b1))
		require.NoError(t, back.Write(&b2))
		assert.Equal(t, b1.String(), b2.String())
		assert.True(t, strings.HasPrefix(b1.String(), "# vtk DataFile Version 2.0\ncreated by isofem\nASCII\nDATASET UNSTRUCTURED_GRID\nPOINTS 17 double\n0 0 0.0\n"))
		assert.Contains(t, b1.String(), "CELLS 6 35\n3 0 1 2\n3 0 2 3\n4 1 4 5 2\n4 1 4 5 2\n6 3 2 9 6 7 8\n")
	}
}

func TestReadVTKErrors(t *testing.T) {
	{
		_, err := ReadVTK(filepath.Join(t.TempDir(), "missing.vtk"), false)
		assert.True(t, errors.Is(err, ErrResourceNotFound))
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "could not find file")
	}
	bad := map[string]string{
		"coordinate":      "POINTS 1 double\n0 x 0\n",
		"components":      "POINTS 1 double\n0 0 0 1\n",
		"point count":     "POINTS 2 double\n0 0 0\n",
		"cell length":     "POINTS 3 double\n0 0 0\n1 0 0\n0 1 0\nCELLS 1 4\n3 0 1\nCELL_TYPES 1\n5\n",
		"type count":      "POINTS 3 double\n0 0 0\n1 0 0\n0 1 0\nCELLS 1 4\n3 0 1 2\nCELL_TYPES 2\n5\n5\n",
		"node count":      "POINTS 3 double\n0 0 0\n1 0 0\n0 1 0\nCELLS 1 4\n3 0 1 2\nCELL_TYPES 1\n9\n",
		"index range":     "POINTS 3 double\n0 0 0\n1 0 0\n0 1 0\nCELLS 1 4\n3 0 1 3\nCELL_TYPES 1\n5\n",
		"cell type value": "POINTS 3 double\n0 0 0\n1 0 0\n0 1 0\nCELLS 1 4\n3 0 1 2\nCELL_TYPES 1\nfive\n",
	}
	for name, content := range bad {
		_, err := ParseVTK(strings.NewReader(content), false)
		assert.Error(t, err, name)
	}
	{ // Bad coordinates are reported as such, not as a short section
		_, err := ParseVTK(strings.NewReader("POINTS 2 double\nnan 0 0\n1 0 0\n"), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2: non-finite coordinate")
		_, err = ParseVTK(strings.NewReader("POINTS 2 double\n0 0 0\n1 -Inf 0\n"), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3: non-finite coordinate")
		_, err = ParseVTK(strings.NewReader("POINTS 1 double\nabc 0 0\n"), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2: invalid coordinate")
	}
	{ // Lower case header and field data outside the sections are ignored
		msh, err := ParseVTK(strings.NewReader("# vtk DataFile Version 2.0\nmesh from a test\nASCII\n"+
			"DATASET UNSTRUCTURED_GRID\nPOINTS 1 double\n0.5 0.25 0\nFIELD FieldData 1\npressure 1 1 double\n3.0\n"), false)
		require.NoError(t, err)
		assert.Equal(t, []utils.Point{{0.5, 0.25}}, msh.Points)
	}
}

func TestConnectivity(t *testing.T) {
	msh := NewMesh()
	for _, p := range []utils.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {5, 5}} {
		msh.AddPoint(p)
	}
	_, err := msh.AddElement(utils.Triangle, []int{0, 1, 2})
	require.NoError(t, err)
	_, err = msh.AddElement(utils.Triangle, []int{0, 2, 3})
	require.NoError(t, err)
	_, err = msh.AddElement(utils.Quad, []int{0, 1, 2})
	assert.Error(t, err)
	_, err = msh.AddElement(utils.Unknown, nil)
	assert.Error(t, err)

	c := msh.Connectivity()
	assert.Equal(t, []int{2, 1, 2, 1, 0}, c.Valence)
	assert.Equal(t, [][]int{{1}, {0}}, c.Neighbors)
	assert.Equal(t, []int{4}, c.Unreferenced())
	assert.Equal(t, 1., c.Incidence.At(1, 3))
	assert.Equal(t, 0., c.Incidence.At(0, 3))

	s := msh.Summary()
	assert.Equal(t, 5, s.NPoints)
	assert.Equal(t, 2, s.Counts[utils.Triangle])
	assert.InDelta(t, 1, s.Area, 1.e-12)
	assert.True(t, strings.HasPrefix(s.String(), "points: 5, cst: 2, q4: 0, lst: 0, q9: 0, unreferenced points: 1, area: "))

	{ // Empty mesh
		c := NewMesh().Connectivity()
		assert.Nil(t, c.Incidence)
		assert.Empty(t, c.Valence)
	}
}
