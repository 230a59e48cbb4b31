package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/notargets/isofem/utils"
)

// WriteVTK writes the mesh as an ASCII legacy VTK unstructured grid
func (m *Mesh) WriteVTK(filename string) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return m.Write(file)
}

// Write emits points, then cells grouped by type in the order CST, Q4, LST,
// Q9, then the cell types. Counts are recomputed from the mesh.
func (m *Mesh) Write(w io.Writer) error {
	var (
		bw  = bufio.NewWriter(w)
		num = func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	)
	bw.WriteString("# vtk DataFile Version 2.0\n")
	bw.WriteString("created by isofem\n")
	bw.WriteString("ASCII\n")
	bw.WriteString("DATASET UNSTRUCTURED_GRID\n")

	writef(bw, "POINTS %d double\n", len(m.Points))
	for _, p := range m.Points {
		writef(bw, "%s %s 0.0\n", num(p[0]), num(p[1]))
	}
	bw.WriteString("\n")

	writef(bw, "CELLS %d %d\n", m.NumElements(), m.NElementNodes())
	for _, et := range utils.ElementTypes {
		for _, el := range m.Elements(et) {
			writef(bw, "%d", len(el.IDs))
			for _, id := range el.IDs {
				writef(bw, " %d", id)
			}
			bw.WriteString("\n")
		}
	}
	bw.WriteString("\n")

	writef(bw, "CELL_TYPES %d\n", m.NumElements())
	for _, et := range utils.ElementTypes {
		for range m.Elements(et) {
			writef(bw, "%d\n", et.VTKCode())
		}
	}
	return bw.Flush()
}

func writef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
