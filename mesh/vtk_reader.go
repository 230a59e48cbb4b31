package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/notargets/isofem/utils"
)

// ErrResourceNotFound is returned when a mesh file does not exist
var ErrResourceNotFound = errors.New("resource not found")

type vtkSection uint8

const (
	sectionNone vtkSection = iota
	sectionPoints
	sectionCells
	sectionCellTypes
)

// ReadVTK reads an ASCII legacy VTK unstructured grid
func ReadVTK(filename string, verbose bool) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: could not find file %s: %w", ErrResourceNotFound, filename, err)
		}
		return nil, err
	}
	defer file.Close()

	msh, err := ParseVTK(file, verbose)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return msh, nil
}

// ParseVTK reads the POINTS, CELLS and CELL_TYPES sections. A blank line or
// another keyword ends a section, everything outside the three is ignored.
// Cells with an unsupported type code are skipped.
func ParseVTK(r io.Reader, verbose bool) (*Mesh, error) {
	var (
		msh                    = NewMesh()
		scanner                = bufio.NewScanner(r)
		section                vtkSection
		lineNo                 int
		nPointsDeclared        = -1
		cells                  [][]int
		cellTypes              []int
		nCellsDeclared, nTypes = -1, -1
	)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			section = sectionNone
			continue
		}

		if isKeyword(fields[0]) {
			section = sectionNone
			switch fields[0] {
			case "POINTS":
				section = sectionPoints
				nPointsDeclared = declaredCount(fields)
			case "CELLS":
				section = sectionCells
				nCellsDeclared = declaredCount(fields)
			case "CELL_TYPES":
				section = sectionCellTypes
				nTypes = declaredCount(fields)
			}
			continue
		}

		switch section {
		case sectionPoints:
			vals, err := parseFloats(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid coordinate: %w", lineNo, err)
			}
			for _, val := range vals {
				if math.IsNaN(val) || math.IsInf(val, 0) {
					return nil, fmt.Errorf("line %d: non-finite coordinate %v", lineNo, val)
				}
			}
			switch {
			case len(vals) == 2:
				msh.AddPoint(utils.Point{vals[0], vals[1]})
			case len(vals)%3 == 0:
				for i := 0; i < len(vals); i += 3 {
					msh.AddPoint(utils.Point{vals[i], vals[i+1]})
				}
			default:
				return nil, fmt.Errorf("line %d: expected 3 components per point, got %d values", lineNo, len(vals))
			}

		case sectionCells:
			ids, err := parseInts(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid cell entry: %w", lineNo, err)
			}
			if ids[0] != len(ids)-1 {
				return nil, fmt.Errorf("line %d: cell declares %d nodes, got %d", lineNo, ids[0], len(ids)-1)
			}
			cells = append(cells, ids[1:])

		case sectionCellTypes:
			codes, err := parseInts(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid cell type: %w", lineNo, err)
			}
			cellTypes = append(cellTypes, codes...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	switch {
	case nPointsDeclared >= 0 && nPointsDeclared != len(msh.Points):
		return nil, fmt.Errorf("POINTS declares %d points, read %d", nPointsDeclared, len(msh.Points))
	case nCellsDeclared >= 0 && nCellsDeclared != len(cells):
		return nil, fmt.Errorf("CELLS declares %d cells, read %d", nCellsDeclared, len(cells))
	case nTypes >= 0 && nTypes != len(cellTypes):
		return nil, fmt.Errorf("CELL_TYPES declares %d types, read %d", nTypes, len(cellTypes))
	case len(cells) != len(cellTypes):
		return nil, fmt.Errorf("read %d cells but %d cell types", len(cells), len(cellTypes))
	}

	for i, code := range cellTypes {
		et, ok := utils.FromVTKCode(code)
		if !ok {
			if verbose {
				fmt.Printf("skipping cell %d with unsupported VTK type %d\n", i, code)
			}
			continue
		}
		if len(cells[i]) != et.GetNumNodes() {
			return nil, fmt.Errorf("cell %d: VTK type %d (%s) needs %d nodes, got %d",
				i, code, et, et.GetNumNodes(), len(cells[i]))
		}
		if _, err := msh.AddElement(et, cells[i]); err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
	}
	if verbose {
		fmt.Printf("read %d points, %d CST, %d LST, %d Q4, %d Q9\n",
			len(msh.Points), len(msh.CSTs), len(msh.LSTs), len(msh.Q4s), len(msh.Q9s))
	}
	return msh, nil
}

// isKeyword is true for upper case section names (POINTS, CELL_TYPES, ...)
// and comments. Anything that parses as a number, nan and inf included, is data.
func isKeyword(field string) bool {
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return false
	}
	if field[0] == '#' {
		return true
	}
	for _, c := range field {
		if !unicode.IsUpper(c) && c != '_' {
			return false
		}
	}
	return true
}

// declaredCount parses the count following a section keyword, -1 when absent
func declaredCount(fields []string) int {
	if len(fields) < 2 {
		return -1
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return -1
	}
	return n
}

func parseFloats(fields []string) (vals []float64, err error) {
	vals = make([]float64, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return
		}
	}
	return
}

func parseInts(fields []string) (vals []int, err error) {
	vals = make([]int, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.Atoi(f); err != nil {
			return
		}
	}
	return
}
