package utils

import "fmt"

// ElementType represents the planar finite element types

type ElementType int

const (
	Unknown   ElementType = iota
	Triangle              // 3-node triangle (CST)
	Triangle6             // 6-node triangle (quadratic, LST)
	Quad                  // 4-node quad (bilinear)
	Quad9                 // 9-node quad (biquadratic)
)

// ElementTypes lists the supported types in output order
var ElementTypes = []ElementType{Triangle, Quad, Triangle6, Quad9}

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Triangle", "Triangle6", "Quad", "Quad9",
	}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// ShortName is the conventional abbreviation used on the command line
func (e ElementType) ShortName() string {
	switch e {
	case Triangle:
		return "cst"
	case Triangle6:
		return "lst"
	case Quad:
		return "q4"
	case Quad9:
		return "q9"
	default:
		return "unknown"
	}
}

// GetNumNodes returns the number of nodes for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Triangle:
		return 3
	case Triangle6:
		return 6
	case Quad:
		return 4
	case Quad9:
		return 9
	default:
		return 0
	}
}

// IsSimplex is true for the triangle family
func (e ElementType) IsSimplex() bool {
	return e == Triangle || e == Triangle6
}

// From here: https://docs.vtk.org/en/latest/design_documents/VTKFileFormats.html
var vtkElementTypeMap = map[int]ElementType{
	5:  Triangle,  // VTK_TRIANGLE
	9:  Quad,      // VTK_QUAD
	22: Triangle6, // VTK_QUADRATIC_TRIANGLE
	28: Quad9,     // VTK_BIQUADRATIC_QUAD
}

// VTKCode returns the VTK cell type code
func (e ElementType) VTKCode() int {
	for code, et := range vtkElementTypeMap {
		if et == e {
			return code
		}
	}
	return 0
}

// FromVTKCode maps a VTK cell type code to an element type, ok is false for
// cell types without a planar element
func FromVTKCode(code int) (e ElementType, ok bool) {
	e, ok = vtkElementTypeMap[code]
	return
}

// ParseElementType accepts either the short name ("cst") or the full name
func ParseElementType(name string) (e ElementType, err error) {
	for _, et := range ElementTypes {
		if name == et.ShortName() || name == et.String() {
			return et, nil
		}
	}
	err = fmt.Errorf("unknown element type: %s", name)
	return
}
