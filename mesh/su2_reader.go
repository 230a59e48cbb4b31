package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/isofem/utils"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string, verbose bool) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".vtk":
		return ReadVTK(filename, verbose)
	case ".su2":
		return ReadSU2(filename, verbose)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// ReadSU2 reads a two dimensional SU2 native format file. SU2 shares the VTK
// element type identifiers.
func ReadSU2(filename string, verbose bool) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: could not find file %s: %w", ErrResourceNotFound, filename, err)
		}
		return nil, err
	}
	defer file.Close()

	msh, err := ParseSU2(file, verbose)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return msh, nil
}

// ParseSU2 reads NDIME, NPOIN, NELEM and NMARK sections. Boundary markers
// are kept as lists of line segments in Mesh.Markers.
func ParseSU2(r io.Reader, verbose bool) (*Mesh, error) {
	msh := NewMesh()
	scanner := bufio.NewScanner(r)

	var hasNDIME, hasNPOIN bool
	var elements [][]int

	// nextLine skips blank lines and strips comments (text after %)
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = line[:idx]
			}
			if line = strings.TrimSpace(line); line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("unexpected line outside a section: %s", line)
		}
		key = strings.TrimSpace(key)
		counts := strings.Fields(value)

		switch key {
		case "NDIME":
			hasNDIME = true
			if len(counts) != 1 || counts[0] != "2" {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%s", strings.TrimSpace(value))
			}

		case "NPOIN":
			hasNPOIN = true
			npoin, err := leadingCount(counts)
			if err != nil {
				return nil, fmt.Errorf("invalid NPOIN: %v", err)
			}
			for i := 0; i < npoin; i++ {
				line, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(line)
				if len(fields) < 2 {
					return nil, fmt.Errorf("invalid node line: expected at least 2 coordinates")
				}
				// Node ID is implicit (0-based), a trailing index is ignored
				coords, err := parseFloats(fields[:2])
				if err != nil {
					return nil, fmt.Errorf("invalid coordinate: %v", err)
				}
				msh.AddPoint(utils.Point{coords[0], coords[1]})
			}

		case "NELEM":
			nelem, err := leadingCount(counts)
			if err != nil {
				return nil, fmt.Errorf("invalid NELEM: %v", err)
			}
			for i := 0; i < nelem; i++ {
				line, ok := nextLine()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				ids, err := parseInts(strings.Fields(line))
				if err != nil {
					return nil, fmt.Errorf("invalid element line %d: %v", i, err)
				}
				elements = append(elements, ids)
			}

		case "NMARK":
			nmark, err := leadingCount(counts)
			if err != nil {
				return nil, fmt.Errorf("invalid NMARK: %v", err)
			}
			if msh.Markers == nil {
				msh.Markers = make(map[string][][]int)
			}
			for i := 0; i < nmark; i++ {
				if err = parseMarker(msh, nextLine); err != nil {
					return nil, fmt.Errorf("marker %d: %w", i, err)
				}
			}

		default:
			if verbose {
				fmt.Printf("ignoring SU2 section %s\n", key)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	// Validate that we read the required sections
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}

	// Elements are added after all points are known
	for i, fields := range elements {
		if len(fields) < 2 {
			return nil, fmt.Errorf("invalid element line %d", i)
		}
		et, ok := utils.FromVTKCode(fields[0])
		if !ok {
			return nil, fmt.Errorf("unknown element type: %d", fields[0])
		}
		numNodes := et.GetNumNodes()
		if len(fields) < numNodes+1 {
			return nil, fmt.Errorf("element type %v expects %d nodes, got %d fields",
				et, numNodes, len(fields)-1)
		}
		// Element ID is implicit (0-based), a trailing index is ignored
		if _, err := msh.AddElement(et, fields[1:1+numNodes]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return msh, nil
}

func parseMarker(msh *Mesh, nextLine func() (string, bool)) error {
	markerLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("unexpected EOF reading marker")
	}
	tag, found := strings.CutPrefix(markerLine, "MARKER_TAG=")
	if !found {
		return fmt.Errorf("expected MARKER_TAG=, got: %s", markerLine)
	}
	tag = strings.TrimSpace(tag)

	elemLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("unexpected EOF reading marker elements for %s", tag)
	}
	var nMarkerElems int
	if _, err := fmt.Sscanf(elemLine, "MARKER_ELEMS=%d", &nMarkerElems); err != nil {
		return fmt.Errorf("invalid MARKER_ELEMS line: %s", elemLine)
	}
	for j := 0; j < nMarkerElems; j++ {
		line, ok := nextLine()
		if !ok {
			return fmt.Errorf("unexpected EOF reading boundary elements")
		}
		fields, err := parseInts(strings.Fields(line))
		if err != nil {
			return fmt.Errorf("invalid boundary element: %v", err)
		}
		// Only line segments (VTK_LINE) bound a planar mesh
		if len(fields) < 3 || fields[0] != 3 {
			return fmt.Errorf("boundary element must be a line, got: %s", line)
		}
		for _, id := range fields[1:3] {
			if id < 0 || id >= len(msh.Points) {
				return fmt.Errorf("boundary node index %d out of range [0,%d)", id, len(msh.Points))
			}
		}
		msh.Markers[tag] = append(msh.Markers[tag], fields[1:3])
	}
	return nil
}

// leadingCount parses the first count of a section header such as "NPOIN= 9 9"
func leadingCount(counts []string) (int, error) {
	if len(counts) == 0 {
		return 0, fmt.Errorf("missing count")
	}
	return strconv.Atoi(counts[0])
}
