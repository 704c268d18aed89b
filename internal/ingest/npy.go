package ingest

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// npyMagic is the NumPy .npy file signature.
var npyMagic = []byte("\x93NUMPY")

var npyShapeRegex = regexp.MustCompile(`'shape':\s*\((\d+)\s*,\s*(\d+)\s*,?\)`)

// ReadVectors reads a 2-D float32/float64 C-order array from a NumPy .npy
// file. Row i is the embedding for entity row i.
func ReadVectors(path string) ([][]float32, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := bufio.NewReader(f)

	rows, cols, elemSize, err := readNpyHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	data := make([]byte, rows*cols*elemSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read vector data: %w", err)
	}

	vectors := make([][]float32, rows)
	for i := 0; i < rows; i++ {
		vec := make([]float32, cols)
		for j := 0; j < cols; j++ {
			off := (i*cols + j) * elemSize
			if elemSize == 4 {
				vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			} else {
				vec[j] = float32(math.Float64frombits(binary.LittleEndian.Uint64(data[off:])))
			}
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// readNpyHeader parses the .npy v1/v2 header and returns (rows, cols, element size).
func readNpyHeader(r io.Reader) (int, int, int, error) {
	pre := make([]byte, 8)
	if _, err := io.ReadFull(r, pre); err != nil {
		return 0, 0, 0, fmt.Errorf("read preamble: %w", err)
	}
	if string(pre[:6]) != string(npyMagic) {
		return 0, 0, 0, fmt.Errorf("not a .npy file")
	}

	major := pre[6]
	var headerLen int
	switch major {
	case 1:
		b := make([]byte, 2)
		if _, err := io.ReadFull(r, b); err != nil {
			return 0, 0, 0, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint16(b))
	case 2, 3:
		b := make([]byte, 4)
		if _, err := io.ReadFull(r, b); err != nil {
			return 0, 0, 0, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint32(b))
	default:
		return 0, 0, 0, fmt.Errorf("unsupported .npy version %d", major)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return 0, 0, 0, fmt.Errorf("read header: %w", err)
	}
	header := string(raw)

	var elemSize int
	switch {
	case strings.Contains(header, "'descr': '<f4'"):
		elemSize = 4
	case strings.Contains(header, "'descr': '<f8'"):
		elemSize = 8
	default:
		return 0, 0, 0, fmt.Errorf("unsupported dtype in header %q", header)
	}

	if strings.Contains(header, "'fortran_order': True") {
		return 0, 0, 0, fmt.Errorf("fortran-order arrays are not supported")
	}

	m := npyShapeRegex.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("expected 2-D shape in header %q", header)
	}
	rows, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse shape rows: %w", err)
	}
	cols, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse shape cols: %w", err)
	}

	return rows, cols, elemSize, nil
}
