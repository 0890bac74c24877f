package dataprocessing

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceInfo describes the bytes a pair of views was computed from.
type SourceInfo struct {
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
	SHA256 string `json:"sha256"`
	Rows   int    `json:"rows"`
}

// frame is the untyped, string-valued table the early pipeline steps work on.
type frame struct {
	header []string
	rows   [][]string
}

// readSource loads the whole source file with a single read.
func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	return data, nil
}

// parseFrame decodes delimited bytes into a frame. The header is kept verbatim,
// apart from a leading UTF-8 byte order mark.
func parseFrame(path string, data []byte, delimiter rune) (*frame, SourceInfo, error) {
	sum := sha256.Sum256(data)
	info := SourceInfo{
		Path:   path,
		Bytes:  len(data),
		SHA256: hex.EncodeToString(sum[:]),
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	if delimiter != 0 {
		reader.Comma = delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, info, &SourceUnavailableError{Path: path, Err: fmt.Errorf("failed to parse: %w", err)}
	}
	if len(records) == 0 {
		return nil, info, &SourceUnavailableError{Path: path, Err: errors.New("no header row")}
	}

	info.Rows = len(records) - 1
	return &frame{header: records[0], rows: records[1:]}, info, nil
}

// indexColumnPosition finds the artifact index column. pandas writes it with an empty
// header cell and reads it back as "Unnamed: 0", so both spellings are accepted.
func (f *frame) indexColumnPosition(name string) (int, bool) {
	for i, h := range f.header {
		if h == name {
			return i, true
		}
	}
	if len(f.header) > 0 && f.header[0] == "" {
		return 0, true
	}
	return -1, false
}

// dropPositions returns a new frame without the given column positions.
func (f *frame) dropPositions(drop map[int]bool) *frame {
	keep := make([]int, 0, len(f.header)-len(drop))
	for i := range f.header {
		if !drop[i] {
			keep = append(keep, i)
		}
	}

	out := &frame{
		header: make([]string, len(keep)),
		rows:   make([][]string, len(f.rows)),
	}
	for j, i := range keep {
		out.header[j] = f.header[i]
	}
	for r, row := range f.rows {
		nr := make([]string, len(keep))
		for j, i := range keep {
			nr[j] = row[i]
		}
		out.rows[r] = nr
	}
	return out
}

// dropColumns removes named columns; every name must be present.
func (f *frame) dropColumns(step string, names ...string) (*frame, error) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		found := false
		for i, h := range f.header {
			if h == name {
				drop[i] = true
				found = true
				break
			}
		}
		if !found {
			return nil, &MissingColumnError{Column: name, Step: step}
		}
	}
	return f.dropPositions(drop), nil
}

// isMissing reports whether a cell holds one of the missing-value markers pandas
// recognizes by default for this dataset.
func isMissing(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "", "NaN", "nan", "NA", "N/A", "null":
		return true
	}
	return false
}

// parseFeature parses a numeric feature. Missing cells become NaN. Infinite values are
// rejected unless allowInf is set; the half-life column uses +Inf for stable nuclides.
func parseFeature(column string, row int, cell string, allowInf bool) (float64, error) {
	if isMissing(cell) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, &InvalidValueError{Column: column, Row: row, Value: cell, Reason: "not a number"}
	}
	if math.IsInf(v, 0) && !allowInf {
		return 0, &InvalidValueError{Column: column, Row: row, Value: cell, Reason: "value is not finite"}
	}
	return v, nil
}

// parseCount parses an integer column. Integral floats such as "20.0" are accepted
// because pandas writes integer columns with missing values that way.
func parseCount(column string, row int, cell string) (int, error) {
	s := strings.TrimSpace(cell)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, &InvalidValueError{Column: column, Row: row, Value: cell, Reason: "not an integer"}
	}
	return int(v), nil
}

// parseFlag parses the radioactivity flag written either as 0/1 or as a boolean.
func parseFlag(column string, row int, cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "1", "1.0", "true":
		return true, nil
	case "0", "0.0", "false":
		return false, nil
	}
	return false, &InvalidValueError{Column: column, Row: row, Value: cell, Reason: "not a 0/1 flag"}
}
