package config

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aashish23092/pension-scheme-calculator/utils"
)

//go:embed pay_matrix_7cpc.yaml
var payMatrix7CPC []byte

var ErrEmptyPayMatrix = errors.New("pay matrix has no levels")

// PayMatrix maps a pay level to its ordered list of permitted basic salaries.
// It is immutable once built; accessors return copies.
type PayMatrix struct {
	name   string
	levels map[int][]float64
}

type payMatrixFile struct {
	Name   string            `yaml:"name"`
	Levels map[int][]float64 `yaml:"levels"`
}

// NewPayMatrix copies levels into a new matrix.
func NewPayMatrix(name string, levels map[int][]float64) *PayMatrix {
	m := &PayMatrix{name: name, levels: make(map[int][]float64, len(levels))}
	for level, salaries := range levels {
		m.levels[level] = slices.Clone(salaries)
	}
	return m
}

// DefaultPayMatrix returns the embedded 7th CPC pay matrix.
func DefaultPayMatrix() *PayMatrix {
	m, err := LoadPayMatrixYAML(bytes.NewReader(payMatrix7CPC))
	if err != nil {
		panic(fmt.Sprintf("embedded pay matrix: %v", err))
	}
	return m
}

// LoadPayMatrixYAML reads a matrix in the embedded file's format.
func LoadPayMatrixYAML(r io.Reader) (*PayMatrix, error) {
	var f payMatrixFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode pay matrix: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, ErrEmptyPayMatrix
	}
	return NewPayMatrix(f.Name, f.Levels), nil
}

// LoadPayMatrixCSV reads a matrix from CSV. The first row is a header; each
// following row is a level followed by its salaries. Cells that are not
// numbers are skipped, and rows without a level or salaries are ignored.
func LoadPayMatrixCSV(name string, r io.Reader) (*PayMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read pay matrix csv: %w", err)
	}

	levels := make(map[int][]float64)
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		level, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		var salaries []float64
		for _, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			salaries = append(salaries, v)
		}
		if len(salaries) > 0 {
			levels[level] = salaries
		}
	}

	if len(levels) == 0 {
		return nil, ErrEmptyPayMatrix
	}
	return NewPayMatrix(name, levels), nil
}

// LoadPayMatrixFile picks the decoder from the file extension (.csv or .yaml/.yml).
func LoadPayMatrixFile(path string) (*PayMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pay matrix: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return LoadPayMatrixCSV(name, f)
	case ".yaml", ".yml":
		return LoadPayMatrixYAML(f)
	default:
		return nil, fmt.Errorf("unsupported pay matrix format: %s", path)
	}
}

func (m *PayMatrix) Name() string {
	return m.name
}

// Levels returns the configured levels in ascending order.
func (m *PayMatrix) Levels() []int {
	levels := make([]int, 0, len(m.levels))
	for level := range m.levels {
		levels = append(levels, level)
	}
	slices.Sort(levels)
	return levels
}

// Len is the number of levels.
func (m *PayMatrix) Len() int {
	return len(m.levels)
}

// Salaries returns the permitted basic salaries for level.
func (m *PayMatrix) Salaries(level int) ([]float64, bool) {
	salaries, ok := m.levels[level]
	if !ok {
		return nil, false
	}
	return slices.Clone(salaries), true
}

func (m *PayMatrix) HasLevel(level int) bool {
	_, ok := m.levels[level]
	return ok
}

func (m *PayMatrix) HasSalary(level int, salary float64) bool {
	return slices.Contains(m.levels[level], salary)
}

// HigherLevels lists the levels above level, i.e. the possible promotion targets.
func (m *PayMatrix) HigherLevels(level int) []int {
	var out []int
	for _, l := range m.Levels() {
		if l > level {
			out = append(out, l)
		}
	}
	return out
}

// NextSalary returns the closest listed salary strictly above salary at level.
func (m *PayMatrix) NextSalary(level int, salary float64) (float64, bool) {
	return utils.FindClosestHigherValue(m.levels[level], salary)
}
