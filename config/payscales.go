package config

import (
	"log"
	"slices"
)

// Years of the expected pay commission revisions. Their matrices are not
// published yet, so they are registered empty and ForYear skips them.
var FutureRevisionYears = []int{2026, 2036, 2046, 2056}

// PayScales holds the current pay matrix and any future revisions keyed by the
// year they take effect. Register everything before serving requests.
type PayScales struct {
	current   *PayMatrix
	revisions map[int]*PayMatrix
}

func NewPayScales(current *PayMatrix) *PayScales {
	s := &PayScales{
		current:   current,
		revisions: make(map[int]*PayMatrix, len(FutureRevisionYears)),
	}
	for _, year := range FutureRevisionYears {
		s.revisions[year] = NewPayMatrix("", nil)
	}
	return s
}

// LoadPayScales builds the registry from the embedded matrix, or from path when set.
func LoadPayScales(path string) (*PayScales, error) {
	if path == "" {
		return NewPayScales(DefaultPayMatrix()), nil
	}
	m, err := LoadPayMatrixFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded pay matrix %q with %d levels from %s", m.Name(), m.Len(), path)
	return NewPayScales(m), nil
}

func (s *PayScales) Current() *PayMatrix {
	return s.current
}

// Register sets the matrix that takes effect in year.
func (s *PayScales) Register(year int, m *PayMatrix) {
	s.revisions[year] = m
}

// Revisions returns the registered revision years in ascending order.
func (s *PayScales) Revisions() []int {
	years := make([]int, 0, len(s.revisions))
	for year := range s.revisions {
		years = append(years, year)
	}
	slices.Sort(years)
	return years
}

// ForYear returns the latest populated revision effective on or before year,
// falling back to the current matrix.
func (s *PayScales) ForYear(year int) *PayMatrix {
	best := s.current
	bestYear := 0
	for y, m := range s.revisions {
		if y <= year && y > bestYear && m.Len() > 0 {
			best, bestYear = m, y
		}
	}
	return best
}
