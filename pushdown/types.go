// Package pushdown translates host planner filter trees into MySQL
// predicate text so filtering happens at the data source instead of
// after a full scan.
package pushdown

import (
	"sort"

	"github.com/hugr-lab/mysqlcat-go/typemap"
)

// CompareType identifies a comparison operator.
type CompareType string

const (
	CompareEqual              CompareType = "COMPARE_EQUAL"
	CompareNotEqual           CompareType = "COMPARE_NOTEQUAL"
	CompareLessThan           CompareType = "COMPARE_LESSTHAN"
	CompareGreaterThan        CompareType = "COMPARE_GREATERTHAN"
	CompareLessThanOrEqual    CompareType = "COMPARE_LESSTHANOREQUALTO"
	CompareGreaterThanOrEqual CompareType = "COMPARE_GREATERTHANOREQUALTO"

	// Present in planner output but outside the pushable operator
	// table; filters carrying these stay residual.
	CompareDistinctFrom    CompareType = "COMPARE_DISTINCT_FROM"
	CompareNotDistinctFrom CompareType = "COMPARE_NOT_DISTINCT_FROM"
)

// ConjunctionType identifies a logical connective.
type ConjunctionType string

const (
	ConjunctionAnd ConjunctionType = "AND"
	ConjunctionOr  ConjunctionType = "OR"
)

// Filter is a node of the immutable predicate tree produced by the
// host planner. It is only traversed, never mutated.
// The set of implementations is closed.
type Filter interface {
	filterMarker()
}

// ConstantFilter compares a column against a constant.
type ConstantFilter struct {
	Op    CompareType
	Value typemap.Value
}

func (*ConstantFilter) filterMarker() {}

// ConjunctionFilter joins child filters on the same column with AND/OR.
type ConjunctionFilter struct {
	Op       ConjunctionType
	Children []Filter
}

func (*ConjunctionFilter) filterMarker() {}

// NullFilter is an IS NULL / IS NOT NULL test. Not pushable.
type NullFilter struct {
	Negated bool // true for IS NOT NULL
}

func (*NullFilter) filterMarker() {}

// InFilter is an IN-list test. Not pushable.
type InFilter struct {
	Values  []typemap.Value
	Negated bool
}

func (*InFilter) filterMarker() {}

// UnsupportedFilter stands in for any planner filter kind this layer
// does not model. Always residual.
type UnsupportedFilter struct {
	Kind string
}

func (*UnsupportedFilter) filterMarker() {}

// FilterSet holds the top-level filters of one scan, keyed by column
// index. Translated filters are removed so the host planner does not
// evaluate them a second time.
type FilterSet struct {
	Filters map[int]Filter
}

// NewFilterSet creates an empty filter set.
func NewFilterSet() *FilterSet {
	return &FilterSet{Filters: make(map[int]Filter)}
}

// Add registers a filter for the given column index. A second filter on
// the same column is conjoined with AND.
func (s *FilterSet) Add(columnIdx int, f Filter) {
	if existing, ok := s.Filters[columnIdx]; ok {
		s.Filters[columnIdx] = &ConjunctionFilter{
			Op:       ConjunctionAnd,
			Children: []Filter{existing, f},
		}
		return
	}
	s.Filters[columnIdx] = f
}

// Empty reports whether the set holds no filters.
func (s *FilterSet) Empty() bool {
	return s == nil || len(s.Filters) == 0
}

// columns returns the filter keys in ascending order so generated SQL
// text is deterministic.
func (s *FilterSet) columns() []int {
	cols := make([]int, 0, len(s.Filters))
	for idx := range s.Filters {
		cols = append(cols, idx)
	}
	sort.Ints(cols)
	return cols
}
