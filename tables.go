package ccgchart

import "fmt"

// Table is an externally computed scoring table, already sliced to the
// current sentence. The chart caches tables for the model; it never reads
// them itself.
type Table interface {
	Dims() []int
	Get(keys ...int) float64
}

// DenseTable is a row-major Table.
type DenseTable struct {
	dims    []int
	strides []int
	values  []float64
}

// NewDenseTable creates a table with the given dimensions over values.
func NewDenseTable(dims []int, values []float64) (*DenseTable, error) {
	size := 1
	strides := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] <= 0 {
			return nil, fmt.Errorf("table: dimension %d must be positive, got %d", i, dims[i])
		}
		strides[i] = size
		size *= dims[i]
	}
	if len(values) != size {
		return nil, &ErrLengthMismatch{Name: "table values", Expected: size, Actual: len(values)}
	}
	return &DenseTable{dims: dims, strides: strides, values: values}, nil
}

// Dims implements Table.
func (t *DenseTable) Dims() []int { return t.dims }

// Get implements Table. Panics when keys do not address a cell.
func (t *DenseTable) Get(keys ...int) float64 {
	if len(keys) != len(t.dims) {
		panic(fmt.Sprintf("table: got %d keys for %d dimensions", len(keys), len(t.dims)))
	}
	off := 0
	for i, k := range keys {
		if k < 0 || k >= t.dims[i] {
			panic(fmt.Sprintf("table: key %d out of range for dimension %d", k, i))
		}
		off += k * t.strides[i]
	}
	return t.values[off]
}

type tables struct {
	dependency   Table
	wordDistance Table
	puncDistance Table
	verbDistance Table
	syntax       Table
	rootSyntax   Table
	unaryRule    Table
}

// SetDependencyTensor caches the dependency scoring table.
func (c *Chart) SetDependencyTensor(t Table) { c.tables.dependency = t }

// DependencyTensor returns the cached dependency table, or nil.
func (c *Chart) DependencyTensor() Table { return c.tables.dependency }

// SetWordDistanceTensor caches the word-distance scoring table.
func (c *Chart) SetWordDistanceTensor(t Table) { c.tables.wordDistance = t }

// WordDistanceTensor returns the cached word-distance table, or nil.
func (c *Chart) WordDistanceTensor() Table { return c.tables.wordDistance }

// SetPuncDistanceTensor caches the punctuation-distance scoring table.
func (c *Chart) SetPuncDistanceTensor(t Table) { c.tables.puncDistance = t }

// PuncDistanceTensor returns the cached punctuation-distance table, or nil.
func (c *Chart) PuncDistanceTensor() Table { return c.tables.puncDistance }

// SetVerbDistanceTensor caches the verb-distance scoring table.
func (c *Chart) SetVerbDistanceTensor(t Table) { c.tables.verbDistance = t }

// VerbDistanceTensor returns the cached verb-distance table, or nil.
func (c *Chart) VerbDistanceTensor() Table { return c.tables.verbDistance }

// SetSyntaxDistribution caches the syntactic category distribution.
func (c *Chart) SetSyntaxDistribution(t Table) { c.tables.syntax = t }

// SyntaxDistribution returns the cached syntactic distribution, or nil.
func (c *Chart) SyntaxDistribution() Table { return c.tables.syntax }

// SetRootSyntaxDistribution caches the root category distribution.
func (c *Chart) SetRootSyntaxDistribution(t Table) { c.tables.rootSyntax = t }

// RootSyntaxDistribution returns the cached root distribution, or nil.
func (c *Chart) RootSyntaxDistribution() Table { return c.tables.rootSyntax }

// SetUnaryRuleDistribution caches the unary rule distribution.
func (c *Chart) SetUnaryRuleDistribution(t Table) { c.tables.unaryRule = t }

// UnaryRuleDistribution returns the cached unary rule distribution, or nil.
func (c *Chart) UnaryRuleDistribution() Table { return c.tables.unaryRule }
