package h5

import "fmt"

// Object is a named member of a group: either a Group or a Dataset.
type Object interface {
	Name() string

	// Attrs returns the attribute names in storage order.
	Attrs() ([]string, error)

	// AttrMap reads every attribute value in one pass.
	AttrMap() (map[string]interface{}, error)
}

// Group is an HDF5 group.
type Group interface {
	Object

	// Members returns the names of all children in the order the
	// container enumerates them.
	Members() ([]string, error)

	// OpenGroup opens a direct child group.
	OpenGroup(name string) (Group, error)

	// OpenDataset opens a direct child dataset.
	OpenDataset(name string) (Dataset, error)
}

// Dataset is an HDF5 dataset.
type Dataset interface {
	Object

	// Read copies the whole dataset into memory.
	Read() (Array, error)
}

// Array is a fully read dataset, flattened in row-major order. Numeric
// classes are widened to float64; string classes fill Strings instead.
type Array struct {
	Float64 []float64
	Strings []string
}

// Len returns the number of elements.
func (a Array) Len() int {
	if a.Strings != nil {
		return len(a.Strings)
	}
	return len(a.Float64)
}

// IsText returns true if the array holds strings.
func (a Array) IsText() bool {
	return a.Strings != nil
}

// String renders a short description, e.g. "float64[1024]".
func (a Array) String() string {
	if a.IsText() {
		return fmt.Sprintf("string[%d]", len(a.Strings))
	}
	return fmt.Sprintf("float64[%d]", len(a.Float64))
}
