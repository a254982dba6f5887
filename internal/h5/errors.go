// Package h5 gives the ATL06 reader a small, read-only view of an HDF5
// container: named groups, datasets and attributes. Parsing of the binary
// format is done by github.com/scigolib/hdf5.
package h5

import "errors"

// Common errors
var (
	ErrNotHDF5    = errors.New("not an HDF5 file")
	ErrNotFound   = errors.New("object not found")
	ErrNotDataset = errors.New("object is not a dataset")
	ErrNotGroup   = errors.New("object is not a group")
	ErrClosed     = errors.New("file is closed")
)
