package h5test

import (
	"errors"
	"fmt"
	"path"

	"github.com/scigolib/hdf5"
)

// WriteFile materializes root as an HDF5 file at filename. Datasets added
// with AddInts keep their integer type, other numeric datasets are written
// as float64 and string datasets as fixed-length strings sized to
// the longest value. Attributes on the root group are not supported by the
// writer and are rejected.
func WriteFile(filename string, root *Group) error {
	if len(root.attrs) > 0 {
		return errors.New("root group attributes are not supported")
	}

	fw, err := hdf5.CreateForWrite(filename, hdf5.CreateTruncate)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}

	if err := writeMembers(fw, "/", root); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}

func writeMembers(fw *hdf5.FileWriter, parent string, g *Group) error {
	for _, name := range g.order {
		p := path.Join(parent, name)

		if child, ok := g.groups[name]; ok {
			gw, err := fw.CreateGroup(p)
			if err != nil {
				return fmt.Errorf("creating group %s: %w", p, err)
			}
			for _, a := range child.attrs {
				if err := gw.WriteAttribute(a.name, a.value); err != nil {
					return fmt.Errorf("writing attribute %s@%s: %w", p, a.name, err)
				}
			}
			if err := writeMembers(fw, p, child); err != nil {
				return err
			}
			continue
		}

		if err := writeDataset(fw, p, g.dsets[name]); err != nil {
			return err
		}
	}
	return nil
}

func writeDataset(fw *hdf5.FileWriter, p string, ds *Dataset) error {
	var (
		dw  *hdf5.DatasetWriter
		err error
	)
	switch values := ds.native.(type) {
	case nil:
	case []int8:
		dw, err = writeInts(fw, p, hdf5.Int8, values)
	case []uint8:
		dw, err = writeInts(fw, p, hdf5.Uint8, values)
	case []int32:
		dw, err = writeInts(fw, p, hdf5.Int32, values)
	case []uint32:
		dw, err = writeInts(fw, p, hdf5.Uint32, values)
	case []int64:
		dw, err = writeInts(fw, p, hdf5.Int64, values)
	default:
		err = fmt.Errorf("unsupported element type %T", values)
	}

	switch {
	case ds.native != nil:
	case ds.data.IsText():
		size := 1
		for _, s := range ds.data.Strings {
			if len(s)+1 > size {
				size = len(s) + 1
			}
		}
		dims := []uint64{uint64(len(ds.data.Strings))}
		dw, err = fw.CreateDataset(p, hdf5.String, dims, hdf5.WithStringSize(uint32(size)))
		if err == nil {
			err = dw.Write(ds.data.Strings)
		}
	default:
		dims := []uint64{uint64(len(ds.data.Float64))}
		dw, err = fw.CreateDataset(p, hdf5.Float64, dims)
		if err == nil {
			err = dw.Write(ds.data.Float64)
		}
	}
	if err != nil {
		return fmt.Errorf("writing dataset %s: %w", p, err)
	}

	for _, a := range ds.attrs {
		if err := dw.WriteAttribute(a.name, a.value); err != nil {
			return fmt.Errorf("writing attribute %s@%s: %w", p, a.name, err)
		}
	}
	return nil
}

func writeInts[T Integer](fw *hdf5.FileWriter, p string, dtype hdf5.Datatype, values []T) (*hdf5.DatasetWriter, error) {
	dw, err := fw.CreateDataset(p, dtype, []uint64{uint64(len(values))})
	if err != nil {
		return nil, err
	}
	return dw, dw.Write(values)
}
