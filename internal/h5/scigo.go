package h5

import (
	"fmt"

	"github.com/scigolib/hdf5"
)

// sgGroup adapts a scigolib group. The library loads the link structure
// eagerly on open, so member lookups never touch the file; dataset and
// attribute reads do, and fail with ErrClosed once the file is closed.
type sgGroup struct {
	file *File
	g    *hdf5.Group
}

func (s *sgGroup) Name() string {
	return s.g.Name()
}

func (s *sgGroup) Members() ([]string, error) {
	if s.file.closed {
		return nil, ErrClosed
	}
	children := s.g.Children()
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name())
	}
	return names, nil
}

func (s *sgGroup) child(name string) (hdf5.Object, error) {
	if s.file.closed {
		return nil, ErrClosed
	}
	for _, child := range s.g.Children() {
		if child.Name() == name {
			return child, nil
		}
	}
	return nil, ErrNotFound
}

func (s *sgGroup) OpenGroup(name string) (Group, error) {
	obj, err := s.child(name)
	if err != nil {
		return nil, err
	}
	g, ok := obj.(*hdf5.Group)
	if !ok {
		return nil, ErrNotGroup
	}
	return &sgGroup{file: s.file, g: g}, nil
}

func (s *sgGroup) OpenDataset(name string) (Dataset, error) {
	obj, err := s.child(name)
	if err != nil {
		return nil, err
	}
	ds, ok := obj.(*hdf5.Dataset)
	if !ok {
		return nil, ErrNotDataset
	}
	return &sgDataset{file: s.file, ds: ds}, nil
}

func (s *sgGroup) Attrs() ([]string, error) {
	if s.file.closed {
		return nil, ErrClosed
	}
	attrs, err := s.g.Attributes()
	if err != nil {
		return nil, fmt.Errorf("reading attributes of %q: %w", s.g.Name(), err)
	}
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	return names, nil
}

func (s *sgGroup) AttrMap() (map[string]interface{}, error) {
	if s.file.closed {
		return nil, ErrClosed
	}
	attrs, err := s.g.Attributes()
	if err != nil {
		return nil, fmt.Errorf("reading attributes of %q: %w", s.g.Name(), err)
	}
	m := make(map[string]interface{}, len(attrs))
	for _, a := range attrs {
		v, err := a.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		m[a.Name] = v
	}
	return m, nil
}

// sgDataset adapts a scigolib dataset.
type sgDataset struct {
	file *File
	ds   *hdf5.Dataset
}

func (s *sgDataset) Name() string {
	return s.ds.Name()
}

// Read tries the numeric reader first and falls back to the string reader;
// the library exposes no datatype class without parsing its Info text.
func (s *sgDataset) Read() (Array, error) {
	if s.file.closed {
		return Array{}, ErrClosed
	}

	values, err := s.ds.Read()
	if err == nil {
		return Array{Float64: values}, nil
	}

	text, serr := s.ds.ReadStrings()
	if serr == nil {
		return Array{Strings: text}, nil
	}
	return Array{}, fmt.Errorf("reading dataset %q: %w", s.ds.Name(), err)
}

func (s *sgDataset) Attrs() ([]string, error) {
	if s.file.closed {
		return nil, ErrClosed
	}
	names, err := s.ds.ListAttributes()
	if err != nil {
		return nil, fmt.Errorf("reading attributes of %q: %w", s.ds.Name(), err)
	}
	return names, nil
}

func (s *sgDataset) AttrMap() (map[string]interface{}, error) {
	if s.file.closed {
		return nil, ErrClosed
	}
	attrs, err := s.ds.Attributes()
	if err != nil {
		return nil, fmt.Errorf("reading attributes of %q: %w", s.ds.Name(), err)
	}
	m := make(map[string]interface{}, len(attrs))
	for _, a := range attrs {
		v, err := a.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		m[a.Name] = v
	}
	return m, nil
}
