// Package h5test provides an in-memory container tree implementing the h5
// interfaces, and a writer that materializes such a tree as a real HDF5
// file.
package h5test

import "github.com/robert-malhotra/go-icesat2/internal/h5"

type attr struct {
	name  string
	value interface{}
}

type attrList []attr

func (l attrList) names() []string {
	names := make([]string, 0, len(l))
	for _, a := range l {
		names = append(names, a.name)
	}
	return names
}

func (l attrList) values() map[string]interface{} {
	m := make(map[string]interface{}, len(l))
	for _, a := range l {
		m[a.name] = a.value
	}
	return m
}

func (l *attrList) set(name string, value interface{}) {
	for i := range *l {
		if (*l)[i].name == name {
			(*l)[i].value = value
			return
		}
	}
	*l = append(*l, attr{name: name, value: value})
}

// Group is an in-memory group. Members keep insertion order.
type Group struct {
	name   string
	order  []string
	groups map[string]*Group
	dsets  map[string]*Dataset
	attrs  attrList

	// AttrReads counts AttrMap calls.
	AttrReads int
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{
		name:   name,
		groups: make(map[string]*Group),
		dsets:  make(map[string]*Dataset),
	}
}

// File wraps root as an open h5.File. The file needs no cleanup.
func File(name string, root *Group) *h5.File {
	return h5.NewFile(name, root, nil)
}

// AddGroup returns the child group called name, creating it if needed.
func (g *Group) AddGroup(name string) *Group {
	if child, ok := g.groups[name]; ok {
		return child
	}
	child := NewGroup(name)
	g.groups[name] = child
	g.order = append(g.order, name)
	return child
}

// AddDataset adds or replaces a dataset.
func (g *Group) AddDataset(name string, data h5.Array) *Dataset {
	if ds, ok := g.dsets[name]; ok {
		ds.data = data
		ds.native = nil
		return ds
	}
	ds := &Dataset{name: name, data: data}
	g.dsets[name] = ds
	g.order = append(g.order, name)
	return ds
}

// AddFloat64 adds a numeric dataset.
func (g *Group) AddFloat64(name string, values ...float64) *Dataset {
	if values == nil {
		values = []float64{}
	}
	return g.AddDataset(name, h5.Array{Float64: values})
}

// Integer lists the integer element types WriteFile can store natively.
type Integer interface {
	~int8 | ~uint8 | ~int32 | ~uint32 | ~int64
}

// AddInts adds an integer dataset to g. Reads see the values widened to
// float64; WriteFile keeps the element type.
func AddInts[T Integer](g *Group, name string, values ...T) *Dataset {
	widened := make([]float64, len(values))
	for i, v := range values {
		widened[i] = float64(v)
	}
	ds := g.AddDataset(name, h5.Array{Float64: widened})
	ds.native = append([]T{}, values...)
	return ds
}

// AddStrings adds a string dataset.
func (g *Group) AddStrings(name string, values ...string) *Dataset {
	if values == nil {
		values = []string{}
	}
	return g.AddDataset(name, h5.Array{Strings: values})
}

// SetAttr sets a group attribute.
func (g *Group) SetAttr(name string, value interface{}) *Group {
	g.attrs.set(name, value)
	return g
}

// Child returns a direct child group, or nil.
func (g *Group) Child(name string) *Group {
	return g.groups[name]
}

// Data returns a direct child dataset, or nil.
func (g *Group) Data(name string) *Dataset {
	return g.dsets[name]
}

// Remove deletes a direct member of either kind.
func (g *Group) Remove(name string) {
	delete(g.groups, name)
	delete(g.dsets, name)
	for i, m := range g.order {
		if m == name {
			g.order = append(g.order[:i:i], g.order[i+1:]...)
			return
		}
	}
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Members() ([]string, error) {
	return append([]string(nil), g.order...), nil
}

func (g *Group) OpenGroup(name string) (h5.Group, error) {
	if child, ok := g.groups[name]; ok {
		return child, nil
	}
	if _, ok := g.dsets[name]; ok {
		return nil, h5.ErrNotGroup
	}
	return nil, h5.ErrNotFound
}

func (g *Group) OpenDataset(name string) (h5.Dataset, error) {
	if ds, ok := g.dsets[name]; ok {
		return ds, nil
	}
	if _, ok := g.groups[name]; ok {
		return nil, h5.ErrNotDataset
	}
	return nil, h5.ErrNotFound
}

func (g *Group) Attrs() ([]string, error) {
	return g.attrs.names(), nil
}

func (g *Group) AttrMap() (map[string]interface{}, error) {
	g.AttrReads++
	return g.attrs.values(), nil
}

// Dataset is an in-memory dataset.
type Dataset struct {
	name  string
	data  h5.Array
	attrs attrList

	// native holds the typed slice of integer datasets for WriteFile.
	native interface{}

	// Reads counts Read calls.
	Reads int
	// AttrReads counts AttrMap calls.
	AttrReads int
}

// SetAttr sets a dataset attribute.
func (d *Dataset) SetAttr(name string, value interface{}) *Dataset {
	d.attrs.set(name, value)
	return d
}

func (d *Dataset) Name() string {
	return d.name
}

func (d *Dataset) Read() (h5.Array, error) {
	d.Reads++
	return d.data, nil
}

func (d *Dataset) Attrs() ([]string, error) {
	return d.attrs.names(), nil
}

func (d *Dataset) AttrMap() (map[string]interface{}, error) {
	d.AttrReads++
	return d.attrs.values(), nil
}
