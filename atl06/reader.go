package atl06

import (
	"errors"
	"fmt"
	"path"

	"github.com/robert-malhotra/go-icesat2/internal/h5"
)

// reservedAttrs are dimension scale bookkeeping attributes. They are never
// copied.
var reservedAttrs = map[string]bool{
	"DIMENSION_LIST": true,
	"CLASS":          true,
	"NAME":           true,
}

// ReadGranule reads every beam that carries land ice segments together
// with orbit_info, quality_assessment and ancillary_data.
func ReadGranule(src Source, opts ...Option) (*Granule, error) {
	o := newOptions(opts)
	f, owned, err := src.open()
	if err != nil {
		return nil, err
	}

	g, err := readGranule(f, o)
	if err = release(f, owned, o, err); err != nil {
		return nil, err
	}
	return g, nil
}

// FindBeams lists the beams that carry land ice segments, in container
// order. Beams that a subsetted granule dropped are skipped.
func FindBeams(src Source, opts ...Option) ([]string, error) {
	o := newOptions(opts)
	f, owned, err := src.open()
	if err != nil {
		return nil, err
	}

	var beams []string
	root, err := describe(f, o)
	if err == nil {
		beams, err = findBeams(root, o.logger)
	}
	if err = release(f, owned, o, err); err != nil {
		return nil, err
	}
	return beams, nil
}

// ReadBeam reads a single beam. The beam is not checked first: a beam the
// granule lacks fails with ErrNotFound.
func ReadBeam(src Source, beam string, opts ...Option) (*Granule, error) {
	o := newOptions(opts)
	f, owned, err := src.open()
	if err != nil {
		return nil, err
	}

	g, err := readBeam(f, beam, o)
	if err = release(f, owned, o, err); err != nil {
		return nil, err
	}
	return g, nil
}

func readGranule(f *File, o *options) (*Granule, error) {
	root, err := describe(f, o)
	if err != nil {
		return nil, err
	}

	beams, err := findBeams(root, o.logger)
	if err != nil {
		return nil, err
	}

	g := newGranule(o, beams)
	if g.Attrs != nil {
		if err := copyAttrs(root, "/", g.Attrs.Own); err != nil {
			return nil, err
		}
	}

	r := &reader{o: o}
	for _, beam := range beams {
		if err := r.visit(root, "/", beamSchema(beam, o), g.Vars, g.Attrs); err != nil {
			return nil, err
		}
	}
	for _, node := range topLevelGroups() {
		if err := r.visit(root, "/", node, g.Vars, g.Attrs); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func readBeam(f *File, beam string, o *options) (*Granule, error) {
	root, err := describe(f, o)
	if err != nil {
		return nil, err
	}

	g := newGranule(o, []string{beam})
	r := &reader{o: o}
	if err := r.visit(root, "/", beamSchema(beam, o), g.Vars, g.Attrs); err != nil {
		return nil, err
	}
	return g, nil
}

func newGranule(o *options, beams []string) *Granule {
	g := &Granule{Vars: newGroup(), Beams: beams}
	if o.attributes {
		g.Attrs = newAttrGroup()
	}
	return g
}

// describe returns the root group and logs the file name and its top level
// members.
func describe(f *File, o *options) (h5.Group, error) {
	root, err := f.hf.Root()
	if err != nil {
		return nil, err
	}
	members, err := root.Members()
	if err != nil {
		return nil, fmt.Errorf("listing root members: %w", err)
	}
	o.logger.Info("opened granule", "file", f.Name())
	o.logger.Info("top level members", "members", members)
	return root, nil
}

// reader copies the groups of a schema into Group and AttrGroup trees.
type reader struct {
	o *options
}

// visit copies the group node.name below parent, whose container path is
// p, into vars and attrs. attrs is nil when attributes are not wanted.
func (r *reader) visit(parent h5.Group, p string, node groupSchema, vars *Group, attrs *AttrGroup) error {
	p = path.Join(p, node.name)

	g, err := parent.OpenGroup(node.name)
	if err != nil {
		if node.optional && errors.Is(err, h5.ErrNotFound) {
			r.o.logger.Debug("skipping absent group", "path", p)
			return nil
		}
		return fmt.Errorf("opening group %s: %w", p, err)
	}

	gv := newGroup()
	vars.Groups[node.name] = gv

	var ga *AttrGroup
	if attrs != nil {
		ga = newAttrGroup()
		attrs.Groups[node.name] = ga
		if err := copyAttrs(g, p, ga.Own); err != nil {
			return err
		}
	}

	undeclared, err := r.copyData(g, p, node, gv, ga)
	if err != nil {
		return err
	}

	for _, sub := range node.groups {
		if err := r.visit(g, p, sub, gv, ga); err != nil {
			return err
		}
	}
	if node.anyGroups {
		for _, name := range undeclared {
			if err := r.visit(g, p, flat(name), gv, ga); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyData reads the datasets of g selected by node.data and returns the
// undeclared member groups it passed over.
func (r *reader) copyData(g h5.Group, p string, node groupSchema, vars *Group, attrs *AttrGroup) ([]string, error) {
	var (
		names      []string
		undeclared []string
	)
	switch node.data {
	case noData:
		return nil, nil
	case fixedData:
		names = node.datasets
	case allData:
		members, err := g.Members()
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", p, err)
		}
		for _, m := range members {
			if _, ok := node.group(m); !ok {
				names = append(names, m)
			}
		}
	}

	for _, name := range names {
		dp := path.Join(p, name)

		ds, err := g.OpenDataset(name)
		if node.data == allData && errors.Is(err, h5.ErrNotDataset) {
			if !node.anyGroups {
				r.o.logger.Debug("skipping undeclared group", "path", dp)
			}
			undeclared = append(undeclared, name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening dataset %s: %w", dp, err)
		}

		arr, err := ds.Read()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dp, err)
		}
		vars.Arrays[name] = arr

		if attrs != nil {
			own := make(map[string]interface{})
			if err := copyAttrs(ds, dp, own); err != nil {
				return nil, err
			}
			attrs.Arrays[name] = own
		}
	}
	return undeclared, nil
}

// copyAttrs copies the attributes of obj into dst, leaving out the reserved
// names.
func copyAttrs(obj h5.Object, p string, dst map[string]interface{}) error {
	values, err := obj.AttrMap()
	if err != nil {
		return fmt.Errorf("reading attributes of %s: %w", p, err)
	}
	for name, v := range values {
		if !reservedAttrs[name] {
			dst[name] = v
		}
	}
	return nil
}
