package atl06

import (
	"strings"

	"github.com/robert-malhotra/go-icesat2/internal/h5"
)

// Array is one dataset copied into memory, flattened in row-major order.
type Array = h5.Array

// Group mirrors one container group: its datasets by name and its copied
// subgroups by name.
type Group struct {
	Arrays map[string]Array
	Groups map[string]*Group
}

func newGroup() *Group {
	return &Group{
		Arrays: make(map[string]Array),
		Groups: make(map[string]*Group),
	}
}

// Group returns the subgroup at the slash separated path p below g.
func (g *Group) Group(p string) (*Group, bool) {
	cur := g
	for _, name := range SplitPath(p) {
		next, ok := cur.Groups[name]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Lookup returns the array at p, for example
// "/gt1l/land_ice_segments/h_li".
func (g *Group) Lookup(p string) (Array, bool) {
	parts := SplitPath(p)
	if len(parts) == 0 {
		return Array{}, false
	}
	parent, ok := g.Group(joinParts(parts[:len(parts)-1]))
	if !ok {
		return Array{}, false
	}
	a, ok := parent.Arrays[parts[len(parts)-1]]
	return a, ok
}

// AttrGroup holds the attributes of a group and of everything copied
// below it. Keys of Arrays and Groups match the corresponding Group.
type AttrGroup struct {
	Own    map[string]interface{}
	Arrays map[string]map[string]interface{}
	Groups map[string]*AttrGroup
}

func newAttrGroup() *AttrGroup {
	return &AttrGroup{
		Own:    make(map[string]interface{}),
		Arrays: make(map[string]map[string]interface{}),
		Groups: make(map[string]*AttrGroup),
	}
}

// Group returns the attribute group at the slash separated path p below a.
func (a *AttrGroup) Group(p string) (*AttrGroup, bool) {
	cur := a
	for _, name := range SplitPath(p) {
		next, ok := cur.Groups[name]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Lookup returns the attribute named by an object@name path. The object may
// be a group, including the root ("/@short_name"), or a dataset.
func (a *AttrGroup) Lookup(attrPath string) (interface{}, bool) {
	object, name, err := ParseAttrPath(attrPath)
	if err != nil {
		return nil, false
	}

	if g, ok := a.Group(object); ok {
		v, ok := g.Own[name]
		return v, ok
	}

	parts := SplitPath(object)
	parent, ok := a.Group(joinParts(parts[:len(parts)-1]))
	if !ok {
		return nil, false
	}
	attrs, ok := parent.Arrays[parts[len(parts)-1]]
	if !ok {
		return nil, false
	}
	v, ok := attrs[name]
	return v, ok
}

// Granule is the result of a read.
type Granule struct {
	// Vars holds the copied arrays keyed by their container path.
	Vars *Group

	// Attrs is nil unless WithAttributes was given.
	Attrs *AttrGroup

	// Beams lists the beams read, in container order.
	Beams []string
}

func joinParts(parts []string) string {
	return "/" + strings.Join(parts, "/")
}
