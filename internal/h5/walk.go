package h5

import (
	"errors"
	"path"
)

// WalkFunc is called for each object during traversal.
// p is the full path to the object.
// obj is either a Group or a Dataset.
// err is any error encountered opening the object.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(p string, obj Object, err error) error

// Walk traverses all groups and datasets below g, depth first, in member
// order. fn is called for g itself first, with p set to root.
func Walk(g Group, root string, fn WalkFunc) error {
	return walkGroup(g, CleanPath(root), fn)
}

func walkGroup(g Group, p string, fn WalkFunc) error {
	if err := fn(p, g, nil); err != nil {
		return err
	}

	members, err := g.Members()
	if err != nil {
		return err
	}

	for _, name := range members {
		childPath := path.Join(p, name)

		child, err := g.OpenGroup(name)
		if err == nil {
			if err := walkGroup(child, childPath, fn); err != nil {
				return err
			}
			continue
		}
		if !errors.Is(err, ErrNotGroup) {
			if err := fn(childPath, nil, err); err != nil {
				return err
			}
			continue
		}

		ds, err := g.OpenDataset(name)
		if err := fn(childPath, ds, err); err != nil {
			return err
		}
	}

	return nil
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no trailing slash.
func CleanPath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	return path.Clean("/" + p)
}
