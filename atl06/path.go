package atl06

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-icesat2/internal/h5"
)

// ParseAttrPath splits an attribute path of the form object@name.
//
//   - "/@short_name" -> "/", "short_name"
//   - "/gt1l/land_ice_segments/h_li@units" -> "/gt1l/land_ice_segments/h_li", "units"
//
// The object part is cleaned with CleanPath.
func ParseAttrPath(p string) (object, name string, err error) {
	i := strings.LastIndex(p, "@")
	if i < 0 {
		return "", "", fmt.Errorf("attribute path %q: missing '@'", p)
	}
	if i == len(p)-1 {
		return "", "", fmt.Errorf("attribute path %q: empty attribute name", p)
	}
	return CleanPath(p[:i]), p[i+1:], nil
}

// JoinAttrPath is the inverse of ParseAttrPath.
func JoinAttrPath(object, name string) string {
	object = CleanPath(object)
	if object == "/" {
		return "/@" + name
	}
	return object + "@" + name
}

// SplitPath returns the non-empty components of a slash separated path.
func SplitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// CleanPath normalizes p to a rooted path without a trailing slash.
func CleanPath(p string) string {
	return h5.CleanPath(p)
}
