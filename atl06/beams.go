package atl06

import (
	"fmt"
	"log/slog"
	"path"
	"regexp"

	"github.com/robert-malhotra/go-icesat2/internal/h5"
)

// beamPattern matches top level beam group names such as gt1l or gt3r.
var beamPattern = regexp.MustCompile(`^gt\d[lr]`)

// IsBeam reports whether name looks like a beam group name. It does not
// check that the beam carries land ice segments.
func IsBeam(name string) bool {
	return beamPattern.MatchString(name)
}

// findBeams returns the beams below root that carry
// land_ice_segments/segment_id, in container order. Beams without it
// are skipped.
func findBeams(root h5.Group, logger *slog.Logger) ([]string, error) {
	members, err := root.Members()
	if err != nil {
		return nil, fmt.Errorf("listing root members: %w", err)
	}

	var beams []string
	for _, name := range members {
		if !IsBeam(name) {
			continue
		}
		marker := path.Join(name, "land_ice_segments", "segment_id")
		ok, err := h5.Exists(root, marker)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", marker, err)
		}
		if !ok {
			logger.Debug("skipping beam without land ice segments", "beam", name)
			continue
		}
		beams = append(beams, name)
	}
	return beams, nil
}
