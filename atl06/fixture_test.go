package atl06

import (
	"testing"

	"github.com/robert-malhotra/go-icesat2/internal/h5"
	"github.com/robert-malhotra/go-icesat2/internal/h5/h5test"
)

// granuleTree builds a small ATL06 granule. gt1l, gt1r and gt2l carry land
// ice segments; gt2r has been subsetted and lacks segment_id.
func granuleTree() *h5test.Group {
	root := h5test.NewGroup("/")
	root.SetAttr("short_name", "ATL06")
	root.SetAttr("level", "L3A")
	root.SetAttr("NAME", "reserved")

	for _, beam := range []string{"gt1l", "gt1r", "gt2l"} {
		addBeam(root, beam)
	}
	subset := root.AddGroup("gt2r")
	subset.AddGroup("land_ice_segments").AddFloat64("h_li", 1)
	root.AddGroup("METADATA").AddStrings("granule", "x")

	orbit := root.AddGroup("orbit_info")
	orbit.AddFloat64("rgt", 1234).SetAttr("long_name", "reference ground track")
	orbit.AddFloat64("cycle_number", 3)
	orbit.AddFloat64("sc_orient", 1)

	qa := root.AddGroup("quality_assessment")
	qa.AddStrings("qa_granule_pass_fail", "pass").SetAttr("CLASS", "reserved")
	qa.AddGroup("gt1l").AddFloat64("qa_perc_surf_type", 99.5)
	qa.AddGroup("gt1r").AddFloat64("qa_perc_surf_type", 98)
	qa.AddGroup("summary").AddFloat64("qa_total_segments", 9).SetAttr("units", "1")

	anc := root.AddGroup("ancillary_data")
	for i, key := range ancillaryKeys {
		if key == "release" || key == "version" || key == "data_start_utc" ||
			key == "data_end_utc" || key == "granule_start_utc" || key == "granule_end_utc" {
			anc.AddStrings(key, "v"+key)
			continue
		}
		anc.AddFloat64(key, float64(i)).SetAttr("units", "1")
	}
	anc.AddFloat64("control", 0)
	landIce := anc.AddGroup("land_ice")
	landIce.AddFloat64("fpb_algorithm", 1).SetAttr("DIMENSION_LIST", "reserved")
	landIce.AddFloat64("max_res_ids", 3, 4)

	return root
}

func addBeam(root *h5test.Group, beam string) {
	b := root.AddGroup(beam)
	b.SetAttr("atlas_beam_type", "strong")
	b.SetAttr("groundtrack_id", beam)

	lis := b.AddGroup("land_ice_segments")
	lis.SetAttr("description", "segments")
	lis.AddFloat64("segment_id", 101, 102, 103).
		SetAttr("units", "1").
		SetAttr("DIMENSION_LIST", "reserved")
	lis.AddFloat64("h_li", 10.5, 11.5, 12.5).
		SetAttr("units", "meters").
		SetAttr("CLASS", "reserved")
	lis.AddFloat64("delta_time", 1e7, 1e7+1, 1e7+2)
	lis.AddFloat64("latitude", -70, -70.1, -70.2)
	for _, sub := range landIceSubgroups {
		lis.AddGroup(sub).AddFloat64(sub+"_value", 1, 2, 3).SetAttr("source", sub)
	}
	lis.AddGroup("undeclared").AddFloat64("ignored", 1)

	rh := b.AddGroup("residual_histogram")
	rh.AddFloat64("count", 5, 6)
	rh.AddFloat64("x_atc_mean", 7, 8).SetAttr("units", "meters")

	sq := b.AddGroup("segment_quality")
	sq.AddFloat64("segment_id", 101, 102, 103)
	sq.AddGroup("signal_selection_status").AddFloat64("signal_selection_status_all", 0, 0, 1)
}

// useTree makes path based opens return tree and records every handle
// opened that way.
func useTree(t *testing.T, tree *h5test.Group) *[]*h5.File {
	t.Helper()

	var opened []*h5.File
	orig := openFile
	openFile = func(path string) (*h5.File, error) {
		f := h5test.File(path, tree)
		opened = append(opened, f)
		return f, nil
	}
	t.Cleanup(func() { openFile = orig })
	return &opened
}

// memFile wraps tree as an open handle whose closer counts calls.
func memFile(tree *h5test.Group, closes *int) *File {
	return &File{hf: h5.NewFile("mem.h5", tree, func() error {
		*closes++
		return nil
	})}
}

func groupKeys(g *Group) []string {
	var keys []string
	for k := range g.Groups {
		keys = append(keys, k)
	}
	return keys
}
