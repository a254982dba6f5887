package atl06

// dataMode selects which dataset members of a group are copied.
type dataMode int

const (
	// allData copies every dataset member.
	allData dataMode = iota
	// fixedData copies only groupSchema.datasets, each of which must exist.
	fixedData
	// noData copies no datasets, only the declared subgroups.
	noData
)

// groupSchema declares one group of the ATL06 hierarchy. Members named in
// groups are visited as nested groups; with allData every other member is
// read as a dataset.
type groupSchema struct {
	name     string
	data     dataMode
	datasets []string
	groups   []groupSchema
	optional bool

	// anyGroups visits every undeclared member group as a flat group,
	// in container order.
	anyGroups bool
}

// group returns the declared subgroup called name.
func (s groupSchema) group(name string) (groupSchema, bool) {
	for _, g := range s.groups {
		if g.name == name {
			return g, true
		}
	}
	return groupSchema{}, false
}

// flat declares a group of datasets only.
func flat(name string) groupSchema {
	return groupSchema{name: name}
}

// AllBeams lists the six ATL06 beam identifiers by ground track and laser
// position.
var AllBeams = []string{"gt1l", "gt1r", "gt2l", "gt2r", "gt3l", "gt3r"}

// ancillaryKeys are the ancillary_data variables copied from every granule.
var ancillaryKeys = []string{
	"atlas_sdp_gps_epoch",
	"data_end_utc",
	"data_start_utc",
	"end_cycle",
	"end_geoseg",
	"end_gpssow",
	"end_gpsweek",
	"end_orbit",
	"end_region",
	"end_rgt",
	"granule_end_utc",
	"granule_start_utc",
	"release",
	"start_cycle",
	"start_geoseg",
	"start_gpssow",
	"start_gpsweek",
	"start_orbit",
	"start_region",
	"start_rgt",
	"version",
}

// landIceSubgroups are the subgroups of <beam>/land_ice_segments.
var landIceSubgroups = []string{
	"bias_correction",
	"dem",
	"fit_statistics",
	"geophysical",
	"ground_track",
}

var residualHistogram = groupSchema{
	name:     "residual_histogram",
	optional: true,
}

var segmentQuality = groupSchema{
	name:     "segment_quality",
	optional: true,
	groups: []groupSchema{
		flat("signal_selection_status"),
	},
}

// landIceSegments declares <beam>/land_ice_segments. Its subgroups are
// optional since subsetting services drop them.
func landIceSegments() groupSchema {
	node := groupSchema{name: "land_ice_segments"}
	for _, name := range landIceSubgroups {
		node.groups = append(node.groups, groupSchema{name: name, optional: true})
	}
	return node
}

// beamSchema declares one beam group. land_ice_segments is required;
// residual_histogram and segment_quality are included on request and
// skipped when a beam lacks them.
func beamSchema(beam string, o *options) groupSchema {
	node := groupSchema{
		name:   beam,
		data:   noData,
		groups: []groupSchema{landIceSegments()},
	}
	if o.histogram {
		node.groups = append(node.groups, residualHistogram)
	}
	if o.quality {
		node.groups = append(node.groups, segmentQuality)
	}
	return node
}

// topLevelGroups declares the top level groups shared by all beams.
func topLevelGroups() []groupSchema {
	return []groupSchema{
		flat("orbit_info"),
		{name: "quality_assessment", anyGroups: true},
		{
			name:     "ancillary_data",
			data:     fixedData,
			datasets: ancillaryKeys,
			groups:   []groupSchema{flat("land_ice")},
		},
	}
}
