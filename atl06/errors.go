// Package atl06 reads ICESat-2 ATL06 land ice height granules into nested
// in-memory mappings of arrays and attributes.
//
// A read opens the container, discovers the beams that carry land ice
// segments, copies the known ATL06 groups, optionally copies attributes,
// and closes the container again unless asked to keep it open:
//
//	g, err := atl06.ReadGranule(atl06.FromPath("~/data/ATL06_20190101_x.h5"),
//	    atl06.WithAttributes())
//	if err != nil {
//	    return err
//	}
//	h, _ := g.Vars.Lookup("/gt1l/land_ice_segments/h_li")
package atl06

import (
	"github.com/robert-malhotra/go-icesat2/internal/h5"
)

// Errors surfaced from the container layer. Open failures keep the
// underlying I/O error in the chain as well.
var (
	ErrNotHDF5    = h5.ErrNotHDF5
	ErrNotFound   = h5.ErrNotFound
	ErrNotDataset = h5.ErrNotDataset
	ErrNotGroup   = h5.ErrNotGroup
	ErrClosed     = h5.ErrClosed
)
