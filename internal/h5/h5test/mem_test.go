package h5test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddInts(t *testing.T) {
	g := NewGroup("/")
	ds := AddInts[uint32](g, "ids", 4000000000, 7)

	arr, err := ds.Read()
	require.NoError(t, err)
	require.Equal(t, []float64{4000000000, 7}, arr.Float64)
	require.Equal(t, []uint32{4000000000, 7}, ds.native)

	g.AddFloat64("ids", 1)
	require.Nil(t, g.Data("ids").native)
}

func TestAttrMap(t *testing.T) {
	g := NewGroup("/")
	g.SetAttr("a", "x").SetAttr("b", 2.0)
	ds := g.AddFloat64("v", 1).SetAttr("units", "m")

	got, err := g.AttrMap()
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"a": "x", "b": 2.0}, got)
	require.Equal(t, 1, g.AttrReads)

	got, err = ds.AttrMap()
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"units": "m"}, got)
	require.Equal(t, 1, ds.AttrReads)
}
