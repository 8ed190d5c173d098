package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDivision(t *testing.T) {
	d, err := ParseDivision("mun")
	require.NoError(t, err)
	assert.Equal(t, DivisionMun, d)

	d, err = ParseDivision("adm")
	require.NoError(t, err)
	assert.Equal(t, DivisionAdm, d)

	_, err = ParseDivision("fed")
	assert.Error(t, err)
}

func TestDivisionString(t *testing.T) {
	assert.Equal(t, "mun", DivisionMun.String())
	assert.Equal(t, "adm", DivisionAdm.String())
}

func TestDivisionProcsRegistered(t *testing.T) {
	for _, d := range []Division{DivisionMun, DivisionAdm} {
		ps, err := d.procs()
		require.NoError(t, err)
		assert.NotEmpty(t, ps.hierarchy)
		assert.NotEmpty(t, ps.selectObject)
		assert.NotEmpty(t, ps.searchText)
		assert.NotEmpty(t, ps.searchGUID)
	}
}

func TestDivisionProcsUnknown(t *testing.T) {
	_, err := Division(99).procs()
	assert.Error(t, err)
}
