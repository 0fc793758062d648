package domain_test

import (
	"testing"

	"github.com/aretw0/vista/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLibrary(t *testing.T) {
	lib, err := domain.ParseLibrary("H5P.GoToScene 1.0")
	require.NoError(t, err)
	assert.Equal(t, domain.Library{MachineName: "H5P.GoToScene", MajorVersion: 1, MinorVersion: 0}, lib)
	assert.Equal(t, "H5P.GoToScene 1.0", lib.String())

	lib, err = domain.ParseLibrary("H5P.Audio 1.12")
	require.NoError(t, err)
	assert.Equal(t, domain.MachineAudio, lib.MachineName)
	assert.Equal(t, 12, lib.MinorVersion)

	for _, bad := range []string{"", "H5P.Text", "H5P.Text 1", "H5P.Text v1.0", " 1.0"} {
		_, err := domain.ParseLibrary(bad)
		assert.ErrorIs(t, err, domain.ErrMalformedAction, "input %q", bad)
	}
}
