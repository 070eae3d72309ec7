package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	wei, err := parseEther("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", wei.String())

	wei, err = parseEther("0.000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "1", wei.String())

	for _, bad := range []string{"", "abc", "0", "-1", "0.0000000000000000001"} {
		_, err := parseEther(bad)
		assert.Error(t, err, bad)
	}
}
