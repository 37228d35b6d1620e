package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStages_OrdinalsContiguous(t *testing.T) {
	all := Stages()
	require.NotEmpty(t, all)
	for i, s := range all {
		require.Equal(t, i, s.Ordinal, "stage %q out of order", s.Key)
		require.NotEmpty(t, s.Key)
		require.NotEmpty(t, s.Label)
	}
	require.Equal(t, len(all), Count())
}

func TestOrdinalOf(t *testing.T) {
	for _, s := range Stages() {
		ord, ok := OrdinalOf(s.Key)
		require.True(t, ok)
		require.Equal(t, s.Ordinal, ord)
	}

	_, ok := OrdinalOf("no-such-stage")
	require.False(t, ok)
}
