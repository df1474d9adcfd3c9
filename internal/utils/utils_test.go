package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointerHelpers(t *testing.T) {
	f := F64Ptr(3.14)
	i := I64Ptr(7)
	s := StrPtr("2024-01-02T03:04:05.000Z")
	require.NotNil(t, f)
	require.NotNil(t, i)
	require.NotNil(t, s)
	require.InDelta(t, 3.14, *f, 1e-9)
	require.EqualValues(t, 7, *i)
	require.Equal(t, "2024-01-02T03:04:05.000Z", *s)
}
