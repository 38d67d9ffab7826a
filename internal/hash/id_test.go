package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	require.Equal(t, Sum([]byte("symbol")), Sum([]byte("symbol")))
	require.NotEqual(t, Sum([]byte("a")), Sum([]byte("b")))
}

func TestID_MatchesSum(t *testing.T) {
	require.Equal(t, Sum([]byte("field")), ID("field"))
}
