package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolType_WireValues(t *testing.T) {
	require.Equal(t, SymbolType(1), TypeInt)
	require.Equal(t, SymbolType(2), TypeDouble)
	require.Equal(t, SymbolType(4), TypeString)
	require.Equal(t, SymbolType(5), TypeDualInt)
	require.Equal(t, SymbolType(6), TypeDualDouble)
}

func TestSymbolType_Valid(t *testing.T) {
	for _, typ := range []SymbolType{TypeInt, TypeDouble, TypeString, TypeDualInt, TypeDualDouble} {
		require.True(t, typ.Valid(), "tag %d", typ)
	}

	require.False(t, SymbolType(0).Valid())
	require.False(t, SymbolType(3).Valid())
	require.False(t, SymbolType(7).Valid())
}

func TestSymbolType_HasText(t *testing.T) {
	require.False(t, TypeInt.HasText())
	require.False(t, TypeDouble.HasText())
	require.True(t, TypeString.HasText())
	require.True(t, TypeDualInt.HasText())
	require.True(t, TypeDualDouble.HasText())
}

func TestSymbolType_String(t *testing.T) {
	require.Equal(t, "DualInt", TypeDualInt.String())
	require.Equal(t, "Unknown", SymbolType(3).String())
}
