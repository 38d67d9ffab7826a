package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/qvd/errs"
)

func TestSymbolTableEncoder_Dedup(t *testing.T) {
	encoder := NewSymbolTableEncoder(testEngine())
	defer encoder.Finish()

	values := []any{"x", "x", "y", "x", "y", "y"}
	var indices []int
	for _, v := range values {
		idx, err := encoder.Append(v)
		require.NoError(t, err)
		indices = append(indices, idx)
	}

	require.Equal(t, []int{0, 0, 1, 0, 1, 1}, indices)
	require.Equal(t, 2, encoder.Len())
	require.True(t, encoder.Symbols()[0].Equal(StringSymbol("x")))
	require.True(t, encoder.Symbols()[1].Equal(StringSymbol("y")))

	// Two String symbols of one character each: (tag + char + NUL) * 2.
	require.Equal(t, 6, encoder.Size())
}

func TestSymbolTableEncoder_DedupRequiresBothComponents(t *testing.T) {
	encoder := NewSymbolTableEncoder(testEngine())
	defer encoder.Finish()

	// 1 (int) and 1.0 (float) classify to the same DualInt symbol.
	first, err := encoder.Append(1)
	require.NoError(t, err)
	second, err := encoder.Append(1.0)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// "1" is a String symbol, distinct from DualInt(1, "1").
	third, err := encoder.Append("1")
	require.NoError(t, err)
	require.NotEqual(t, first, third)
	require.Equal(t, 2, encoder.Len())
}

func TestSymbolTableEncoder_NaNDedup(t *testing.T) {
	encoder := NewSymbolTableEncoder(testEngine())
	defer encoder.Finish()

	first, err := encoder.Append(math.NaN())
	require.NoError(t, err)
	second, err := encoder.Append(math.NaN())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, encoder.Len())
}

func TestSymbolTableEncoder_RoundTripWire(t *testing.T) {
	encoder := NewSymbolTableEncoder(testEngine())
	defer encoder.Finish()

	for _, v := range []any{1, 2.5, "a", int64(-12), "日本語"} {
		_, err := encoder.Append(v)
		require.NoError(t, err)
	}

	decoder := NewSymbolTableDecoder(testEngine(), false)
	symbols, err := decoder.DecodeColumn(encoder.Bytes())
	require.NoError(t, err)
	require.Len(t, symbols, encoder.Len())
	for i, sym := range encoder.Symbols() {
		require.True(t, symbols[i].Equal(sym), "symbol %d", i)
	}
}

func TestSymbolTableEncoder_RejectsNull(t *testing.T) {
	encoder := NewSymbolTableEncoder(testEngine())
	defer encoder.Finish()

	_, err := encoder.Append(nil)
	require.ErrorIs(t, err, errs.ErrWriteUnrepresentable)

	_, err = encoder.Append(struct{}{})
	require.ErrorIs(t, err, errs.ErrWriteUnrepresentable)
}

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Symbol
	}{
		{name: "small int", value: 1, want: DualIntSymbol(1, "1")},
		{name: "negative int", value: -42, want: DualIntSymbol(-42, "-42")},
		{name: "max int32", value: 2147483647, want: DualIntSymbol(2147483647, "2147483647")},
		{name: "min int32", value: int64(math.MinInt32), want: DualIntSymbol(math.MinInt32, "-2147483648")},
		{name: "beyond int32 becomes dual double", value: int64(2147483648), want: DualDoubleSymbol(2147483648, "2147483648")},
		{name: "whole float becomes dual int", value: 3.0, want: DualIntSymbol(3, "3")},
		{name: "fractional float", value: 2.5, want: DualDoubleSymbol(2.5, "2.5")},
		{name: "whole double beyond int32", value: 3e9, want: DualDoubleSymbol(3e9, "3000000000")},
		{name: "uint64 beyond int32", value: uint64(1 << 33), want: DualDoubleSymbol(8589934592, "8589934592")},
		{name: "string", value: "text", want: StringSymbol("text")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := ClassifyValue(tt.value)
			require.NoError(t, err)
			require.True(t, sym.Equal(tt.want), "got %v %q", sym.Type(), sym.Text())
		})
	}
}
