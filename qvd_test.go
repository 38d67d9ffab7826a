package qvd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/table"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tbl, err := New([]string{"Name", "City"}, [][]any{
		{"Alice", "Berlin"},
		{"Bob", "Tokyo"},
		{"Alice", "Berlin"},
	})
	require.NoError(t, err)

	data, err := Encode(tbl)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.True(t, tbl.Equal(decoded))
}

func TestWriteFile_ReadFile(t *testing.T) {
	tbl, err := New([]string{"Key", "Value"}, [][]any{
		{1, "A"}, {2, "B"},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "orders.qvd")
	require.NoError(t, WriteFile(path, tbl))

	decoded, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Key", "Value"}, decoded.Columns())
	require.Equal(t, [][]any{{"1", "A"}, {"2", "B"}}, decoded.Rows())

	// The table name defaults to the file stem.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data[:512]), "<TableName>orders</TableName>")
}

func TestWriteFile_TableNameOverride(t *testing.T) {
	tbl, err := New([]string{"a"}, [][]any{{"x"}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "file.qvd")
	require.NoError(t, WriteFile(path, tbl, table.WithTableName("Custom")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data[:512]), "<TableName>Custom</TableName>")
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.qvd"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Rejections(t *testing.T) {
	_, err := Decode([]byte("no terminator here"))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestEncode_NoColumns(t *testing.T) {
	tbl, err := New(nil, nil)
	require.NoError(t, err)

	_, err = Encode(tbl)
	require.ErrorIs(t, err, errs.ErrNoColumns)
}
