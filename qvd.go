// Package qvd reads and writes QlikView Data (QVD) files: a columnar binary
// format that stores each column's distinct values in a deduplicated symbol
// table and each row as bit-packed indices into those tables.
//
// # File anatomy
//
// A QVD file has three sections:
//
//   - An XML header terminated by CR LF NUL, fixing every offset, length and
//     bit slot the binary sections rely on
//   - A symbol region: per column, a stream of tag-prefixed values
//   - An index region: fixed-width records of bit-stuffed symbol indices
//
// # Basic Usage
//
// Reading a file:
//
//	tbl, err := qvd.ReadFile("sales.qvd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range tbl.Rows() {
//	    fmt.Println(row)
//	}
//
// Writing a table:
//
//	tbl, _ := qvd.New([]string{"Key", "Value"}, [][]any{
//	    {1, "A"},
//	    {2, "B"},
//	})
//	err := qvd.WriteFile("out.qvd", tbl)
//
// Cell values are int, float64, or string. On write, whole numbers inside the
// int32 range are stored as dual integers, other numbers as dual doubles, and
// strings as plain strings. On read, each cell is the symbol's primary value:
// the display string for dual and string symbols, the number otherwise.
//
// # Package Structure
//
// This package provides convenient wrappers around the table package, which
// holds the Decoder/Encoder pipelines and the Table model. The section and
// encoding packages implement the header contract and the two binary codecs
// for advanced use.
package qvd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/qvd/table"
)

// Table is the in-memory table model; see the table package for its
// operations.
type Table = table.Table

// New creates a table from column names and row-major cells.
func New(columns []string, rows [][]any) (Table, error) {
	return table.New(columns, rows)
}

// Decode materializes a QVD byte buffer as a table.
//
// Options:
//   - table.WithLatin1Strings() for files with legacy single-byte text
func Decode(data []byte, opts ...table.DecoderOption) (Table, error) {
	decoder, err := table.NewDecoder(data, opts...)
	if err != nil {
		return Table{}, err
	}

	return decoder.Decode()
}

// Encode serializes a table as QVD bytes.
//
// Options:
//   - table.WithTableName(name) to set the header's TableName
//   - table.WithCreateTime(t) and table.WithCreatorDoc(id) to pin the
//     volatile header fields for byte-stable output
func Encode(tbl Table, opts ...table.EncoderOption) ([]byte, error) {
	encoder, err := table.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(tbl)
}

// ReadFile reads and decodes the QVD file at path.
func ReadFile(path string, opts ...table.DecoderOption) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}

	return Decode(data, opts...)
}

// WriteFile encodes the table and writes it to path. The header's TableName
// defaults to the file's stem; pass table.WithTableName to override it.
func WriteFile(path string, tbl Table, opts ...table.EncoderOption) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	allOpts := append([]table.EncoderOption{table.WithTableName(stem)}, opts...)
	data, err := Encode(tbl, allOpts...)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
