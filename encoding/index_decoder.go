package encoding

import (
	"fmt"

	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/section"
)

// IndexTableDecoder unpacks the bit-stuffed index region into per-row symbol
// indices.
//
// Records are read as little-endian integers: bit i of a record is bit i%8 of
// record byte i/8 in file order. Each field's raw index occupies bit_width
// bits starting at bit_offset from the least-significant end; the field's
// bias is added to obtain the symbol index.
type IndexTableDecoder struct {
	fields         []section.Field
	recordByteSize int
	rowCount       int
}

// NewIndexTableDecoder creates a decoder for the given layout. The layout
// must already be validated.
func NewIndexTableDecoder(layout *section.Layout) *IndexTableDecoder {
	return &IndexTableDecoder{
		fields:         layout.Fields,
		recordByteSize: layout.RecordByteSize,
		rowCount:       layout.RowCount,
	}
}

// Decode unpacks the whole index region.
//
// The data slice must hold exactly row_count fixed-width records; one
// trailing padding byte is tolerated and ignored.
//
// Returns:
//   - [][]int: One index tuple per row, one entry per field
//   - error: errs.ErrMalformedHeader on a size mismatch, or
//     errs.ErrIndexOutOfRange when a biased index escapes its symbol table
func (d *IndexTableDecoder) Decode(data []byte) ([][]int, error) {
	want := d.rowCount * d.recordByteSize
	if len(data) != want && len(data) != want+1 {
		return nil, fmt.Errorf("%w: index region holds %d bytes, want %d records of %d bytes",
			errs.ErrMalformedHeader, len(data), d.rowCount, d.recordByteSize)
	}

	rows := make([][]int, d.rowCount)
	indices := make([]int, d.rowCount*len(d.fields))

	for r := range d.rowCount {
		record := data[r*d.recordByteSize : (r+1)*d.recordByteSize]
		row := indices[r*len(d.fields) : (r+1)*len(d.fields)]

		for c, f := range d.fields {
			var raw uint64
			if f.BitWidth > 0 {
				raw = extractBits(record, f.BitOffset, f.BitWidth)
			}

			idx := int(int64(raw)) + f.Bias
			if idx < 0 || f.SymbolCount <= 0 || idx >= f.SymbolCount {
				return nil, fmt.Errorf("%w: row %d field %q index %d with %d symbols",
					errs.ErrIndexOutOfRange, r, f.Name, idx, f.SymbolCount)
			}

			row[c] = idx
		}

		rows[r] = row
	}

	return rows, nil
}

// extractBits reads bitWidth bits starting at bitOffset from the record's
// least-significant end, crossing byte boundaries with shifts and masks.
// bitWidth must be 1..64 and the slot must lie inside the record.
func extractBits(record []byte, bitOffset, bitWidth int) uint64 {
	var v uint64

	got := 0
	byteIdx := bitOffset >> 3
	shift := bitOffset & 7

	for got < bitWidth {
		v |= uint64(record[byteIdx]>>shift) << got
		got += 8 - shift
		shift = 0
		byteIdx++
	}

	return v & (1<<uint(bitWidth) - 1)
}
