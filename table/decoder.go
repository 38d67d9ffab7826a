package table

import (
	"fmt"

	"github.com/arloliu/qvd/encoding"
	"github.com/arloliu/qvd/endian"
	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/internal/options"
	"github.com/arloliu/qvd/section"
)

// Decoder reads a QVD byte buffer and materializes it as a Table.
//
// The header is parsed and validated eagerly in NewDecoder; the symbol and
// index regions are decoded by Decode. The decoder borrows the input buffer
// for its lifetime and never mutates it.
//
// Note: The Decoder is NOT thread-safe. Each decoder instance should be used
// by a single goroutine at a time.
type Decoder struct {
	data      []byte
	layout    *section.Layout
	engine    endian.EndianEngine
	headerEnd int
	latin1    bool
}

// DecoderOption is a functional option for configuring a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithLatin1Strings decodes string symbol payloads byte-wise as Latin-1
// instead of UTF-8. Use it for files from producers that stored legacy
// single-byte text.
func WithLatin1Strings() DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.latin1 = true
	})
}

// NewDecoder creates a decoder over the full file contents.
//
// The XML header is located, parsed, and validated immediately, so layout
// errors surface before any symbol or index byte is touched.
//
// Returns:
//   - *Decoder: Decoder ready to Decode
//   - error: errs.ErrMalformedHeader, errs.ErrSymbolRegionOverrun, or
//     errs.ErrBitLayoutOverflow from header validation
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	decoder := &Decoder{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}

	if err := options.Apply(decoder, opts...); err != nil {
		return nil, err
	}

	layout, headerEnd, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	decoder.layout = layout
	decoder.headerEnd = headerEnd

	return decoder, nil
}

// Layout returns the layout recovered from the header.
func (d *Decoder) Layout() *section.Layout {
	return d.layout
}

// Decode decodes the symbol and index regions and assembles the rows.
//
// Each cell is the primary value of the symbol its row index resolves to:
// the display string for dual and string symbols, the number otherwise.
//
// Returns:
//   - Table: The materialized table
//   - error: Any error from the symbol or index codecs
func (d *Decoder) Decode() (Table, error) {
	symbolTables, err := d.decodeSymbolTables()
	if err != nil {
		return Table{}, err
	}

	indexes, err := d.decodeIndexTable()
	if err != nil {
		return Table{}, err
	}

	rows := make([][]any, d.layout.RowCount)
	for r, tuple := range indexes {
		cells := make([]any, len(tuple))
		for c, idx := range tuple {
			cells[c] = symbolTables[c][idx].Primary()
		}
		rows[r] = cells
	}

	return Table{
		columns: d.layout.FieldNames(),
		rows:    rows,
	}, nil
}

// decodeSymbolTables slices the symbol region per field and decodes each
// column sub-region.
func (d *Decoder) decodeSymbolTables() ([][]encoding.Symbol, error) {
	regionEnd := d.headerEnd + d.layout.SymbolRegionLength
	if regionEnd > len(d.data) {
		return nil, fmt.Errorf("%w: symbol region of %d bytes exceeds file",
			errs.ErrSymbolRegionOverrun, d.layout.SymbolRegionLength)
	}
	region := d.data[d.headerEnd:regionEnd]

	symbolDecoder := encoding.NewSymbolTableDecoder(d.engine, d.latin1)

	tables := make([][]encoding.Symbol, len(d.layout.Fields))
	for i, f := range d.layout.Fields {
		symbols, err := symbolDecoder.DecodeColumn(region[f.SymbolOffset : f.SymbolOffset+f.SymbolLength])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		if len(symbols) != f.SymbolCount {
			return nil, fmt.Errorf("%w: field %q decoded %d symbols, header declares %d",
				errs.ErrSymbolRegionOverrun, f.Name, len(symbols), f.SymbolCount)
		}

		tables[i] = symbols
	}

	return tables, nil
}

// decodeIndexTable slices the index region and unpacks the records. Any
// trailing padding byte after the records is left untouched.
func (d *Decoder) decodeIndexTable() ([][]int, error) {
	start := d.headerEnd + d.layout.SymbolRegionLength

	want := d.layout.RowCount * d.layout.RecordByteSize
	if start+want > len(d.data) {
		return nil, fmt.Errorf("%w: index region of %d bytes exceeds file",
			errs.ErrMalformedHeader, d.layout.IndexRegionLength)
	}

	return encoding.NewIndexTableDecoder(d.layout).Decode(d.data[start : start+want])
}
