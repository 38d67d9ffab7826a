package section

import (
	"fmt"

	"github.com/arloliu/qvd/errs"
)

// Field describes one column's slice of the symbol region and its slot in the
// bit-stuffed index records.
type Field struct {
	// Name is the column name (FieldName in the header).
	Name string
	// SymbolOffset is the byte offset of the column's symbol sub-region,
	// relative to the start of the symbol region.
	SymbolOffset int
	// SymbolLength is the byte length of the column's symbol sub-region.
	SymbolLength int
	// BitOffset is the offset of the column's index slot within a record,
	// counted from the record's least-significant bit.
	BitOffset int
	// BitWidth is the width of the index slot in bits. A width of zero means
	// every row resolves to symbol index 0.
	BitWidth int
	// Bias is added to every raw index extracted from a record.
	Bias int
	// SymbolCount is the number of symbols in the column's symbol table.
	SymbolCount int
}

// Layout captures everything the binary sections rely on: per-field symbol
// sub-regions, per-field bit slots, and the region sizes. On read it is
// recovered from the XML header; on write it is computed from the data.
type Layout struct {
	// TableName is the logical table name stored in the header.
	TableName string
	// Fields lists the columns in file order.
	Fields []Field
	// RecordByteSize is the uniform width of one index record in bytes.
	RecordByteSize int
	// RowCount is the number of records in the index region.
	RowCount int
	// SymbolRegionLength is the byte length of the symbol region, which is
	// also the offset from the end of the header to the index region.
	SymbolRegionLength int
	// IndexRegionLength is the byte length of the index region.
	IndexRegionLength int
}

// Validate checks the layout's internal consistency: symbol sub-regions must
// be in field order, non-overlapping, and inside the symbol region; bit slots
// must fit the record; and the index region must hold an integer number of
// records, with a single trailing padding byte tolerated.
func (l *Layout) Validate() error {
	if l.RowCount < 0 || l.RecordByteSize < 0 || l.SymbolRegionLength < 0 || l.IndexRegionLength < 0 {
		return fmt.Errorf("%w: negative size", errs.ErrMalformedHeader)
	}
	if len(l.Fields) == 0 {
		return fmt.Errorf("%w: no fields", errs.ErrMalformedHeader)
	}

	prevEnd := 0
	for _, f := range l.Fields {
		if f.SymbolOffset < prevEnd || f.SymbolLength < 0 {
			return fmt.Errorf("%w: field %q symbol sub-region out of order", errs.ErrSymbolRegionOverrun, f.Name)
		}

		end := f.SymbolOffset + f.SymbolLength
		if end > l.SymbolRegionLength {
			return fmt.Errorf("%w: field %q declares bytes %d..%d beyond symbol region of %d bytes",
				errs.ErrSymbolRegionOverrun, f.Name, f.SymbolOffset, end, l.SymbolRegionLength)
		}
		prevEnd = end

		if f.BitWidth < 0 || f.BitWidth > MaxBitWidth {
			return fmt.Errorf("%w: field %q bit width %d", errs.ErrBitLayoutOverflow, f.Name, f.BitWidth)
		}
		if l.RowCount > 0 && f.BitOffset+f.BitWidth > l.RecordByteSize*8 {
			return fmt.Errorf("%w: field %q slot %d..%d exceeds %d-byte record",
				errs.ErrBitLayoutOverflow, f.Name, f.BitOffset, f.BitOffset+f.BitWidth, l.RecordByteSize)
		}
	}

	recordBytes := l.RowCount * l.RecordByteSize
	if l.IndexRegionLength != recordBytes && l.IndexRegionLength != recordBytes+1 {
		return fmt.Errorf("%w: index region of %d bytes does not hold %d records of %d bytes",
			errs.ErrMalformedHeader, l.IndexRegionLength, l.RowCount, l.RecordByteSize)
	}

	return nil
}

// FieldNames returns the column names in file order.
func (l *Layout) FieldNames() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}

	return names
}
