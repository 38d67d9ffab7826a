package table

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/qvd/encoding"
	"github.com/arloliu/qvd/endian"
	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/internal/options"
	"github.com/arloliu/qvd/internal/pool"
	"github.com/arloliu/qvd/section"
)

// Encoder serializes a Table into QVD bytes.
//
// Encoding deduplicates every column into a symbol table, resolves each row
// to per-column symbol indices, packs the indices into bit-stuffed records,
// and computes the header from the resulting layout, so the three file
// sections are always internally consistent.
//
// An Encoder is reusable: each Encode call produces an independent file.
type Encoder struct {
	*EncoderConfig

	engine endian.EndianEngine
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := &EncoderConfig{
		tableName: DefaultTableName,
	}

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		engine:        endian.GetLittleEndianEngine(),
	}, nil
}

// Encode serializes the table.
//
// Returns:
//   - []byte: The complete file: header, NUL terminator byte, symbol region,
//     index region
//   - error: errs.ErrNoColumns for a columnless table, or
//     errs.ErrWriteUnrepresentable for cells without a symbol representation
func (e *Encoder) Encode(tbl Table) ([]byte, error) {
	if tbl.ColumnCount() == 0 {
		return nil, errs.ErrNoColumns
	}

	symbolEncoders, indices, err := e.encodeSymbols(tbl)
	defer func() {
		for _, se := range symbolEncoders {
			se.Finish()
		}
	}()
	if err != nil {
		return nil, err
	}

	indexEncoder := encoding.NewIndexTableEncoder()
	defer indexEncoder.Finish()

	bitLayout, err := indexEncoder.Encode(indices, tbl.ColumnCount())
	if err != nil {
		return nil, err
	}

	layout := e.buildLayout(tbl, symbolEncoders, bitLayout, indexEncoder.Size())

	header, err := section.BuildHeader(layout, e.buildInfo())
	if err != nil {
		return nil, err
	}

	buf := pool.GetRegionBuffer()
	defer pool.PutRegionBuffer(buf)

	buf.Grow(len(header) + 1 + layout.SymbolRegionLength + layout.IndexRegionLength)
	buf.MustWrite(header)
	buf.MustWriteByte(0x00)
	for _, se := range symbolEncoders {
		buf.MustWrite(se.Bytes())
	}
	buf.MustWrite(indexEncoder.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// encodeSymbols runs one symbol table encoder per column and resolves every
// row to its per-column symbol indices.
func (e *Encoder) encodeSymbols(tbl Table) ([]*encoding.SymbolTableEncoder, [][]int, error) {
	symbolEncoders := make([]*encoding.SymbolTableEncoder, tbl.ColumnCount())
	for c := range symbolEncoders {
		symbolEncoders[c] = encoding.NewSymbolTableEncoder(e.engine)
	}

	indices := make([][]int, tbl.RowCount())
	for r := range tbl.RowCount() {
		tuple := make([]int, tbl.ColumnCount())
		for c, se := range symbolEncoders {
			idx, err := se.Append(tbl.At(r, c))
			if err != nil {
				return symbolEncoders, nil, fmt.Errorf("row %d column %q: %w", r, tbl.columns[c], err)
			}
			tuple[c] = idx
		}
		indices[r] = tuple
	}

	return symbolEncoders, indices, nil
}

// buildLayout assembles the layout descriptor from the per-column codec
// metadata.
func (e *Encoder) buildLayout(tbl Table, symbolEncoders []*encoding.SymbolTableEncoder, bitLayout encoding.BitLayout, indexSize int) *section.Layout {
	layout := &section.Layout{
		TableName:         e.tableName,
		Fields:            make([]section.Field, tbl.ColumnCount()),
		RecordByteSize:    bitLayout.RecordByteSize,
		RowCount:          tbl.RowCount(),
		IndexRegionLength: indexSize,
	}

	symbolOffset := 0
	for c, se := range symbolEncoders {
		layout.Fields[c] = section.Field{
			Name:         tbl.columns[c],
			SymbolOffset: symbolOffset,
			SymbolLength: se.Size(),
			BitOffset:    bitLayout.Offsets[c],
			BitWidth:     bitLayout.Widths[c],
			Bias:         0,
			SymbolCount:  se.Len(),
		}
		symbolOffset += se.Size()
	}
	layout.SymbolRegionLength = symbolOffset

	return layout
}

// buildInfo fills the volatile header fields, generating fresh values where
// the configuration left them unset.
func (e *Encoder) buildInfo() section.BuildInfo {
	info := section.BuildInfo{
		CreateTime: e.createTime,
		CreatorDoc: e.creatorDoc,
	}

	if info.CreateTime.IsZero() {
		info.CreateTime = time.Now().UTC()
	}
	if info.CreatorDoc == "" {
		info.CreatorDoc = uuid.NewString()
	}

	return info
}
