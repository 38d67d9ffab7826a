package encoding

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/internal/pool"
	"github.com/arloliu/qvd/section"
)

// BitLayout is the record layout computed by the index encoder: one slot per
// column in field order, offsets counted from the record's least-significant
// bit.
type BitLayout struct {
	// Offsets holds each column's bit_offset.
	Offsets []int
	// Widths holds each column's bit_width. A column whose rows all resolve
	// to symbol index 0 gets width 0.
	Widths []int
	// RecordByteSize is the uniform record width. It is at least 1 whenever
	// rows exist, even if every slot has width 0.
	RecordByteSize int
}

// IndexTableEncoder packs per-row symbol indices into fixed-width records.
//
// Widths are sized to the largest index per column, slots are assigned
// sequentially in column order, and every emitted layout is unbiased.
//
// Note: The IndexTableEncoder is NOT reusable. After calling Finish, a new
// encoder must be created.
type IndexTableEncoder struct {
	buf *pool.ByteBuffer
}

// NewIndexTableEncoder creates a new index table encoder.
func NewIndexTableEncoder() *IndexTableEncoder {
	return &IndexTableEncoder{
		buf: pool.GetRegionBuffer(),
	}
}

// Encode computes the bit layout for the given index matrix and packs every
// row into the internal buffer.
//
// Parameters:
//   - rows: One index tuple per row; every tuple must have columnCount entries
//   - columnCount: Number of columns, required so empty tables keep their shape
//
// Returns:
//   - BitLayout: Per-column slots and the record byte size
//   - error: errs.ErrIndexOutOfRange on a negative index, or
//     errs.ErrBitLayoutOverflow when an index needs more than section.MaxBitWidth bits
func (e *IndexTableEncoder) Encode(rows [][]int, columnCount int) (BitLayout, error) {
	layout := BitLayout{
		Offsets: make([]int, columnCount),
		Widths:  make([]int, columnCount),
	}

	maxIdx := make([]int, columnCount)
	for r, row := range rows {
		for c, idx := range row {
			if idx < 0 {
				return BitLayout{}, fmt.Errorf("%w: row %d column %d index %d", errs.ErrIndexOutOfRange, r, c, idx)
			}
			if idx > maxIdx[c] {
				maxIdx[c] = idx
			}
		}
	}

	totalBits := 0
	for c, max := range maxIdx {
		width := bits.Len(uint(max))
		if width > section.MaxBitWidth {
			return BitLayout{}, fmt.Errorf("%w: column %d needs %d bits", errs.ErrBitLayoutOverflow, c, width)
		}

		layout.Offsets[c] = totalBits
		layout.Widths[c] = width
		totalBits += width
	}

	layout.RecordByteSize = (totalBits + 7) / 8
	if len(rows) > 0 && layout.RecordByteSize == 0 {
		// All columns are single-symbol. Records still need a byte each so the
		// index region stays row_count * record_byte_size.
		layout.RecordByteSize = 1
	}

	record := make([]byte, layout.RecordByteSize)
	for _, row := range rows {
		clear(record)
		for c, idx := range row {
			if layout.Widths[c] > 0 {
				putBits(record, layout.Offsets[c], layout.Widths[c], uint64(idx))
			}
		}
		e.buf.MustWrite(record)
	}

	return layout, nil
}

// Bytes returns the packed index region. The slice is valid until Finish is
// called.
func (e *IndexTableEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Size returns the byte length of the packed index region.
func (e *IndexTableEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the internal buffer to the pool. The encoder is unusable
// afterwards.
func (e *IndexTableEncoder) Finish() {
	if e.buf != nil {
		pool.PutRegionBuffer(e.buf)
		e.buf = nil
	}
}

// putBits writes the low bitWidth bits of v starting at bitOffset from the
// record's least-significant end.
func putBits(record []byte, bitOffset, bitWidth int, v uint64) {
	byteIdx := bitOffset >> 3
	shift := bitOffset & 7

	for bitWidth > 0 {
		n := 8 - shift
		if n > bitWidth {
			n = bitWidth
		}

		chunk := byte(v&(1<<uint(n)-1)) << shift
		record[byteIdx] |= chunk

		v >>= uint(n)
		bitWidth -= n
		byteIdx++
		shift = 0
	}
}
