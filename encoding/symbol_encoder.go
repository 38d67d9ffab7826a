package encoding

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/qvd/endian"
	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/internal/intern"
	"github.com/arloliu/qvd/internal/pool"
)

// SymbolTableEncoder builds one column's symbol table and its wire bytes.
//
// Raw cell values are classified into symbol variants and deduplicated in
// first-occurrence order. Dedup is keyed on the symbol's wire bytes, so two
// values are one symbol exactly when both their numeric and textual
// components match.
//
// Note: The SymbolTableEncoder is NOT thread-safe, and it is not reusable
// across columns. After calling Finish, create a new encoder.
type SymbolTableEncoder struct {
	engine   endian.EndianEngine
	buf      *pool.ByteBuffer
	interner *intern.Table
	symbols  []Symbol
	scratch  []byte
}

// NewSymbolTableEncoder creates an encoder for a single column using the
// given endian engine.
func NewSymbolTableEncoder(engine endian.EndianEngine) *SymbolTableEncoder {
	return &SymbolTableEncoder{
		engine:   engine,
		buf:      pool.GetRegionBuffer(),
		interner: intern.NewTable(),
	}
}

// Append classifies a raw cell value, interns the resulting symbol, and
// returns its index in the column's symbol table.
//
// Parameters:
//   - value: int, any sized signed/unsigned integer, float32/float64, or string
//
// Returns:
//   - int: Symbol index for the value
//   - error: errs.ErrWriteUnrepresentable for nil or unsupported types
func (e *SymbolTableEncoder) Append(value any) (int, error) {
	sym, err := ClassifyValue(value)
	if err != nil {
		return 0, err
	}

	e.scratch = sym.appendWire(e.engine, e.scratch[:0])

	idx, added := e.interner.Intern(e.scratch)
	if added {
		e.symbols = append(e.symbols, sym)
		e.buf.MustWrite(e.scratch)
	}

	return idx, nil
}

// Symbols returns the column's symbol table in stored order.
func (e *SymbolTableEncoder) Symbols() []Symbol {
	return e.symbols
}

// Len returns the number of distinct symbols.
func (e *SymbolTableEncoder) Len() int {
	return len(e.symbols)
}

// Size returns the byte length of the column's sub-region.
func (e *SymbolTableEncoder) Size() int {
	return e.buf.Len()
}

// Bytes returns the column sub-region bytes. The slice is valid until Finish
// is called.
func (e *SymbolTableEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Finish returns the internal buffer to the pool. The encoder is unusable
// afterwards.
func (e *SymbolTableEncoder) Finish() {
	if e.buf != nil {
		pool.PutRegionBuffer(e.buf)
		e.buf = nil
	}
}

// ClassifyValue maps a raw cell value to its symbol variant:
//
//   - whole numbers inside the int32 range become DualInt with the decimal
//     textual form
//   - every other number becomes DualDouble with its shortest decimal form
//   - strings become String
//
// Nil cells and unsupported types are rejected with
// errs.ErrWriteUnrepresentable.
func ClassifyValue(value any) (Symbol, error) {
	switch v := value.(type) {
	case nil:
		return Symbol{}, fmt.Errorf("%w: null cell", errs.ErrWriteUnrepresentable)
	case string:
		return StringSymbol(v), nil
	case int:
		return classifyInt(int64(v)), nil
	case int8:
		return classifyInt(int64(v)), nil
	case int16:
		return classifyInt(int64(v)), nil
	case int32:
		return classifyInt(int64(v)), nil
	case int64:
		return classifyInt(v), nil
	case uint:
		return classifyUint(uint64(v)), nil
	case uint8:
		return classifyInt(int64(v)), nil
	case uint16:
		return classifyInt(int64(v)), nil
	case uint32:
		return classifyInt(int64(v)), nil
	case uint64:
		return classifyUint(v), nil
	case float32:
		return classifyFloat(float64(v)), nil
	case float64:
		return classifyFloat(v), nil
	default:
		return Symbol{}, fmt.Errorf("%w: unsupported type %T", errs.ErrWriteUnrepresentable, value)
	}
}

func classifyInt(v int64) Symbol {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return DualIntSymbol(int32(v), strconv.FormatInt(v, 10))
	}

	return classifyWideFloat(float64(v))
}

func classifyUint(v uint64) Symbol {
	if v <= math.MaxInt32 {
		return DualIntSymbol(int32(v), strconv.FormatUint(v, 10))
	}

	return classifyWideFloat(float64(v))
}

func classifyFloat(f float64) Symbol {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && f >= math.MinInt32 && f <= math.MaxInt32 {
		return DualIntSymbol(int32(f), strconv.FormatInt(int64(f), 10))
	}

	return classifyWideFloat(f)
}

// classifyWideFloat formats every number that is not a whole int32 value:
// fractions, NaN, infinities, and whole numbers beyond the int32 range.
func classifyWideFloat(f float64) Symbol {
	return DualDoubleSymbol(f, strconv.FormatFloat(f, 'f', -1, 64))
}
