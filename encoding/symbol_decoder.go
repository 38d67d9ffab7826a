package encoding

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/qvd/endian"
	"github.com/arloliu/qvd/errs"
	"github.com/arloliu/qvd/format"
	"github.com/arloliu/qvd/section"
)

// SymbolTableDecoder decodes column sub-regions of the symbol region into
// symbol tables.
//
// The decoder borrows the input slice for the duration of a DecodeColumn call
// and returns owned symbols; string payloads are copied out of the buffer.
//
// A decoder is stateless apart from its configuration and may be reused
// across columns.
type SymbolTableDecoder struct {
	engine endian.EndianEngine
	latin1 bool
}

// NewSymbolTableDecoder creates a decoder reading payloads through the given
// endian engine. When latin1 is true, string payloads are decoded byte-wise
// as Latin-1 instead of UTF-8, matching files from producers that never
// re-encoded legacy text.
func NewSymbolTableDecoder(engine endian.EndianEngine, latin1 bool) *SymbolTableDecoder {
	return &SymbolTableDecoder{
		engine: engine,
		latin1: latin1,
	}
}

// DecodeColumn decodes one column's sub-region. The data slice must span
// exactly the column's declared symbol_length bytes; the decoder consumes all
// of it and fails if a payload crosses the end.
//
// Returns:
//   - []Symbol: The column's symbol table in stored order
//   - error: errs.ErrUnknownSymbolTag, errs.ErrInvalidSymbolEncoding, or
//     errs.ErrSymbolRegionOverrun
func (d *SymbolTableDecoder) DecodeColumn(data []byte) ([]Symbol, error) {
	var symbols []Symbol

	cur := 0
	for cur < len(data) {
		tag := format.SymbolType(data[cur])
		cur += section.TagSize

		var (
			sym Symbol
			n   int
			err error
		)

		switch tag {
		case format.TypeInt:
			var v int32
			v, n, err = d.readInt(data[cur:])
			sym = IntSymbol(v)
		case format.TypeDouble:
			var v float64
			v, n, err = d.readDouble(data[cur:])
			sym = DoubleSymbol(v)
		case format.TypeString:
			var s string
			s, n, err = d.readText(data[cur:])
			sym = StringSymbol(s)
		case format.TypeDualInt:
			sym, n, err = d.readDualInt(data[cur:])
		case format.TypeDualDouble:
			sym, n, err = d.readDualDouble(data[cur:])
		default:
			return nil, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrUnknownSymbolTag, byte(tag), cur-section.TagSize)
		}

		if err != nil {
			return nil, err
		}

		cur += n
		symbols = append(symbols, sym)
	}

	return symbols, nil
}

// readInt reads a little-endian signed 32-bit payload.
func (d *SymbolTableDecoder) readInt(data []byte) (int32, int, error) {
	if len(data) < section.IntPayloadSize {
		return 0, 0, fmt.Errorf("%w: truncated integer payload", errs.ErrSymbolRegionOverrun)
	}

	return int32(d.engine.Uint32(data[:section.IntPayloadSize])), section.IntPayloadSize, nil
}

// readDouble reads a little-endian IEEE-754 binary64 payload.
func (d *SymbolTableDecoder) readDouble(data []byte) (float64, int, error) {
	if len(data) < section.DoublePayloadSize {
		return 0, 0, fmt.Errorf("%w: truncated double payload", errs.ErrSymbolRegionOverrun)
	}

	return math.Float64frombits(d.engine.Uint64(data[:section.DoublePayloadSize])), section.DoublePayloadSize, nil
}

// readText reads a NUL-terminated string payload. The consumed byte count
// includes the terminator.
func (d *SymbolTableDecoder) readText(data []byte) (string, int, error) {
	end := bytes.IndexByte(data, 0x00)
	if end < 0 {
		return "", 0, fmt.Errorf("%w: unterminated string payload", errs.ErrInvalidSymbolEncoding)
	}

	raw := data[:end]
	if d.latin1 {
		return decodeLatin1(raw), end + 1, nil
	}

	if !utf8.Valid(raw) {
		return "", 0, fmt.Errorf("%w: string payload is not valid UTF-8", errs.ErrInvalidSymbolEncoding)
	}

	return string(raw), end + 1, nil
}

func (d *SymbolTableDecoder) readDualInt(data []byte) (Symbol, int, error) {
	v, n, err := d.readInt(data)
	if err != nil {
		return Symbol{}, 0, err
	}

	s, m, err := d.readText(data[n:])
	if err != nil {
		return Symbol{}, 0, err
	}

	return DualIntSymbol(v, s), n + m, nil
}

func (d *SymbolTableDecoder) readDualDouble(data []byte) (Symbol, int, error) {
	v, n, err := d.readDouble(data)
	if err != nil {
		return Symbol{}, 0, err
	}

	s, m, err := d.readText(data[n:])
	if err != nil {
		return Symbol{}, 0, err
	}

	return DualDoubleSymbol(v, s), n + m, nil
}

// decodeLatin1 maps each byte to the code point of the same value.
func decodeLatin1(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, c := range data {
		sb.WriteRune(rune(c))
	}

	return sb.String()
}
