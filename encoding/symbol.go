// Package encoding implements the two binary section codecs of the QVD
// format: the tag-prefixed symbol stream that stores each column's distinct
// values, and the bit-stuffed index records that map rows onto those values.
package encoding

import (
	"math"

	"github.com/arloliu/qvd/endian"
	"github.com/arloliu/qvd/format"
)

// Symbol is one distinct column value. It is a tagged union over the five
// wire variants; exactly one variant holds, identified by Type.
//
// Symbols are immutable values and safe to copy and compare.
type Symbol struct {
	textValue   string
	doubleValue float64
	intValue    int32
	kind        format.SymbolType
}

// IntSymbol creates an Int symbol.
func IntSymbol(v int32) Symbol {
	return Symbol{kind: format.TypeInt, intValue: v}
}

// DoubleSymbol creates a Double symbol.
func DoubleSymbol(v float64) Symbol {
	return Symbol{kind: format.TypeDouble, doubleValue: v}
}

// StringSymbol creates a String symbol.
func StringSymbol(s string) Symbol {
	return Symbol{kind: format.TypeString, textValue: s}
}

// DualIntSymbol creates a DualInt symbol: an integer with a display string.
func DualIntSymbol(v int32, s string) Symbol {
	return Symbol{kind: format.TypeDualInt, intValue: v, textValue: s}
}

// DualDoubleSymbol creates a DualDouble symbol: a double with a display string.
func DualDoubleSymbol(v float64, s string) Symbol {
	return Symbol{kind: format.TypeDualDouble, doubleValue: v, textValue: s}
}

// Type returns the symbol's wire variant.
func (s Symbol) Type() format.SymbolType {
	return s.kind
}

// Int returns the integer component. Only meaningful for Int and DualInt.
func (s Symbol) Int() int32 {
	return s.intValue
}

// Double returns the double component. Only meaningful for Double and DualDouble.
func (s Symbol) Double() float64 {
	return s.doubleValue
}

// Text returns the string component. Only meaningful for String, DualInt and
// DualDouble.
func (s Symbol) Text() string {
	return s.textValue
}

// Primary returns the symbol's primary value: the string component if the
// variant carries one, else the integer component, else the double component.
// The concrete type is string, int, or float64.
func (s Symbol) Primary() any {
	switch s.kind {
	case format.TypeString, format.TypeDualInt, format.TypeDualDouble:
		return s.textValue
	case format.TypeInt:
		return int(s.intValue)
	default:
		return s.doubleValue
	}
}

// Equal reports component-wise equality. Double components compare by bit
// pattern, so NaN payloads are equal to themselves.
func (s Symbol) Equal(other Symbol) bool {
	return s.kind == other.kind &&
		s.intValue == other.intValue &&
		math.Float64bits(s.doubleValue) == math.Float64bits(other.doubleValue) &&
		s.textValue == other.textValue
}

// appendWire appends the symbol's tag byte and payload to buf.
func (s Symbol) appendWire(engine endian.EndianEngine, buf []byte) []byte {
	buf = append(buf, byte(s.kind))

	switch s.kind {
	case format.TypeInt:
		buf = engine.AppendUint32(buf, uint32(s.intValue))
	case format.TypeDouble:
		buf = engine.AppendUint64(buf, math.Float64bits(s.doubleValue))
	case format.TypeString:
		buf = append(buf, s.textValue...)
		buf = append(buf, 0x00)
	case format.TypeDualInt:
		buf = engine.AppendUint32(buf, uint32(s.intValue))
		buf = append(buf, s.textValue...)
		buf = append(buf, 0x00)
	case format.TypeDualDouble:
		buf = engine.AppendUint64(buf, math.Float64bits(s.doubleValue))
		buf = append(buf, s.textValue...)
		buf = append(buf, 0x00)
	}

	return buf
}
