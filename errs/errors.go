// Package errs defines the sentinel errors returned by the QVD codec.
//
// Callers can match errors with errors.Is; call sites wrap these sentinels
// with additional context using fmt.Errorf("%w: ...").
package errs

import "errors"

// Read-side errors.
var (
	// ErrMalformedHeader indicates the XML header is missing its terminator,
	// fails to parse, omits a mandatory element, or declares an inconsistent
	// layout.
	ErrMalformedHeader = errors.New("malformed QVD header")

	// ErrUnknownSymbolTag indicates the symbol byte stream contains a type tag
	// outside the known set (1, 2, 4, 5, 6).
	ErrUnknownSymbolTag = errors.New("unknown symbol type tag")

	// ErrInvalidSymbolEncoding indicates a string payload is not valid UTF-8
	// or is unterminated inside its column sub-region.
	ErrInvalidSymbolEncoding = errors.New("invalid symbol string encoding")

	// ErrSymbolRegionOverrun indicates a column's declared (offset, length)
	// extends past the symbol region, or decoding consumed a different number
	// of bytes than declared.
	ErrSymbolRegionOverrun = errors.New("symbol region overrun")

	// ErrIndexOutOfRange indicates a decoded symbol index points outside its
	// column's symbol table.
	ErrIndexOutOfRange = errors.New("symbol index out of range")

	// ErrBitLayoutOverflow indicates a field's bit slot extends past the
	// record, or its declared width cannot hold a symbol index.
	ErrBitLayoutOverflow = errors.New("bit layout overflows record")
)

// Write-side errors.
var (
	// ErrWriteUnrepresentable indicates a cell value has no QVD symbol
	// representation, such as a null cell or an unsupported Go type.
	ErrWriteUnrepresentable = errors.New("value not representable in QVD")

	// ErrNoColumns indicates an attempt to encode a table without any columns.
	ErrNoColumns = errors.New("table has no columns")
)

// Table shape errors.
var (
	// ErrDuplicateColumn indicates two columns share the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrUnknownColumn indicates a column name that does not exist in the table.
	ErrUnknownColumn = errors.New("unknown column name")

	// ErrRowWidthMismatch indicates a row whose cell count differs from the
	// column count.
	ErrRowWidthMismatch = errors.New("row width does not match column count")
)
