package section

// HeaderTerminator marks the end of the XML header. The symbol region starts
// at the byte immediately after it.
const HeaderTerminator = "\r\n\x00"

const (
	// TagSize is the size of the type tag prefixing every symbol.
	TagSize = 1
	// IntPayloadSize is the wire size of an integer symbol payload.
	IntPayloadSize = 4
	// DoublePayloadSize is the wire size of a double symbol payload.
	DoublePayloadSize = 8

	// MaxBitWidth bounds a field's index slot. Symbol counts fit in a signed
	// 32-bit integer, so wider slots can never hold a valid index.
	MaxBitWidth = 32
)

// Fixed header field values emitted by the builder.
const (
	// BuildNo is the QvBuildNo the writer stamps into every header.
	BuildNo = "50668"
	// CreateTimeLayout formats CreateUtcTime.
	CreateTimeLayout = "2006-01-02 15:04:05"
	// LineageDiscriminator marks inline lineage entries.
	LineageDiscriminator = "INLINE;"
	// UnknownSourceFileSize is emitted when no source file exists.
	UnknownSourceFileSize = -1
)
