// Package section implements the QVD header contract: locating and parsing
// the XML metadata that fixes every offset, length, and bit slot the binary
// sections rely on, and building that metadata back from a computed layout.
package section

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/arloliu/qvd/errs"
)

// xmlTableHeader mirrors the QvdTableHeader document. Mandatory numeric
// elements are pointers so a missing element is distinguishable from a zero
// value. Field order matters on write: encoding/xml emits elements in struct
// order.
type xmlTableHeader struct {
	XMLName             xml.Name   `xml:"QvdTableHeader"`
	QvBuildNo           string     `xml:"QvBuildNo"`
	CreatorDoc          string     `xml:"CreatorDoc"`
	CreateUtcTime       string     `xml:"CreateUtcTime"`
	SourceCreateUtcTime string     `xml:"SourceCreateUtcTime"`
	SourceFileUtcTime   string     `xml:"SourceFileUtcTime"`
	SourceFileSize      int        `xml:"SourceFileSize"`
	StaleUtcTime        string     `xml:"StaleUtcTime"`
	TableName           string     `xml:"TableName"`
	Fields              xmlFields  `xml:"Fields"`
	Compression         string     `xml:"Compression"`
	RecordByteSize      *int       `xml:"RecordByteSize"`
	NoOfRecords         *int       `xml:"NoOfRecords"`
	Offset              *int       `xml:"Offset"`
	Length              *int       `xml:"Length"`
	Comment             string     `xml:"Comment"`
	EncryptionInfo      string     `xml:"EncryptionInfo"`
	TableTags           string     `xml:"TableTags"`
	ProfilingData       string     `xml:"ProfilingData"`
	Lineage             xmlLineage `xml:"Lineage"`
}

type xmlFields struct {
	Headers []xmlFieldHeader `xml:"QvdFieldHeader"`
}

type xmlFieldHeader struct {
	FieldName    string          `xml:"FieldName"`
	BitOffset    int             `xml:"BitOffset"`
	BitWidth     int             `xml:"BitWidth"`
	Bias         int             `xml:"Bias"`
	NumberFormat xmlNumberFormat `xml:"NumberFormat"`
	NoOfSymbols  int             `xml:"NoOfSymbols"`
	Offset       int             `xml:"Offset"`
	Length       int             `xml:"Length"`
	Comment      string          `xml:"Comment"`
	Tags         xmlTags         `xml:"Tags"`
}

type xmlNumberFormat struct {
	Type    string `xml:"Type"`
	NDec    string `xml:"nDec"`
	UseThou string `xml:"UseThou"`
	Fmt     string `xml:"Fmt"`
	Dec     string `xml:"Dec"`
	Thou    string `xml:"Thou"`
}

type xmlTags struct {
	Strings []string `xml:"String"`
}

type xmlLineage struct {
	Infos []xmlLineageInfo `xml:"LineageInfo"`
}

type xmlLineageInfo struct {
	Discriminator string `xml:"Discriminator"`
	Statement     string `xml:"Statement"`
}

// ParseHeader locates the XML header in data, decodes it, and returns the
// recovered layout together with the byte offset at which the symbol region
// begins.
//
// Returns:
//   - *Layout: Layout recovered from the header, already validated
//   - int: Offset of the first symbol region byte (one past the terminator)
//   - error: errs.ErrMalformedHeader on a missing terminator, XML parse
//     failure, or missing mandatory element
func ParseHeader(data []byte) (*Layout, int, error) {
	terminatorAt := bytes.Index(data, []byte(HeaderTerminator))
	if terminatorAt < 0 {
		return nil, 0, fmt.Errorf("%w: header terminator not found", errs.ErrMalformedHeader)
	}
	headerEnd := terminatorAt + len(HeaderTerminator)

	var hdr xmlTableHeader
	if err := xml.Unmarshal(data[:terminatorAt], &hdr); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", errs.ErrMalformedHeader, err)
	}

	layout, err := hdr.toLayout()
	if err != nil {
		return nil, 0, err
	}

	if err := layout.Validate(); err != nil {
		return nil, 0, err
	}

	return layout, headerEnd, nil
}

// toLayout converts the decoded document to a Layout, checking the mandatory
// element set.
func (hdr *xmlTableHeader) toLayout() (*Layout, error) {
	switch {
	case hdr.NoOfRecords == nil:
		return nil, fmt.Errorf("%w: missing NoOfRecords", errs.ErrMalformedHeader)
	case hdr.RecordByteSize == nil:
		return nil, fmt.Errorf("%w: missing RecordByteSize", errs.ErrMalformedHeader)
	case hdr.Offset == nil:
		return nil, fmt.Errorf("%w: missing Offset", errs.ErrMalformedHeader)
	case hdr.Length == nil:
		return nil, fmt.Errorf("%w: missing Length", errs.ErrMalformedHeader)
	case len(hdr.Fields.Headers) == 0:
		return nil, fmt.Errorf("%w: missing Fields.QvdFieldHeader", errs.ErrMalformedHeader)
	}

	if *hdr.NoOfRecords < 0 {
		return nil, fmt.Errorf("%w: negative NoOfRecords", errs.ErrMalformedHeader)
	}
	if *hdr.NoOfRecords > 0 && *hdr.RecordByteSize <= 0 {
		return nil, fmt.Errorf("%w: RecordByteSize %d with %d records",
			errs.ErrMalformedHeader, *hdr.RecordByteSize, *hdr.NoOfRecords)
	}

	layout := &Layout{
		TableName:          hdr.TableName,
		Fields:             make([]Field, len(hdr.Fields.Headers)),
		RecordByteSize:     *hdr.RecordByteSize,
		RowCount:           *hdr.NoOfRecords,
		SymbolRegionLength: *hdr.Offset,
		IndexRegionLength:  *hdr.Length,
	}

	for i, fh := range hdr.Fields.Headers {
		layout.Fields[i] = Field{
			Name:         fh.FieldName,
			SymbolOffset: fh.Offset,
			SymbolLength: fh.Length,
			BitOffset:    fh.BitOffset,
			BitWidth:     fh.BitWidth,
			Bias:         fh.Bias,
			SymbolCount:  fh.NoOfSymbols,
		}
	}

	return layout, nil
}

// BuildInfo carries the volatile header fields the builder cannot derive from
// the layout.
type BuildInfo struct {
	// CreateTime is stamped into CreateUtcTime.
	CreateTime time.Time
	// CreatorDoc identifies the producing document, typically a fresh UUID.
	CreatorDoc string
}

// BuildHeader serializes the layout as a QvdTableHeader document.
//
// The output uses CRLF line endings with two-space indentation and ends with
// a trailing CRLF. The NUL byte completing the header terminator is written
// by the file writer, not here.
func BuildHeader(layout *Layout, info BuildInfo) ([]byte, error) {
	hdr := xmlTableHeader{
		QvBuildNo:      BuildNo,
		CreatorDoc:     info.CreatorDoc,
		CreateUtcTime:  info.CreateTime.Format(CreateTimeLayout),
		SourceFileSize: UnknownSourceFileSize,
		TableName:      layout.TableName,
		Fields:         xmlFields{Headers: make([]xmlFieldHeader, len(layout.Fields))},
		RecordByteSize: &layout.RecordByteSize,
		NoOfRecords:    &layout.RowCount,
		Offset:         &layout.SymbolRegionLength,
		Length:         &layout.IndexRegionLength,
		Lineage: xmlLineage{
			Infos: []xmlLineageInfo{{Discriminator: LineageDiscriminator}},
		},
	}

	for i, f := range layout.Fields {
		hdr.Fields.Headers[i] = xmlFieldHeader{
			FieldName: f.Name,
			BitOffset: f.BitOffset,
			BitWidth:  f.BitWidth,
			Bias:      f.Bias,
			NumberFormat: xmlNumberFormat{
				Type:    "UNKNOWN",
				NDec:    "0",
				UseThou: "0",
			},
			NoOfSymbols: f.SymbolCount,
			Offset:      f.SymbolOffset,
			Length:      f.SymbolLength,
		}
	}

	body, err := xml.MarshalIndent(&hdr, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}

	// encoding/xml escapes newlines inside character data, so every LF in the
	// marshaled output is structural indentation.
	body = bytes.ReplaceAll(body, []byte("\n"), []byte("\r\n"))

	out := make([]byte, 0, len(xmlDeclaration)+len(body)+2)
	out = append(out, xmlDeclaration...)
	out = append(out, body...)
	out = append(out, '\r', '\n')

	return out, nil
}

const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\r\n"
