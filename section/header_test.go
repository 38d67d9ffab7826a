package section

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/qvd/errs"
)

func testBuildInfo() BuildInfo {
	return BuildInfo{
		CreateTime: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		CreatorDoc: "3f2b1a10-aaaa-bbbb-cccc-000000000000",
	}
}

func twoFieldLayout() *Layout {
	return &Layout{
		TableName: "Orders",
		Fields: []Field{
			{Name: "Key", SymbolOffset: 0, SymbolLength: 35, BitOffset: 0, BitWidth: 3, SymbolCount: 5},
			{Name: "Value", SymbolOffset: 35, SymbolLength: 15, BitOffset: 3, BitWidth: 3, SymbolCount: 5},
		},
		RecordByteSize:     1,
		RowCount:           5,
		SymbolRegionLength: 50,
		IndexRegionLength:  5,
	}
}

func TestBuildHeader_ParseHeader_RoundTrip(t *testing.T) {
	layout := twoFieldLayout()

	header, err := BuildHeader(layout, testBuildInfo())
	require.NoError(t, err)

	// The builder stops after the trailing CRLF; the file writer appends the
	// NUL that completes the terminator.
	data := append(header, 0x00)

	parsed, symbolStart, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, len(data), symbolStart)
	require.Equal(t, layout, parsed)
}

func TestBuildHeader_Format(t *testing.T) {
	header, err := BuildHeader(twoFieldLayout(), testBuildInfo())
	require.NoError(t, err)

	text := string(header)
	require.True(t, strings.HasPrefix(text, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\r\n<QvdTableHeader>"))
	require.True(t, strings.HasSuffix(text, "</QvdTableHeader>\r\n"))
	require.Contains(t, text, "\r\n  <TableName>Orders</TableName>\r\n")
	require.Contains(t, text, "<CreateUtcTime>2024-03-01 12:30:45</CreateUtcTime>")
	require.Contains(t, text, "<QvBuildNo>50668</QvBuildNo>")
	require.Contains(t, text, "<SourceFileSize>-1</SourceFileSize>")
	require.Contains(t, text, "<Compression></Compression>")
	require.Contains(t, text, "<EncryptionInfo></EncryptionInfo>")
	require.Contains(t, text, "<Discriminator>INLINE;</Discriminator>")
	require.Contains(t, text, "<Type>UNKNOWN</Type>")

	// Every line break is CRLF; stripping them must leave no bare LF behind.
	require.NotContains(t, strings.ReplaceAll(text, "\r\n", ""), "\n")
}

func TestParseHeader_SingleFieldObjectShape(t *testing.T) {
	xml := "<QvdTableHeader>" +
		"<TableName>T</TableName>" +
		"<NoOfRecords>2</NoOfRecords>" +
		"<RecordByteSize>1</RecordByteSize>" +
		"<Offset>6</Offset>" +
		"<Length>2</Length>" +
		"<Fields><QvdFieldHeader>" +
		"<FieldName>F</FieldName><BitOffset>0</BitOffset><BitWidth>1</BitWidth>" +
		"<Bias>0</Bias><NoOfSymbols>2</NoOfSymbols><Offset>0</Offset><Length>6</Length>" +
		"</QvdFieldHeader></Fields>" +
		"</QvdTableHeader>\r\n\x00"

	layout, symbolStart, err := ParseHeader([]byte(xml))
	require.NoError(t, err)
	require.Equal(t, len(xml), symbolStart)
	require.Len(t, layout.Fields, 1)
	require.Equal(t, "F", layout.Fields[0].Name)
	require.Equal(t, 2, layout.Fields[0].SymbolCount)
	require.Equal(t, 2, layout.RowCount)
}

func TestParseHeader_IgnoresUnknownElements(t *testing.T) {
	xml := "<QvdTableHeader>" +
		"<SomeFutureElement>whatever</SomeFutureElement>" +
		"<NoOfRecords>0</NoOfRecords>" +
		"<RecordByteSize>0</RecordByteSize>" +
		"<Offset>0</Offset>" +
		"<Length>0</Length>" +
		"<Fields><QvdFieldHeader><FieldName>F</FieldName></QvdFieldHeader></Fields>" +
		"</QvdTableHeader>\r\n\x00"

	layout, _, err := ParseHeader([]byte(xml))
	require.NoError(t, err)
	require.Equal(t, 0, layout.RowCount)
}

func TestParseHeader_MissingTerminator(t *testing.T) {
	_, _, err := ParseHeader([]byte("<QvdTableHeader></QvdTableHeader>"))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestParseHeader_InvalidXML(t *testing.T) {
	_, _, err := ParseHeader([]byte("<QvdTableHeader><NoOf\r\n\x00"))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestParseHeader_NonIntegerValue(t *testing.T) {
	xml := "<QvdTableHeader>" +
		"<NoOfRecords>five</NoOfRecords>" +
		"<RecordByteSize>1</RecordByteSize>" +
		"<Offset>0</Offset><Length>0</Length>" +
		"<Fields><QvdFieldHeader><FieldName>F</FieldName></QvdFieldHeader></Fields>" +
		"</QvdTableHeader>\r\n\x00"

	_, _, err := ParseHeader([]byte(xml))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestParseHeader_MissingMandatoryElements(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{name: "NoOfRecords", omit: "<NoOfRecords>0</NoOfRecords>"},
		{name: "RecordByteSize", omit: "<RecordByteSize>0</RecordByteSize>"},
		{name: "Offset", omit: "<Offset>0</Offset>"},
		{name: "Length", omit: "<Length>0</Length>"},
		{name: "Fields", omit: "<Fields><QvdFieldHeader><FieldName>F</FieldName></QvdFieldHeader></Fields>"},
	}

	full := "<NoOfRecords>0</NoOfRecords>" +
		"<RecordByteSize>0</RecordByteSize>" +
		"<Offset>0</Offset>" +
		"<Length>0</Length>" +
		"<Fields><QvdFieldHeader><FieldName>F</FieldName></QvdFieldHeader></Fields>"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(full, tt.omit, "", 1)
			xml := "<QvdTableHeader>" + body + "</QvdTableHeader>\r\n\x00"

			_, _, err := ParseHeader([]byte(xml))
			require.ErrorIs(t, err, errs.ErrMalformedHeader)
		})
	}
}

func TestParseHeader_RecordSizeZeroWithRows(t *testing.T) {
	xml := "<QvdTableHeader>" +
		"<NoOfRecords>3</NoOfRecords>" +
		"<RecordByteSize>0</RecordByteSize>" +
		"<Offset>0</Offset><Length>0</Length>" +
		"<Fields><QvdFieldHeader><FieldName>F</FieldName></QvdFieldHeader></Fields>" +
		"</QvdTableHeader>\r\n\x00"

	_, _, err := ParseHeader([]byte(xml))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}
