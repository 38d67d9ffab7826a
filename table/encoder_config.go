package table

import (
	"time"

	"github.com/arloliu/qvd/internal/options"
)

// DefaultTableName is used when no table name is configured.
const DefaultTableName = "Data"

// EncoderConfig holds the encoder settings that end up in the header.
type EncoderConfig struct {
	tableName  string
	creatorDoc string
	createTime time.Time
}

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithTableName sets the TableName stamped into the header. The file-level
// writer defaults it to the output file's stem.
func WithTableName(name string) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.tableName = name
	})
}

// WithCreateTime pins the CreateUtcTime header field. Without this option
// the encoder stamps the current UTC time; pin it when byte-stable output is
// needed.
func WithCreateTime(t time.Time) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.createTime = t
	})
}

// WithCreatorDoc pins the CreatorDoc header field. Without this option the
// encoder generates a fresh UUID per file.
func WithCreatorDoc(id string) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.creatorDoc = id
	})
}
