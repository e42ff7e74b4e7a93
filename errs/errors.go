// Package errs defines the sentinel errors shared by all movekit packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") so callers can match them
// with errors.Is.
package errs

import "errors"

// Trajectory store errors.
var (
	// ErrSchemaMismatch is returned when columns or rows do not agree with the schema,
	// for example unequal column lengths at construction.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrLengthMismatch is returned when a replacement or appended column length
	// disagrees with the row count.
	ErrLengthMismatch = errors.New("column length mismatch")
	// ErrOrderingViolation is returned when an insertion would break timestamp ordering.
	ErrOrderingViolation = errors.New("timestamp ordering violation")
	// ErrFieldIndexOutOfRange is returned for a field index outside the schema.
	ErrFieldIndexOutOfRange = errors.New("field index out of range")
	// ErrFieldKindMismatch is returned when a field has a kind the operation cannot use.
	ErrFieldKindMismatch = errors.New("field kind mismatch")
	// ErrDuplicateField is returned when a schema would contain the same field name twice.
	ErrDuplicateField = errors.New("duplicate field name")
	// ErrInvalidFieldName is returned for an empty field name.
	ErrInvalidFieldName = errors.New("invalid field name")
	// ErrEmptyTrajectory is returned by operations that need at least one row.
	ErrEmptyTrajectory = errors.New("empty trajectory")
	// ErrRowOutOfRange is returned for a row position outside the store.
	ErrRowOutOfRange = errors.New("row position out of range")
)

// Snapshot codec errors.
var (
	ErrInvalidHeaderSize     = errors.New("invalid header size")
	ErrInvalidMagic          = errors.New("invalid magic number")
	ErrUnsupportedVersion    = errors.New("unsupported snapshot version")
	ErrInvalidIndexEntrySize = errors.New("invalid index entry size")
	ErrInvalidEncoding       = errors.New("invalid encoding type")
	ErrInvalidCompression    = errors.New("invalid compression type")
	ErrCorruptPayload        = errors.New("corrupt payload")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
)

// Ingestion and archive errors.
var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrNotFound      = errors.New("not found")
)
