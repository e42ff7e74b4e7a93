package format

type (
	FieldKind       uint8
	Layout          uint8
	TimeUnit        uint8
	EncodingType    uint8
	CompressionType uint8
)

const (
	KindFloat64     FieldKind = 0x1 // KindFloat64 represents a float64 field such as a coordinate.
	KindInt64       FieldKind = 0x2 // KindInt64 represents a signed integer field.
	KindTimestamp   FieldKind = 0x3 // KindTimestamp represents an integer timestamp in a TimeUnit.
	KindString      FieldKind = 0x4 // KindString represents a free-form string field.
	KindCategorical FieldKind = 0x5 // KindCategorical represents a dictionary-encoded string field.

	LayoutTabular  Layout = 0x1 // LayoutTabular stores rows contiguously (row-major).
	LayoutColumnar Layout = 0x2 // LayoutColumnar stores one array per field (column-major).

	UnitSecond      TimeUnit = 0x1 // UnitSecond represents timestamps in seconds.
	UnitMillisecond TimeUnit = 0x2 // UnitMillisecond represents timestamps in milliseconds.
	UnitMicrosecond TimeUnit = 0x3 // UnitMicrosecond represents timestamps in microseconds.
	UnitNanosecond  TimeUnit = 0x4 // UnitNanosecond represents timestamps in nanoseconds.

	TypeRaw     EncodingType = 0x1 // TypeRaw represents raw data with no format.
	TypeDelta   EncodingType = 0x2 // TypeDelta represents delta-of-delta encoding.
	TypeGorilla EncodingType = 0x3 // TypeGorilla represents Gorilla encoding.
	TypeVarlen  EncodingType = 0x4 // TypeVarlen represents length-prefixed strings.
	TypeCode    EncodingType = 0x5 // TypeCode represents varint dictionary codes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k FieldKind) String() string {
	switch k {
	case KindFloat64:
		return "Float64"
	case KindInt64:
		return "Int64"
	case KindTimestamp:
		return "Timestamp"
	case KindString:
		return "String"
	case KindCategorical:
		return "Categorical"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the defined field kinds.
func (k FieldKind) Valid() bool {
	return k >= KindFloat64 && k <= KindCategorical
}

// Ordered reports whether values of kind k have a total order usable for
// time-ordering checks.
func (k FieldKind) Ordered() bool {
	return k == KindFloat64 || k == KindInt64 || k == KindTimestamp
}

func (l Layout) String() string {
	switch l {
	case LayoutTabular:
		return "Tabular"
	case LayoutColumnar:
		return "Columnar"
	default:
		return "Unknown"
	}
}

func (u TimeUnit) String() string {
	switch u {
	case UnitSecond:
		return "s"
	case UnitMillisecond:
		return "ms"
	case UnitMicrosecond:
		return "us"
	case UnitNanosecond:
		return "ns"
	default:
		return "Unknown"
	}
}

// PerSecond returns how many ticks of u make up one second.
// Unknown units are treated as seconds.
func (u TimeUnit) PerSecond() float64 {
	switch u {
	case UnitMillisecond:
		return 1e3
	case UnitMicrosecond:
		return 1e6
	case UnitNanosecond:
		return 1e9
	default:
		return 1
	}
}

// Seconds converts a timestamp in unit u to seconds.
func (u TimeUnit) Seconds(ts int64) float64 {
	return float64(ts) / u.PerSecond()
}

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	case TypeGorilla:
		return "Gorilla"
	case TypeVarlen:
		return "Varlen"
	case TypeCode:
		return "Code"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
