package compress

// ZstdCompressor uses Zstandard frames. Its methods live in zstd_pure.go or
// zstd_cgo.go depending on build tags.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a Zstandard codec at the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdLevel is the compression level used by both backends.
const zstdLevel = 3
