package compress

// NoOpCompressor returns its input unchanged. The result aliases the input.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

func (NoOpCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
