// Package encoding provides the column codecs used by snapshots.
//
// Each codec is an encoder/decoder pair over one element type:
//
//   - Float64: FloatRaw (8 bytes per value) and FloatGorilla (XOR of consecutive bit patterns)
//   - Int64 and timestamps: IntRaw and IntDelta (delta-of-delta with zigzag varints)
//   - Strings: VarString (uvarint length prefix)
//   - Categorical codes: Code (uvarint per code)
//
// Encoders append to pooled buffers; call Finish when done to return the
// buffer. Decoders are stateless values and safe for concurrent use.
//
// EncodeColumn and DecodeColumn bridge schema columns and codecs and are the
// entry points used by the snapshot package.
//
// Gorilla bit layout for a changed value:
//
//	1 | 0 | meaningful bits                        (reuse previous window)
//	1 | 1 | 5-bit leading | 6-bit length-1 | bits  (new window)
//
// An unchanged value is the single bit 0.
package encoding
