// Package section defines the fixed-size binary structures of a trajectory
// snapshot.
//
// A snapshot is laid out as
//
//	┌──────────────────────────────────────────────┐
//	│ Header (32 bytes)                            │
//	├──────────────────────────────────────────────┤
//	│ Field index (fields × 24 bytes)              │
//	├──────────────────────────────────────────────┤
//	│ Names table (length-prefixed strings)        │
//	├──────────────────────────────────────────────┤
//	│ Dictionaries (one per categorical field)     │
//	├──────────────────────────────────────────────┤
//	│ Payloads (one per field, encoded+compressed) │
//	├──────────────────────────────────────────────┤
//	│ xxHash64 of everything above (8 bytes)       │
//	└──────────────────────────────────────────────┘
//
// The magic, version and flags bytes are read before the byte order is
// known, so the magic is always little endian. Every other multi-byte field
// uses the order named by FlagBigEndian.
package section
