// Package endian selects the byte order used by snapshot sections.
//
// Snapshots record their byte order in the header flags, so a decoder picks
// the engine from the flag rather than from the host:
//
//	engine := endian.FromFlag(hdr.Flags.BigEndian())
//	rows := engine.Uint32(data[8:12])
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// Both binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the host byte order.
func Native() EndianEngine {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little endian.
func IsNativeLittleEndian() bool {
	return Native() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromFlag returns the big-endian engine when bigEndian is set, little-endian otherwise.
func FromFlag(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes big-endian.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}
