package section

const (
	HeaderSize     = 32 // fixed header size in bytes
	FieldEntrySize = 24 // fixed field index entry size in bytes
	ChecksumSize   = 8  // xxHash64 trailer
	IndexOffset    = HeaderSize

	Magic   uint16 = 0xA7C0
	Version uint8  = 1
)

// Header flag bits.
const (
	FlagBigEndian uint8 = 0x01 // multi-byte fields are big endian
	FlagTabular   uint8 = 0x02 // the encoded store was tabular
	FlagCollision uint8 = 0x04 // two field names share a hash ID

	flagsMask = FlagBigEndian | FlagTabular | FlagCollision
)
