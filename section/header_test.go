package section

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/movekit/errs"
	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	h := NewHeader(10, 3)
	h.NamesOffset = IndexOffset + 3*FieldEntrySize
	h.DictOffset = h.NamesOffset + 12
	h.PayloadOffset = h.DictOffset + 4

	return h
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		h := sampleHeader()
		h.Set(FlagBigEndian, big)
		h.Set(FlagTabular, true)

		data := h.Bytes()
		require.Len(t, data, HeaderSize)
		require.Equal(t, Magic, binary.LittleEndian.Uint16(data[0:2]), "magic is always little endian")

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, h, parsed)
		require.Equal(t, big, parsed.IsBigEndian())
		require.True(t, parsed.Has(FlagTabular))
		require.False(t, parsed.Has(FlagCollision))
	}
}

func TestHeader_Set(t *testing.T) {
	var h Header
	h.Set(FlagCollision, true)
	require.True(t, h.Has(FlagCollision))
	h.Set(FlagCollision, false)
	require.Equal(t, uint8(0), h.Flags)
}

func TestHeader_ParseErrors(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	data := sampleHeader().Bytes()
	data[0] = 0
	_, err = ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)

	data = sampleHeader().Bytes()
	data[2] = Version + 1
	_, err = ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)

	data = sampleHeader().Bytes()
	data[3] = 0x80
	_, err = ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrCorruptPayload)

	h := sampleHeader()
	h.DictOffset = h.NamesOffset - 1
	_, err = ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrCorruptPayload)

	h = sampleHeader()
	h.NamesOffset = IndexOffset
	_, err = ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrCorruptPayload, "index overlaps names")
}
