package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
}

func TestLittleEndianTails(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, buf)
	require.Equal(t, uint16(0x0102), engine.Uint16(buf))

	buf = engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), engine.Uint32(buf))

	buf = engine.AppendUint64(nil, 0x0102030405060708)
	require.Len(t, buf, 8)
	require.Equal(t, byte(0x08), buf[0])
	require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))
}
