package fat32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCachedDevice_GetLogical_FactorTwo(t *testing.T) {
	dev := newMemoryDevice(512, 4)
	dev.putSector(2, []byte{0xaa})
	dev.putSector(3, []byte{0xbb})

	cache := NewCachedDevice(dev, Partition{Start: 2, SectorSize: 1024})

	offsetInSector, sector, err := cache.GetLogical(2, 600)
	require.NoError(t, err)
	require.Equal(t, uint64(88), offsetInSector)
	require.Equal(t, byte(0xbb), sector[0])
}

func TestCachedDevice_GetLogical_OutOfRange(t *testing.T) {
	dev := newMemoryDevice(512, 4)
	cache := NewCachedDevice(dev, Partition{Start: 2, SectorSize: 1024})

	_, _, err := cache.GetLogical(2, 2000)
	require.Error(t, err)

	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
}

func TestCachedDevice_GetLogical_OutOfRangeAtLogicalSectorBoundary(t *testing.T) {
	dev := newMemoryDevice(512, 4)
	cache := NewCachedDevice(dev, Partition{Start: 2, SectorSize: 1024})

	// offsetBytes == partition.SectorSize lands exactly one physical sector
	// past the logical sector (factor=2, so offset/512=2 is out of range);
	// this must fail rather than silently reading the next logical sector's
	// first physical sector.
	_, _, err := cache.GetLogical(2, 1024)
	require.Error(t, err)

	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
}

func TestCachedDevice_ReadAllSector_ConcatenatesFactorSectors(t *testing.T) {
	dev := newMemoryDevice(512, 2)
	first := make([]byte, 512)
	first[0] = 1
	second := make([]byte, 512)
	second[0] = 2
	dev.putSector(0, first)
	dev.putSector(1, second)

	cache := NewCachedDevice(dev, Partition{Start: 0, SectorSize: 1024})

	var out []byte
	n, err := cache.ReadAllSector(0, &out)
	require.NoError(t, err)
	require.Equal(t, uint64(1024), n)
	require.Equal(t, 1024, len(out))
	require.Equal(t, byte(1), out[0])
	require.Equal(t, byte(2), out[512])
}
