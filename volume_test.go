package fat32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVolume_MountsGeometryIgnoringInactivePartition(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	require.Equal(t, uint64(512), vol.BytesPerCluster())
	require.Equal(t, newCluster(2), vol.RootDirCluster())
}

func TestVolume_ClusterAt_WalksFatNotArithmetic(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	// Cluster 2's FAT entry is EndOfChain, so stepping forward from it must
	// fail rather than silently computing cluster 2+1.
	_, err = vol.clusterAt(newCluster(2), 1)
	require.Error(t, err)
}

func TestVolume_FatEntry_DecodesEndOfChain(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	entry, err := vol.fatEntry(newCluster(2))
	require.NoError(t, err)
	require.Equal(t, FatEntryEndOfChain, entry.Status)
}

func TestNewVolume_RejectsPartitionSectorSizeSmallerThanDevice(t *testing.T) {
	dev := newMemoryDevice(512, 4)

	dev.putSector(0, buildMBRSector(0x00, byte(PartitionTypeFAT32CHS), 1, 3))
	dev.putSector(1, buildEBPBSector(ebpbParams{
		bytesPerSector:    256,
		sectorsPerCluster: 1,
		reservedSectors:   1,
		fats:              1,
		sectorsPerFat:     1,
		rootCluster:       2,
	}))

	_, err := NewVolume(dev)
	require.Error(t, err)
}

func TestNewVolume_RejectsPartitionSectorSizeNotAMultiple(t *testing.T) {
	dev := newMemoryDevice(512, 4)

	dev.putSector(0, buildMBRSector(0x00, byte(PartitionTypeFAT32CHS), 1, 3))
	dev.putSector(1, buildEBPBSector(ebpbParams{
		bytesPerSector:    768,
		sectorsPerCluster: 1,
		reservedSectors:   1,
		fats:              1,
		sectorsPerFat:     1,
		rootCluster:       2,
	}))

	_, err := NewVolume(dev)
	require.Error(t, err)
}
