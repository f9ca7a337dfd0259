package fat32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadMasterBootRecord_ValidSignature(t *testing.T) {
	dev := newMemoryDevice(512, 1)
	dev.putSector(0, buildMBRSector(0x80, byte(PartitionTypeFAT32CHS), 0xffffffff, 0xffffffff))

	mbr, err := ReadMasterBootRecord(dev)
	require.NoError(t, err)

	p := mbr.Partitions[0]
	require.Equal(t, byte(0x80), p.BootIndicator)
	require.Equal(t, PartitionTypeFAT32CHS, p.Type)
	require.Equal(t, uint32(0xffffffff), p.RelativeSector)
	require.Equal(t, uint32(0xffffffff), p.SectorCount)
}

func TestReadMasterBootRecord_BadSignature(t *testing.T) {
	dev := newMemoryDevice(512, 1)
	raw := buildMBRSector(0x80, byte(PartitionTypeFAT32CHS), 0, 0)
	raw[510] = 0x55
	raw[511] = 0x00
	dev.putSector(0, raw)

	_, err := ReadMasterBootRecord(dev)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestReadMasterBootRecord_UnknownBootIndicator(t *testing.T) {
	dev := newMemoryDevice(512, 1)
	dev.putSector(0, buildMBRSector(0x7f, byte(PartitionTypeFAT32CHS), 0, 0))

	_, err := ReadMasterBootRecord(dev)
	require.Error(t, err)

	var ubi *UnknownBootIndicatorError
	require.ErrorAs(t, err, &ubi)
	require.Equal(t, 0, ubi.PartitionIndex)
}

func TestPartitionType_IsFAT32(t *testing.T) {
	if PartitionTypeFAT32CHS.IsFAT32() != true {
		t.Fatalf("expected FAT32-CHS to be recognized")
	}

	if PartitionTypeFAT32LBA.IsFAT32() != true {
		t.Fatalf("expected FAT32-LBA to be recognized")
	}

	if PartitionType(0x07).IsFAT32() == true {
		t.Fatalf("expected NTFS type code to not be recognized")
	}
}
