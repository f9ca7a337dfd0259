package fat32

import (
	"fmt"
	"reflect"

	"github.com/dsoprea/go-logging"
)

const ebpbSize = 512

// BiosParameterBlock is the decoded FAT32 extended BIOS parameter block,
// read from the first sector of a partition.
type BiosParameterBlock struct {
	Asm                  [3]byte
	OemID                [8]byte
	BytesPerSector       uint16
	SectorsPerClusterRaw uint8
	ReservedSectors      uint16
	Fats                 uint8
	MaxDirEntries        uint16
	LogicalSectorsSmall  uint16
	FatID                uint8
	DeprecatedSPF        uint16
	SectorsPerTrack      uint16
	Heads                uint16
	HiddenSectors        uint32
	LogicalSectorsLarge  uint32
	SectorsPerFatRaw     uint32
	Flags                uint16
	FatVersionMinor      uint8
	FatVersionMajor      uint8
	RootCluster          uint32
	FsInfoSector         uint16
	BackupBootSector     uint16
	Reserved             [12]byte
	DriveNumber          uint8
	WindowsNtFlags       uint8
	Signature            uint8
	VolumeID             uint32
	VolumeLabel          [11]byte
	SystemID             [8]byte
	BootCode             [420]byte
	PartitionSignature   [2]byte
}

// SectorSize returns the logical sector size recorded in the EBPB.
func (b BiosParameterBlock) SectorSize() uint64 {
	return uint64(b.BytesPerSector)
}

// SectorsPerCluster returns the number of logical sectors per cluster.
func (b BiosParameterBlock) SectorsPerCluster() uint64 {
	return uint64(b.SectorsPerClusterRaw)
}

// SectorsPerFat returns the size of one File Allocation Table, in sectors.
func (b BiosParameterBlock) SectorsPerFat() uint64 {
	return uint64(b.SectorsPerFatRaw)
}

// RelativeFatStartSector is the partition-relative logical sector index of
// the first FAT.
func (b BiosParameterBlock) RelativeFatStartSector() uint64 {
	return uint64(b.ReservedSectors)
}

// RelativeDataStartSector is the partition-relative logical sector index of
// the cluster heap (the first sector past all FAT copies).
func (b BiosParameterBlock) RelativeDataStartSector() uint64 {
	return b.RelativeFatStartSector() + uint64(b.Fats)*b.SectorsPerFat()
}

func (b BiosParameterBlock) String() string {
	return fmt.Sprintf("BiosParameterBlock<SECTOR-SIZE=(%d) SECTORS-PER-CLUSTER=(%d) FATS=(%d) ROOT-CLUSTER=(%d)>",
		b.SectorSize(), b.SectorsPerCluster(), b.Fats, b.RootCluster)
}

// ReadBiosParameterBlock reads one physical sector from dev and decodes it
// as a FAT32 EBPB. It validates the trailing signature bytes, which are
// 0x55 0xAA at offsets 510-511 (the same order as the MBR trailer, despite
// some FAT32 documentation giving the bytes in the other order).
func ReadBiosParameterBlock(dev BlockDevice, sector uint64) (bpb BiosParameterBlock, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	raw := make([]byte, ebpbSize)

	_, err = dev.ReadSector(sector, raw)
	log.PanicIf(err)

	err = unpackStruct(raw, &bpb)
	log.PanicIf(err)

	if bpb.PartitionSignature[0] != mbrSignatureByte0 || bpb.PartitionSignature[1] != mbrSignatureByte1 {
		log.Panic(ErrBadSignature)
	}

	return bpb, nil
}
