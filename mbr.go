package fat32

import (
	"fmt"
	"reflect"

	"github.com/dsoprea/go-logging"
)

const (
	mbrSize           = 512
	mbrPartitionCount = 4
	mbrSignatureByte0 = 0x55
	mbrSignatureByte1 = 0xaa
)

// PartitionType is the one-byte type code of an MBR partition entry.
type PartitionType byte

// Recognized FAT32 partition type codes. 0x0B addresses the volume with
// CHS (legacy); 0x0C addresses it with LBA. Both are accepted equally by
// the volume engine.
const (
	PartitionTypeFAT32CHS PartitionType = 0x0b
	PartitionTypeFAT32LBA PartitionType = 0x0c
)

// IsFAT32 reports whether the partition type is one of the two FAT32 codes.
func (pt PartitionType) IsFAT32() bool {
	return pt == PartitionTypeFAT32CHS || pt == PartitionTypeFAT32LBA
}

func (pt PartitionType) String() string {
	switch pt {
	case PartitionTypeFAT32CHS:
		return "FAT32-CHS"
	case PartitionTypeFAT32LBA:
		return "FAT32-LBA"
	default:
		return fmt.Sprintf("Unsupported(0x%02x)", byte(pt))
	}
}

// PartitionEntry is one 16-byte record in the MBR partition table.
type PartitionEntry struct {
	BootIndicator  byte
	StartCHS       [3]byte
	Type           PartitionType
	EndCHS         [3]byte
	RelativeSector uint32
	SectorCount    uint32
}

// IsActive reports whether the boot-indicator byte is 0x80. Per this
// driver's partition-selection policy the flag is advisory only: any
// FAT32-typed partition is eligible regardless of this value.
func (pe PartitionEntry) IsActive() bool {
	return pe.BootIndicator == 0x80
}

func (pe PartitionEntry) String() string {
	return fmt.Sprintf("PartitionEntry<TYPE=[%s] BOOT=(0x%02x) START=(%d) COUNT=(%d)>",
		pe.Type, pe.BootIndicator, pe.RelativeSector, pe.SectorCount)
}

// MasterBootRecord is the decoded contents of physical sector 0.
type MasterBootRecord struct {
	Bootstrap  [436]byte
	DiskID     [10]byte
	Partitions [mbrPartitionCount]PartitionEntry
	Signature  [2]byte
}

func (mbr MasterBootRecord) String() string {
	return fmt.Sprintf("MasterBootRecord<PARTITIONS=(%d)>", len(mbr.Partitions))
}

// ReadMasterBootRecord reads physical sector 0 from dev and decodes it as
// an MBR. It validates the trailing signature and every partition entry's
// boot indicator; partition type is not validated here, since an
// unsupported type is not an error at this layer (the volume engine
// filters the partition list for FAT32-typed entries).
func ReadMasterBootRecord(dev BlockDevice) (mbr MasterBootRecord, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	raw := make([]byte, mbrSize)

	_, err = dev.ReadSector(0, raw)
	log.PanicIf(err)

	err = unpackStruct(raw, &mbr)
	log.PanicIf(err)

	if mbr.Signature[0] != mbrSignatureByte0 || mbr.Signature[1] != mbrSignatureByte1 {
		log.Panic(ErrBadSignature)
	}

	for i, pe := range mbr.Partitions {
		if pe.BootIndicator != 0x00 && pe.BootIndicator != 0x80 {
			log.Panic(&UnknownBootIndicatorError{PartitionIndex: i, Value: pe.BootIndicator})
		}
	}

	return mbr, nil
}
