package fat32

import "fmt"

const dirEntrySize = 32

// FileAttributes decomposes a directory entry's attribute byte.
type FileAttributes uint8

const (
	AttrReadOnly FileAttributes = 1 << iota
	AttrHidden
	AttrSystem
	AttrVolumeID
	AttrDirectory
	AttrArchive
)

// attrLFN is the attribute value (read-only | hidden | system | volume-id)
// that marks an entry as an LFN fragment rather than a regular 8.3 entry.
const attrLFN = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeID

func (fa FileAttributes) IsReadOnly() bool  { return fa&AttrReadOnly > 0 }
func (fa FileAttributes) IsHidden() bool    { return fa&AttrHidden > 0 }
func (fa FileAttributes) IsSystem() bool    { return fa&AttrSystem > 0 }
func (fa FileAttributes) IsDirectory() bool { return fa&AttrDirectory > 0 }
func (fa FileAttributes) IsArchive() bool   { return fa&AttrArchive > 0 }

// isLFN reports whether this byte marks an LFN directory entry: exactly
// read-only | hidden | system | volume-id, and nothing else.
func (fa FileAttributes) isLFN() bool {
	return fa == attrLFN
}

func (fa FileAttributes) String() string {
	return fmt.Sprintf("FileAttributes<READONLY=[%v] HIDDEN=[%v] SYSTEM=[%v] DIRECTORY=[%v] ARCHIVE=[%v]>",
		fa.IsReadOnly(), fa.IsHidden(), fa.IsSystem(), fa.IsDirectory(), fa.IsArchive())
}

// Date is a FAT32 packed date: year = 1980 + (raw >> 9), month = (raw >> 5)
// & 0x0F, day = raw & 0x1F.
type Date uint16

func (d Date) Year() int  { return 1980 + int(d>>9) }
func (d Date) Month() int { return int(d>>5) & 0x0f }
func (d Date) Day() int   { return int(d) & 0x1f }

// Time is a FAT32 packed time: hour = raw >> 11, minute = (raw >> 5) &
// 0x3F, second = (raw & 0x1F) << 1 (two-second resolution). Some FAT32
// documentation gives a 5-bit minute mask (0x1F); that is wrong — minutes
// need all 6 bits, since 0x1F would clip minute 32 and above.
type Time uint16

func (t Time) Hour() int   { return int(t) >> 11 }
func (t Time) Minute() int { return (int(t) >> 5) & 0x3f }
func (t Time) Second() int { return (int(t) & 0x1f) << 1 }

// shortDirEntry is the on-disk layout of a regular 8.3 directory entry.
type shortDirEntry struct {
	Name              [8]byte
	Ext               [3]byte
	Attributes        FileAttributes
	NTReserved        uint8
	CreateTimeTenths  uint8
	CreateTime        Time
	CreateDate        Date
	AccessDate        Date
	ClusterHigh       uint16
	ModifyTime        Time
	ModifyDate        Date
	ClusterLow        uint16
	Size              uint32
}

// isEndMarker reports whether this is the end-of-directory sentinel: a
// first name byte of 0x00.
func (e shortDirEntry) isEndMarker() bool {
	return e.Name[0] == 0x00
}

// isDeleted reports whether this entry has been deleted: a first name byte
// of 0x05 or 0xE5.
func (e shortDirEntry) isDeleted() bool {
	return e.Name[0] == 0x05 || e.Name[0] == 0xe5
}

// startCluster reassembles the 32-bit starting cluster from its high and
// low 16-bit halves.
func (e shortDirEntry) startCluster() Cluster {
	return newCluster(uint32(e.ClusterHigh)<<16 | uint32(e.ClusterLow))
}

// shortName decodes the packed 8.3 name: trimmed at the first NUL or space,
// joined with a '.' if the extension is non-empty.
func (e shortDirEntry) shortName() (string, error) {
	base := trimShortNameField(e.Name[:])
	ext := trimShortNameField(e.Ext[:])

	if base == "" {
		return "", InvalidData("short name has an empty base")
	}

	if ext == "" {
		return base, nil
	}

	return base + "." + ext, nil
}

func trimShortNameField(raw []byte) string {
	n := len(raw)

	for i, c := range raw {
		if c == 0x00 || c == 0x20 {
			n = i
			break
		}
	}

	return string(raw[:n])
}

// lfnDirEntry is the on-disk layout of one long-filename fragment.
type lfnDirEntry struct {
	SequenceNumber uint8
	NameChars1     [5]uint16
	Attributes     FileAttributes
	Reserved       uint8
	Checksum       uint8
	NameChars2     [6]uint16
	Reserved2      uint16
	NameChars3     [2]uint16
}

const lfnLastFlag = 0x40

// isDeleted reports whether this LFN fragment has been deleted (0xE5).
func (e lfnDirEntry) isDeleted() bool {
	return e.SequenceNumber == 0xe5
}

// sequence returns the 6-bit ordering index, with the "last fragment in
// run" flag masked off.
func (e lfnDirEntry) sequence() uint8 {
	return e.SequenceNumber &^ lfnLastFlag
}

// codeUnits returns this fragment's 13 UCS-2 code units in on-disk order.
func (e lfnDirEntry) codeUnits() []uint16 {
	units := make([]uint16, 0, 13)
	units = append(units, e.NameChars1[:]...)
	units = append(units, e.NameChars2[:]...)
	units = append(units, e.NameChars3[:]...)

	return units
}

// peekAttributes reads the attribute byte (offset 11) out of a raw 32-byte
// directory entry without fully decoding it, so the iterator can decide
// whether to parse it as a regular entry or an LFN fragment.
func peekAttributes(raw []byte) FileAttributes {
	return FileAttributes(raw[11])
}
