package fat32

import (
	"encoding/binary"
	"fmt"
)

// memoryDevice is a synthetic, in-memory BlockDevice used by this package's
// own tests; there is no binary fixture image shipped with the repository,
// so tests build minimal valid sector buffers directly instead of reading
// one from disk.
type memoryDevice struct {
	sectorSize uint64
	sectors    [][]byte
}

// newMemoryDevice allocates a device of sectorCount zeroed sectors, each
// sectorSize bytes.
func newMemoryDevice(sectorSize uint64, sectorCount int) *memoryDevice {
	sectors := make([][]byte, sectorCount)
	for i := range sectors {
		sectors[i] = make([]byte, sectorSize)
	}

	return &memoryDevice{sectorSize: sectorSize, sectors: sectors}
}

func (m *memoryDevice) SectorSize() uint64 {
	return m.sectorSize
}

func (m *memoryDevice) ReadSector(n uint64, buf []byte) (uint64, error) {
	if n >= uint64(len(m.sectors)) {
		return 0, fmt.Errorf("sector (%d) out of range", n)
	}

	copy(buf, m.sectors[n])

	return m.sectorSize, nil
}

func (m *memoryDevice) ReadAllSector(n uint64, out *[]byte) (uint64, error) {
	if n >= uint64(len(m.sectors)) {
		return 0, fmt.Errorf("sector (%d) out of range", n)
	}

	*out = append(*out, m.sectors[n]...)

	return m.sectorSize, nil
}

// putSector copies data over the start of sector n, truncating it to
// sectorSize; bytes past len(data) keep their previous contents.
func (m *memoryDevice) putSector(n uint64, data []byte) {
	copy(m.sectors[n], data)
}

// buildMBRSector returns a 512-byte MBR sector with a valid 0x55 0xAA
// trailing signature and the given single partition entry at slot 0; the
// other three slots are left zeroed (boot indicator 0x00, type 0x00).
func buildMBRSector(bootIndicator, partitionType byte, relativeSector, sectorCount uint32) []byte {
	raw := make([]byte, mbrSize)

	const partition0Offset = 446

	raw[partition0Offset] = bootIndicator
	raw[partition0Offset+4] = partitionType
	binary.LittleEndian.PutUint32(raw[partition0Offset+8:], relativeSector)
	binary.LittleEndian.PutUint32(raw[partition0Offset+12:], sectorCount)

	raw[510] = mbrSignatureByte0
	raw[511] = mbrSignatureByte1

	return raw
}

// ebpbParams bundles the geometry fields a test cares about; every other
// EBPB field is left zeroed.
type ebpbParams struct {
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	fats              uint8
	sectorsPerFat     uint32
	rootCluster       uint32
}

// buildEBPBSector returns a 512-byte EBPB sector with a valid trailing
// signature and the given geometry fields at their documented offsets.
func buildEBPBSector(p ebpbParams) []byte {
	raw := make([]byte, ebpbSize)

	binary.LittleEndian.PutUint16(raw[11:], p.bytesPerSector)
	raw[13] = p.sectorsPerCluster
	binary.LittleEndian.PutUint16(raw[14:], p.reservedSectors)
	raw[16] = p.fats
	binary.LittleEndian.PutUint32(raw[36:], p.sectorsPerFat)
	binary.LittleEndian.PutUint32(raw[44:], p.rootCluster)

	raw[510] = mbrSignatureByte0
	raw[511] = mbrSignatureByte1

	return raw
}

// buildFATEntry returns the 4 little-endian bytes of a raw FAT entry.
func buildFATEntry(raw uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, raw)

	return b
}

// buildShortDirEntry returns a 32-byte regular directory entry with the
// given 8.3 name (exactly 11 bytes, space-padded), attributes, starting
// cluster, and size. Timestamps are left zeroed.
func buildShortDirEntry(name11 string, attrs FileAttributes, cluster uint32, size uint32) []byte {
	raw := make([]byte, dirEntrySize)

	copy(raw[0:11], []byte(name11))
	raw[11] = byte(attrs)
	binary.LittleEndian.PutUint16(raw[20:], uint16(cluster>>16))
	binary.LittleEndian.PutUint16(raw[26:], uint16(cluster&0xffff))
	binary.LittleEndian.PutUint32(raw[28:], size)

	return raw
}

// buildLFNDirEntry returns a 32-byte LFN fragment carrying up to 13 UCS-2
// code units (padded with 0xFFFF past the terminator, per convention).
func buildLFNDirEntry(sequence uint8, units []uint16) []byte {
	raw := make([]byte, dirEntrySize)

	raw[0] = sequence
	raw[11] = byte(attrLFN)

	padded := make([]uint16, 13)
	for i := range padded {
		padded[i] = 0xffff
	}
	copy(padded, units)

	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint16(raw[1+i*2:], padded[i])
	}
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint16(raw[14+i*2:], padded[5+i])
	}
	for i := 0; i < 2; i++ {
		binary.LittleEndian.PutUint16(raw[28+i*2:], padded[11+i])
	}

	return raw
}

// endOfDirectoryEntry returns a 32-byte sentinel entry (first name byte
// 0x00) marking the end of a directory's contents.
func endOfDirectoryEntry() []byte {
	return make([]byte, dirEntrySize)
}

// stringToUCS2 converts s to little-endian UCS-2 code units, appending a
// terminating 0x0000, for use with buildLFNDirEntry.
func stringToUCS2(s string) []uint16 {
	units := make([]uint16, 0, len(s)+1)
	for _, r := range s {
		units = append(units, uint16(r))
	}

	return append(units, 0x0000)
}

// buildSimpleVolume assembles a minimal, internally consistent FAT32 image
// on a fresh 512-byte-sector memoryDevice: one partition starting at sector
// 1, one FAT, one sector per cluster, a root directory at cluster 2
// containing a single file ("ReadMe.txt", reconstructed from one LFN run
// plus its 8.3 fallback "README  TXT") at cluster 3. It returns the device
// and the file's contents are left to the caller to populate via
// dev.putSector at the returned fileDataSector.
func buildSimpleVolume() (dev *memoryDevice, fileDataSector uint64) {
	dev = newMemoryDevice(512, 6)

	dev.putSector(0, buildMBRSector(0x00, byte(PartitionTypeFAT32CHS), 1, 5))

	dev.putSector(1, buildEBPBSector(ebpbParams{
		bytesPerSector:    512,
		sectorsPerCluster: 1,
		reservedSectors:   1,
		fats:              1,
		sectorsPerFat:     1,
		rootCluster:       2,
	}))

	fat := make([]byte, 512)
	copy(fat[2*4:], buildFATEntry(0x0fffffff))
	copy(fat[3*4:], buildFATEntry(0x0fffffff))
	dev.putSector(2, fat)

	var rootDir []byte
	rootDir = append(rootDir, buildLFNDirEntry(0x41, stringToUCS2("ReadMe.txt"))...)
	rootDir = append(rootDir, buildShortDirEntry("README  TXT", AttrArchive, 3, 10)...)
	rootDir = append(rootDir, endOfDirectoryEntry()...)
	dev.putSector(3, rootDir)

	return dev, 4
}
