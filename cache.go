package fat32

import (
	"fmt"
	"reflect"

	"github.com/dsoprea/go-logging"
)

// Partition describes the geometry a CachedDevice maps logical sectors
// against: where the volume begins on the underlying device, and how large
// its logical sector is relative to the device's physical sector.
type Partition struct {
	Start      uint64
	SectorSize uint64
}

type cacheEntry struct {
	bytes []byte
	dirty bool
}

// CachedDevice is a read-through, unbounded sector cache that also performs
// the logical-to-physical sector address translation for one partition.
// There is no eviction: every physical sector ever read is held until the
// CachedDevice is discarded. Dirty tracking exists because the data model
// allows for it, but nothing in this read-only driver ever calls GetMut.
type CachedDevice struct {
	dev       BlockDevice
	partition Partition
	entries   map[uint64]*cacheEntry
}

// NewCachedDevice wraps dev with a sector cache addressed by the given
// partition geometry. partition.SectorSize must be an integer multiple of
// dev.SectorSize().
func NewCachedDevice(dev BlockDevice, partition Partition) *CachedDevice {
	return &CachedDevice{
		dev:       dev,
		partition: partition,
		entries:   make(map[uint64]*cacheEntry),
	}
}

// factor returns the number of physical sectors that make up one logical
// sector under this partition's geometry.
func (cd *CachedDevice) factor() uint64 {
	return cd.partition.SectorSize / cd.dev.SectorSize()
}

// virtualToPhysical maps a virtual (logical) sector index to a physical
// sector index plus the factor by which one logical sector spans physical
// sectors. Addresses before the partition's start map 1:1, since they refer
// directly to physical sectors (the MBR at sector 0, for instance).
func (cd *CachedDevice) virtualToPhysical(virt uint64) (phys uint64, factor uint64) {
	if virt < cd.partition.Start {
		return virt, 1
	}

	factor = cd.factor()
	offset := virt - cd.partition.Start

	return cd.partition.Start + offset*factor, factor
}

func (cd *CachedDevice) fetch(n uint64) (entry *cacheEntry, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	if entry, found := cd.entries[n]; found == true {
		return entry, nil
	}

	buf := make([]byte, cd.dev.SectorSize())

	_, err = cd.dev.ReadSector(n, buf)
	log.PanicIf(err)

	entry = &cacheEntry{bytes: buf}
	cd.entries[n] = entry

	return entry, nil
}

// Get returns the cached contents of physical sector n, reading through the
// device on a miss.
func (cd *CachedDevice) Get(n uint64) ([]byte, error) {
	entry, err := cd.fetch(n)
	log.PanicIf(err)

	return entry.bytes, nil
}

// GetMut returns the cached contents of physical sector n and marks the
// entry dirty. Reserved for future write support; unused by this read-only
// driver.
func (cd *CachedDevice) GetMut(n uint64) ([]byte, error) {
	entry, err := cd.fetch(n)
	log.PanicIf(err)

	entry.dirty = true

	return entry.bytes, nil
}

// GetLogical converts a virtual sector index and a byte offset within it to
// the physical sector that contains that offset, and returns the
// intra-physical-sector byte offset alongside that sector's bytes.
func (cd *CachedDevice) GetLogical(virt uint64, offsetBytes uint64) (offsetInSector uint64, sector []byte, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	phys, factor := cd.virtualToPhysical(virt)

	physicalSectorSize := cd.dev.SectorSize()
	sectorWithinLogical := offsetBytes / physicalSectorSize

	if sectorWithinLogical >= factor {
		log.Panic(InvalidInput(fmt.Sprintf("logical offset out of range: (%d) >= (%d)", sectorWithinLogical, factor)))
	}

	sector, err = cd.Get(phys + sectorWithinLogical)
	log.PanicIf(err)

	offsetInSector = offsetBytes % physicalSectorSize

	return offsetInSector, sector, nil
}

// ReadSector presents the cache at logical granularity: it materializes the
// factor consecutive physical sectors that make up virtual sector n into
// buf, which must be at least partition.SectorSize bytes long.
func (cd *CachedDevice) ReadSector(n uint64, buf []byte) (bytesRead uint64, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	phys, factor := cd.virtualToPhysical(n)
	physicalSectorSize := cd.dev.SectorSize()

	if uint64(len(buf)) < factor*physicalSectorSize {
		log.Panic(InvalidInput(fmt.Sprintf("buffer too small: (%d) < (%d)", len(buf), factor*physicalSectorSize)))
	}

	for i := uint64(0); i < factor; i++ {
		sector, err := cd.Get(phys + i)
		log.PanicIf(err)

		copy(buf[i*physicalSectorSize:(i+1)*physicalSectorSize], sector)
	}

	return factor * physicalSectorSize, nil
}

// ReadAllSector appends the factor consecutive physical sectors that make
// up virtual sector n to out.
func (cd *CachedDevice) ReadAllSector(n uint64, out *[]byte) (bytesAppended uint64, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	phys, factor := cd.virtualToPhysical(n)

	for i := uint64(0); i < factor; i++ {
		sector, err := cd.Get(phys + i)
		log.PanicIf(err)

		*out = append(*out, sector...)
	}

	return factor * cd.dev.SectorSize(), nil
}

// SectorSize returns the logical (partition) sector size, satisfying
// BlockDevice at logical granularity.
func (cd *CachedDevice) SectorSize() uint64 {
	return cd.partition.SectorSize
}
