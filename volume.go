package fat32

import (
	"fmt"
	"reflect"

	"github.com/dsoprea/go-logging"
)

const fatEntrySize = 4

// Volume owns the cached device and the geometry derived from the MBR and
// EBPB of one partition. It is the only thing in this package that talks to
// the FAT directly; directories and files reach it through a Shared handle.
type Volume struct {
	cache *CachedDevice

	bytesPerSector    uint64
	sectorsPerCluster uint64
	sectorsPerFat     uint64
	fatStartSector    uint64
	dataStartSector   uint64
	rootDirCluster    Cluster
}

// NewVolume mounts a FAT32 volume found on dev: it reads the MBR, selects
// the first partition entry whose type is FAT32-CHS or FAT32-LBA regardless
// of its boot indicator, and reads that partition's EBPB.
func NewVolume(dev BlockDevice) (vol *Volume, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	mbr, err := ReadMasterBootRecord(dev)
	log.PanicIf(err)

	var partition *PartitionEntry

	for i := range mbr.Partitions {
		if mbr.Partitions[i].Type.IsFAT32() == true {
			partition = &mbr.Partitions[i]
			break
		}
	}

	if partition == nil {
		log.Panic(ErrNoBootableFatPartition)
	}

	partitionStart := uint64(partition.RelativeSector)

	bpb, err := ReadBiosParameterBlock(dev, partitionStart)
	log.PanicIf(err)

	if bpb.BytesPerSector%fatEntrySize != 0 {
		log.Panicf("bytes-per-sector (%d) is not a multiple of the fat-entry size", bpb.BytesPerSector)
	}

	if bpb.SectorSize() < dev.SectorSize() || bpb.SectorSize()%dev.SectorSize() != 0 {
		log.Panicf("partition sector size (%d) must be >= device sector size (%d) and an integer multiple of it",
			bpb.SectorSize(), dev.SectorSize())
	}

	cache := NewCachedDevice(dev, Partition{
		Start:      partitionStart,
		SectorSize: bpb.SectorSize(),
	})

	vol = &Volume{
		cache:             cache,
		bytesPerSector:    bpb.SectorSize(),
		sectorsPerCluster: bpb.SectorsPerCluster(),
		sectorsPerFat:     bpb.SectorsPerFat(),
		fatStartSector:    partitionStart + bpb.RelativeFatStartSector(),
		dataStartSector:   partitionStart + bpb.RelativeDataStartSector(),
		rootDirCluster:    newCluster(bpb.RootCluster),
	}

	return vol, nil
}

// BytesPerCluster is the number of bytes spanned by one cluster.
func (v *Volume) BytesPerCluster() uint64 {
	return v.sectorsPerCluster * v.bytesPerSector
}

// RootDirCluster returns the starting cluster of the root directory.
func (v *Volume) RootDirCluster() Cluster {
	return v.rootDirCluster
}

// clusterSector returns the absolute logical sector at which cluster c
// begins. Clusters 0 and 1 are reserved and never passed here.
func (v *Volume) clusterSector(c Cluster) uint64 {
	return v.dataStartSector + v.sectorsPerCluster*(uint64(c)-2)
}

// fatEntry reads and decodes the FAT entry for cluster c.
func (v *Volume) fatEntry(c Cluster) (entry FatEntry, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	byteOffset := uint64(c) * fatEntrySize
	sector := v.fatStartSector + byteOffset/v.bytesPerSector
	offsetInSector := byteOffset % v.bytesPerSector

	physicalOffset, sectorBytes, err := v.cache.GetLogical(sector, offsetInSector)
	log.PanicIf(err)

	raw := defaultEncoding.Uint32(sectorBytes[physicalOffset : physicalOffset+fatEntrySize])

	return decodeFatEntry(raw), nil
}

// clusterAt walks the chain starting at start forward by n clusters and
// returns the cluster reached. This never uses start+n arithmetic directly,
// since a chain's clusters need not be contiguous on disk; it always
// advances by following the FAT one link at a time.
func (v *Volume) clusterAt(start Cluster, n uint64) (cluster Cluster, err error) {
	it := v.fatIter(start)

	current := start

	for i := uint64(0); i < n; i++ {
		step, ok, err := it.next()
		if err != nil {
			return 0, err
		}

		if ok == false || step.Entry.Status != FatEntryData {
			return 0, InvalidData("cluster chain ended before reaching the requested offset")
		}

		current = step.Entry.Next
	}

	return current, nil
}

// fatStep is one (cluster, entry) pair yielded by the FAT iterator.
type fatStep struct {
	Cluster Cluster
	Entry   FatEntry
}

// fatIterator is a lazy, restartable sequence of (cluster, entry) pairs
// starting from a given cluster. Each step fetches the FAT entry for the
// current cluster and, if it names a next cluster, advances to it;
// otherwise the iterator is exhausted after that step.
type fatIterator struct {
	vol     *Volume
	current Cluster
	done    bool
}

func (v *Volume) fatIter(start Cluster) *fatIterator {
	return &fatIterator{vol: v, current: start}
}

// next returns the next step, or ok == false once the chain has ended.
func (it *fatIterator) next() (step fatStep, ok bool, err error) {
	if it.done {
		return fatStep{}, false, nil
	}

	entry, err := it.vol.fatEntry(it.current)
	if err != nil {
		return fatStep{}, false, err
	}

	step = fatStep{Cluster: it.current, Entry: entry}

	if entry.Status == FatEntryData {
		it.current = entry.Next
	} else {
		it.done = true
	}

	return step, true, nil
}

// collectChain walks the FAT iterator for start to completion, failing the
// whole call on any I/O error.
func (v *Volume) collectChain(start Cluster) (steps []fatStep, err error) {
	it := v.fatIter(start)

	for {
		step, ok, err := it.next()
		if err != nil {
			return nil, err
		}

		if ok == false {
			break
		}

		steps = append(steps, step)
	}

	return steps, nil
}

// readChain reads the cluster chain starting at start into out, stopping
// after the end-of-chain cluster's data has been appended, or as soon as
// max bytes (if non-nil) have been appended.
func (v *Volume) readChain(start Cluster, out *[]byte, max *uint64) (bytesAppended uint64, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	steps, err := v.collectChain(start)
	log.PanicIf(err)

	for _, step := range steps {
		switch step.Entry.Status {
		case FatEntryData, FatEntryEndOfChain:
			firstSector := v.clusterSector(step.Cluster)

			for i := uint64(0); i < v.sectorsPerCluster; i++ {
				n, err := v.cache.ReadAllSector(firstSector+i, out)
				log.PanicIf(err)

				bytesAppended += n
			}
		default:
			log.Panic(InvalidData(fmt.Sprintf("invalid cluster chain: cluster (%s) has status (%s)", step.Cluster, step.Entry.Status)))
		}

		if step.Entry.Status == FatEntryEndOfChain {
			break
		}

		if max != nil && bytesAppended >= *max {
			break
		}
	}

	return bytesAppended, nil
}
