package fat32

// BlockDevice is the contract the driver requires of the underlying storage.
// It is implemented elsewhere; this package only ever consumes it.
type BlockDevice interface {
	// SectorSize returns the device's physical sector size, in bytes. It is
	// constant for the lifetime of the device.
	SectorSize() uint64

	// ReadSector reads one physical sector at index n into buf, which must
	// be at least SectorSize() bytes long. Implementations write exactly
	// SectorSize() bytes on success and report the count read.
	ReadSector(n uint64, buf []byte) (uint64, error)

	// ReadAllSector appends a full physical sector at index n to the end of
	// out and reports the number of bytes appended.
	ReadAllSector(n uint64, out *[]byte) (uint64, error)
}
