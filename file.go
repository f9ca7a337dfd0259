package fat32

import (
	"io"
	"reflect"

	"github.com/dsoprea/go-logging"
)

// File is a position-tracking reader over a cluster chain.
type File struct {
	entryBase

	size uint64
	pos  uint64
}

func (f *File) AsFile() (*File, bool) { return f, true }
func (f *File) AsDir() (*Dir, bool)   { return nil, false }

// Size returns the file's size in bytes, as recorded in its directory
// entry.
func (f *File) Size() uint64 {
	return f.size
}

// Pos returns the current read position, in bytes.
func (f *File) Pos() uint64 {
	return f.pos
}

// Read fills buf from the file's current position and advances it. It
// returns 0, nil at end-of-file rather than io.EOF, matching the rest of
// this driver's short-read-is-legitimate-progress convention; callers that
// want io.Reader semantics can wrap it.
func (f *File) Read(buf []byte) (n int, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	if f.pos == f.size {
		return 0, nil
	}

	release, err := f.shared.Acquire()
	log.PanicIf(err)
	defer release()

	vol := f.shared.vol
	clusterSize := vol.BytesPerCluster()

	clusterOffset := f.pos / clusterSize
	intraClusterOffset := f.pos % clusterSize

	chainStart, err := vol.clusterAt(f.startCluster, clusterOffset)
	log.PanicIf(err)

	var chunk []byte

	max := uint64(len(buf))

	_, err = vol.readChain(chainStart, &chunk, &max)
	log.PanicIf(err)

	available := uint64(0)
	if uint64(len(chunk)) > intraClusterOffset {
		available = uint64(len(chunk)) - intraClusterOffset
	}

	remaining := f.size - f.pos

	toCopy := uint64(len(buf))
	if available < toCopy {
		toCopy = available
	}
	if remaining < toCopy {
		toCopy = remaining
	}

	copy(buf[:toCopy], chunk[intraClusterOffset:intraClusterOffset+toCopy])

	f.pos += toCopy

	return int(toCopy), nil
}

// Seek repositions the file per io.Seeker semantics, with one deliberate
// relaxation: seeking to exactly Size() is allowed (it lands at EOF, ready
// for a subsequent 0-byte Read), not just positions strictly inside it.
func (f *File) Seek(offset int64, whence int) (newPos int64, err error) {
	var base int64

	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(f.pos)
	case io.SeekEnd:
		base = int64(f.size)
	default:
		return 0, InvalidInput("unknown whence value")
	}

	target := base + offset

	if target < 0 || target > int64(f.size) {
		return 0, InvalidInput("seek target out of range")
	}

	f.pos = uint64(target)

	return target, nil
}

// Write always fails: this is a read-only filesystem.
func (f *File) Write(p []byte) (int, error) {
	return 0, ErrUnsupported
}

// Flush always fails: this is a read-only filesystem.
func (f *File) Flush() error {
	return ErrUnsupported
}
