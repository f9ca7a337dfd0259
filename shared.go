package fat32

import "github.com/dsoprea/go-logging"

// Shared is a single-threaded interior-mutability wrapper around a Volume.
// Every entry and handle derived from a mounted volume holds one of these
// rather than the *Volume directly: an operation acquires the volume for
// its own duration and releases it before returning, and two overlapping
// acquisitions are a programming error that this type detects instead of
// silently letting one operation observe another's half-finished state.
type Shared struct {
	vol      *Volume
	borrowed bool
}

// NewShared wraps vol for sharing among the entries and handles derived
// from it.
func NewShared(vol *Volume) *Shared {
	return &Shared{vol: vol}
}

// Acquire takes the exclusive borrow for the duration of one operation. The
// returned release function must be called, typically via defer, before
// control returns to whatever invoked the operation. Acquire fails if a
// borrow is already outstanding.
func (s *Shared) Acquire() (release func(), err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			}
		}
	}()

	if s.borrowed == true {
		log.Panicf("volume already borrowed: overlapping operations are not allowed")
	}

	s.borrowed = true

	return func() { s.borrowed = false }, nil
}
