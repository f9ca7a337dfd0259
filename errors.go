package fat32

import (
	"errors"
	"fmt"
)

// ErrBadSignature is returned when an MBR or EBPB's trailing two-byte
// signature does not equal 0x55 0xAA.
var ErrBadSignature = errors.New("fat32: bad signature")

// ErrNoBootableFatPartition is returned when no partition entry in the MBR
// carries a FAT32 partition type.
var ErrNoBootableFatPartition = errors.New("fat32: no fat32 partition found")

// ErrUnsupported is returned by the read-only write/flush operations.
var ErrUnsupported = errors.New("fat32: unsupported on a read-only filesystem")

// UnknownBootIndicatorError is raised when a partition entry's boot
// indicator byte is neither 0x00 nor 0x80.
type UnknownBootIndicatorError struct {
	PartitionIndex int
	Value          byte
}

func (e *UnknownBootIndicatorError) Error() string {
	return fmt.Sprintf("fat32: partition %d has unknown boot indicator (0x%02x)", e.PartitionIndex, e.Value)
}

// UnsupportedPartitionTypeError describes a partition type that is not one
// of the two recognized FAT32 type bytes. It is informational: the volume
// engine filters these out silently rather than raising it during mount.
type UnsupportedPartitionTypeError struct {
	Type byte
}

func (e *UnsupportedPartitionTypeError) Error() string {
	return fmt.Sprintf("fat32: unsupported partition type (0x%02x)", e.Type)
}

// InvalidInputError reports caller misuse: a malformed path, an
// out-of-range seek, a non-UTF-8 name, a buffer that is too small.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return "fat32: invalid input: " + e.Message
}

// InvalidInput builds an InvalidInputError.
func InvalidInput(message string) error {
	return &InvalidInputError{Message: message}
}

// NotFoundError reports a directory lookup miss.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "fat32: not found: " + e.Message
}

// NotFound builds a NotFoundError.
func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

// InvalidDataError reports on-disk state that is inconsistent: a chain
// cluster whose FAT entry has a status other than Data or End-of-chain.
type InvalidDataError struct {
	Message string
}

func (e *InvalidDataError) Error() string {
	return "fat32: invalid data: " + e.Message
}

// InvalidData builds an InvalidDataError.
func InvalidData(message string) error {
	return &InvalidDataError{Message: message}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
