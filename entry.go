package fat32

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Entry is the common interface implemented by File and Dir: every name a
// directory iterator or the path resolver hands back is one of these two.
type Entry interface {
	// Name returns the entry's reconstructed filename (LFN if one was
	// present, otherwise the decoded 8.3 short name).
	Name() string

	// Metadata returns the entry's attributes, size, and timestamps.
	Metadata() Metadata

	// StartCluster returns the cluster at which the entry's own data (file
	// contents, or directory listing) begins.
	StartCluster() Cluster

	// AsFile returns the entry as a *File if it is one.
	AsFile() (*File, bool)

	// AsDir returns the entry as a *Dir if it is one.
	AsDir() (*Dir, bool)
}

// entryBase holds the state common to files and directories: the shared
// volume handle they read through, their reconstructed name, their
// starting cluster, and their decoded metadata.
type entryBase struct {
	shared       *Shared
	name         string
	startCluster Cluster
	metadata     Metadata
}

func (e entryBase) Name() string {
	return e.name
}

func (e entryBase) Metadata() Metadata {
	return e.metadata
}

func (e entryBase) StartCluster() Cluster {
	return e.startCluster
}

func (e entryBase) String() string {
	return fmt.Sprintf("Entry<NAME=(%s) SIZE=(%s) ATTRS=%s>", e.name, humanize.Bytes(uint64(e.metadata.Size)), e.metadata.Attributes)
}

// newEntry builds the appropriate concrete Entry — a *Dir if the
// attributes mark it as a directory, otherwise a *File — from a decoded
// name, starting cluster, and metadata.
func newEntry(shared *Shared, name string, startCluster Cluster, metadata Metadata) Entry {
	base := entryBase{
		shared:       shared,
		name:         name,
		startCluster: startCluster,
		metadata:     metadata,
	}

	if metadata.Attributes.IsDirectory() {
		return &Dir{entryBase: base}
	}

	return &File{entryBase: base, size: uint64(metadata.Size)}
}
