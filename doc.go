// Package fat32 implements a read-only driver for the FAT32 filesystem.
//
// Given a block device that exposes fixed-size physical sectors, the package
// parses the partition table, locates a FAT32 volume, and presents a
// hierarchical, path-addressed view of files and directories, including long
// filename (LFN) reconstruction, metadata, and stream-style random-access
// reads. Write support, journaling, and allocation are out of scope: the
// driver never mutates on-disk state.
package fat32
