package fat32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDir_Entries_ReconstructsLongName(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	shared := NewShared(vol)
	root := NewRootDir(shared)

	entries, err := root.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.Equal(t, "ReadMe.txt", entries[0].Name())

	file, ok := entries[0].AsFile()
	require.True(t, ok)
	require.Equal(t, uint64(10), file.Size())
}

func TestDir_Find_CaseInsensitive(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	entry, err := root.Find("readme.txt")
	require.NoError(t, err)
	require.Equal(t, "ReadMe.txt", entry.Name())
}

func TestDir_Find_NotFound(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	_, err = root.Find("missing.txt")
	require.True(t, IsNotFound(err))
}

func TestReconstructName_FallsBackToShortName(t *testing.T) {
	short := shortDirEntry{}
	copy(short.Name[:], "FOO     ")
	copy(short.Ext[:], "BAR")

	name, err := reconstructName(nil, short)
	require.NoError(t, err)
	require.Equal(t, "FOO.BAR", name)
}
