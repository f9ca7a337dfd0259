package fat32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_FindsFileAtRoot(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	entry, err := Resolve(root, "/ReadMe.txt")
	require.NoError(t, err)
	require.Equal(t, "ReadMe.txt", entry.Name())
}

func TestResolve_RejectsRelativeComponents(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	_, err = Resolve(root, "/../ReadMe.txt")
	require.Error(t, err)
}

func TestResolve_RejectsRelativePath(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	_, err = Resolve(root, "ReadMe.txt")
	require.Error(t, err)
}

func TestResolve_DescendingThroughAFileFails(t *testing.T) {
	dev, _ := buildSimpleVolume()

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	_, err = Resolve(root, "/ReadMe.txt/extra")
	require.Error(t, err)
}
