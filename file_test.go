package fat32

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func openReadMe(t *testing.T, content []byte) *File {
	t.Helper()

	dev, dataSector := buildSimpleVolume()

	sector := make([]byte, 512)
	copy(sector, content)
	dev.putSector(dataSector, sector)

	vol, err := NewVolume(dev)
	require.NoError(t, err)

	root := NewRootDir(NewShared(vol))

	entry, err := root.Find("ReadMe.txt")
	require.NoError(t, err)

	file, ok := entry.AsFile()
	require.True(t, ok)

	return file
}

func TestFile_Read_ReturnsExactContents(t *testing.T) {
	file := openReadMe(t, []byte("helloworld"))

	buf := make([]byte, 10)
	n, err := file.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "helloworld", string(buf))

	n, err = file.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestFile_Seek_AllowsPositionEqualToSize(t *testing.T) {
	file := openReadMe(t, []byte("helloworld"))

	pos, err := file.Seek(10, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(10), pos)

	buf := make([]byte, 4)
	n, err := file.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestFile_Seek_RejectsPastEnd(t *testing.T) {
	file := openReadMe(t, []byte("helloworld"))

	_, err := file.Seek(11, io.SeekStart)
	require.Error(t, err)
}

func TestFile_Seek_RejectsNegative(t *testing.T) {
	file := openReadMe(t, []byte("helloworld"))

	_, err := file.Seek(-1, io.SeekStart)
	require.Error(t, err)
}

func TestFile_WriteAndFlush_Unsupported(t *testing.T) {
	file := openReadMe(t, []byte("helloworld"))

	_, err := file.Write([]byte("x"))
	require.ErrorIs(t, err, ErrUnsupported)

	require.ErrorIs(t, file.Flush(), ErrUnsupported)
}
