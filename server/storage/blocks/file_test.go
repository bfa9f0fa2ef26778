package blocks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "myData")

	blockFile, err := NewBlockFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, filePath, blockFile.GetFileName())
	assert.Equal(t, int64(0), blockFile.Size())
	assert.True(t, blockFile.IsOpen())

	_, err = os.Stat(filePath)
	assert.NoError(t, err)
	require.NoError(t, blockFile.Close())
	assert.False(t, blockFile.IsOpen())
}

func TestBlockFile_ReadWrite(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "myData")
	blockFile, err := NewBlockFile(filePath)
	require.NoError(t, err)
	defer blockFile.Close()

	require.NoError(t, blockFile.WriteBlock(8, []byte("hello")))
	assert.Equal(t, int64(13), blockFile.Size())
	assert.Equal(t, 1, blockFile.WriteNumber)

	buf := make([]byte, 16)
	n, err := blockFile.ReadBlock(0, buf)
	require.NoError(t, err)
	// 文件尾不足时是短读
	assert.Equal(t, 13, n)
	assert.Equal(t, []byte("hello"), buf[8:13])
	assert.Equal(t, make([]byte, 8), buf[:8])

	n, err = blockFile.ReadBlock(100, buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 2, blockFile.ReadNumber)
}

func TestBlockFile_ReopenKeepsSize(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "myData")
	blockFile, err := NewBlockFile(filePath)
	require.NoError(t, err)
	require.NoError(t, blockFile.WriteBlock(0, make([]byte, 300)))
	require.NoError(t, blockFile.Sync())
	require.NoError(t, blockFile.Close())

	reopened, err := NewBlockFile(filePath)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, int64(300), reopened.Size())
}

func TestBlockFile_UseAfterClose(t *testing.T) {
	blockFile, err := NewBlockFile(filepath.Join(t.TempDir(), "myData"))
	require.NoError(t, err)
	require.NoError(t, blockFile.Close())

	assert.Error(t, blockFile.Close())
	assert.Error(t, blockFile.WriteBlock(0, []byte("x")))
	_, err = blockFile.ReadBlock(0, make([]byte, 1))
	assert.Error(t, err)
}

func TestNewBlockFile_BadPath(t *testing.T) {
	_, err := NewBlockFile(filepath.Join(t.TempDir(), "missing", "dir", "myData"))
	assert.Error(t, err)
}
