package blocks

import (
	"io"
	"os"

	"github.com/juju/errors"
)

//存储中间层，一个表对应一个文件，按偏移读写
type BlockFile struct {
	StorageFile *os.File
	FilePath    string
	FileSize    int64
	OpenState   int
	ReadNumber  int //读次数
	WriteNumber int //写次数
}

const (
	stateOpen   = 1
	stateClosed = 2
)

//os.O_RDWR|os.O_CREATE，文件不存在时创建
func NewBlockFile(filePath string) (*BlockFile, error) {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Annotatef(err, "unable to open file %s", filePath)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Annotatef(err, "unable to stat file %s", filePath)
	}
	return &BlockFile{
		StorageFile: file,
		FilePath:    filePath,
		FileSize:    stat.Size(),
		OpenState:   stateOpen,
	}, nil
}

func (blockFile *BlockFile) GetFileName() string {
	return blockFile.FilePath
}

func (blockFile *BlockFile) Size() int64 {
	return blockFile.FileSize
}

func (blockFile *BlockFile) IsOpen() bool {
	return blockFile.OpenState == stateOpen
}

// ReadBlock 定位到offset后读满buf，文件尾部不足时返回实际读到的字节数
func (blockFile *BlockFile) ReadBlock(offset int64, buf []byte) (int, error) {
	if !blockFile.IsOpen() {
		return 0, errors.Errorf("read %s: file already closed", blockFile.FilePath)
	}
	if _, err := blockFile.StorageFile.Seek(offset, io.SeekStart); err != nil {
		return 0, errors.Annotatef(err, "error seeking %s to %d", blockFile.FilePath, offset)
	}
	blockFile.ReadNumber++
	n, err := io.ReadFull(blockFile.StorageFile, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	if err != nil {
		return n, errors.Annotatef(err, "error reading %s at %d", blockFile.FilePath, offset)
	}
	return n, nil
}

// WriteBlock 定位到offset后写入全部data
func (blockFile *BlockFile) WriteBlock(offset int64, data []byte) error {
	if !blockFile.IsOpen() {
		return errors.Errorf("write %s: file already closed", blockFile.FilePath)
	}
	if _, err := blockFile.StorageFile.Seek(offset, io.SeekStart); err != nil {
		return errors.Annotatef(err, "error seeking %s to %d", blockFile.FilePath, offset)
	}
	blockFile.WriteNumber++
	if _, err := blockFile.StorageFile.Write(data); err != nil {
		return errors.Annotatef(err, "error writing %s at %d", blockFile.FilePath, offset)
	}
	if end := offset + int64(len(data)); end > blockFile.FileSize {
		blockFile.FileSize = end
	}
	return nil
}

func (blockFile *BlockFile) Sync() error {
	if !blockFile.IsOpen() {
		return nil
	}
	return errors.Trace(blockFile.StorageFile.Sync())
}

func (blockFile *BlockFile) Close() error {
	if !blockFile.IsOpen() {
		return errors.Errorf("close %s: file already closed", blockFile.FilePath)
	}
	blockFile.OpenState = stateClosed
	if err := blockFile.StorageFile.Close(); err != nil {
		return errors.Annotatef(err, "error closing %s", blockFile.FilePath)
	}
	return nil
}
