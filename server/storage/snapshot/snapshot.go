// Package snapshot 把表中的行导出为 snappy 压缩流，或从该流导入。
//
// 流格式: 4字节魔数 XSDB，4字节小端行数，随后是 行数*ROW_SIZE 字节的原始行。
package snapshot

import (
	"bytes"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/record"
	"github.com/zhukovaskychina/xmysql-study/server/storage/table"
	"github.com/zhukovaskychina/xmysql-study/util"
)

var magic = []byte("XSDB")

var ErrBadSnapshot = errors.New("not a snapshot stream")

const headerSize = 8

// Export 按扫描顺序写出所有行，返回写出的行数
func Export(t *table.Table, w io.Writer) (int, error) {
	writer := snappy.NewBufferedWriter(w)

	header := make([]byte, 0, headerSize)
	header = append(header, magic...)
	header = append(header, util.ConvertUInt4Bytes(t.NumRows())...)
	if _, err := writer.Write(header); err != nil {
		return 0, errors.Wrap(err, "write snapshot header")
	}

	count := 0
	scanner := t.Select()
	for scanner.Next() {
		if _, err := writer.Write(scanner.Row().Bytes()); err != nil {
			return count, errors.Wrapf(err, "write row %d", count)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	if err := writer.Close(); err != nil {
		return count, errors.Wrap(err, "flush snapshot")
	}
	return count, nil
}

// Import 读取快照并逐行追加到表尾，表满时停止并返回 ErrTableFull，已导入的行保留
func Import(r io.Reader, t *table.Table) (int, error) {
	reader := snappy.NewReader(r)

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return 0, errors.Wrap(ErrBadSnapshot, err.Error())
	}
	if !bytes.Equal(header[:len(magic)], magic) {
		return 0, ErrBadSnapshot
	}
	numRows := util.ReadUB4Byte2UInt32(header[len(magic):])

	buff := make([]byte, common.ROW_SIZE)
	count := 0
	for i := uint32(0); i < numRows; i++ {
		if _, err := io.ReadFull(reader, buff); err != nil {
			return count, errors.Wrapf(err, "read row %d of %d", i, numRows)
		}
		row := &record.Row{}
		if err := record.Deserialize(buff, row); err != nil {
			return count, err
		}
		if err := t.Insert(row); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ExportFile 导出到文件，文件已存在时覆盖
func ExportFile(t *table.Table, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "create snapshot %s", path)
	}
	count, err := Export(t, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, "close snapshot %s", path)
	}
	return count, err
}

// ImportFile 从文件导入
func ImportFile(path string, t *table.Table) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open snapshot %s", path)
	}
	defer f.Close()
	return Import(f, t)
}
