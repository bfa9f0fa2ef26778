package table

import (
	"github.com/pkg/errors"

	"github.com/zhukovaskychina/xmysql-study/logger"
	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/pager"
	"github.com/zhukovaskychina/xmysql-study/server/storage/record"
	"github.com/zhukovaskychina/xmysql-study/util"
)

// Table 单表，独占 Pager，行数只在内存中维护
type Table struct {
	numRows     uint32
	pager       *pager.Pager
	closed      bool
	syncOnClose bool
}

// Options 打开表时的可选项
type Options struct {
	// StrictLength 文件长度不是 ROW_SIZE 整数倍时直接报错，否则截断行数
	StrictLength bool
	// SyncOnClose 关闭前 fsync
	SyncOnClose bool
}

// Open 以默认选项打开表
func Open(filename string) (*Table, error) {
	return OpenWithOptions(filename, Options{})
}

// OpenWithOptions 打开或创建表文件，行数由文件长度推导
func OpenWithOptions(filename string, opts Options) (*Table, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	fileLength := p.FileLength()
	numRows, trailing := common.RowsInFileLength(fileLength)
	if trailing != 0 {
		if opts.StrictLength {
			p.Close()
			return nil, common.NewFatal("open", errors.Wrapf(common.ErrCorruptFile, "%s is %d bytes, %d trailing", filename, fileLength, trailing))
		}
		logger.Warnf("db file %s is %d bytes, ignoring %d trailing bytes", filename, fileLength, trailing)
	}
	if numRows > common.TABLE_MAX_ROWS {
		// 超出页面上限的行无法访问，同样视为损坏
		p.Close()
		return nil, common.NewFatal("open", errors.Wrapf(common.ErrCorruptFile, "%s holds %d rows, limit is %d", filename, numRows, common.TABLE_MAX_ROWS))
	}

	logger.Infof("opened table %s with %d rows", filename, numRows)
	return &Table{
		numRows:     uint32(numRows),
		pager:       p,
		syncOnClose: opts.SyncOnClose,
	}, nil
}

// NumRows 当前行数
func (table *Table) NumRows() uint32 {
	return table.numRows
}

// Pager 表持有的页面缓存
func (table *Table) Pager() *pager.Pager {
	return table.pager
}

func (table *Table) checkOpen(op string) error {
	if table.closed {
		return common.NewFatal(op, common.ErrTableClosed)
	}
	return nil
}

// Insert 追加一行，表满时返回 ErrTableFull 且不做任何修改
func (table *Table) Insert(row *record.Row) error {
	if err := table.checkOpen("insert"); err != nil {
		return err
	}
	if table.numRows >= common.TABLE_MAX_ROWS {
		return common.NewReported("insert", common.ErrTableFull)
	}

	cursor := TableEnd(table)
	slot, err := cursor.Value()
	if err != nil {
		return err
	}
	if err := record.Serialize(row, slot); err != nil {
		return common.NewFatal("insert", err)
	}
	table.numRows++
	return nil
}

// Select 返回一次性的全表扫描器
func (table *Table) Select() *Scanner {
	if err := table.checkOpen("select"); err != nil {
		return &Scanner{err: err}
	}
	return &Scanner{cursor: TableStart(table)}
}

// Rows 扫描全表并返回所有行
func (table *Table) Rows() ([]*record.Row, error) {
	scanner := table.Select()
	rows := make([]*record.Row, 0, table.numRows)
	for scanner.Next() {
		rows = append(rows, scanner.Row())
	}
	return rows, scanner.Err()
}

// Checksum 按扫描顺序对所有行的序列化字节计算 xxhash64
func (table *Table) Checksum() (uint64, error) {
	if err := table.checkOpen("checksum"); err != nil {
		return 0, err
	}
	h := util.NewHasher()
	for cursor := TableStart(table); !cursor.EndOfTable(); cursor.Advance() {
		slot, err := cursor.Value()
		if err != nil {
			return 0, err
		}
		h.Write(slot)
	}
	return h.Sum64(), nil
}

// Close 把逻辑范围内的常驻页面写回磁盘并关闭文件。
// 完整页面写满 PAGE_SIZE，最后一个不完整页面只写实际行的字节，
// 逻辑范围之外的页面直接丢弃。写盘失败时 pager 仍然会关闭，返回第一个错误。
func (table *Table) Close() (err error) {
	if err := table.checkOpen("close"); err != nil {
		return err
	}
	table.closed = true
	p := table.pager
	defer func() {
		if closeErr := p.Close(); err == nil {
			err = closeErr
		}
	}()

	numFullPages := table.numRows / common.ROWS_PER_PAGE
	for pageNum := uint32(0); pageNum < numFullPages; pageNum++ {
		if !p.IsResident(pageNum) {
			continue
		}
		if err := p.FlushPage(pageNum, common.PAGE_SIZE); err != nil {
			return err
		}
		p.ReleasePage(pageNum)
	}

	if numAdditionalRows := table.numRows % common.ROWS_PER_PAGE; numAdditionalRows > 0 {
		pageNum := numFullPages
		if p.IsResident(pageNum) {
			if err := p.FlushPage(pageNum, int(numAdditionalRows)*common.ROW_SIZE); err != nil {
				return err
			}
			p.ReleasePage(pageNum)
		}
	}

	if table.syncOnClose {
		if err := p.Sync(); err != nil {
			return err
		}
	}
	logger.Infof("closed table with %d rows", table.numRows)
	return nil
}
