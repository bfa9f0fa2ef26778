package table

import (
	"github.com/zhukovaskychina/xmysql-study/server/common"
)

// Cursor 表上的顺序位置，不持有存储，只按需计算行的地址。
// Value 返回的切片在下一次结构性修改之前有效，不要跨 Advance 保存。
type Cursor struct {
	table      *Table
	rowNum     uint32
	endOfTable bool
}

// TableStart 指向第一行
func TableStart(table *Table) *Cursor {
	return &Cursor{
		table:      table,
		rowNum:     0,
		endOfTable: table.numRows == 0,
	}
}

// TableEnd 指向最后一行之后，即追加位置
func TableEnd(table *Table) *Cursor {
	return &Cursor{
		table:      table,
		rowNum:     table.numRows,
		endOfTable: true,
	}
}

func (cursor *Cursor) RowNum() uint32 {
	return cursor.rowNum
}

func (cursor *Cursor) EndOfTable() bool {
	return cursor.endOfTable
}

func (cursor *Cursor) Advance() {
	cursor.rowNum++
	if cursor.rowNum >= cursor.table.numRows {
		cursor.endOfTable = true
	}
}

// Value 返回当前行在页面缓冲中的可读写区间
func (cursor *Cursor) Value() ([]byte, error) {
	pageNum := common.PageNumOfRow(cursor.rowNum)
	page, err := cursor.table.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	byteOffset := common.ByteOffsetOfRow(cursor.rowNum)
	return page[byteOffset : byteOffset+common.ROW_SIZE : byteOffset+common.ROW_SIZE], nil
}
