package table

import (
	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/record"
)

// Scanner 全表顺序扫描，只能消费一次
//
//	scanner := table.Select()
//	for scanner.Next() {
//		row := scanner.Row()
//	}
//	err := scanner.Err()
type Scanner struct {
	cursor *Cursor
	row    *record.Row
	err    error
}

// Next 前进到下一行，到表尾或出错时返回 false
func (scanner *Scanner) Next() bool {
	if scanner.err != nil || scanner.cursor == nil || scanner.cursor.EndOfTable() {
		scanner.row = nil
		return false
	}
	if scanner.cursor.table.closed {
		scanner.err = common.NewFatal("select", common.ErrTableClosed)
		return false
	}
	slot, err := scanner.cursor.Value()
	if err != nil {
		scanner.err = err
		return false
	}
	row := &record.Row{}
	if err := record.Deserialize(slot, row); err != nil {
		scanner.err = common.NewFatal("select", err)
		return false
	}
	scanner.row = row
	scanner.cursor.Advance()
	return true
}

// Row 当前行，是解码出来的副本
func (scanner *Scanner) Row() *record.Row {
	return scanner.row
}

func (scanner *Scanner) Err() error {
	return scanner.err
}
