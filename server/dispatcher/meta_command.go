package dispatcher

import (
	"fmt"
	"strings"

	"github.com/zhukovaskychina/xmysql-study/logger"
	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/snapshot"
)

type MetaCommandResult int

const (
	META_COMMAND_SUCCESS MetaCommandResult = iota
	META_COMMAND_EXIT
	META_COMMAND_UNRECOGNIZED_COMMAND
)

// doMetaCommand 处理以 . 开头的命令，只有致命错误才返回 error
func (d *CommandDispatcher) doMetaCommand(input string) (MetaCommandResult, error) {
	tokens := strings.Fields(input)
	switch tokens[0] {
	case ".exit":
		if len(tokens) != 1 {
			break
		}
		return META_COMMAND_EXIT, d.table.Close()
	case ".constants":
		if len(tokens) != 1 {
			break
		}
		d.printConstants()
		return META_COMMAND_SUCCESS, nil
	case ".stats":
		if len(tokens) != 1 {
			break
		}
		d.printStats()
		return META_COMMAND_SUCCESS, nil
	case ".checksum":
		if len(tokens) != 1 {
			break
		}
		sum, err := d.table.Checksum()
		if err != nil {
			return META_COMMAND_SUCCESS, err
		}
		fmt.Fprintf(d.out, "Checksum: %016x\n", sum)
		return META_COMMAND_SUCCESS, nil
	case ".dump":
		if len(tokens) != 2 {
			break
		}
		count, err := snapshot.ExportFile(d.table, tokens[1])
		if err != nil {
			return META_COMMAND_SUCCESS, d.reportError(err)
		}
		fmt.Fprintf(d.out, "Dumped %d rows to %s.\n", count, tokens[1])
		return META_COMMAND_SUCCESS, nil
	case ".load":
		if len(tokens) != 2 {
			break
		}
		count, err := snapshot.ImportFile(tokens[1], d.table)
		if count > 0 || err == nil {
			fmt.Fprintf(d.out, "Loaded %d rows from %s.\n", count, tokens[1])
		}
		if err != nil {
			return META_COMMAND_SUCCESS, d.reportError(err)
		}
		return META_COMMAND_SUCCESS, nil
	}
	return META_COMMAND_UNRECOGNIZED_COMMAND, nil
}

// reportError 非致命错误打印后继续，致命错误向上返回
func (d *CommandDispatcher) reportError(err error) error {
	if common.IsFatal(err) {
		return err
	}
	if common.IsTableFull(err) {
		fmt.Fprintln(d.out, "Error: Table full.")
		return nil
	}
	logger.Warnf("meta command failed: %v", err)
	fmt.Fprintf(d.out, "Error: %v\n", err)
	return nil
}

func (d *CommandDispatcher) printConstants() {
	fmt.Fprintln(d.out, "Constants:")
	fmt.Fprintf(d.out, "ROW_SIZE: %d\n", common.ROW_SIZE)
	fmt.Fprintf(d.out, "PAGE_SIZE: %d\n", common.PAGE_SIZE)
	fmt.Fprintf(d.out, "ROWS_PER_PAGE: %d\n", common.ROWS_PER_PAGE)
	fmt.Fprintf(d.out, "TABLE_MAX_PAGES: %d\n", common.TABLE_MAX_PAGES)
	fmt.Fprintf(d.out, "TABLE_MAX_ROWS: %d\n", common.TABLE_MAX_ROWS)
}

func (d *CommandDispatcher) printStats() {
	p := d.table.Pager()
	fmt.Fprintf(d.out, "Rows: %d\n", d.table.NumRows())
	fmt.Fprintf(d.out, "Resident pages: %d\n", p.NumResident())
	fmt.Fprintf(d.out, "Block reads: %d\n", p.BlockFile().ReadNumber)
	fmt.Fprintf(d.out, "Block writes: %d\n", p.BlockFile().WriteNumber)
	fmt.Fprintf(d.out, "File: %s\n", p.BlockFile().GetFileName())
}
