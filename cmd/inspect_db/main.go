package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zhukovaskychina/xmysql-study/logger"
	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/table"
	"github.com/zhukovaskychina/xmysql-study/util"
)

// 离线查看数据文件: 行数、页面布局、校验和，可选打印所有行及每行的哈希
func main() {
	var printRows bool
	var logLevel string
	flag.BoolVar(&printRows, "rows", false, "打印所有行")
	flag.StringVar(&logLevel, "logLevel", "warn", "日志级别")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect_db [-rows] <db file>")
		os.Exit(2)
	}
	if err := logger.InitLogger(logger.LogConfig{LogLevel: logLevel}); err != nil {
		panic(err)
	}

	filename := flag.Arg(0)
	if exists, err := util.PathExists(filename); err != nil || !exists {
		logger.Fatalf("inspect %s: file does not exist", filename)
	}
	t, err := table.OpenWithOptions(filename, table.Options{StrictLength: true})
	if err != nil {
		logger.Fatalf("inspect %s: %v", filename, err)
	}

	fileLength := t.Pager().FileLength()
	numRows := t.NumRows()
	fmt.Printf("file: %s\n", filename)
	fmt.Printf("file length: %d\n", fileLength)
	fmt.Printf("rows: %d / %d\n", numRows, common.TABLE_MAX_ROWS)
	fmt.Printf("pages on disk: %d / %d\n", t.Pager().NumPagesOnDisk(), common.TABLE_MAX_PAGES)
	fmt.Printf("full pages: %d\n", numRows/common.ROWS_PER_PAGE)
	fmt.Printf("rows in last page: %d (%d bytes)\n", numRows%common.ROWS_PER_PAGE, (numRows%common.ROWS_PER_PAGE)*common.ROW_SIZE)

	sum, err := t.Checksum()
	if err != nil {
		logger.Fatalf("checksum %s: %v", filename, err)
	}
	fmt.Printf("checksum: %016x\n", sum)

	if printRows {
		scanner := t.Select()
		for cursorRow := uint32(0); scanner.Next(); cursorRow++ {
			row := scanner.Row()
			fmt.Printf("%4d page %2d offset %4d hash %016x  %s\n", cursorRow, common.PageNumOfRow(cursorRow), common.ByteOffsetOfRow(cursorRow), util.HashCode(row.Bytes()), row)
		}
		if err := scanner.Err(); err != nil {
			logger.Fatalf("scan %s: %v", filename, err)
		}
	}

	if err := t.Close(); err != nil {
		logger.Fatalf("close %s: %v", filename, err)
	}
}
