package common

//列宽度，与行编码保持一致
const COLUMN_USERNAME_SIZE = 32
const COLUMN_EMAIL_SIZE = 255

//行内各字段大小
const ID_SIZE = 4
const USERNAME_SIZE = COLUMN_USERNAME_SIZE
const EMAIL_SIZE = COLUMN_EMAIL_SIZE

//行内各字段偏移
const ID_OFFSET = 0
const USERNAME_OFFSET = ID_OFFSET + ID_SIZE
const EMAIL_OFFSET = USERNAME_OFFSET + USERNAME_SIZE

//一行序列化之后的固定长度
const ROW_SIZE = ID_SIZE + USERNAME_SIZE + EMAIL_SIZE

//页面大小，页面没有页头，只是连续存放的行
const PAGE_SIZE = 4096

//每页能放下的完整行数
const ROWS_PER_PAGE = PAGE_SIZE / ROW_SIZE

//表最多的页面数，超过即为致命错误
const TABLE_MAX_PAGES = 100

const TABLE_MAX_ROWS = ROWS_PER_PAGE * TABLE_MAX_PAGES

// PageNumOfRow 行号所在的页面号
func PageNumOfRow(rowNum uint32) uint32 {
	return rowNum / ROWS_PER_PAGE
}

// ByteOffsetOfRow 行在所属页面内的字节偏移
func ByteOffsetOfRow(rowNum uint32) uint32 {
	return (rowNum % ROWS_PER_PAGE) * ROW_SIZE
}

// RowsInFileLength 由文件长度推导行数。
// 完整页面按 PAGE_SIZE 写盘，每页尾部有 PAGE_SIZE-ROWS_PER_PAGE*ROW_SIZE 字节空隙，
// 最后一个不完整页面只写实际行。trailing 是无法组成整行的多余字节数。
func RowsInFileLength(fileLength int64) (rows int64, trailing int64) {
	fullPages := fileLength / PAGE_SIZE
	tail := fileLength % PAGE_SIZE
	return fullPages*ROWS_PER_PAGE + tail/ROW_SIZE, tail % ROW_SIZE
}
