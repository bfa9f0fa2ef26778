package dispatcher

import (
	"math"
	"strconv"
	"strings"

	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/record"
)

type StatementType int

const (
	STATEMENT_INSERT StatementType = iota
	STATEMENT_SELECT
)

// PrepareResult 语句解析结果
type PrepareResult int

const (
	PREPARE_SUCCESS PrepareResult = iota
	PREPARE_NEGATIVE_ID
	PREPARE_STRING_TOO_LONG
	PREPARE_SYNTAX_ERROR
	PREPARE_UNRECOGNIZED_STATEMENT
)

// Statement 解析后的语句
type Statement struct {
	Type        StatementType
	RowToInsert *record.Row
}

// PrepareStatement 把一行输入解析为语句
func PrepareStatement(input string) (*Statement, PrepareResult) {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input)
	}
	if input == "select" {
		return &Statement{Type: STATEMENT_SELECT}, PREPARE_SUCCESS
	}
	return nil, PREPARE_UNRECOGNIZED_STATEMENT
}

// insert <id> <username> <email>，多余的参数忽略
func prepareInsert(input string) (*Statement, PrepareResult) {
	tokens := strings.Fields(input)
	if len(tokens) < 4 {
		return nil, PREPARE_SYNTAX_ERROR
	}
	idString, username, email := tokens[1], tokens[2], tokens[3]

	id, err := strconv.ParseInt(idString, 10, 64)
	if err != nil {
		return nil, PREPARE_SYNTAX_ERROR
	}
	if id < 0 {
		return nil, PREPARE_NEGATIVE_ID
	}
	if id > math.MaxUint32 {
		return nil, PREPARE_SYNTAX_ERROR
	}
	if len(username) > common.COLUMN_USERNAME_SIZE {
		return nil, PREPARE_STRING_TOO_LONG
	}
	if len(email) > common.COLUMN_EMAIL_SIZE {
		return nil, PREPARE_STRING_TOO_LONG
	}

	return &Statement{
		Type:        STATEMENT_INSERT,
		RowToInsert: record.NewRow(uint32(id), username, email),
	}, PREPARE_SUCCESS
}
