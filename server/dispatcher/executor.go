package dispatcher

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/table"
)

type ExecuteResult int

const (
	EXECUTE_SUCCESS ExecuteResult = iota
	EXECUTE_TABLE_FULL
)

// ExecuteStatement 执行语句，只有致命错误才返回 error
func ExecuteStatement(statement *Statement, t *table.Table, out io.Writer) (ExecuteResult, error) {
	switch statement.Type {
	case STATEMENT_INSERT:
		return executeInsert(statement, t)
	case STATEMENT_SELECT:
		return executeSelect(t, out)
	}
	return EXECUTE_SUCCESS, errors.Errorf("unknown statement type %d", statement.Type)
}

func executeInsert(statement *Statement, t *table.Table) (ExecuteResult, error) {
	err := t.Insert(statement.RowToInsert)
	if common.IsTableFull(err) {
		return EXECUTE_TABLE_FULL, nil
	}
	if err != nil {
		return EXECUTE_SUCCESS, err
	}
	return EXECUTE_SUCCESS, nil
}

func executeSelect(t *table.Table, out io.Writer) (ExecuteResult, error) {
	scanner := t.Select()
	for scanner.Next() {
		fmt.Fprintln(out, scanner.Row().String())
	}
	return EXECUTE_SUCCESS, scanner.Err()
}
