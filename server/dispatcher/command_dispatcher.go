package dispatcher

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/zhukovaskychina/xmysql-study/logger"
	"github.com/zhukovaskychina/xmysql-study/server/conf"
	"github.com/zhukovaskychina/xmysql-study/server/storage/table"
)

// ErrInputClosed 输入在 .exit 之前结束
var ErrInputClosed = errors.New("error reading input")

// CommandDispatcher 行命令解释器，把每行输入分发给元命令或语句执行
type CommandDispatcher struct {
	table  *table.Table
	prompt string
	out    io.Writer
}

// NewCommandDispatcher 创建命令分发器，table 的关闭由分发器负责
func NewCommandDispatcher(config *conf.Cfg, t *table.Table, out io.Writer) *CommandDispatcher {
	prompt := "db > "
	if config != nil {
		prompt = config.Prompt
	}
	return &CommandDispatcher{
		table:  t,
		prompt: prompt,
		out:    out,
	}
}

// Run 逐行读取并执行，直到 .exit、输入结束或致命错误。
// 行长度不设上限；输入结束时先关闭表再返回 ErrInputClosed。
func (d *CommandDispatcher) Run(in io.Reader) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(d.out, d.prompt)
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			if closeErr := d.table.Close(); closeErr != nil {
				return closeErr
			}
			if err != io.EOF {
				return errors.Wrap(ErrInputClosed, err.Error())
			}
			return ErrInputClosed
		}

		exit, err := d.HandleLine(strings.TrimRight(line, "\r\n"))
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// HandleLine 执行一行输入，返回是否退出
func (d *CommandDispatcher) HandleLine(input string) (bool, error) {
	if strings.HasPrefix(input, ".") {
		result, err := d.doMetaCommand(input)
		if err != nil {
			return false, errors.Wrapf(err, "meta command %q", input)
		}
		switch result {
		case META_COMMAND_EXIT:
			return true, nil
		case META_COMMAND_UNRECOGNIZED_COMMAND:
			fmt.Fprintf(d.out, "Unrecognized command '%s'\n", input)
		}
		return false, nil
	}

	statement, prepared := PrepareStatement(input)
	switch prepared {
	case PREPARE_SUCCESS:
	case PREPARE_NEGATIVE_ID:
		fmt.Fprintln(d.out, "ID must be positive.")
		return false, nil
	case PREPARE_STRING_TOO_LONG:
		fmt.Fprintln(d.out, "String is too long.")
		return false, nil
	case PREPARE_SYNTAX_ERROR:
		fmt.Fprintln(d.out, "Syntax error. Could not parse statement.")
		return false, nil
	case PREPARE_UNRECOGNIZED_STATEMENT:
		fmt.Fprintf(d.out, "Unrecognized keyword at start of '%s'.\n", input)
		return false, nil
	}

	result, err := ExecuteStatement(statement, d.table, d.out)
	if err != nil {
		logger.Errorf("execute %q: %v", input, err)
		return false, errors.Wrapf(err, "execute %q", input)
	}
	switch result {
	case EXECUTE_SUCCESS:
		fmt.Fprintln(d.out, "Executed.")
	case EXECUTE_TABLE_FULL:
		fmt.Fprintln(d.out, "Error: Table full.")
	}
	return false, nil
}
