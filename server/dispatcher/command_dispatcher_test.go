package dispatcher

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/conf"
	"github.com/zhukovaskychina/xmysql-study/server/storage/table"
)

// runScript 打开表，执行命令序列，返回输出的每一行
func runScript(t *testing.T, filename string, commands []string) ([]string, error) {
	t.Helper()
	tbl, err := table.Open(filename)
	require.NoError(t, err)

	var out bytes.Buffer
	d := NewCommandDispatcher(conf.NewCfg(), tbl, &out)
	err = d.Run(strings.NewReader(strings.Join(commands, "\n") + "\n"))
	return strings.Split(out.String(), "\n"), err
}

func TestInsertAndRetrieveRow(t *testing.T) {
	output, err := runScript(t, filepath.Join(t.TempDir(), "test.db"), []string{
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db > Executed.",
		"db > (1, user1, person1@example.com)",
		"Executed.",
		"db > ",
	}, output)
}

func TestKeepsDataAfterClosingConnection(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.db")
	output, err := runScript(t, filename, []string{
		"insert 1 user1 person1@example.com",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"db > Executed.", "db > "}, output)

	output, err = runScript(t, filename, []string{
		"select",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db > (1, user1, person1@example.com)",
		"Executed.",
		"db > ",
	}, output)
}

func TestTableFullMessage(t *testing.T) {
	commands := make([]string, 0, common.TABLE_MAX_ROWS+2)
	for i := 1; i <= common.TABLE_MAX_ROWS+1; i++ {
		commands = append(commands, fmt.Sprintf("insert %d user%d person%d@example.com", i, i, i))
	}
	commands = append(commands, ".exit")

	output, err := runScript(t, filepath.Join(t.TempDir(), "test.db"), commands)
	require.NoError(t, err)
	assert.Equal(t, "db > Executed.", output[len(output)-3])
	assert.Equal(t, "db > Error: Table full.", output[len(output)-2])
}

func TestMaximumLengthStrings(t *testing.T) {
	longUsername := strings.Repeat("a", common.COLUMN_USERNAME_SIZE)
	longEmail := strings.Repeat("a", common.COLUMN_EMAIL_SIZE)
	output, err := runScript(t, filepath.Join(t.TempDir(), "test.db"), []string{
		fmt.Sprintf("insert 1 %s %s", longUsername, longEmail),
		"select",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db > Executed.",
		fmt.Sprintf("db > (1, %s, %s)", longUsername, longEmail),
		"Executed.",
		"db > ",
	}, output)
}

func TestPrepareErrors(t *testing.T) {
	output, err := runScript(t, filepath.Join(t.TempDir(), "test.db"), []string{
		fmt.Sprintf("insert 1 %s a@b", strings.Repeat("a", common.COLUMN_USERNAME_SIZE+1)),
		fmt.Sprintf("insert 1 a %s", strings.Repeat("a", common.COLUMN_EMAIL_SIZE+1)),
		"insert -1 cstack foo@bar.com",
		"insert 1 cstack",
		"insert abc cstack foo@bar.com",
		"insert 4294967296 cstack foo@bar.com",
		"update 1 cstack foo@bar.com",
		".tables",
		"select",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db > String is too long.",
		"db > String is too long.",
		"db > ID must be positive.",
		"db > Syntax error. Could not parse statement.",
		"db > Syntax error. Could not parse statement.",
		"db > Syntax error. Could not parse statement.",
		"db > Unrecognized keyword at start of 'update 1 cstack foo@bar.com'.",
		"db > Unrecognized command '.tables'",
		"db > Executed.",
		"db > ",
	}, output)
}

func TestVeryLongLine(t *testing.T) {
	output, err := runScript(t, filepath.Join(t.TempDir(), "test.db"), []string{
		"insert 1 a " + strings.Repeat("e", 70000),
		"insert 2 b b@example.com",
		"select",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db > String is too long.",
		"db > Executed.",
		"db > (2, b, b@example.com)",
		"Executed.",
		"db > ",
	}, output)
}

func TestLastLineWithoutNewline(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.db")
	tbl, err := table.Open(filename)
	require.NoError(t, err)

	var out bytes.Buffer
	d := NewCommandDispatcher(conf.NewCfg(), tbl, &out)
	err = d.Run(strings.NewReader("insert 3 c c@example.com\nselect"))
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, "db > Executed.\ndb > (3, c, c@example.com)\nExecuted.\ndb > ", out.String())
}

func TestEndOfInputFlushes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.db")
	_, err := runScript(t, filename, []string{"insert 7 seven seven@example.com"})
	assert.ErrorIs(t, err, ErrInputClosed)

	tbl, err := table.Open(filename)
	require.NoError(t, err)
	defer tbl.Close()
	assert.Equal(t, uint32(1), tbl.NumRows())
}

func TestConstantsAndStats(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.db")
	output, err := runScript(t, filename, []string{
		".constants",
		"insert 1 a b",
		".stats",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db > Constants:",
		"ROW_SIZE: 291",
		"PAGE_SIZE: 4096",
		"ROWS_PER_PAGE: 14",
		"TABLE_MAX_PAGES: 100",
		"TABLE_MAX_ROWS: 1400",
		"db > Executed.",
		"db > Rows: 1",
		"Resident pages: 1",
		"Block reads: 0",
		"Block writes: 0",
		"File: " + filename,
		"db > ",
	}, output)
}

func TestDumpLoadChecksum(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "users.snappy")

	output, err := runScript(t, filepath.Join(dir, "src.db"), []string{
		"insert 1 user1 person1@example.com",
		"insert 2 user2 person2@example.com",
		".checksum",
		".dump " + dump,
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("db > Dumped 2 rows to %s.", dump), output[3])
	checksum := output[2]
	assert.True(t, strings.HasPrefix(checksum, "db > Checksum: "))

	output, err = runScript(t, filepath.Join(dir, "dst.db"), []string{
		".load " + dump,
		".checksum",
		"select",
		".load " + filepath.Join(dir, "missing.snappy"),
		".dump",
		".exit",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("db > Loaded 2 rows from %s.", dump), output[0])
	assert.Equal(t, checksum, output[1])
	assert.Equal(t, "db > (1, user1, person1@example.com)", output[2])
	assert.Equal(t, "(2, user2, person2@example.com)", output[3])
	assert.True(t, strings.HasPrefix(output[5], "db > Error: open snapshot"))
	assert.Equal(t, "db > Unrecognized command '.dump'", output[6])
}

func TestPrepareStatement(t *testing.T) {
	statement, result := PrepareStatement("insert 42 bob bob@example.com extra")
	require.Equal(t, PREPARE_SUCCESS, result)
	assert.Equal(t, STATEMENT_INSERT, statement.Type)
	assert.Equal(t, uint32(42), statement.RowToInsert.ID)
	assert.Equal(t, "bob@example.com", statement.RowToInsert.Email)

	statement, result = PrepareStatement("select")
	require.Equal(t, PREPARE_SUCCESS, result)
	assert.Equal(t, STATEMENT_SELECT, statement.Type)

	_, result = PrepareStatement("select *")
	assert.Equal(t, PREPARE_UNRECOGNIZED_STATEMENT, result)
}
