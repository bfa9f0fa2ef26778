package record

import (
	"fmt"

	"github.com/juju/errors"

	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/util"
)

// Row 定长模式的一行: id, username, email
type Row struct {
	ID       uint32
	Username string
	Email    string
}

func NewRow(id uint32, username string, email string) *Row {
	return &Row{
		ID:       id,
		Username: username,
		Email:    email,
	}
}

func (row *Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", row.ID, row.Username, row.Email)
}

// Serialize 把行写入目标区间，目标至少 ROW_SIZE 字节。
// 字符串不足宽度补0，写满字段时不保留结束符，超长部分截断。
func Serialize(row *Row, destination []byte) error {
	if len(destination) < common.ROW_SIZE {
		return errors.Errorf("row destination is %d bytes, need %d", len(destination), common.ROW_SIZE)
	}
	cursor := util.PutUB4(destination, common.ID_OFFSET, row.ID)
	cursor = util.PutFixedBytes(destination, cursor, common.USERNAME_SIZE, []byte(row.Username))
	util.PutFixedBytes(destination, cursor, common.EMAIL_SIZE, []byte(row.Email))
	return nil
}

// Deserialize 从源区间还原一行，不校验内容
func Deserialize(source []byte, row *Row) error {
	if len(source) < common.ROW_SIZE {
		return errors.Errorf("row source is %d bytes, need %d", len(source), common.ROW_SIZE)
	}
	cursor, id := util.ReadUB4(source, common.ID_OFFSET)
	cursor, username := util.ReadFixedString(source, cursor, common.USERNAME_SIZE)
	_, email := util.ReadFixedString(source, cursor, common.EMAIL_SIZE)
	row.ID = id
	row.Username = username
	row.Email = email
	return nil
}

// Bytes 返回行的独立序列化副本
func (row *Row) Bytes() []byte {
	buff := make([]byte, common.ROW_SIZE)
	// 长度已保证，不会出错
	_ = Serialize(row, buff)
	return buff
}
