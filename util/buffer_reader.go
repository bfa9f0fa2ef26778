package util

func ReadBytes(buff []byte, cursor int, offset int) (int, []byte) {
	if offset <= 0 {
		return cursor, nil
	}
	return cursor + offset, buff[cursor : cursor+offset]
}

func ReadUB4(buff []byte, cursor int) (int, uint32) {
	i := uint32(buff[cursor])
	i |= uint32(buff[cursor+1]) << 8
	i |= uint32(buff[cursor+2]) << 16
	i |= uint32(buff[cursor+3]) << 24
	return cursor + 4, i
}

// ReadFixedString 读取定长字段，遇到第一个0字节截断，字段写满时没有结束符
func ReadFixedString(buff []byte, cursor int, width int) (int, string) {
	cursor, field := ReadBytes(buff, cursor, width)
	for i, b := range field {
		if b == 0 {
			return cursor, string(field[:i])
		}
	}
	return cursor, string(field)
}

func ReadUB4Byte2UInt32(buff []byte) uint32 {
	_, i := ReadUB4(buff, 0)
	return i
}
