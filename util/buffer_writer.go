package util

func WriteUB4(buf []byte, i uint32) []byte {
	buf = append(buf, byte(i&0xFF))
	buf = append(buf, byte((i>>8)&0xFF))
	buf = append(buf, byte((i>>16)&0xFF))
	buf = append(buf, byte((i>>24)&0xFF))
	return buf
}

// PutUB4 原地写入4字节小端整数，返回新的游标
func PutUB4(buf []byte, cursor int, i uint32) int {
	buf[cursor] = byte(i & 0xFF)
	buf[cursor+1] = byte((i >> 8) & 0xFF)
	buf[cursor+2] = byte((i >> 16) & 0xFF)
	buf[cursor+3] = byte((i >> 24) & 0xFF)
	return cursor + 4
}

// PutFixedBytes 原地写入定长字段，最多拷贝width字节，剩余部分补0
func PutFixedBytes(buf []byte, cursor int, width int, from []byte) int {
	field := buf[cursor : cursor+width]
	n := copy(field, from)
	for i := n; i < width; i++ {
		field[i] = 0
	}
	return cursor + width
}

func ConvertUInt4Bytes(i uint32) []byte {
	buff := make([]byte, 0, 4)
	return WriteUB4(buff, i)
}
