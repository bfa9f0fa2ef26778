package common

import "errors"

var (
	// 致命错误，宿主程序应当终止
	ErrPageOutOfBounds = errors.New("tried to fetch page number out of bounds")
	ErrPageNotResident = errors.New("tried to flush null page")
	ErrCorruptFile     = errors.New("db file is not a whole number of rows")
	ErrTableClosed     = errors.New("table is closed")

	// 可报告错误，命令循环继续
	ErrTableFull = errors.New("table full")
)

// StorageError 存储层错误，Fatal 区分致命和可报告两类
type StorageError struct {
	Op    string // 操作名称
	Fatal bool
	Err   error // 原始错误
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return "<nil>"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewFatal 创建致命错误
func NewFatal(op string, err error) error {
	return &StorageError{
		Op:    op,
		Fatal: true,
		Err:   err,
	}
}

// NewReported 创建可报告错误
func NewReported(op string, err error) error {
	return &StorageError{
		Op:  op,
		Err: err,
	}
}

// IsFatal 检查错误链上是否存在致命的存储错误
func IsFatal(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Fatal
	}
	return false
}

// IsTableFull 检查是否为表已满错误
func IsTableFull(err error) bool {
	return errors.Is(err, ErrTableFull)
}
