package util

import (
	"testing"

	"github.com/smartystreets/assertions"
)

func TestHash(t *testing.T) {
	check(t, assertions.ShouldEqual(HashCode([]byte("788788")), HashCode([]byte("788788"))))
	check(t, assertions.ShouldNotEqual(HashCode(ConvertUInt4Bytes(1)), HashCode(ConvertUInt4Bytes(2))))

	h := NewHasher()
	h.Write([]byte("7887"))
	h.Write([]byte("88"))
	check(t, assertions.ShouldEqual(h.Sum64(), HashCode([]byte("788788"))))
}
