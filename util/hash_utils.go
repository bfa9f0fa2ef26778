package util

import (
	"hash"

	"github.com/OneOfOne/xxhash"
)

// 将一个键进行Hash
func HashCode(key []byte) uint64 {
	h := xxhash.New64()
	h.Write(key)
	return h.Sum64()
}

// NewHasher 流式计算，用于对整张表做校验和
func NewHasher() hash.Hash64 {
	return xxhash.New64()
}
