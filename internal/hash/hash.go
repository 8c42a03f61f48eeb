package hash

import (
	"hash/fnv"
)

func StringToUint32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Bucket maps key onto one of n shards.
func Bucket(key string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(StringToUint32(key) % uint32(n))
}
