package analyzer

import (
	"fmt"
	"github.com/minio/highwayhash"
)

// hashKey must stay 32 bytes; changing it invalidates stored hashes
var hashKey = []byte("nxscript/ninox-script-content-v1")

// Hash returns highwayhash-64 of a script body
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// HashText returns hex encoded hash of source
func HashText(source string) (string, error) {
	sum, err := Hash([]byte(source))
	if err != nil {
		return "", fmt.Errorf("failed to hash source: %w", err)
	}
	return fmt.Sprintf("%016x", sum), nil
}
