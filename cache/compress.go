package cache

import (
	"fmt"

	"github.com/golang/snappy"
)

// compress сжимает JSON снимка
func compress(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// decompress восстанавливает JSON снимка
func decompress(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("не удалось распаковать снимок: %w", err)
	}
	return decompressed, nil
}
