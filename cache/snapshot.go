package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrEmpty в кэше еще нет снимка
var ErrEmpty = errors.New("снимок дашборда еще не построен")

// Stats состояние кэша
type Stats struct {
	ID             string    `json:"id"`
	StoredAt       time.Time `json:"storedAt"`
	RawSize        int       `json:"rawSize"`
	CompressedSize int       `json:"compressedSize"`
	Hits           uint64    `json:"hits"`
	Misses         uint64    `json:"misses"`
}

// Ratio доля сжатого размера от исходного
func (s Stats) Ratio() float64 {
	if s.RawSize == 0 {
		return 0
	}
	return float64(s.CompressedSize) / float64(s.RawSize)
}

// SnapshotCache хранит последний снимок дашборда в сжатом виде
type SnapshotCache struct {
	mu       sync.RWMutex
	id       string
	storedAt time.Time
	data     []byte
	rawSize  int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New создает пустой кэш
func New() *SnapshotCache {
	return &SnapshotCache{}
}

// Store сериализует v в JSON и сохраняет под идентификатором id, заменяя предыдущий снимок
func (c *SnapshotCache) Store(id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации снимка %s: %w", id, err)
	}
	compressed := compress(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
	c.storedAt = time.Now().UTC()
	c.data = compressed
	c.rawSize = len(raw)
	return nil
}

// Get возвращает идентификатор и JSON последнего снимка
func (c *SnapshotCache) Get() (string, []byte, error) {
	c.mu.RLock()
	id, data := c.id, c.data
	c.mu.RUnlock()

	if data == nil {
		c.misses.Add(1)
		return "", nil, ErrEmpty
	}

	raw, err := decompress(data)
	if err != nil {
		return "", nil, err
	}
	c.hits.Add(1)
	return id, raw, nil
}

// Stats возвращает размеры и счетчики обращений
func (c *SnapshotCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		ID:             c.id,
		StoredAt:       c.storedAt,
		RawSize:        c.rawSize,
		CompressedSize: len(c.data),
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
	}
}
