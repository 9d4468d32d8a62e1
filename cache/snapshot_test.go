package cache

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestSnapshotCache_Empty(t *testing.T) {
	c := New()
	_, _, err := c.Get()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestSnapshotCache_StoreAndGet(t *testing.T) {
	c := New()
	in := payload{Name: strings.Repeat("leads", 50), Values: []float64{270, 290, 401, 600, 604}}
	require.NoError(t, c.Store("snap-1", in))

	id, raw, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "snap-1", id)

	var out payload
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)

	stats := c.Stats()
	assert.Equal(t, "snap-1", stats.ID)
	assert.Equal(t, len(raw), stats.RawSize)
	assert.Less(t, stats.CompressedSize, stats.RawSize)
	assert.Less(t, stats.Ratio(), 1.0)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.False(t, stats.StoredAt.IsZero())
}

func TestSnapshotCache_ReplacesPrevious(t *testing.T) {
	c := New()
	require.NoError(t, c.Store("a", payload{Name: "a"}))
	require.NoError(t, c.Store("b", payload{Name: "b"}))

	id, raw, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "b", id)
	assert.JSONEq(t, `{"name":"b","values":null}`, string(raw))
}

func TestSnapshotCache_MarshalError(t *testing.T) {
	c := New()
	err := c.Store("bad", map[string]any{"ch": make(chan int)})
	assert.Error(t, err)

	_, _, err = c.Get()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSnapshotCache_Concurrent(t *testing.T) {
	c := New()
	require.NoError(t, c.Store("init", payload{Name: "init"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Store("w", payload{Name: "w", Values: []float64{float64(i)}})
		}()
		go func() {
			defer wg.Done()
			_, raw, err := c.Get()
			assert.NoError(t, err)
			assert.True(t, json.Valid(raw))
		}()
	}
	wg.Wait()
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("dashboard ", 100))
	out, err := decompress(compress(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = decompress([]byte("not snappy"))
	assert.Error(t, err)
}
