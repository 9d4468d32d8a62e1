package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/marketing_dashboard/cache"
	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

type failingBuilder struct{}

func (failingBuilder) DefaultOptions() dashboard.Options { return dashboard.Options{} }

func (failingBuilder) Build(dashboard.Options) (*dashboard.Snapshot, error) {
	return nil, errors.New("сбой")
}

type recorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *recorder) BroadcastSnapshot(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func newBuilder() *dashboard.Builder {
	return dashboard.NewBuilder(utils.Discard(), dataset.Load(), dashboard.DefaultConfig())
}

func TestRefresh_StoresAndNotifies(t *testing.T) {
	snapshots := cache.New()
	notes := &recorder{}
	r := NewRefresher(utils.Discard(), newBuilder(), snapshots, time.Minute)
	r.SetNotifier(notes)

	require.NoError(t, r.Refresh())

	id, raw, err := snapshots.Get()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, []string{id}, notes.ids)
	assert.Equal(t, 1, r.Runs())
}

func TestRefreshIfEmpty_BuildsOnceUnderConcurrency(t *testing.T) {
	snapshots := cache.New()
	notes := &recorder{}
	r := NewRefresher(utils.Discard(), newBuilder(), snapshots, time.Minute)
	r.SetNotifier(notes)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.RefreshIfEmpty()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, r.Runs())
	assert.Equal(t, 1, notes.count())
}

func TestRefreshIfEmpty_SkipsFilledCache(t *testing.T) {
	r := NewRefresher(utils.Discard(), newBuilder(), cache.New(), time.Minute)

	require.NoError(t, r.Refresh())
	require.NoError(t, r.RefreshIfEmpty())
	assert.Equal(t, 1, r.Runs())

	require.NoError(t, r.Refresh())
	assert.Equal(t, 2, r.Runs())
}

func TestRefresh_BuildError(t *testing.T) {
	snapshots := cache.New()
	r := NewRefresher(utils.Discard(), failingBuilder{}, snapshots, time.Minute)

	assert.Error(t, r.Refresh())
	_, _, err := snapshots.Get()
	assert.ErrorIs(t, err, cache.ErrEmpty)
	assert.Equal(t, 0, r.Runs())
}

func TestStart_RefreshesPeriodically(t *testing.T) {
	notes := &recorder{}
	r := NewRefresher(utils.Discard(), newBuilder(), cache.New(), 50*time.Millisecond)
	r.SetNotifier(notes)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	require.Eventually(t, func() bool { return notes.count() >= 3 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("планировщик не остановился")
	}
}

func TestStart_KeepsRunningAfterFailures(t *testing.T) {
	r := NewRefresher(utils.Discard(), failingBuilder{}, cache.New(), 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, r.Start(ctx))
	assert.Equal(t, 0, r.Runs())
}

func TestStart_InvalidInterval(t *testing.T) {
	r := NewRefresher(utils.Discard(), newBuilder(), cache.New(), 0)
	assert.Error(t, r.Start(context.Background()))
}
