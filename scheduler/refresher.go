package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/singleflight"

	"github.com/LilVoxy/marketing_dashboard/cache"
	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

// SnapshotBuilder строит снимок дашборда
type SnapshotBuilder interface {
	DefaultOptions() dashboard.Options
	Build(opts dashboard.Options) (*dashboard.Snapshot, error)
}

// Notifier получает уведомление о новом снимке
type Notifier interface {
	BroadcastSnapshot(id string)
}

// Refresher периодически перестраивает снимок дашборда и кладет его в кэш
type Refresher struct {
	logger   *utils.Logger
	builder  SnapshotBuilder
	cache    *cache.SnapshotCache
	interval time.Duration

	// Одновременные обновления объединяются в одно построение
	flight singleflight.Group

	mu       sync.Mutex
	notifier Notifier
	runs     int
}

// NewRefresher создает планировщик обновления снимка
func NewRefresher(logger *utils.Logger, builder SnapshotBuilder, snapshots *cache.SnapshotCache, interval time.Duration) *Refresher {
	return &Refresher{
		logger:   logger,
		builder:  builder,
		cache:    snapshots,
		interval: interval,
	}
}

// SetNotifier задает получателя уведомлений о новых снимках
func (r *Refresher) SetNotifier(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifier = n
}

// Runs количество успешных обновлений
func (r *Refresher) Runs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

// Refresh строит новый снимок и сохраняет его в кэш.
// Вызовы во время уже идущего построения ждут его и получают его результат.
func (r *Refresher) Refresh() error {
	_, err, _ := r.flight.Do("refresh", func() (any, error) {
		return nil, r.refresh()
	})
	return err
}

// RefreshIfEmpty строит снимок, только если кэш еще пуст
func (r *Refresher) RefreshIfEmpty() error {
	_, err, _ := r.flight.Do("refresh", func() (any, error) {
		if r.cache.Stats().ID != "" {
			return nil, nil
		}
		return nil, r.refresh()
	})
	return err
}

func (r *Refresher) refresh() error {
	startTime := time.Now()

	snapshot, err := r.builder.Build(r.builder.DefaultOptions())
	if err != nil {
		return fmt.Errorf("ошибка при построении снимка: %w", err)
	}
	if err := r.cache.Store(snapshot.ID, snapshot); err != nil {
		return fmt.Errorf("ошибка при сохранении снимка: %w", err)
	}

	stats := r.cache.Stats()
	r.logger.Info("Снимок %s обновлен за %v (%d -> %d байт)",
		snapshot.ID, time.Since(startTime), stats.RawSize, stats.CompressedSize)

	r.mu.Lock()
	r.runs++
	notifier := r.notifier
	r.mu.Unlock()

	if notifier != nil {
		notifier.BroadcastSnapshot(snapshot.ID)
	}
	return nil
}

// Start строит снимок сразу и затем обновляет его с заданным интервалом
// до отмены контекста. Ошибки обновления логируются и не останавливают планировщик.
func (r *Refresher) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return fmt.Errorf("некорректный интервал обновления: %v", r.interval)
	}

	if err := r.Refresh(); err != nil {
		r.logger.Error("Ошибка при первичном построении снимка: %v", err)
	}

	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика обновления снимка с интервалом %v", r.interval)

	_, err := scheduler.Every(r.interval).WaitForSchedule().Do(func() {
		r.logger.Debug("Запланированное обновление снимка")
		if err := r.Refresh(); err != nil {
			r.logger.Error("Ошибка при запланированном обновлении снимка: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	scheduler.Stop()
	r.logger.Info("Планировщик обновления снимка остановлен")
	return nil
}
