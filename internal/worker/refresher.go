package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// NameSource reloads one cached name map.
type NameSource func(ctx context.Context) (map[string]string, error)

// NameRefresher periodically reloads the cached commodity and box names so
// that wiki exports do not wait for Notion.
type NameRefresher struct {
	sources  map[string]NameSource
	interval time.Duration

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewNameRefresher(interval time.Duration) *NameRefresher {
	return &NameRefresher{
		sources:  make(map[string]NameSource),
		interval: interval,
	}
}

func (w *NameRefresher) WithSource(name string, source NameSource) *NameRefresher {
	w.sources[name] = source

	return w
}

func (w *NameRefresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("refresher is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("refresher stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *NameRefresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()

		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *NameRefresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.isRunning
}

// Run refreshes immediately and then on every tick until ctx is done.
func (w *NameRefresher) Run(ctx context.Context) error {
	logger(ctx).Info("name refresher started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.RefreshAll(ctx)

		select {
		case <-ctx.Done():
			logger(ctx).Info("name refresher stopped")

			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RefreshAll reloads every source. A failing source keeps its previous cache.
func (w *NameRefresher) RefreshAll(ctx context.Context) int {
	refreshed := 0

	for name, source := range w.sources {
		if ctx.Err() != nil {
			return refreshed
		}

		names, err := source(ctx)
		if err != nil {
			logger(ctx).Error("refresh names", slog.String("source", name), logx.Error(err))

			continue
		}

		refreshed++

		logger(ctx).Debug("names refreshed", slog.String("source", name), slog.Int("count", len(names)))
	}

	return refreshed
}
