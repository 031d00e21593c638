package handler

import (
	"context"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type workshopService interface {
	Types(ctx context.Context) ([]entity.WorkshopType, error)
	Diff(ctx context.Context, typeID string) ([]diff.WorkshopChange, error)
}

type syncEnqueuer interface {
	EnqueueSync(ctx context.Context, payload worker.SyncPayload) (string, error)
}

type historyService interface {
	List(ctx context.Context, kind entity.SyncKind, limit, offset int) ([]entity.SyncRecord, error)
}

type nameRefresher interface {
	IsRunning() bool
	RefreshAll(ctx context.Context) int
}

type Handler struct {
	workshop  workshopService
	enqueuer  syncEnqueuer
	history   historyService
	refresher nameRefresher
}

func New(
	workshop workshopService,
	enqueuer syncEnqueuer,
	history historyService,
	refresher nameRefresher,
) *Handler {
	return &Handler{
		workshop:  workshop,
		enqueuer:  enqueuer,
		history:   history,
		refresher: refresher,
	}
}
