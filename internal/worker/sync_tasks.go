package worker

import (
	"context"
	"fmt"
	"log/slog"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/workshop"
	"notion-config-tool/pkg/application/modules"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
)

const (
	TypeSync  = "config:sync"
	QueueSync = "sync"
)

//nolint:gochecknoglobals
var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	// permanentCodes fail the same way until Notion is edited.
	permanentCodes = []failure.ErrorCode{
		errcodes.UnknownLotteryKey,
		errcodes.UnknownWorkshopType,
		errcodes.PityMisconfigured,
	}
)

// SyncPayload describes one background sync. Target is the lottery key or
// the workshop type; commodity syncs ignore it.
type SyncPayload struct {
	Kind        entity.SyncKind `json:"kind" validate:"required,oneof=lottery commodity workshop"`
	Target      string          `json:"target" validate:"required_unless=Kind commodity"`
	Keys        []string        `json:"keys,omitempty"`
	Merge       bool            `json:"merge,omitempty"`
	TriggeredBy string          `json:"triggeredBy,omitempty"`
}

func NewSyncTask(payload SyncPayload) (*asynq.Task, error) {
	data, err := jsoniter.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	return asynq.NewTask(TypeSync, data, asynq.Queue(QueueSync), asynq.MaxRetry(3)), nil
}

type LotterySyncer interface {
	Sync(ctx context.Context, key string) (entity.SyncRecord, error)
}

type CommoditySyncer interface {
	Sync(ctx context.Context) (entity.SyncRecord, error)
}

type WorkshopSyncer interface {
	Sync(ctx context.Context, typeID string, req workshop.SyncRequest) (entity.SyncRecord, error)
}

type SyncHandler struct {
	lottery   LotterySyncer
	commodity CommoditySyncer
	workshop  WorkshopSyncer
}

func NewSyncHandler(lottery LotterySyncer, commodity CommoditySyncer, workshop WorkshopSyncer) *SyncHandler {
	return &SyncHandler{lottery: lottery, commodity: commodity, workshop: workshop}
}

func (h *SyncHandler) Handlers() []modules.AsynqHandler {
	return []modules.AsynqHandler{{Pattern: TypeSync, Handle: h.Handle}}
}

// Handle runs a sync task. Invalid payloads, unknown targets and
// misconfigured boxes are not retried.
func (h *SyncHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload SyncPayload
	if err := jsoniter.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %w: %w", err, asynq.SkipRetry)
	}

	if err := validate.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("invalid payload: %w: %w", err, asynq.SkipRetry)
	}

	if payload.TriggeredBy != "" {
		ctx = contextx.WithUserID(ctx, contextx.UserID(payload.TriggeredBy))
	}

	record, err := h.Run(ctx, payload)
	if err != nil {
		if code, _ := domain.GetCode(err); lo.Contains(permanentCodes, code) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		return err
	}

	logger(ctx).Info("background sync applied",
		slog.String("kind", string(record.Kind)),
		slog.String("target", record.Target),
		slog.Int("added", record.Added),
		slog.Int("changed", record.Changed),
		slog.Int("removed", record.Removed),
	)

	return nil
}

func (h *SyncHandler) Run(ctx context.Context, payload SyncPayload) (entity.SyncRecord, error) {
	switch payload.Kind {
	case entity.SyncLottery:
		return h.lottery.Sync(ctx, payload.Target)
	case entity.SyncCommodity:
		return h.commodity.Sync(ctx)
	case entity.SyncWorkshop:
		return h.workshop.Sync(ctx, payload.Target, workshop.SyncRequest{Keys: payload.Keys, Merge: payload.Merge})
	}

	return entity.SyncRecord{}, domain.NewError(errcodes.ValidationError, "unknown sync kind "+string(payload.Kind))
}

// Enqueuer puts sync tasks on the queue.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueSync(ctx context.Context, payload SyncPayload) (string, error) {
	task, err := NewSyncTask(payload)
	if err != nil {
		return "", err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return info.ID, nil
}
