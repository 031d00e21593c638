package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/httpx/reply"
	"notion-config-tool/pkg/httpx/req"
	"notion-config-tool/pkg/rest"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type syncEnqueuer interface {
	EnqueueSync(ctx context.Context, payload worker.SyncPayload) (string, error)
}

type historyService interface {
	List(ctx context.Context, kind entity.SyncKind, limit, offset int) ([]entity.SyncRecord, error)
}

type JobServer struct {
	enqueuer       syncEnqueuer
	historyService historyService
}

func NewJobServer(enqueuer syncEnqueuer, historyService historyService) JobServer {
	return JobServer{enqueuer: enqueuer, historyService: historyService}
}

func (s JobServer) postV1SyncJob(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.SyncJobRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	userID, _ := contextx.UserIDFromContext(ctx)

	taskID, err := s.enqueuer.EnqueueSync(ctx, newDomainSyncPayload(request, userID.String()))
	if err != nil {
		return fmt.Errorf("enqueuer.EnqueueSync: %w", err)
	}

	reply.JSON(ctx, w, http.StatusAccepted, rest.SyncJob{TaskID: taskID})

	return nil
}

func (s JobServer) getV1History(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	limit := defaultHistoryLimit

	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return failure.NewInvalidArgumentError(
				"invalid limit",
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription("limit must be a positive integer"),
			)
		}

		limit = min(n, maxHistoryLimit)
	}

	records, err := s.historyService.List(ctx, entity.SyncKind(query.Get("kind")), limit, 0)
	if err != nil {
		return fmt.Errorf("historyService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lo.Map(records, func(record entity.SyncRecord, _ int) rest.SyncRecord {
		return newRESTSyncRecord(record)
	}))

	return nil
}
