package server

import (
	"context"
	"fmt"
	"net/http"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/workshop"
	"notion-config-tool/pkg/httpx/reply"
	"notion-config-tool/pkg/httpx/req"
	"notion-config-tool/pkg/rest"
)

type workshopService interface {
	Types(ctx context.Context) ([]entity.WorkshopType, error)
	Generate(ctx context.Context, typeID string) (entity.WorkshopConfig, error)
	Diff(ctx context.Context, typeID string) ([]diff.WorkshopChange, error)
	Sync(ctx context.Context, typeID string, request workshop.SyncRequest) (entity.SyncRecord, error)
}

type WorkshopServer struct {
	workshopService workshopService
}

func NewWorkshopServer(workshopService workshopService) WorkshopServer {
	return WorkshopServer{workshopService: workshopService}
}

func (s WorkshopServer) getV1WorkshopTypes(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	types, err := s.workshopService.Types(ctx)
	if err != nil {
		return fmt.Errorf("workshopService.Types: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, types)

	return nil
}

func (s WorkshopServer) getV1Workshop(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	config, err := s.workshopService.Generate(ctx, r.PathValue("type"))
	if err != nil {
		return fmt.Errorf("workshopService.Generate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, config)

	return nil
}

func (s WorkshopServer) getV1WorkshopDiff(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	typeID := r.PathValue("type")

	changes, err := s.workshopService.Diff(ctx, typeID)
	if err != nil {
		return fmt.Errorf("workshopService.Diff: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTWorkshopDiff(typeID, changes))

	return nil
}

func (s WorkshopServer) postV1WorkshopSync(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.WorkshopSyncRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	record, err := s.workshopService.Sync(ctx, r.PathValue("type"), newDomainWorkshopSync(request))
	if err != nil {
		return fmt.Errorf("workshopService.Sync: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSyncRecord(record))

	return nil
}
