package server

import (
	"context"
	"fmt"
	"net/http"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/pkg/httpx/reply"
)

type commodityService interface {
	Generate(ctx context.Context) (entity.CommodityCatalog, error)
	Diff(ctx context.Context) (diff.CommodityDiff, error)
	Sync(ctx context.Context) (entity.SyncRecord, error)
}

type CommodityServer struct {
	commodityService commodityService
}

func NewCommodityServer(commodityService commodityService) CommodityServer {
	return CommodityServer{commodityService: commodityService}
}

func (s CommodityServer) getV1Commodity(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	catalog, err := s.commodityService.Generate(ctx)
	if err != nil {
		return fmt.Errorf("commodityService.Generate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, catalog)

	return nil
}

func (s CommodityServer) getV1CommodityDiff(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	d, err := s.commodityService.Diff(ctx)
	if err != nil {
		return fmt.Errorf("commodityService.Diff: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCommodityDiff(d))

	return nil
}

func (s CommodityServer) postV1CommoditySync(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	record, err := s.commodityService.Sync(ctx)
	if err != nil {
		return fmt.Errorf("commodityService.Sync: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSyncRecord(record))

	return nil
}
