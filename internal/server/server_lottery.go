package server

import (
	"context"
	"fmt"
	"net/http"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/lottery"
	"notion-config-tool/internal/domain/service/wiki"
	"notion-config-tool/pkg/httpx/reply"
	"notion-config-tool/pkg/httpx/req"
	"notion-config-tool/pkg/rest"
)

type lotteryService interface {
	Generate(ctx context.Context) (lottery.Generated, error)
	Config(ctx context.Context, key string) (entity.LotteryConfig, error)
	Diff(ctx context.Context, key string) (diff.LotteryDiff, error)
	Sync(ctx context.Context, key string) (entity.SyncRecord, error)
	Wiki(ctx context.Context, upload lottery.Upload) ([]wiki.Report, error)
}

type LotteryServer struct {
	lotteryService lotteryService
}

func NewLotteryServer(lotteryService lotteryService) LotteryServer {
	return LotteryServer{lotteryService: lotteryService}
}

func (s LotteryServer) getV1LotteryConfigs(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	generated, err := s.lotteryService.Generate(ctx)
	if err != nil {
		return fmt.Errorf("lotteryService.Generate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, generated)

	return nil
}

func (s LotteryServer) getV1LotteryConfig(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	config, err := s.lotteryService.Config(ctx, r.PathValue("key"))
	if err != nil {
		return fmt.Errorf("lotteryService.Config: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, config)

	return nil
}

func (s LotteryServer) getV1LotteryDiff(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	d, err := s.lotteryService.Diff(ctx, r.PathValue("key"))
	if err != nil {
		return fmt.Errorf("lotteryService.Diff: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, d)

	return nil
}

func (s LotteryServer) postV1LotterySync(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	record, err := s.lotteryService.Sync(ctx, r.PathValue("key"))
	if err != nil {
		return fmt.Errorf("lotteryService.Sync: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSyncRecord(record))

	return nil
}

func (s LotteryServer) postV1LotteryWiki(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.WikiRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	reports, err := s.lotteryService.Wiki(ctx, newDomainUpload(request))
	if err != nil {
		return fmt.Errorf("lotteryService.Wiki: %w", err)
	}

	switch request.Format {
	case rest.WikiFormatWiki:
		reply.Text(ctx, w, "text/plain; charset=utf-8", renderReports(reports, wiki.RenderWiki))
	case rest.WikiFormatMarkdown:
		reply.Text(ctx, w, "text/markdown; charset=utf-8", renderReports(reports, wiki.RenderMarkdown))
	case rest.WikiFormatCSV:
		reply.Text(ctx, w, "text/csv; charset=utf-8", renderReports(reports, wiki.RenderCSV))
	default:
		reply.JSON(ctx, w, http.StatusOK, reports)
	}

	return nil
}
