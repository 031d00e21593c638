package server_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/service/lottery"
	"notion-config-tool/internal/domain/service/wiki"
	"notion-config-tool/internal/domain/service/workshop"
	"notion-config-tool/internal/server"
	"notion-config-tool/internal/worker"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/middlewarex"
	"notion-config-tool/pkg/rest"
	"notion-config-tool/pkg/tests"
)

type lotteryFake struct {
	configs map[string]entity.LotteryConfig
	reports []wiki.Report
	upload  lottery.Upload
}

func (f *lotteryFake) Generate(context.Context) (lottery.Generated, error) {
	return lottery.Generated{Configs: f.configs}, nil
}

func (f *lotteryFake) Config(_ context.Context, key string) (entity.LotteryConfig, error) {
	config, ok := f.configs[key]
	if !ok {
		return entity.LotteryConfig{}, domain.ErrUnknownLotteryKey.Wrapf("key %q", key)
	}

	return config, nil
}

func (f *lotteryFake) Diff(_ context.Context, key string) (diff.LotteryDiff, error) {
	if _, ok := f.configs[key]; !ok {
		return diff.LotteryDiff{}, domain.ErrUnknownLotteryKey.Wrapf("key %q", key)
	}

	return diff.LotteryDiff{Equal: true}, nil
}

func (f *lotteryFake) Sync(_ context.Context, key string) (entity.SyncRecord, error) {
	if key == "exc_lottery_box_broken" {
		return entity.SyncRecord{}, fmt.Errorf("box b2: %w", domain.ErrPityMisconfigured.Wrapf("0 pity rows"))
	}

	return entity.SyncRecord{Kind: entity.SyncLottery, Target: key, Added: 1, CreatedAt: time.Unix(0, 0)}, nil
}

func (f *lotteryFake) Wiki(_ context.Context, upload lottery.Upload) ([]wiki.Report, error) {
	f.upload = upload

	return f.reports, nil
}

type commodityFake struct{}

func (commodityFake) Generate(context.Context) (entity.CommodityCatalog, error) {
	return entity.CommodityCatalog{Types: []entity.CommodityType{{TypeID: "pet"}}}, nil
}

func (commodityFake) Diff(context.Context) (diff.CommodityDiff, error) {
	return diff.CommodityDiff{Added: []entity.CommodityType{{TypeID: "pet"}}}, nil
}

func (commodityFake) Sync(context.Context) (entity.SyncRecord, error) {
	return entity.SyncRecord{}, domain.NewError(errcodes.NotionUnavailable, "Notion API Error 502: bad gateway")
}

type workshopFake struct {
	request workshop.SyncRequest
}

func (f *workshopFake) Types(context.Context) ([]entity.WorkshopType, error) {
	return []entity.WorkshopType{{TypeID: "pet", Exists: true}, {TypeID: "weapon"}}, nil
}

func (f *workshopFake) Generate(_ context.Context, typeID string) (entity.WorkshopConfig, error) {
	return entity.WorkshopConfig{TypeID: typeID}, nil
}

func (f *workshopFake) Diff(context.Context, string) ([]diff.WorkshopChange, error) {
	return []diff.WorkshopChange{{Key: "pet.cat", Mode: diff.ChangeAdd, To: map[string]any{"id": "pet.cat"}}}, nil
}

func (f *workshopFake) Sync(_ context.Context, typeID string, request workshop.SyncRequest) (entity.SyncRecord, error) {
	f.request = request

	return entity.SyncRecord{Kind: entity.SyncWorkshop, Target: typeID, Added: len(request.Keys)}, nil
}

type enqueuerFake struct {
	payload worker.SyncPayload
}

func (f *enqueuerFake) EnqueueSync(_ context.Context, payload worker.SyncPayload) (string, error) {
	f.payload = payload

	return "task-1", nil
}

type historyFake struct {
	kind  entity.SyncKind
	limit int
}

func (f *historyFake) List(_ context.Context, kind entity.SyncKind, limit, _ int) ([]entity.SyncRecord, error) {
	f.kind = kind
	f.limit = limit

	return []entity.SyncRecord{{ID: 2, Kind: kind, Target: "pet"}}, nil
}

type env struct {
	client   tests.APIClient
	baseURL  string
	lottery  *lotteryFake
	workshop *workshopFake
	enqueuer *enqueuerFake
	history  *historyFake
}

func newEnv(t *testing.T) env {
	t.Helper()

	e := env{
		lottery: &lotteryFake{
			configs: map[string]entity.LotteryConfig{"exc_lottery_box_gold": {}},
			reports: []wiki.Report{{Key: "exc_lottery_box_gold", Name: "黄金宝箱", Sum: 100, Valid: true}},
		},
		workshop: &workshopFake{},
		enqueuer: &enqueuerFake{},
		history:  &historyFake{},
	}

	s := server.NewServer(
		server.NewLotteryServer(e.lottery),
		server.NewCommodityServer(commodityFake{}),
		server.NewWorkshopServer(e.workshop),
		server.NewJobServer(e.enqueuer, e.history),
	)

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.UserID, middlewarex.Recovery)
	s.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	e.baseURL = ts.URL
	e.client = tests.NewAPIClient(ts.URL, ts.Client())

	return e
}

func TestLotteryRoutes(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t)

	var generated lottery.Generated

	resp, err := e.client.Get(ctx, "/v1/lottery/configs", nil, &generated, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Contains(generated.Configs, "exc_lottery_box_gold")

	var d diff.LotteryDiff

	resp, err = e.client.Get(ctx, "/v1/lottery/configs/exc_lottery_box_gold/diff", nil, &d, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(d.Equal)

	var record rest.SyncRecord

	resp, err = e.client.Post(ctx, "/v1/lottery/configs/exc_lottery_box_gold/sync", nil, nil, &record, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("exc_lottery_box_gold", record.Target)
	rq.Equal(1, record.Added)
}

func TestErrorMapping(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{
			name:   "unknown lottery key",
			method: http.MethodGet,
			path:   "/v1/lottery/configs/missing",
			status: http.StatusNotFound,
			code:   errcodes.UnknownLotteryKey.String(),
		},
		{
			name:   "unknown key diff",
			method: http.MethodGet,
			path:   "/v1/lottery/configs/missing/diff",
			status: http.StatusNotFound,
			code:   errcodes.UnknownLotteryKey.String(),
		},
		{
			name:   "misconfigured pity",
			method: http.MethodPost,
			path:   "/v1/lottery/configs/exc_lottery_box_broken/sync",
			status: http.StatusUnprocessableEntity,
			code:   errcodes.PityMisconfigured.String(),
		},
		{
			name:   "notion unavailable",
			method: http.MethodPost,
			path:   "/v1/commodity/sync",
			status: http.StatusBadGateway,
			code:   errcodes.NotionUnavailable.String(),
		},
		{
			name:   "invalid wiki format",
			method: http.MethodPost,
			path:   "/v1/lottery/wiki",
			body:   `{"format":"pdf"}`,
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name:   "job without kind",
			method: http.MethodPost,
			path:   "/v1/jobs/sync",
			body:   `{"target":"pet"}`,
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name:   "bad history limit",
			method: http.MethodGet,
			path:   "/v1/history?limit=-1",
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			ctx := context.Background()
			e := newEnv(t)

			var (
				apiErr rest.Error
				resp   *http.Response
				err    error
			)

			if tc.method == http.MethodGet {
				resp, err = e.client.Get(ctx, tc.path, nil, nil, &apiErr)
			} else {
				resp, err = e.client.PostJSON(ctx, tc.path, nil, tc.body, nil, &apiErr)
			}

			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)
			rq.Equal(tc.code, string(apiErr.Code))
			rq.NotEmpty(apiErr.SupportID)
		})
	}
}

func TestCommodityRoutes(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t)

	var catalog entity.CommodityCatalog

	_, err := e.client.Get(ctx, "/v1/commodity", nil, &catalog, nil)
	rq.NoError(err)
	rq.Len(catalog.Types, 1)

	var d rest.CommodityDiff

	_, err = e.client.Get(ctx, "/v1/commodity/diff", nil, &d, nil)
	rq.NoError(err)
	rq.False(d.IsEqual)
	rq.Len(d.AddedItems, 1)
	rq.Empty(d.DeletedItems)
}

func TestWorkshopRoutes(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t)

	var types []entity.WorkshopType

	_, err := e.client.Get(ctx, "/v1/workshop/types", nil, &types, nil)
	rq.NoError(err)
	rq.Len(types, 2)

	var config entity.WorkshopConfig

	_, err = e.client.Get(ctx, "/v1/workshop/pet", nil, &config, nil)
	rq.NoError(err)
	rq.Equal("pet", config.TypeID)

	var d rest.WorkshopDiff

	_, err = e.client.Get(ctx, "/v1/workshop/pet/diff", nil, &d, nil)
	rq.NoError(err)
	rq.Equal("pet", d.TypeID)
	rq.Equal([]rest.WorkshopChange{{Key: "pet.cat", Mode: "add", To: map[string]any{"id": "pet.cat"}}}, d.Changes)

	var record rest.SyncRecord

	_, err = e.client.PostJSON(ctx, "/v1/workshop/pet/sync", nil, `{"keys":["pet.cat","pet.dog"]}`, &record, nil)
	rq.NoError(err)
	rq.Equal(2, record.Added)
	rq.Equal(workshop.SyncRequest{Keys: []string{"pet.cat", "pet.dog"}}, e.workshop.request)
}

func TestWikiFormats(t *testing.T) {
	testCases := []struct {
		name        string
		format      string
		contentType string
		contains    string
	}{
		{name: "wiki", format: "wiki", contentType: "text/plain", contains: "黄金宝箱"},
		{name: "markdown", format: "markdown", contentType: "text/markdown", contains: "黄金宝箱"},
		{name: "csv", format: "csv", contentType: "text/csv", contains: "奖励内容,奖励数量,概率"},
		{name: "json by default", format: "", contentType: "application/json", contains: `"key":"exc_lottery_box_gold"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			e := newEnv(t)

			body := `{"format":"` + tc.format + `","language":{"a":"b"}}`

			resp, err := http.Post(e.baseURL+"/v1/lottery/wiki", "application/json", strings.NewReader(body)) //nolint:noctx
			rq.NoError(err)

			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			rq.NoError(err)
			rq.Equal(http.StatusOK, resp.StatusCode)
			rq.Contains(resp.Header.Get("Content-Type"), tc.contentType)
			rq.Contains(string(data), tc.contains)
			rq.JSONEq(`{"a":"b"}`, string(e.lottery.upload.Language))
		})
	}
}

func TestJobRoutes(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	e := newEnv(t)

	var job rest.SyncJob

	headers := http.Header{"X-User-Id": []string{"alice"}}

	resp, err := e.client.PostJSON(ctx, "/v1/jobs/sync", headers, `{"kind":"workshop","target":"pet","merge":true}`, &job, nil)
	rq.NoError(err)
	rq.Equal(http.StatusAccepted, resp.StatusCode)
	rq.Equal("task-1", job.TaskID)
	rq.Equal(worker.SyncPayload{
		Kind: entity.SyncWorkshop, Target: "pet", Merge: true, TriggeredBy: "alice",
	}, e.enqueuer.payload)

	resp, err = e.client.PostJSON(ctx, "/v1/jobs/sync", nil, `{"kind":"commodity"}`, &job, nil)
	rq.NoError(err)
	rq.Equal(http.StatusAccepted, resp.StatusCode)
	rq.Empty(e.enqueuer.payload.TriggeredBy)

	var records []rest.SyncRecord

	_, err = e.client.Get(ctx, "/v1/history?kind=workshop&limit=1000", nil, &records, nil)
	rq.NoError(err)
	rq.Len(records, 1)
	rq.Equal(entity.SyncWorkshop, e.history.kind)
	rq.Equal(500, e.history.limit)
}
