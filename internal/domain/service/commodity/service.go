package commodity

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/mapper"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/internal/domain/value"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/logx"
	"notion-config-tool/pkg/metrics"
)

const (
	nameCacheTTL = 10 * time.Minute
	nameCacheKey = "commodity-names"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Source interface {
	QueryAll(ctx context.Context, databaseID string, query entity.Query) ([]property.Page, error)
}

type Store interface {
	ReadJSON(ctx context.Context, path string, v any) error
	WriteJSON(ctx context.Context, path string, v any) error
}

type Reporter interface {
	Report(ctx context.Context, record entity.SyncRecord) error
}

type Service struct {
	source     Source
	store      Store
	reporter   Reporter
	databaseID string
	names      *cache.Cache
}

func NewService(source Source, store Store, databaseID string) *Service {
	return &Service{
		source:     source,
		store:      store,
		databaseID: databaseID,
		names:      cache.New(nameCacheTTL, 2*nameCacheTTL),
	}
}

func (s *Service) WithReporter(reporter Reporter) *Service {
	s.reporter = reporter

	return s
}

// Rows fetches and maps the commodity database. Rows that fail to map are
// logged and skipped.
func (s *Service) Rows(ctx context.Context) ([]entity.CommodityRow, error) {
	pages, err := s.source.QueryAll(ctx, s.databaseID, entity.Query{})
	if err != nil {
		return nil, fmt.Errorf("query commodity database: %w", err)
	}

	rows := make([]entity.CommodityRow, 0, len(pages))

	for _, page := range pages {
		row, err := mapper.CommodityRow(page)
		if err != nil {
			logger(ctx).Warn("skip commodity row", "page", page.ID, logx.Error(err))

			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Service) Generate(ctx context.Context) (entity.CommodityCatalog, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return entity.CommodityCatalog{}, err
	}

	s.names.SetDefault(nameCacheKey, NameMap(rows))

	return Format(rows), nil
}

// NameMap returns the cached type id to name map, fetching it on a miss.
func (s *Service) NameMap(ctx context.Context) (map[string]string, error) {
	if names, ok := s.names.Get(nameCacheKey); ok {
		return names.(map[string]string), nil //nolint:forcetypeassert // only this package writes the key
	}

	return s.RefreshNames(ctx)
}

// RefreshNames refetches the name map and replaces the cached copy.
func (s *Service) RefreshNames(ctx context.Context) (map[string]string, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}

	names := NameMap(rows)
	s.names.SetDefault(nameCacheKey, names)

	logger(ctx).Debug("commodity names refreshed", "count", len(names))

	return names, nil
}

// Local reads commodity.json from the project. A missing file yields an
// empty catalog.
func (s *Service) Local(ctx context.Context) (entity.CommodityCatalog, error) {
	var catalog entity.CommodityCatalog

	err := s.store.ReadJSON(ctx, value.CommodityCatalogPath(), &catalog)
	if err != nil {
		if code, _ := domain.GetCode(err); code == errcodes.LocalFileNotFound {
			return entity.CommodityCatalog{Types: []entity.CommodityType{}}, nil
		}

		return entity.CommodityCatalog{}, fmt.Errorf("read local catalog: %w", err)
	}

	return catalog, nil
}

// Diff compares the local catalog with the one generated from Notion.
func (s *Service) Diff(ctx context.Context) (diff.CommodityDiff, error) {
	_, d, err := s.compare(ctx)

	return d, err
}

func (s *Service) compare(ctx context.Context) (entity.CommodityCatalog, diff.CommodityDiff, error) {
	remote, err := s.Generate(ctx)
	if err != nil {
		return entity.CommodityCatalog{}, diff.CommodityDiff{}, err
	}

	local, err := s.Local(ctx)
	if err != nil {
		return entity.CommodityCatalog{}, diff.CommodityDiff{}, err
	}

	return remote, diff.Commodity(local.Types, remote.Types), nil
}

// Sync writes the generated catalog over commodity.json.
func (s *Service) Sync(ctx context.Context) (entity.SyncRecord, error) {
	catalog, d, err := s.compare(ctx)
	if err != nil {
		return entity.SyncRecord{}, err
	}

	record := entity.SyncRecord{
		Kind:      entity.SyncCommodity,
		Target:    "commodity",
		Path:      value.CommodityCatalogPath(),
		Added:     len(d.Added),
		Changed:   len(d.Modified),
		Removed:   len(d.Deleted),
		CreatedAt: time.Now(),
	}

	if err := s.store.WriteJSON(ctx, record.Path, catalog); err != nil {
		metrics.SyncApplied.WithLabelValues(string(record.Kind), "error").Inc()

		return entity.SyncRecord{}, fmt.Errorf("write catalog: %w", err)
	}

	metrics.SyncApplied.WithLabelValues(string(record.Kind), "ok").Inc()

	if s.reporter != nil {
		if err := s.reporter.Report(ctx, record); err != nil {
			logger(ctx).Error("report commodity sync", logx.Error(err))
		}
	}

	return record, nil
}
