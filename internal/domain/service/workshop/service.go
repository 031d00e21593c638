package workshop

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

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

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Source interface {
	QueryAll(ctx context.Context, databaseID string, query entity.Query) ([]property.Page, error)
}

type Store interface {
	ReadJSON(ctx context.Context, path string, v any) error
	WriteJSON(ctx context.Context, path string, v any) error
	ReadManifest(ctx context.Context, path string) (entity.Manifest, error)
}

type Reporter interface {
	Report(ctx context.Context, record entity.SyncRecord) error
}

// SyncRequest selects what a sync writes. Merge keeps local-only items and
// takes every remote item; otherwise only the changes of Keys are applied,
// all of them when Keys is empty.
type SyncRequest struct {
	Keys  []string
	Merge bool
}

type Service struct {
	source     Source
	store      Store
	reporter   Reporter
	registry   *Registry
	databaseID string
}

func NewService(source Source, store Store, registry *Registry, databaseID string) *Service {
	return &Service{
		source:     source,
		store:      store,
		registry:   registry,
		databaseID: databaseID,
	}
}

func (s *Service) WithReporter(reporter Reporter) *Service {
	s.reporter = reporter

	return s
}

// Types lists the known types. A type exists when commodity.json names it.
func (s *Service) Types(ctx context.Context) ([]entity.WorkshopType, error) {
	manifest, err := s.store.ReadManifest(ctx, value.CommodityCatalogPath())
	if err != nil {
		if code, _ := domain.GetCode(err); code != errcodes.LocalFileNotFound {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
	}

	return lo.Map(s.registry.TypeIDs(), func(id string, _ int) entity.WorkshopType {
		return entity.WorkshopType{TypeID: id, Exists: manifest.Has(id)}
	}), nil
}

func (s *Service) rows(ctx context.Context, def TypeDef) ([]entity.WorkshopRow, error) {
	pages, err := s.source.QueryAll(ctx, s.databaseID, def.Query())
	if err != nil {
		return nil, fmt.Errorf("query workshop database: %w", err)
	}

	rows := make([]entity.WorkshopRow, 0, len(pages))

	for _, page := range pages {
		row, err := mapper.WorkshopRow(page)
		if err != nil {
			logger(ctx).Warn("skip workshop row", "type", def.TypeID, "page", page.ID, logx.Error(err))

			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// Generate builds the workshop file of a type from Notion.
func (s *Service) Generate(ctx context.Context, typeID string) (entity.WorkshopConfig, error) {
	def, ok := s.registry.Lookup(typeID)
	if !ok {
		return entity.WorkshopConfig{}, domain.ErrUnknownType.Wrapf("type %s", typeID)
	}

	rows, err := s.rows(ctx, def)
	if err != nil {
		return entity.WorkshopConfig{}, err
	}

	config, err := Format(typeID, rows)
	if err != nil {
		return entity.WorkshopConfig{}, fmt.Errorf("format %s: %w", typeID, err)
	}

	return config, nil
}

// ToFile converts a generated config into its generic JSON form.
func ToFile(config entity.WorkshopConfig) (entity.WorkshopFile, error) {
	data, err := jsoniter.Marshal(config)
	if err != nil {
		return entity.WorkshopFile{}, fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	var file entity.WorkshopFile
	if err := jsoniter.Unmarshal(data, &file); err != nil {
		return entity.WorkshopFile{}, fmt.Errorf("jsoniter.Unmarshal: %w", err)
	}

	return file, nil
}

// Local reads the project file of a type. A missing file yields an empty
// document.
func (s *Service) Local(ctx context.Context, typeID string) (entity.WorkshopFile, error) {
	var file entity.WorkshopFile

	err := s.store.ReadJSON(ctx, value.WorkshopPath(typeID), &file)
	if err != nil {
		if code, _ := domain.GetCode(err); code == errcodes.LocalFileNotFound {
			return entity.WorkshopFile{TypeID: typeID, Items: map[string]any{}}, nil
		}

		return entity.WorkshopFile{}, fmt.Errorf("read local %s: %w", typeID, err)
	}

	return file, nil
}

func (s *Service) pair(ctx context.Context, typeID string) (entity.WorkshopFile, entity.WorkshopFile, error) {
	config, err := s.Generate(ctx, typeID)
	if err != nil {
		return entity.WorkshopFile{}, entity.WorkshopFile{}, err
	}

	remote, err := ToFile(config)
	if err != nil {
		return entity.WorkshopFile{}, entity.WorkshopFile{}, err
	}

	local, err := s.Local(ctx, typeID)
	if err != nil {
		return entity.WorkshopFile{}, entity.WorkshopFile{}, err
	}

	return local, remote, nil
}

// Diff lists per item changes between the project file and Notion.
func (s *Service) Diff(ctx context.Context, typeID string) ([]diff.WorkshopChange, error) {
	local, remote, err := s.pair(ctx, typeID)
	if err != nil {
		return nil, err
	}

	return diff.Workshop(local, remote), nil
}

// Sync writes the selected changes of a type into the project.
func (s *Service) Sync(ctx context.Context, typeID string, req SyncRequest) (entity.SyncRecord, error) {
	local, remote, err := s.pair(ctx, typeID)
	if err != nil {
		return entity.SyncRecord{}, err
	}

	var (
		out     entity.WorkshopFile
		applied []diff.WorkshopChange
	)

	if req.Merge {
		out = diff.MergeWorkshop(local, remote)
		applied = lo.Filter(diff.Workshop(local, remote), func(c diff.WorkshopChange, _ int) bool {
			return c.Mode != diff.ChangeRemove
		})
	} else {
		out, applied = diff.ApplyWorkshop(local, remote, req.Keys)
	}

	added, changed, removed := diff.Count(applied)
	record := entity.SyncRecord{
		Kind:      entity.SyncWorkshop,
		Target:    typeID,
		Path:      value.WorkshopPath(typeID),
		Added:     added,
		Changed:   changed,
		Removed:   removed,
		CreatedAt: time.Now(),
	}

	if err := s.store.WriteJSON(ctx, record.Path, out); err != nil {
		metrics.SyncApplied.WithLabelValues(string(record.Kind), "error").Inc()

		return entity.SyncRecord{}, fmt.Errorf("write %s: %w", typeID, err)
	}

	metrics.SyncApplied.WithLabelValues(string(record.Kind), "ok").Inc()

	if s.reporter != nil {
		if err := s.reporter.Report(ctx, record); err != nil {
			logger(ctx).Error("report workshop sync", logx.Error(err))
		}
	}

	return record, nil
}
