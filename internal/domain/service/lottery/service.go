package lottery

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/mapper"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/internal/domain/service/wiki"
	"notion-config-tool/internal/domain/value"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/logx"
	"notion-config-tool/pkg/metrics"
)

const (
	boxNamesTTL = 10 * time.Minute
	boxNamesKey = "box-names"
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

// NameSource provides item names from the commodity database.
type NameSource interface {
	NameMap(ctx context.Context) (map[string]string, error)
}

type Databases struct {
	Lottery   string
	BoxConfig string
}

// GroupError describes a box that could not be transformed.
type GroupError struct {
	Box        string `json:"box"`
	ExchangeID string `json:"exchangeId"`
	Key        string `json:"key"`
	Error      string `json:"error"`

	err error
}

// Err returns the transform error of the group.
func (e GroupError) Err() error {
	return e.err
}

// Generated is the outcome of one pass over the lottery database.
type Generated struct {
	Configs map[string]entity.LotteryConfig `json:"configs"`
	Wiki    entity.WikiTable                `json:"-"`
	Errors  []GroupError                    `json:"errors"`
}

// Upload carries optional local files merged into wiki reports. Each field
// is raw JSON; empty fields are ignored.
type Upload struct {
	Configs  []byte
	Language []byte
	Killer   []byte
}

type Service struct {
	source   Source
	store    Store
	names    NameSource
	reporter Reporter
	dbs      Databases
	boxes    *cache.Cache
}

func NewService(source Source, store Store, names NameSource, dbs Databases) *Service {
	return &Service{
		source: source,
		store:  store,
		names:  names,
		dbs:    dbs,
		boxes:  cache.New(boxNamesTTL, 2*boxNamesTTL),
	}
}

func (s *Service) WithReporter(reporter Reporter) *Service {
	s.reporter = reporter

	return s
}

// Rows fetches and maps the lottery database. Rows that fail to map are
// logged and skipped.
func (s *Service) Rows(ctx context.Context) ([]entity.LotteryRow, error) {
	pages, err := s.source.QueryAll(ctx, s.dbs.Lottery, entity.Query{})
	if err != nil {
		return nil, fmt.Errorf("query lottery database: %w", err)
	}

	rows := make([]entity.LotteryRow, 0, len(pages))

	for _, page := range pages {
		row, err := mapper.LotteryRow(page)
		if err != nil {
			logger(ctx).Warn("skip lottery row", "page", page.ID, logx.Error(err))

			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Service) boxConfigs(ctx context.Context) ([]entity.BoxConfigRow, error) {
	pages, err := s.source.QueryAll(ctx, s.dbs.BoxConfig, entity.Query{})
	if err != nil {
		return nil, fmt.Errorf("query box config database: %w", err)
	}

	boxes := make([]entity.BoxConfigRow, 0, len(pages))

	for _, page := range pages {
		box, err := mapper.BoxConfigRow(page)
		if err != nil {
			logger(ctx).Warn("skip box config row", "page", page.ID, logx.Error(err))

			continue
		}

		boxes = append(boxes, box)
	}

	return boxes, nil
}

// Generate transforms every box. A box that fails is reported in Errors
// and the others are still generated.
func (s *Service) Generate(ctx context.Context) (Generated, error) {
	rows, err := s.Rows(ctx)
	if err != nil {
		return Generated{}, err
	}

	return s.generate(ctx, rows), nil
}

func (s *Service) generate(ctx context.Context, rows []entity.LotteryRow) Generated {
	out := Generated{
		Configs: make(map[string]entity.LotteryConfig),
		Wiki:    make(entity.WikiTable),
		Errors:  make([]GroupError, 0),
	}

	for _, group := range GroupRows(rows) {
		result, err := Transform(group.Rows)
		if err != nil {
			logger(ctx).Warn("skip lottery box", "box", group.BoxID, logx.Error(err))
			metrics.LotteryGroupsSkipped.WithLabelValues("error").Inc()

			exchangeID := group.Rows[0].ExchangeID
			out.Errors = append(out.Errors, GroupError{
				Box:        group.BoxID,
				ExchangeID: exchangeID,
				Key:        Key(exchangeID),
				Error:      err.Error(),
				err:        err,
			})

			continue
		}

		if result.IsNoData() {
			metrics.LotteryGroupsSkipped.WithLabelValues("empty").Inc()

			continue
		}

		if _, ok := out.Configs[result.Key]; ok {
			logger(ctx).Warn("duplicate lottery key", "key", result.Key, "box", group.BoxID)
			metrics.LotteryGroupsSkipped.WithLabelValues("duplicate").Inc()

			continue
		}

		out.Configs[result.Key] = result.Config

		if result.Wiki.Name != "" && len(result.Wiki.Gain) > 0 {
			out.Wiki[result.Key] = result.Wiki
		}
	}

	return out
}

// BoxNames returns the cached exchange id to box name map.
func (s *Service) BoxNames(ctx context.Context) (map[string]string, error) {
	if names, ok := s.boxes.Get(boxNamesKey); ok {
		return names.(map[string]string), nil //nolint:forcetypeassert // only this package writes the key
	}

	return s.RefreshBoxNames(ctx)
}

// RefreshBoxNames refetches both lottery databases and replaces the cached
// box names.
func (s *Service) RefreshBoxNames(ctx context.Context) (map[string]string, error) {
	var (
		rows  []entity.LotteryRow
		boxes []entity.BoxConfigRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = s.Rows(gctx)

		return err
	})
	g.Go(func() (err error) {
		boxes, err = s.boxConfigs(gctx)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := BoxNames(boxes, rows)
	s.boxes.SetDefault(boxNamesKey, names)

	logger(ctx).Debug("box names refreshed", "count", len(names))

	return names, nil
}

// Config returns the generated config of one canonical key. A box that
// failed to transform returns its transform error.
func (s *Service) Config(ctx context.Context, key string) (entity.LotteryConfig, error) {
	generated, err := s.Generate(ctx)
	if err != nil {
		return entity.LotteryConfig{}, err
	}

	if config, ok := generated.Configs[key]; ok {
		return config, nil
	}

	if groupErr, ok := lo.Find(generated.Errors, func(e GroupError) bool { return e.Key == key }); ok {
		return entity.LotteryConfig{}, fmt.Errorf("box %s: %w", groupErr.Box, groupErr.Err())
	}

	return entity.LotteryConfig{}, domain.ErrUnknownLotteryKey.Wrapf("key %s", key)
}

// Local reads the project copy of a config. A missing file yields an empty
// config so every remote item shows up as added.
func (s *Service) Local(ctx context.Context, key string) (entity.LotteryConfig, error) {
	var file entity.LotteryFile

	err := s.store.ReadJSON(ctx, value.LotteryPath(key), &file)
	if err != nil {
		if code, _ := domain.GetCode(err); code == errcodes.LocalFileNotFound {
			return entity.LotteryConfig{Gain: []entity.LotteryGainItem{}}, nil
		}

		return entity.LotteryConfig{}, fmt.Errorf("read local lottery %s: %w", key, err)
	}

	config, ok := file[key]
	if !ok {
		return entity.LotteryConfig{Gain: []entity.LotteryGainItem{}}, nil
	}

	return config, nil
}

func (s *Service) Diff(ctx context.Context, key string) (diff.LotteryDiff, error) {
	_, d, err := s.compare(ctx, key)

	return d, err
}

func (s *Service) compare(ctx context.Context, key string) (entity.LotteryConfig, diff.LotteryDiff, error) {
	remote, err := s.Config(ctx, key)
	if err != nil {
		return entity.LotteryConfig{}, diff.LotteryDiff{}, err
	}

	local, err := s.Local(ctx, key)
	if err != nil {
		return entity.LotteryConfig{}, diff.LotteryDiff{}, err
	}

	return remote, diff.Lottery(local, remote), nil
}

// Sync writes the generated config of key into the project.
func (s *Service) Sync(ctx context.Context, key string) (entity.SyncRecord, error) {
	remote, d, err := s.compare(ctx, key)
	if err != nil {
		return entity.SyncRecord{}, err
	}

	record := entity.SyncRecord{
		Kind:      entity.SyncLottery,
		Target:    key,
		Path:      value.LotteryPath(key),
		Added:     len(d.Added),
		Removed:   len(d.Deleted),
		CreatedAt: time.Now(),
	}

	if err := s.store.WriteJSON(ctx, record.Path, entity.LotteryFile{key: remote}); err != nil {
		metrics.SyncApplied.WithLabelValues(string(record.Kind), "error").Inc()

		return entity.SyncRecord{}, fmt.Errorf("write lottery %s: %w", key, err)
	}

	metrics.SyncApplied.WithLabelValues(string(record.Kind), "ok").Inc()

	if s.reporter != nil {
		if err := s.reporter.Report(ctx, record); err != nil {
			logger(ctx).Error("report lottery sync", logx.Error(err))
		}
	}

	return record, nil
}

// Wiki builds probability reports for every displayed box. Uploaded local
// configs override generated boxes with the same key. Item names come from
// the commodity database, then the uploaded language table, then the
// killer merchandise table.
func (s *Service) Wiki(ctx context.Context, upload Upload) ([]wiki.Report, error) {
	var (
		generated Generated
		names     map[string]string
		boxNames  map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		generated, err = s.Generate(gctx)

		return err
	})
	g.Go(func() (err error) {
		names, err = s.names.NameMap(gctx)

		return err
	})
	g.Go(func() (err error) {
		boxNames, err = s.BoxNames(gctx)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := generated.Wiki
	if len(upload.Configs) > 0 {
		for key, result := range wiki.ParseLocalConfigs(upload.Configs) {
			table[key] = result
		}
	}

	lang := parseOptional(upload.Language, wiki.ParseLanguage)
	merged := wiki.MergeNameMaps(names, lang, parseOptional(upload.Killer, wiki.ParseKillerMerchandise))

	reports := wiki.BuildReports(table, merged, boxNames, lang)
	now := time.Now()

	for i := range reports {
		reports[i].GeneratedAt = now

		if !reports[i].Valid {
			logger(ctx).Warn("box chances out of tolerance", "key", reports[i].Key, "sum", reports[i].Sum)
		}
	}

	return reports, nil
}

func parseOptional(data []byte, parse func([]byte) map[string]string) map[string]string {
	if len(data) == 0 {
		return map[string]string{}
	}

	return parse(data)
}
