// Command wikiexport writes the lottery probability tables of every box to
// a directory, one file per box.
//
//	go run ./cmd/wikiexport -out ./wiki -format markdown -language lang.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"notion-config-tool/internal/config"
	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/service/commodity"
	"notion-config-tool/internal/domain/service/lottery"
	"notion-config-tool/internal/domain/service/wiki"
	"notion-config-tool/internal/infrastructure/filestore"
	"notion-config-tool/internal/infrastructure/notion"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/logx"
)

type renderer struct {
	ext    string
	render func(wiki.Report) string
}

//nolint:gochecknoglobals
var renderers = map[string]renderer{
	"wiki":     {ext: ".wiki", render: wiki.RenderWiki},
	"markdown": {ext: ".md", render: wiki.RenderMarkdown},
	"csv":      {ext: ".csv", render: wiki.RenderCSV},
}

type flags struct {
	out      string
	format   string
	configs  string
	language string
	killer   string
}

func main() {
	var f flags

	flag.StringVar(&f.out, "out", "wiki", "output directory")
	flag.StringVar(&f.format, "format", "wiki", "wiki, markdown or csv")
	flag.StringVar(&f.configs, "configs", "", "optional JSON file with local lottery configs")
	flag.StringVar(&f.language, "language", "", "optional language table")
	flag.StringVar(&f.killer, "killer", "", "optional killer merchandise table")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config.Load:", err)
		os.Exit(1) //nolint:gocritic
	}

	log := logx.NewLogger(os.Stderr, cfg.App.LogLevel)
	ctx = contextx.WithLogger(ctx, log)

	written, err := run(ctx, cfg, f)
	if err != nil {
		log.Error("wiki export failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("wiki export done", "files", written, "out", f.out)
}

func run(ctx context.Context, cfg config.Config, f flags) (int, error) {
	r, ok := renderers[f.format]
	if !ok {
		return 0, domain.NewError(errcodes.InvalidExportFormat, "unknown format "+f.format)
	}

	upload, err := readUpload(f)
	if err != nil {
		return 0, err
	}

	client := notion.NewClient(
		cfg.Notion.Token,
		notion.WithBaseURL(cfg.Notion.BaseURL),
		notion.WithTimeout(cfg.Notion.Timeout),
	)

	project, err := filestore.New(cfg.Project.Root)
	if err != nil {
		return 0, fmt.Errorf("filestore.New: %w", err)
	}

	commodityService := commodity.NewService(client, project, cfg.Notion.CommodityDatabaseID)
	lotteryService := lottery.NewService(client, project, commodityService, lottery.Databases{
		Lottery:   cfg.Notion.LotteryDatabaseID,
		BoxConfig: cfg.Notion.BoxConfigDatabaseID,
	})

	reports, err := lotteryService.Wiki(ctx, upload)
	if err != nil {
		return 0, fmt.Errorf("lotteryService.Wiki: %w", err)
	}

	out, err := filestore.New(f.out)
	if err != nil {
		return 0, fmt.Errorf("filestore.New: %w", err)
	}

	for _, report := range reports {
		if err = out.Write(ctx, report.Key+r.ext, []byte(r.render(report))); err != nil {
			return 0, fmt.Errorf("out.Write: %w", err)
		}
	}

	return len(reports), nil
}

func readUpload(f flags) (lottery.Upload, error) {
	var (
		upload lottery.Upload
		err    error
	)

	if upload.Configs, err = readOptional(f.configs); err != nil {
		return lottery.Upload{}, err
	}

	if upload.Language, err = readOptional(f.language); err != nil {
		return lottery.Upload{}, err
	}

	if upload.Killer, err = readOptional(f.killer); err != nil {
		return lottery.Upload{}, err
	}

	return upload, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return data, nil
}
