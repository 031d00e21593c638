// Package filestore reads and writes project files below a root directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var (
	ErrNotFound  = domain.NewError(errcodes.LocalFileNotFound, "file not found")
	ErrForbidden = domain.NewError(errcodes.LocalPathForbidden, "path escapes the project root")
	ErrInvalid   = domain.NewError(errcodes.LocalFileInvalid, "file is not valid JSON")

	jsonAPI = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	// Width 0 expands every array, one element per line.
	prettyOptions = &pretty.Options{Width: 0, Indent: "    "}
)

// Store maps slash separated project paths onto the file system.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("filepath.Abs: %w", err)
	}

	return &Store{root: abs}, nil
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))

	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrForbidden.Wrapf("%s", path)
	}

	return full, nil
}

func (s *Store) Read(_ context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound.Wrapf("%s", path)
		}

		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return data, nil
}

// Write replaces the file atomically, creating parent directories.
func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger(ctx).Warn("remove temp file", slog.String("path", tmp.Name()))
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("os.Chmod: %w", err)
	}

	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	logger(ctx).Info("project file written", slog.String("path", path), slog.Int("bytes", len(data)))

	return nil
}

func (s *Store) ReadJSON(ctx context.Context, path string, v any) error {
	data, err := s.Read(ctx, path)
	if err != nil {
		return err
	}

	if err := jsonAPI.Unmarshal(data, v); err != nil {
		return ErrInvalid.Wrapf("%s: %w", path, err)
	}

	return nil
}

// WriteJSON writes v with 4 space indentation and a trailing newline.
func (s *Store) WriteJSON(ctx context.Context, path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}

	return s.Write(ctx, path, data)
}

func (s *Store) ReadManifest(ctx context.Context, path string) (entity.Manifest, error) {
	data, err := s.Read(ctx, path)
	if err != nil {
		return entity.Manifest{}, err
	}

	return entity.ParseManifest(data)
}

// Encode renders v the way project files are written.
func Encode(v any) ([]byte, error) {
	data, err := jsonAPI.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonAPI.Marshal: %w", err)
	}

	return pretty.PrettyOptions(data, prettyOptions), nil
}
