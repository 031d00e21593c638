// Package servicetest holds in-memory doubles of the Notion source, the
// project file store and the sync reporter, plus Notion page builders.
package servicetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/pkg/errcodes"
)

type Query struct {
	DatabaseID string
	Query      entity.Query
}

// Source serves pages per database id and records every query.
type Source struct {
	mu      sync.Mutex
	Pages   map[string][]property.Page
	Err     error
	Queries []Query
}

func NewSource() *Source {
	return &Source{Pages: make(map[string][]property.Page)}
}

func (s *Source) QueryAll(_ context.Context, databaseID string, query entity.Query) ([]property.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Queries = append(s.Queries, Query{DatabaseID: databaseID, Query: query})

	if s.Err != nil {
		return nil, s.Err
	}

	return s.Pages[databaseID], nil
}

func (s *Source) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Queries)
}

// Store keeps JSON documents in memory keyed by project path.
type Store struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewStore() *Store {
	return &Store{Files: make(map[string][]byte)}
}

func (s *Store) ReadJSON(_ context.Context, path string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.Files[path]
	if !ok {
		return domain.NewError(errcodes.LocalFileNotFound, "file not found: "+path)
	}

	return jsoniter.Unmarshal(data, v)
}

func (s *Store) WriteJSON(_ context.Context, path string, v any) error {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Files[path] = data

	return nil
}

func (s *Store) ReadManifest(_ context.Context, path string) (entity.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.Files[path]
	if !ok {
		return entity.Manifest{}, domain.NewError(errcodes.LocalFileNotFound, "file not found: "+path)
	}

	return entity.ParseManifest(data)
}

// Put stores raw JSON text under path.
func (s *Store) Put(path, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Files[path] = []byte(raw)
}

type Reporter struct {
	mu      sync.Mutex
	Records []entity.SyncRecord
}

func (r *Reporter) Report(_ context.Context, record entity.SyncRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Records = append(r.Records, record)

	return nil
}

// Page builds a page from property payloads produced by the helpers below.
func Page(t *testing.T, id string, props map[string]string) property.Page {
	t.Helper()

	fields := make([]string, 0, len(props))
	for name, raw := range props {
		fields = append(fields, fmt.Sprintf("%q: %s", name, raw))
	}

	var p property.Page

	require.NoError(t, jsoniter.Unmarshal([]byte(fmt.Sprintf(`{"id": %q, "properties": {%s}}`, id, strings.Join(fields, ","))), &p))

	return p
}

func quote(s string) string {
	b, _ := jsoniter.Marshal(s)

	return string(b)
}

func Text(s string) string {
	if s == "" {
		return `{"type": "rich_text", "rich_text": []}`
	}

	return fmt.Sprintf(`{"type": "rich_text", "rich_text": [{"plain_text": %s}]}`, quote(s))
}

func Title(s string) string {
	return fmt.Sprintf(`{"type": "title", "title": [{"plain_text": %s}]}`, quote(s))
}

func Number(n float64) string {
	return fmt.Sprintf(`{"type": "number", "number": %v}`, n)
}

func Checkbox(b bool) string {
	return fmt.Sprintf(`{"type": "checkbox", "checkbox": %t}`, b)
}

func Select(s string) string {
	return fmt.Sprintf(`{"type": "select", "select": {"name": %s}}`, quote(s))
}

func Relation(ids ...string) string {
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = fmt.Sprintf(`{"id": %s}`, quote(id))
	}

	return fmt.Sprintf(`{"type": "relation", "relation": [%s]}`, strings.Join(refs, ","))
}

func FormulaString(s string) string {
	return fmt.Sprintf(`{"type": "formula", "formula": {"type": "string", "string": %s}}`, quote(s))
}

func RollupText(s string) string {
	return fmt.Sprintf(`{"type": "rollup", "rollup": {"type": "array", "array": [%s]}}`, Text(s))
}

func RollupNumber(n float64) string {
	return fmt.Sprintf(`{"type": "rollup", "rollup": {"type": "array", "array": [%s]}}`, Number(n))
}

func RollupCheckbox(b bool) string {
	return fmt.Sprintf(`{"type": "rollup", "rollup": {"type": "array", "array": [%s]}}`, Checkbox(b))
}
