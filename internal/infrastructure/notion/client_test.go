package notion_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/internal/infrastructure/notion"
	"notion-config-tool/pkg/errcodes"
)

const token = "secret_token"

func page(id string) string {
	return fmt.Sprintf(`{"object":"page","id":%q,"properties":{"数量":{"type":"number","number":1}}}`, id)
}

func TestQueryAllPaginates(t *testing.T) {
	rq := require.New(t)

	var bodies []map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal(http.MethodPost, r.Method)
		rq.Equal("/databases/db1/query", r.URL.Path)
		rq.Equal(notion.APIVersion, r.Header.Get("Notion-Version"))
		rq.Equal("Bearer "+token, r.Header.Get("Authorization"))
		rq.Equal("application/json", r.Header.Get("Content-Type"))

		data, err := io.ReadAll(r.Body)
		rq.NoError(err)

		var body map[string]any
		rq.NoError(jsoniter.Unmarshal(data, &body))
		bodies = append(bodies, body)

		if body["start_cursor"] == nil {
			fmt.Fprintf(w, `{"results":[%s,%s],"has_more":true,"next_cursor":"c2"}`, page("p1"), page("p2"))

			return
		}

		fmt.Fprintf(w, `{"results":[%s],"has_more":false,"next_cursor":null}`, page("p3"))
	}))
	defer server.Close()

	client := notion.NewClient(token, notion.WithBaseURL(server.URL))

	query := entity.Query{
		Filter: map[string]any{"property": "类型", "relation": map[string]any{"contains": "x"}},
		Sorts:  []entity.Sort{{Property: "idItem", Direction: entity.Ascending}},
	}

	pages, err := client.QueryAll(context.Background(), "db1", query)
	rq.NoError(err)
	rq.Len(pages, 3)
	rq.Equal([]string{"p1", "p2", "p3"}, []string{pages[0].ID, pages[1].ID, pages[2].ID})
	rq.Equal(property.NumberValue(1), property.Normalize(pages[2].Get("数量")))

	rq.Len(bodies, 2)
	rq.Equal("c2", bodies[1]["start_cursor"])
	rq.InDelta(100.0, bodies[0]["page_size"], 1e-9)
	rq.Equal(map[string]any{"property": "类型", "relation": map[string]any{"contains": "x"}}, bodies[0]["filter"])
	rq.Equal([]any{map[string]any{"property": "idItem", "direction": "ascending"}}, bodies[0]["sorts"])
}

func TestQueryAllErrors(t *testing.T) {
	testCases := []struct {
		name    string
		token   string
		status  int
		code    string
		message string
	}{
		{name: "server error", token: token, status: http.StatusBadGateway, code: string(errcodes.NotionUnavailable), message: "Notion API Error 502: upstream"},
		{name: "forbidden", token: token, status: http.StatusForbidden, code: string(errcodes.NotionUnauthorized), message: "Notion API Error 403: upstream"},
		{name: "unauthorized", token: token, status: http.StatusUnauthorized, code: string(errcodes.NotionUnauthorized), message: "rejected"},
		{name: "missing token", token: "", status: http.StatusOK, code: string(errcodes.NotionTokenMissing), message: "not configured"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("upstream"))
			}))
			defer server.Close()

			_, err := notion.NewClient(tc.token, notion.WithBaseURL(server.URL)).
				QueryAll(context.Background(), "db", entity.Query{})
			rq.Error(err)
			rq.ErrorContains(err, tc.message)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, string(code))
		})
	}
}

type querier struct {
	calls int
	pages []property.Page
}

func (q *querier) QueryAll(context.Context, string, entity.Query) ([]property.Page, error) {
	q.calls++

	return q.pages, nil
}

type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  time.Duration
}

func (m *memoryKV) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(string(data), nil)
}

func (m *memoryKV) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value.([]byte)
	m.ttl = ttl

	return redis.NewStatusResult("OK", nil)
}

func TestCache(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var p property.Page
	rq.NoError(p.UnmarshalJSON([]byte(page("p1"))))

	next := &querier{pages: []property.Page{p}}
	kv := &memoryKV{data: map[string][]byte{}}
	cache := notion.NewCache(next, kv, time.Minute)

	query := entity.Query{Filter: map[string]any{"property": "a"}}

	for range 2 {
		pages, err := cache.QueryAll(ctx, "db", query)
		rq.NoError(err)
		rq.Len(pages, 1)
		rq.Equal("p1", pages[0].ID)
		rq.Equal(property.NumberValue(1), property.Normalize(pages[0].Get("数量")))
	}

	rq.Equal(1, next.calls)
	rq.Equal(time.Minute, kv.ttl)

	_, err := cache.QueryAll(ctx, "db", entity.Query{Filter: map[string]any{"property": "b"}})
	rq.NoError(err)
	rq.Equal(2, next.calls)
	rq.Len(kv.data, 2)
}
