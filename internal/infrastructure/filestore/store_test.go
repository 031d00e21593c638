package filestore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/infrastructure/filestore"
	"notion-config-tool/pkg/errcodes"
)

func newStore(t *testing.T) *filestore.Store {
	t.Helper()

	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	return store
}

func TestReadNotFound(t *testing.T) {
	rq := require.New(t)

	_, err := newStore(t).Read(context.Background(), "a/b.json")
	rq.True(errors.Is(err, filestore.ErrNotFound))

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.LocalFileNotFound, code)
}

func TestWriteCreatesDirectories(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := newStore(t)

	rq.NoError(store.Write(ctx, "deep/dir/file.txt", []byte("one")))
	rq.NoError(store.Write(ctx, "deep/dir/file.txt", []byte("two")))

	data, err := store.Read(ctx, "deep/dir/file.txt")
	rq.NoError(err)
	rq.Equal("two", string(data))

	entries, err := os.ReadDir(filepath.Join(store.Root(), "deep", "dir"))
	rq.NoError(err)
	rq.Len(entries, 1)
}

func TestPathConfinement(t *testing.T) {
	testCases := []struct {
		name string
		path string
	}{
		{name: "parent", path: "../outside.json"},
		{name: "nested parent", path: "a/../../outside.json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			err := newStore(t).Write(context.Background(), tc.path, []byte("x"))
			rq.True(errors.Is(err, filestore.ErrForbidden))
		})
	}
}

func TestWriteJSONIndentsWithFourSpaces(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := newStore(t)

	catalog := entity.CommodityCatalog{
		Comment: "c",
		Types:   []entity.CommodityType{{TypeID: "pet", Generic: entity.CommodityGeneric{TranslateKey: "k<&>"}}},
	}
	rq.NoError(store.WriteJSON(ctx, "commodity.json", catalog))

	data, err := store.Read(ctx, "commodity.json")
	rq.NoError(err)
	rq.Contains(string(data), "\n    \"_comment\": \"c\"")
	rq.Contains(string(data), "k<&>")
	rq.Equal(byte('\n'), data[len(data)-1])

	var back entity.CommodityCatalog
	rq.NoError(store.ReadJSON(ctx, "commodity.json", &back))
	rq.Equal(catalog, back)
}

func TestReadJSONInvalid(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := newStore(t)
	rq.NoError(store.Write(ctx, "bad.json", []byte("{")))

	var v map[string]any

	err := store.ReadJSON(ctx, "bad.json", &v)
	rq.True(errors.Is(err, filestore.ErrInvalid))
}

func TestReadManifest(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := newStore(t)
	rq.NoError(store.Write(ctx, "commodity.json", []byte(`{"types":[{"typeId":"pet"},{"typeId":"music"}]}`)))

	manifest, err := store.ReadManifest(ctx, "commodity.json")
	rq.NoError(err)
	rq.True(manifest.Has("music"))

	_, err = store.ReadManifest(ctx, "missing.json")
	rq.True(errors.Is(err, filestore.ErrNotFound))
}

func TestEncodeExpandsArrays(t *testing.T) {
	rq := require.New(t)

	data, err := filestore.Encode(map[string]any{
		"gain":  []any{map[string]any{"merchandises": []string{"ornament.x:86400"}, "weight": 1}},
		"empty": []string{},
	})
	rq.NoError(err)
	rq.Equal(`{
    "empty": [],
    "gain": [
        {
            "merchandises": [
                "ornament.x:86400"
            ],
            "weight": 1
        }
    ]
}
`, string(data))
}
