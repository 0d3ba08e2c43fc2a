package repos_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/repos"
)

func backends(t *testing.T) map[string]repos.Backend {
	t.Helper()
	fb, err := repos.NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]repos.Backend{
		"file":   fb,
		"sqlite": repos.NewSQLiteBackend(db),
		"redis":  repos.NewRedisBackend(client, "test"),
	}
}

func TestCollectionRoundTripPerBackend(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			products := repos.NewProductRepo(b)

			empty, err := products.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, empty)
			require.Empty(t, empty)

			in := []domain.Product{
				{ID: 1, Title: "A", Code: "c1", Price: 10, Status: true, Stock: 5, Category: "x", Thumbnails: []string{}},
				{ID: 2, Title: "B", Code: "c2", Price: 0, Stock: 0, Category: "y", Thumbnails: []string{"b.png"}},
			}
			require.NoError(t, products.Save(ctx, in))

			out, err := products.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, in, out)

			// overwrite wholesale
			require.NoError(t, products.Save(ctx, in[:1]))
			out, err = products.Load(ctx)
			require.NoError(t, err)
			require.Len(t, out, 1)
		})
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			carts := repos.NewCartRepo(b)
			require.NoError(t, carts.Save(ctx, []domain.Cart{{ID: 9, Products: []domain.CartItem{{ProductID: 1, Quantity: 2}}}}))

			products, err := repos.NewProductRepo(b).Load(ctx)
			require.NoError(t, err)
			require.Empty(t, products)

			got, err := carts.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, 2, got[0].Products[0].Quantity)
		})
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	fb, err := repos.NewFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, repos.NewCartRepo(fb).Save(context.Background(), nil))
	raw, err := os.ReadFile(filepath.Join(dir, "carts.json"))
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}

func TestCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))
	fb, err := repos.NewFileBackend(dir)
	require.NoError(t, err)

	_, err = repos.NewProductRepo(fb).Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode products")
}

func TestFileWriteFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	fb, err := repos.NewFileBackend(dir)
	require.NoError(t, err)
	fb.Dir = filepath.Join(dir, "missing", "nested")

	err = repos.NewProductRepo(fb).Save(context.Background(), []domain.Product{{ID: 1}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "write products")
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	m := miniredis.RunT(t)

	cases := map[string]config.Config{
		"json":   {Storage: "json", DataDir: t.TempDir()},
		"sqlite": {Storage: "sqlite", DBDSN: ":memory:"},
		"redis":  {Storage: "redis", RedisAddr: m.Addr(), RedisPrefix: "open"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			st, err := repos.Open(ctx, cfg)
			require.NoError(t, err)
			defer st.Close()
			require.NoError(t, repos.NewProductRepo(st.Backend).Save(ctx, []domain.Product{{ID: 3}}))
		})
	}

	_, err := repos.Open(ctx, config.Config{Storage: "mongo"})
	require.Error(t, err)
}

func TestFileBackendConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	// two backends over one directory, like serve and seed running together
	first, err := repos.NewFileBackend(dir)
	require.NoError(t, err)
	second, err := repos.NewFileBackend(dir)
	require.NoError(t, err)

	small := []domain.Product{{ID: 1, Title: "small"}}
	large := make([]domain.Product, 500)
	for i := range large {
		large[i] = domain.Product{ID: int64(i + 1), Title: "large", Description: "padding padding padding"}
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, repos.NewProductRepo(first).Save(ctx, small))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, repos.NewProductRepo(second).Save(ctx, large))
		}()
	}
	wg.Wait()

	out, err := repos.NewProductRepo(first).Load(ctx)
	require.NoError(t, err)
	require.True(t, len(out) == len(small) || len(out) == len(large), "got %d products", len(out))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}
