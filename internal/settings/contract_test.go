package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepositoryContract exercises the behaviour every backend shares.
func testRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("get absent returns nil nil", func(t *testing.T) {
		r := newRepo(t)
		v, err := r.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "savedCategories", []byte(`[{"a":1}]`)))

		v, err := r.Get(ctx, "savedCategories")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"a":1}]`), v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))

		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("list and delete", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "a", []byte("1")))
		require.NoError(t, r.Set(ctx, "b", []byte("22")))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("22")}, m)

		require.NoError(t, r.Delete(ctx, "a"))
		require.NoError(t, r.Delete(ctx, "a"))
		v, err := r.Get(ctx, "a")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("clear", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()
		require.NoError(t, r.Set(ctx, "a", []byte("1")))
		require.NoError(t, r.Set(ctx, "b", []byte("2")))
		require.NoError(t, r.Clear(ctx))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}
