package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/file"
)

func TestBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "pharmacy.json")

	b, err := file.New(path)
	require.NoError(t, err)

	_, err = b.Get(ctx, "pharmacy_products")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, b.PutMulti(ctx, map[string][]byte{
		"pharmacy_products":  []byte(`[{"id":"1"}]`),
		"pharmacy_customers": []byte(`[]`),
	}))
	require.NoError(t, b.Close())

	reopened, err := file.New(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "pharmacy_products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, reopened.Delete(ctx, "pharmacy_customers"))

	_, err = reopened.Get(ctx, "pharmacy_customers")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBackend_RejectsInvalidJSONAtomically(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pharmacy.json")

	b, err := file.New(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, "a", []byte(`1`)))

	err = b.PutMulti(ctx, map[string][]byte{
		"a": []byte(`2`),
		"b": []byte(`{broken`),
	})
	require.Error(t, err)

	got, err := b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `1`, string(got))

	_, err = b.Get(ctx, "b")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNew_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pharmacy.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := file.New(path)
	assert.Error(t, err)
}
