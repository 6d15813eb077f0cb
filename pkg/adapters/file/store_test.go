package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/deriv/pkg/adapters/file"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDerivationStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "+2x^1", &domain.Derivation{Key: "+2x^1", Text: "+2"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"+2x^1"}, keys)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "does", "not", "exist"))

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = store.Load(context.Background(), "+1")
	assert.ErrorIs(t, err, domain.ErrDerivationNotFound)
}

func TestFileStore_EmptyKey(t *testing.T) {
	store := file.New(t.TempDir())
	assert.Error(t, store.Save(context.Background(), "", &domain.Derivation{}))
	_, err := store.Load(context.Background(), "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(context.Background(), ""))
}
