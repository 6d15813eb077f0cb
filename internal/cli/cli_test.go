package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/deriv/internal/config"
	"github.com/aretw0/deriv/internal/logging"
	"github.com/aretw0/deriv/pkg/adapters/file"
	"github.com/aretw0/deriv/pkg/adapters/memory"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T, driver string) *Env {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Driver = driver
	cfg.Store.Path = t.TempDir()
	return &Env{Config: cfg, Logger: logging.NewNop()}
}

func TestNewStore(t *testing.T) {
	store, closeStore, err := NewStore(config.StoreConfig{Driver: config.DriverNone})
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeStore())

	store, _, err = NewStore(config.StoreConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	store, _, err = NewStore(config.StoreConfig{Driver: config.DriverFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, store)

	_, _, err = NewStore(config.StoreConfig{Driver: "postgres"})
	assert.Error(t, err)
}

func TestRun_Headless(t *testing.T) {
	env := testEnv(t, config.DriverNone)
	var out bytes.Buffer

	err := Run(context.Background(), env, RunOptions{
		Headless: true,
		Input:    strings.NewReader("3x^2 + 2x^1 + 1\n"),
		Output:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "+6x^1 +2\n", out.String())
}

func TestRun_FormatFromConfig(t *testing.T) {
	env := testEnv(t, config.DriverNone)
	env.Config.Format = "json"
	var out bytes.Buffer

	err := Run(context.Background(), env, RunOptions{
		Input:  strings.NewReader("4x^3\n"),
		Output: &out,
	})
	require.NoError(t, err)

	var d domain.Derivation
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.Equal(t, "+12x^2", d.Text)
}

func TestRun_UnknownFormat(t *testing.T) {
	env := testEnv(t, config.DriverNone)
	err := Run(context.Background(), env, RunOptions{Format: "xml", Input: strings.NewReader(""), Output: io.Discard})
	assert.Error(t, err)
}

func TestRun_DebugHooks(t *testing.T) {
	var logs bytes.Buffer
	env := testEnv(t, config.DriverNone)
	env.Debug = true
	env.Logger = logging.NewWithWriter(&logs, -4)

	err := Run(context.Background(), env, RunOptions{
		Headless: true,
		Input:    strings.NewReader("2*x\n"),
		Output:   io.Discard,
	})
	require.Error(t, err)
	assert.Contains(t, logs.String(), "kind=invalid_character")
}

func TestCache_Lifecycle(t *testing.T) {
	env := testEnv(t, config.DriverFile)
	ctx := context.Background()

	for _, expr := range []string{"3x^2\n", "1x^1 + 5\n"} {
		err := Run(ctx, env, RunOptions{Headless: true, Input: strings.NewReader(expr), Output: io.Discard})
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, CacheList(ctx, env, &out))
	assert.Equal(t, "+1x^1 +5\n+3x^2\n", out.String())

	out.Reset()
	require.NoError(t, CacheInspect(ctx, env, " 3x^2 ", false, &out))
	assert.Contains(t, out.String(), "+6x^1")
	assert.Contains(t, out.String(), "+3x^2")

	out.Reset()
	require.NoError(t, CacheInspect(ctx, env, "3x^2", true, &out))
	var d domain.Derivation
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.Equal(t, "+6x^1", d.Text)

	out.Reset()
	require.NoError(t, CacheRemove(ctx, env, []string{"3x^2"}, false, &out))
	assert.Contains(t, out.String(), "Removed 1 derivation(s).")

	err := CacheInspect(ctx, env, "3x^2", false, io.Discard)
	assert.ErrorIs(t, err, domain.ErrDerivationNotFound)

	require.NoError(t, CacheRemove(ctx, env, nil, true, io.Discard))
	out.Reset()
	require.NoError(t, CacheList(ctx, env, &out))
	assert.Empty(t, out.String())
}

func TestCache_NoStore(t *testing.T) {
	env := testEnv(t, config.DriverNone)
	assert.ErrorIs(t, CacheList(context.Background(), env, io.Discard), ErrNoStore)
}

func TestCacheKey_SyntaxError(t *testing.T) {
	_, err := CacheKey("2*x")
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestNewHTTPHandler(t *testing.T) {
	handler, closeStore, err := NewHTTPHandler(testEnv(t, config.DriverMemory))
	require.NoError(t, err)
	defer closeStore()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, HandleExecutionError(nil))
	assert.NoError(t, HandleExecutionError(context.Canceled))
	assert.NoError(t, HandleExecutionError(io.EOF))

	boom := errors.New("boom")
	assert.Equal(t, boom, HandleExecutionError(boom))
}

func TestEnv_Store(t *testing.T) {
	store, closeStore, err := testEnv(t, config.DriverNone).Store()
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeStore())

	store, _, err = testEnv(t, config.DriverFile).Store()
	require.NoError(t, err)
	require.NotNil(t, store)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "+1", &domain.Derivation{Key: "+1"}))
	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"+1"}, keys)
}
