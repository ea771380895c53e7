package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kookboek/internal/config"
	"kookboek/internal/platform/imagestore"
	"kookboek/internal/platform/localllm"
)

func TestNewParser_Local(t *testing.T) {
	parser, closeParser, err := newParser(context.Background(), config.AIConfig{
		Provider:   config.ProviderLocal,
		LocalURL:   "http://localhost:1234/v1/chat/completions",
		LocalModel: "test-model",
	})
	require.NoError(t, err)
	defer closeParser()

	assert.IsType(t, &localllm.Client{}, parser)
}

func TestNewImageStore_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, servedDir, err := newImageStore(config.StorageConfig{
		Driver:        config.StorageLocal,
		LocalDir:      dir,
		PublicBaseURL: "/images",
	})
	require.NoError(t, err)

	assert.IsType(t, &imagestore.LocalStore{}, store)
	assert.Equal(t, dir, servedDir)
}

func TestNewImageStore_S3(t *testing.T) {
	store, servedDir, err := newImageStore(config.StorageConfig{
		Driver:     config.StorageS3,
		S3Bucket:   "recepten",
		S3Region:   "eu-central-1",
		S3Endpoint: "http://localhost:9000",
	})
	require.NoError(t, err)

	assert.IsType(t, &imagestore.S3Store{}, store)
	assert.Empty(t, servedDir, "remote images are not served locally")
}

// syncCountingCore records how often the logger is flushed.
type syncCountingCore struct {
	zapcore.Core
	syncs int
}

func (c *syncCountingCore) Sync() error {
	c.syncs++
	return c.Core.Sync()
}

func TestExitCode(t *testing.T) {
	observed, logs := observer.New(zapcore.InfoLevel)
	core := &syncCountingCore{Core: observed}
	log := zap.New(core)

	assert.Equal(t, 1, exitCode(errors.New("listen tcp :8080: address already in use"), log))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "server stopped", entry.Message)
	assert.Equal(t, 1, core.syncs, "logger is flushed before exiting")

	assert.Equal(t, 0, exitCode(nil, log))
	assert.Equal(t, zapcore.InfoLevel, logs.All()[1].Level)
	assert.Equal(t, 2, core.syncs)
}
