package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/entry"
	"tableflip.dev/freewrite/pkg/store"
)

func TestDoBootstrapsBeforeRunning(t *testing.T) {
	cfg := store.NewConfig(filepath.Join(t.TempDir(), "journal"))

	var got app.State
	u := UI{
		Config: cfg,
		Program: func(_ context.Context, s *app.Session, _ *zap.Logger) error {
			got = s.State()
			assert.Equal(t, entry.WelcomeContent, s.Buffer())
			return context.Canceled
		},
	}
	require.NoError(t, u.Do(context.Background()))
	assert.Equal(t, app.Editing, got.Phase)
	assert.NotEmpty(t, got.ActiveID)
}

func TestTimerOverride(t *testing.T) {
	cfg := store.NewConfig(filepath.Join(t.TempDir(), "journal"))

	var got string
	u := UI{
		Config: cfg,
		Timer:  20 * time.Minute,
		Program: func(_ context.Context, s *app.Session, _ *zap.Logger) error {
			got = s.Timer().String()
			return nil
		},
	}
	require.NoError(t, u.Do(context.Background()))
	assert.Equal(t, "20:00", got)
}
