package factory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwise/fdsaas/internal/factory"
	"github.com/orbitwise/fdsaas/internal/services/auth"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	require.NotNil(t, app.Storage)
	require.NotNil(t, app.AuthService)
	require.NotNil(t, app.GatewayService)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := factory.New(factory.Config{StorageType: "parchment"})
	assert.Error(t, err)
}

func TestNewRejectsUnknownDigestType(t *testing.T) {
	_, err := factory.New(factory.Config{DigestType: "rot13"})
	assert.Error(t, err)
}

// A partially-filled auth config keeps its set fields even when others are
// left to default
func TestNewKeepsPartialAuthConfig(t *testing.T) {
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{FreshnessWindow: 5 * time.Minute},
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = app.AuthService.Register(ctx, "alice", "digest")
	require.NoError(t, err)

	// Two minutes stale is within the widened window, outside the default
	stale := time.Now().Add(-2 * time.Minute).Unix()
	_, err = app.AuthService.Login(ctx, "alice", "digest", stale)
	assert.NoError(t, err)
}
