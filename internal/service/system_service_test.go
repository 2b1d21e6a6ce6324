package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/testutil"
	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/version"
)

func TestSystemService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSystemService(t, db)

	t.Run("healthy database", func(t *testing.T) {
		assert.NoError(t, svc.CheckHealth())
	})

	t.Run("version reports the migrated schema", func(t *testing.T) {
		info, err := svc.CheckVersion(context.Background())
		require.NoError(t, err)

		assert.Equal(t, version.Version, info.AppVersion)
		assert.Equal(t, "2", info.DbVersion)
		assert.False(t, info.MigrationNeeded)
		assert.Contains(t, info.Features, "scheduler")
	})

	t.Run("closed database is unhealthy", func(t *testing.T) {
		closed := testutil.SetupTestDB(t)
		require.NoError(t, closed.Close())

		assert.Error(t, testutil.NewTestSystemService(t, closed).CheckHealth())
	})
}
