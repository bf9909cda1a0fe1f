package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/config"
)

func TestApplyRuntimeParams(t *testing.T) {
	params := map[string]string{}
	applyRuntimeParams(params, config.PostgresConfig{ApplicationName: "recruitment-service", StatementTimeoutMS: 2500})
	assert.Equal(t, "recruitment-service", params["application_name"])
	assert.Equal(t, "2500", params["statement_timeout"])

	empty := map[string]string{}
	applyRuntimeParams(empty, config.PostgresConfig{})
	assert.Empty(t, empty)
}

func TestStoresDisabledWithoutConfiguration(t *testing.T) {
	ctx := context.Background()

	pg, err := NewPostgres(ctx, config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(ctx))
	assert.NotPanics(t, pg.Close)

	rdb := NewRedis(ctx, config.RedisConfig{}, zap.NewNop())
	assert.False(t, rdb.Enabled())
	assert.Error(t, rdb.Ping(ctx))
	assert.NotPanics(t, rdb.Close)
}
