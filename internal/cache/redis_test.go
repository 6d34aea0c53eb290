package cache

import (
	"context"
	"testing"
	"youclone/internal/config"

	"github.com/alicebob/miniredis/v2"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	log, _ := logrustest.NewNullLogger()
	mr := miniredis.RunT(t)

	client := Connect(context.Background(), config.RedisConfig{Addr: mr.Addr()}, log)
	require.NotNil(t, client)
	defer client.Close()
	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())

	viaURL := Connect(context.Background(), config.RedisConfig{Addr: "redis://" + mr.Addr() + "/0"}, log)
	require.NotNil(t, viaURL)
	viaURL.Close()
}

func TestConnect_Unavailable(t *testing.T) {
	log, _ := logrustest.NewNullLogger()

	assert.Nil(t, Connect(context.Background(), config.RedisConfig{}, log))

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	assert.Nil(t, Connect(context.Background(), config.RedisConfig{Addr: addr}, log))
}
