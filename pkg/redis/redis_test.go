package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisAdapter_RegistryReuse(t *testing.T) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("sessions", "gw:", &Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)

	// same connection name resolves to the already-registered adapter
	again, err := NewRedisAdapter("sessions", "gw:", &Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)
	assert.Same(t, adapter, again)

	assert.Same(t, adapter, GetRedis("sessions"))
}

func TestRedisAdapter_Operations(t *testing.T) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("ops", "gw:", &Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)

	t.Run("set and get apply the key prefix", func(t *testing.T) {
		require.NoError(t, adapter.Set("token", []byte("abc"), time.Minute))

		stored, err := mr.Get("gw:token")
		require.NoError(t, err)
		assert.Equal(t, "abc", stored)

		got, err := adapter.Get("token")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})

	t.Run("get on a missing key returns NilError", func(t *testing.T) {
		_, err := adapter.Get("missing")
		assert.ErrorIs(t, err, NilError)
	})

	t.Run("setnx yields only once", func(t *testing.T) {
		ok, err := adapter.SetNX("lock", []byte("1"), time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = adapter.SetNX("lock", []byte("2"), time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("exist and del", func(t *testing.T) {
		require.NoError(t, adapter.Set("k", []byte("v"), 0))

		n, err := adapter.Exist("k")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, adapter.Del("k"))

		n, err = adapter.Exist("k")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("expire honors the ttl", func(t *testing.T) {
		require.NoError(t, adapter.Set("ttl", []byte("v"), 0))
		require.NoError(t, adapter.Expire("ttl", time.Minute))

		mr.FastForward(2 * time.Minute)

		_, err := adapter.Get("ttl")
		assert.ErrorIs(t, err, NilError)
	})
}
