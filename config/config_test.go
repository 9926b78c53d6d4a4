package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("BYBIT_API_KEY", "key")
	t.Setenv("BYBIT_API_SECRET", "secret")
	t.Setenv("TESTNET", "false")
	t.Setenv("DEMO", "yes")
	t.Setenv("BYBIT_DOMAIN", "bytick")
	t.Setenv("LISTEN_ADDR", "0.0.0.0:9000")

	s := FromEnv()
	assert.Equal(t, "key", s.APIKey)
	assert.Equal(t, "secret", s.APISecret)
	assert.False(t, s.Testnet)
	assert.True(t, s.Demo)
	assert.Equal(t, "bytick", s.Domain)
	assert.Equal(t, "0.0.0.0:9000", s.ListenAddr)
	require.NoError(t, s.Validate())
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("BYBIT_API_KEY", "")
	t.Setenv("BYBIT_API_SECRET", "")
	t.Setenv("TESTNET", "")
	t.Setenv("DEMO", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("LOG_LEVEL", "")

	s := FromEnv()
	assert.True(t, s.Testnet, "testnet is the default network")
	assert.False(t, s.Demo)
	assert.Equal(t, "localhost:8000", s.ListenAddr)
	assert.Equal(t, "info", s.LogLevel)
}

func TestValidate_MissingCredentials(t *testing.T) {
	err := Settings{APIKey: "key"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BYBIT_API_KEY and BYBIT_API_SECRET")
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"true", "True", "1", "t", "y", "YES"} {
		assert.True(t, truthy(v), v)
	}
	for _, v := range []string{"", "false", "0", "no", "off"} {
		assert.False(t, truthy(v), v)
	}
}
