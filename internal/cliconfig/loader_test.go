package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoConfigFile(t *testing.T) {
	loader := NewLoader(t.TempDir(), "", log.NewNopLogger())

	cfg, path, err := loader.Load()
	require.NoError(t, err)
	require.Empty(t, path)
	require.True(t, cfg.IsEmpty())
}

func TestLoad_HomeConfig(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
chain_id = "testchain-1"
rest_endpoint = "http://localhost:1317"
denom = "stake"
gas_limit = 500000
`)
	loader := NewLoader(home, "", log.NewNopLogger())

	cfg, path, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "config.toml"), path)
	require.Equal(t, "testchain-1", *cfg.ChainID)
	require.Equal(t, "http://localhost:1317", *cfg.RESTEndpoint)
	require.Equal(t, "stake", *cfg.Denom)
	require.Equal(t, uint64(500000), *cfg.GasLimit)
	require.Nil(t, cfg.GRPCEndpoint)
}

func TestLoad_ExplicitOverridesHome(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
chain_id = "homechain-1"
denom = "stake"
`)
	explicit := writeConfig(t, t.TempDir(), `
chain_id = "flagchain-1"
`)
	loader := NewLoader(home, explicit, log.NewNopLogger())

	cfg, path, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, explicit, path)
	// The explicit file wins where it sets a value, the home file fills gaps.
	require.Equal(t, "flagchain-1", *cfg.ChainID)
	require.Equal(t, "stake", *cfg.Denom)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	loader := NewLoader(t.TempDir(), "/nonexistent/config.toml", log.NewNopLogger())

	_, _, err := loader.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file not found")
}

func TestLoad_BothEndpointsRejected(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
rest_endpoint = "http://localhost:1317"
grpc_endpoint = "localhost:9090"
`)
	loader := NewLoader(home, "", log.NewNopLogger())

	_, _, err := loader.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "only one of rest_endpoint and grpc_endpoint")
}

func TestLoad_MalformedTOML(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `chain_id = [broken`)
	loader := NewLoader(home, "", log.NewNopLogger())

	_, _, err := loader.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}
