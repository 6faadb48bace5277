package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "inferd.yaml", `
addr: ":9000"
model_path: /srv/models/m.gguf
model_name: tiny
n_ctx: 2048
use_mlock: false
api_keys: ["sk-a", "sk-b"]
admin_api_keys: ["sk-admin-x"]
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, "/srv/models/m.gguf", cfg.ModelPath)
	require.Equal(t, 2048, cfg.CtxSize)
	require.NotNil(t, cfg.UseMLock)
	require.False(t, *cfg.UseMLock)
	require.Equal(t, []string{"sk-a", "sk-b"}, cfg.APIKeys)
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "inferd.json", `{"addr":":9001","model_path":"/m.gguf","n_gpu_layers":20}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":9001", cfg.Addr)
	require.NotNil(t, cfg.GPULayers)
	require.Equal(t, 20, *cfg.GPULayers)
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "inferd.toml", `
addr = ":9002"
model_path = "/m.gguf"
n_batch = 256
api_keys = ["sk-a"]
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":9002", cfg.Addr)
	require.Equal(t, 256, cfg.BatchSize)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	p := writeFile(t, "inferd.ini", "addr=:1")
	_, err := Load(p)
	require.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("INFERD_ADDR", ":7777")
	t.Setenv("INFERD_API_KEYS", "sk-1, sk-2 ,")
	t.Setenv("INFERD_ADMIN_API_KEYS", "sk-admin-1")
	t.Setenv("INFERD_N_CTX", "1024")
	t.Setenv("INFERD_N_GPU_LAYERS", "-1")
	t.Setenv("INFERD_USE_MMAP", "false")

	cfg := Config{Addr: ":1133", CtxSize: 4096}
	require.NoError(t, FromEnv(&cfg))
	require.Equal(t, ":7777", cfg.Addr)
	require.Equal(t, []string{"sk-1", "sk-2"}, cfg.APIKeys)
	require.Equal(t, []string{"sk-admin-1"}, cfg.AdminAPIKeys)
	require.Equal(t, 1024, cfg.CtxSize)
	require.Equal(t, -1, *cfg.GPULayers)
	require.False(t, *cfg.UseMMap)
}

func TestFromEnvBadNumber(t *testing.T) {
	t.Setenv("INFERD_N_CTX", "not-a-number")
	cfg := Config{}
	require.Error(t, FromEnv(&cfg))
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{ModelPath: "/m.gguf"}
	require.NoError(t, cfg.ApplyDefaults())
	require.Equal(t, DefaultAddr, cfg.Addr)
	require.Equal(t, DefaultCtxSize, cfg.CtxSize)
	require.Equal(t, DefaultBatchSize, cfg.BatchSize)
	require.Equal(t, DefaultGPULayers, *cfg.GPULayers)
	require.True(t, *cfg.UseMMap)
	require.True(t, *cfg.UseMLock)
	require.Equal(t, int64(120), cfg.RequestTimeoutSeconds)
}

func TestValidate(t *testing.T) {
	cfg := Config{ModelPath: "/m.gguf", APIKeys: []string{"sk-a"}, AdminAPIKeys: []string{"sk-admin-a"}}
	require.NoError(t, cfg.Validate())

	missing := []Config{
		{APIKeys: []string{"sk-a"}, AdminAPIKeys: []string{"sk-admin-a"}},
		{ModelPath: "/m.gguf", AdminAPIKeys: []string{"sk-admin-a"}},
		{ModelPath: "/m.gguf", APIKeys: []string{"sk-a"}},
		{ModelPath: "/m.gguf", APIKeys: []string{""}, AdminAPIKeys: []string{"sk-admin-a"}},
	}
	for i, c := range missing {
		require.Error(t, c.Validate(), "case %d", i)
	}
}

func TestSplitCSV(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, SplitCSV(" a , b ,, "))
	require.Empty(t, SplitCSV(",,"))
}
