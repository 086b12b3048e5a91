package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envAPIURL, "")
	t.Setenv(envAPIKey, "")
	t.Setenv(envOutputDir, "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "" || cfg.APIKey != "" {
		t.Fatalf("cfg = %#v, want empty api fields", cfg)
	}
	wantOut, err := expandPath(defaultOutputDir)
	if err != nil {
		t.Fatalf("expandPath(defaultOutputDir) returned error: %v", err)
	}
	if cfg.OutputDir != wantOut {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, wantOut)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  https://api.example.com/  "
api_key = "  secret  "
output_dir = "  ~/media  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://api.example.com/" {
		t.Fatalf("APIURL = %q, want trimmed url", cfg.APIURL)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("APIKey = %q, want secret", cfg.APIKey)
	}
	if !strings.HasPrefix(cfg.OutputDir, home) {
		t.Fatalf("OutputDir = %q, want it under HOME %q", cfg.OutputDir, home)
	}
}

func TestLoad_ParsesRequestDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "https://api.example"

[defaults]
audio_format = "opus"
download_mode = "audio"
filename_style = "pretty"
video_quality = "1080"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Defaults{
		AudioFormat:   "opus",
		DownloadMode:  "audio",
		FilenameStyle: "pretty",
		VideoQuality:  "1080",
	}
	if cfg.Defaults != want {
		t.Fatalf("Defaults = %#v, want %#v", cfg.Defaults, want)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "https://file.example"
api_key = "file-key"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv(envAPIURL, "https://env.example")
	t.Setenv(envAPIKey, "env-key")
	t.Setenv(envOutputDir, t.TempDir())

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://env.example" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("APIKey = %q, want env override", cfg.APIKey)
	}
	if cfg.OutputDir != os.Getenv(envOutputDir) {
		t.Fatalf("OutputDir = %q, want env override", cfg.OutputDir)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
