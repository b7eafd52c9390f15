package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Render.Mode != "plain" {
		t.Errorf("Render.Mode = %q, want %q", cfg.Render.Mode, "plain")
	}
	if cfg.Render.Threshold != 200 {
		t.Errorf("Render.Threshold = %d, want 200", cfg.Render.Threshold)
	}
	if cfg.Backend.Kind != "chrome" {
		t.Errorf("Backend.Kind = %q, want %q", cfg.Backend.Kind, "chrome")
	}
	if cfg.Backend.ServiceURL != "" {
		t.Errorf("Backend.ServiceURL = %q, want empty", cfg.Backend.ServiceURL)
	}
	if cfg.Output.ArtifactDir != "" {
		t.Errorf("Output.ArtifactDir = %q, want empty", cfg.Output.ArtifactDir)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	content := `render:
  mode: rendered
  threshold: 0
backend:
  kind: service
  serviceURL: https://render.example/api
  timeoutSeconds: 15
output:
  artifactDir: /tmp/renders
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Render.Mode != "rendered" {
		t.Errorf("Render.Mode = %q, want %q", cfg.Render.Mode, "rendered")
	}
	if cfg.Render.Threshold != 0 {
		t.Errorf("Render.Threshold = %d, want 0", cfg.Render.Threshold)
	}
	if cfg.Backend.Kind != "service" {
		t.Errorf("Backend.Kind = %q, want %q", cfg.Backend.Kind, "service")
	}
	if cfg.Backend.ServiceURL != "https://render.example/api" {
		t.Errorf("Backend.ServiceURL = %q", cfg.Backend.ServiceURL)
	}
	if cfg.Backend.TimeoutSeconds != 15 {
		t.Errorf("Backend.TimeoutSeconds = %d, want 15", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Output.ArtifactDir != "/tmp/renders" {
		t.Errorf("Output.ArtifactDir = %q", cfg.Output.ArtifactDir)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("render:\n  mode: rendered\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Render.Mode != "rendered" {
		t.Errorf("Render.Mode = %q, want %q", cfg.Render.Mode, "rendered")
	}
	if cfg.Backend.Kind != "chrome" {
		t.Errorf("Backend.Kind = %q, want default %q", cfg.Backend.Kind, "chrome")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "absent.yaml")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig(missing) = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("unknownSection:\n  x: 1\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig(unknown field) = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("render: [unclosed"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig(malformed) = %v, want ErrConfigParse", err)
		}
	})
}

func TestResolveConfigPath_NameNotFound(t *testing.T) {
	t.Parallel()

	_, err := resolveConfigPath("definitely-not-a-real-config-name")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("resolveConfigPath = %v, want ErrConfigNotFound", err)
	}
}
