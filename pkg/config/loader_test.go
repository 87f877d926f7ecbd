package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "robmcfd" {
		t.Errorf("expected app name 'robmcfd', got %s", cfg.App.Name)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Log.Level)
	}
	if cfg.Solver.DeltaFn != "linear_medium" {
		t.Errorf("expected delta_fn 'linear_medium', got %s", cfg.Solver.DeltaFn)
	}
	if cfg.Solver.RemainderSolveMethod != "greedy" {
		t.Errorf("expected remainder_solve_method 'greedy', got %s", cfg.Solver.RemainderSolveMethod)
	}
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
app:
  name: custom-solve
  version: 2.0.0
  environment: staging
log:
  level: debug
solver:
  delta_fn: linear_high
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader(WithConfigPaths(configPath))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "custom-solve" {
		t.Errorf("expected app name 'custom-solve', got %s", cfg.App.Name)
	}
	if cfg.App.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %s", cfg.App.Version)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Log.Level)
	}
	if cfg.Solver.DeltaFn != "linear_high" {
		t.Errorf("expected delta_fn 'linear_high', got %s", cfg.Solver.DeltaFn)
	}
}

func TestLoader_LoadFromEnv(t *testing.T) {
	os.Setenv("ROBMCF_APP_NAME", "env-solve")
	os.Setenv("ROBMCF_LOG_LEVEL", "warn")
	defer func() {
		os.Unsetenv("ROBMCF_APP_NAME")
		os.Unsetenv("ROBMCF_LOG_LEVEL")
	}()

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "env-solve" {
		t.Errorf("expected app name 'env-solve', got %s", cfg.App.Name)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Log.Level)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
app:
  name: file-solve
log:
  level: error
`
	os.WriteFile(configPath, []byte(configContent), 0644)

	os.Setenv("ROBMCF_APP_NAME", "env-override")
	defer os.Unsetenv("ROBMCF_APP_NAME")

	cfg, err := NewLoader(WithConfigPaths(configPath)).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "env-override" {
		t.Errorf("expected env override, got %s", cfg.App.Name)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log level from file 'error', got %s", cfg.Log.Level)
	}
}

func TestLoader_WithEnvPrefix(t *testing.T) {
	os.Setenv("CUSTOM_APP_NAME", "custom-prefix-solve")
	defer os.Unsetenv("CUSTOM_APP_NAME")

	cfg, err := NewLoader(WithEnvPrefix("CUSTOM_")).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "custom-prefix-solve" {
		t.Errorf("expected 'custom-prefix-solve', got %s", cfg.App.Name)
	}
}

func TestMustLoad_Success(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustLoad should not panic with valid config")
		}
	}()

	cfg := MustLoad()
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

func TestLoad_Simple(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

func TestLoader_ConfigEnvVar(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.yaml")

	configContent := `
app:
  name: config-env-var-solve
`
	os.WriteFile(configPath, []byte(configContent), 0644)

	os.Setenv("CONFIG_PATH", configPath)
	defer os.Unsetenv("CONFIG_PATH")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "config-env-var-solve" {
		t.Errorf("expected 'config-env-var-solve', got %s", cfg.App.Name)
	}
}
