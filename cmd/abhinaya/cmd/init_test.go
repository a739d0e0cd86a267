package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/abhinaya/internal/config"
)

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	t.Cleanup(func() {
		cfgFile = ""
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"init", "--config", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init error = %v", err)
	}

	cfg, err := config.Load(config.NewViper(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Window.Title != "Detector" || cfg.Thresholds.BlinkRatio != 0.25 {
		t.Errorf("unexpected starter config %+v", cfg)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		rootCmd.SetArgs([]string{"init", "--config", path})
		err := rootCmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already exists error, got %v", err)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("camera:\n  device: 9\n"), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		rootCmd.SetArgs([]string{"init", "--config", path, "--force"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init --force error = %v", err)
		}

		cfg, err := config.Load(config.NewViper(), path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Camera.Device != 0 {
			t.Errorf("camera.device = %d, want 0 after overwrite", cfg.Camera.Device)
		}
	})
}
