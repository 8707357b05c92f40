package config

import (
	"testing"
)

func TestServerConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg ServerConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.Addr() != "0.0.0.0:8080" {
			t.Errorf("addr = %s; expected 0.0.0.0:8080", cfg.Addr())
		}
		if cfg.ReadTimeoutDuration() == 0 {
			t.Error("expected nonzero read timeout")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvServerPort, "9090")

		var cfg ServerConfig
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}

		if cfg.Port != 9090 {
			t.Errorf("port = %d; expected 9090", cfg.Port)
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		cfg := ServerConfig{Port: 70000}
		if err := cfg.Finalize(); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestServerConfigMerge(t *testing.T) {
	base := ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "1m"}
	overlay := ServerConfig{Port: 9000}

	base.Merge(&overlay)

	if base.Port != 9000 {
		t.Errorf("port = %d; expected 9000", base.Port)
	}
	if base.Host != "0.0.0.0" {
		t.Errorf("host = %s; expected unchanged", base.Host)
	}
	if base.ReadTimeout != "1m" {
		t.Errorf("read_timeout = %s; expected unchanged", base.ReadTimeout)
	}
}

func TestAPIConfigFinalize(t *testing.T) {
	var cfg APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("base_path = %s; expected /api", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 50*1024*1024 {
		t.Errorf("max upload = %d; expected 50MB", cfg.MaxUploadSizeBytes())
	}
	if cfg.Pagination.DefaultPageSize == 0 {
		t.Error("expected pagination defaults applied")
	}
}

func TestConfigMerge(t *testing.T) {
	base := Config{ShutdownTimeout: "30s", Version: "0.1.0"}
	overlay := Config{Version: "0.2.0"}
	overlay.Vision.Endpoint = "http://model:9001"

	base.Merge(&overlay)

	if base.Version != "0.2.0" {
		t.Errorf("version = %s; expected 0.2.0", base.Version)
	}
	if base.ShutdownTimeout != "30s" {
		t.Errorf("shutdown_timeout = %s; expected unchanged", base.ShutdownTimeout)
	}
	if base.Vision.Endpoint != "http://model:9001" {
		t.Errorf("vision endpoint = %s; expected overlay applied", base.Vision.Endpoint)
	}
}
