package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/bvfplay/pkg/stages/fetch"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Source.Attempts != fetch.DefaultAttempts {
		t.Errorf("expected %d attempts, got %d", fetch.DefaultAttempts, cfg.Source.Attempts)
	}
	if cfg.Trigger.Kind != TriggerGPIO {
		t.Errorf("expected gpio trigger, got %q", cfg.Trigger.Kind)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.UsesMQTT() {
		t.Error("defaults should not need a broker")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bvfplay.yaml")
	yaml := `
part_dir: /var/lib/bvfplay
max_parts: 12
source:
  url: https://cdn.example.com/show/part-%03d.bvf
  headers:
    Authorization: Bearer abc
  backoff_ms: 500
trigger:
  kind: mqtt
mqtt:
  broker: broker.local:1883
  stats_topic: bvfplay/stats
messages:
  idle: Press the button
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.PartDir != "/var/lib/bvfplay" || cfg.MaxParts != 12 {
		t.Errorf("unexpected parts config: %q %d", cfg.PartDir, cfg.MaxParts)
	}
	if cfg.Source.Headers["Authorization"] != "Bearer abc" {
		t.Errorf("expected header to be loaded, got %v", cfg.Source.Headers)
	}
	// Unset keys keep their defaults.
	if cfg.Source.Attempts != fetch.DefaultAttempts {
		t.Errorf("expected default attempts, got %d", cfg.Source.Attempts)
	}
	if cfg.MQTT.TriggerTopic != "bvfplay/start" {
		t.Errorf("expected default trigger topic, got %q", cfg.MQTT.TriggerTopic)
	}
	if cfg.Messages.Finished != "Playback finished" {
		t.Errorf("expected default finished message, got %q", cfg.Messages.Finished)
	}
	if !cfg.UsesMQTT() {
		t.Error("expected mqtt to be required")
	}

	oc := cfg.ToOrchestratorConfig()
	if oc.PartDir != cfg.PartDir || oc.MaxParts != 12 || oc.IdleMessage != "Press the button" {
		t.Errorf("unexpected orchestrator config: %+v", oc)
	}
	if cfg.FetchOptions().Backoff != 500*time.Millisecond {
		t.Errorf("unexpected backoff %v", cfg.FetchOptions().Backoff)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/bvfplay.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	dir, err := os.MkdirTemp("", "config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bad.yaml")
	os.WriteFile(path, []byte("max_parts: [1, 2"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown trigger":   func(c *Config) { c.Trigger.Kind = "keyboard" },
		"gpio without path": func(c *Config) { c.Trigger.GPIOPath = "" },
		"mqtt without topic": func(c *Config) {
			c.Trigger.Kind = TriggerMQTT
			c.MQTT.TriggerTopic = ""
		},
		"empty part dir": func(c *Config) { c.PartDir = "" },
	}
	for name, mutate := range cases {
		cfg := Defaults()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestPlayOptions_SnapshotsNeedDebugDir(t *testing.T) {
	cfg := Defaults()
	if cfg.PlayOptions().SnapshotEvery != 0 {
		t.Error("expected snapshots disabled without debug dir")
	}
	cfg.DebugDir = "/tmp/debug"
	if cfg.PlayOptions().SnapshotEvery != 30 {
		t.Errorf("expected snapshots every 30 frames, got %d", cfg.PlayOptions().SnapshotEvery)
	}
}
