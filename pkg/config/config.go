// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/user/bvfplay/pkg/adapters/httpfetcher"
	"github.com/user/bvfplay/pkg/adapters/leveltrigger"
	"github.com/user/bvfplay/pkg/adapters/mqttlink"
	"github.com/user/bvfplay/pkg/orchestrator"
	"github.com/user/bvfplay/pkg/stages/fetch"
	"github.com/user/bvfplay/pkg/stages/play"
	"gopkg.in/yaml.v3"
)

// Trigger kinds.
const (
	TriggerNone = "none" // Start immediately, used with stream --once
	TriggerGPIO = "gpio"
	TriggerMQTT = "mqtt"
)

// Config represents the full configuration for bvfplay.
type Config struct {
	// Parts
	PartDir  string       `yaml:"part_dir"`
	MaxParts int          `yaml:"max_parts"`
	Source   SourceConfig `yaml:"source"`

	// Wait before re-arming the trigger after a cycle that played nothing
	CyclePauseMs int `yaml:"cycle_pause_ms"`

	// Playback
	DefaultFPS int           `yaml:"default_fps"`
	Display    DisplayConfig `yaml:"display"`

	// Start signal
	Trigger TriggerConfig `yaml:"trigger"`
	MQTT    MQTTConfig    `yaml:"mqtt"`

	// Display messages between cycles
	Messages MessagesConfig `yaml:"messages"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	DebugDir      string `yaml:"debug_dir"`
	SnapshotEvery int    `yaml:"snapshot_every"`
	SnapshotScale int    `yaml:"snapshot_scale"`
}

// SourceConfig describes where parts are downloaded from.
type SourceConfig struct {
	URL        string            `yaml:"url"` // fmt template with the part index, e.g. https://host/part-%03d.bvf
	Headers    map[string]string `yaml:"headers"`
	TimeoutSec int               `yaml:"timeout_sec"`
	Attempts   int               `yaml:"attempts"`
	BackoffMs  int               `yaml:"backoff_ms"`
}

// TriggerConfig selects and tunes the start signal.
type TriggerConfig struct {
	Kind          string `yaml:"kind"`
	GPIOPath      string `yaml:"gpio_path"`
	ActiveLow     bool   `yaml:"active_low"`
	PollMs        int    `yaml:"poll_ms"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// MQTTConfig configures the broker used for the trigger and stats telemetry.
type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	ClientID     string `yaml:"client_id"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	TriggerTopic string `yaml:"trigger_topic"`
	StatsTopic   string `yaml:"stats_topic"` // Empty disables stats publication
	QoS          byte   `yaml:"qos"`
	TimeoutSec   int    `yaml:"timeout_sec"`
}

// DisplayConfig sets the terminal area frames are clipped to.
type DisplayConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// MessagesConfig holds the texts shown on the display between cycles.
type MessagesConfig struct {
	Idle     string `yaml:"idle"`
	Finished string `yaml:"finished"`
	Failed   string `yaml:"failed"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	oc := orchestrator.DefaultConfig()
	return Config{
		// Parts
		PartDir:      oc.PartDir,
		CyclePauseMs: int(oc.CyclePause / time.Millisecond),
		Source: SourceConfig{
			TimeoutSec: int(httpfetcher.DefaultTimeout / time.Second),
			Attempts:   fetch.DefaultAttempts,
			BackoffMs:  int(fetch.DefaultBackoff / time.Millisecond),
		},

		// Playback
		DefaultFPS: play.DefaultFPS,
		Display:    DisplayConfig{Cols: 80, Rows: 24},

		// Start signal
		Trigger: TriggerConfig{
			Kind:          TriggerGPIO,
			GPIOPath:      "/sys/class/gpio/gpio17/value",
			PollMs:        int(leveltrigger.DefaultPollInterval / time.Millisecond),
			ReadTimeoutMs: int(leveltrigger.DefaultReadTimeout / time.Millisecond),
		},
		MQTT: MQTTConfig{
			Broker:       "localhost:1883",
			ClientID:     "bvfplay",
			TriggerTopic: "bvfplay/start",
			TimeoutSec:   int(mqttlink.DefaultTimeout / time.Second),
		},

		Messages: MessagesConfig{
			Idle:     oc.IdleMessage,
			Finished: oc.FinishedMessage,
			Failed:   oc.FailedMessage,
		},

		LogLevel: "info",

		// Debug
		SnapshotEvery: 30,
		SnapshotScale: 1,
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that cannot be clamped.
func (c Config) Validate() error {
	switch c.Trigger.Kind {
	case TriggerNone, TriggerMQTT:
	case TriggerGPIO:
		if c.Trigger.GPIOPath == "" {
			return fmt.Errorf("trigger.gpio_path is required for the gpio trigger")
		}
	default:
		return fmt.Errorf("unknown trigger kind %q", c.Trigger.Kind)
	}
	if c.Trigger.Kind == TriggerMQTT && (c.MQTT.Broker == "" || c.MQTT.TriggerTopic == "") {
		return fmt.Errorf("mqtt.broker and mqtt.trigger_topic are required for the mqtt trigger")
	}
	if c.PartDir == "" {
		return fmt.Errorf("part_dir must not be empty")
	}
	return nil
}

// UsesMQTT reports whether a broker connection is needed.
func (c Config) UsesMQTT() bool {
	return c.Trigger.Kind == TriggerMQTT || c.MQTT.StatsTopic != ""
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		PartDir:         c.PartDir,
		MaxParts:        c.MaxParts,
		CyclePause:      time.Duration(c.CyclePauseMs) * time.Millisecond,
		IdleMessage:     c.Messages.Idle,
		FinishedMessage: c.Messages.Finished,
		FailedMessage:   c.Messages.Failed,
	}
}

// FetchOptions returns the retry policy of the fetch stage.
func (c Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Attempts: c.Source.Attempts,
		Backoff:  time.Duration(c.Source.BackoffMs) * time.Millisecond,
	}
}

// HTTPOptions returns the options of the HTTP part fetcher.
func (c Config) HTTPOptions() httpfetcher.Options {
	return httpfetcher.Options{
		Timeout: time.Duration(c.Source.TimeoutSec) * time.Second,
		Headers: c.Source.Headers,
	}
}

// PlayOptions returns the options of the play stage. Snapshots are only taken
// when a debug directory is set.
func (c Config) PlayOptions() play.Options {
	opts := play.Options{DefaultFPS: c.DefaultFPS}
	if c.DebugDir != "" {
		opts.SnapshotEvery = c.SnapshotEvery
	}
	return opts
}

// TriggerOptions returns the polling policy of the level trigger.
func (c Config) TriggerOptions() leveltrigger.Options {
	return leveltrigger.Options{
		PollInterval: time.Duration(c.Trigger.PollMs) * time.Millisecond,
		ReadTimeout:  time.Duration(c.Trigger.ReadTimeoutMs) * time.Millisecond,
	}
}

// MQTTOptions returns the broker connection options.
func (c Config) MQTTOptions() mqttlink.Options {
	return mqttlink.Options{
		Broker:   c.MQTT.Broker,
		ClientID: c.MQTT.ClientID,
		Username: c.MQTT.Username,
		Password: c.MQTT.Password,
		Timeout:  time.Duration(c.MQTT.TimeoutSec) * time.Second,
	}
}
