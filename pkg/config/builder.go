package config

// Builder provides a fluent interface for building Config.
type Builder struct {
	config Config
}

// NewBuilder creates a new Builder starting from Defaults.
func NewBuilder() *Builder {
	return &Builder{config: Defaults()}
}

// NewKioskBuilder creates a Builder for an unattended display: parts are
// fetched from urlTemplate and playback starts on a GPIO line.
func NewKioskBuilder(urlTemplate, gpioPath string) *Builder {
	b := NewBuilder()
	b.config.Source.URL = urlTemplate
	b.config.Trigger.Kind = TriggerGPIO
	b.config.Trigger.GPIOPath = gpioPath
	return b
}

// MinCyclePauseMs is the shortest pause allowed between cycles that played nothing.
const MinCyclePauseMs = 100

// Build returns the final Config, applying constraints.
func (b *Builder) Build() Config {
	cfg := b.config

	if cfg.Source.Attempts < 1 {
		cfg.Source.Attempts = 1
	}
	if cfg.Source.BackoffMs < 0 {
		cfg.Source.BackoffMs = 0
	}
	if cfg.DefaultFPS < 1 {
		cfg.DefaultFPS = 1
	}
	if cfg.Display.Cols < 1 {
		cfg.Display.Cols = 80
	}
	if cfg.Display.Rows < 1 {
		cfg.Display.Rows = 24
	}
	if cfg.MaxParts < 0 {
		cfg.MaxParts = 0
	}
	if cfg.CyclePauseMs < MinCyclePauseMs {
		cfg.CyclePauseMs = MinCyclePauseMs
	}
	if cfg.SnapshotEvery < 0 {
		cfg.SnapshotEvery = 0
	}
	if cfg.SnapshotScale < 1 {
		cfg.SnapshotScale = 1
	}
	if cfg.MQTT.QoS > 2 {
		cfg.MQTT.QoS = 2
	}

	return cfg
}

// From replaces the configuration being built, e.g. with one loaded from a file.
func (b *Builder) From(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithPartDir sets where part files are kept while resident.
func (b *Builder) WithPartDir(dir string) *Builder {
	b.config.PartDir = dir
	return b
}

// WithMaxParts stops every cycle after n parts. 0 means no limit.
func (b *Builder) WithMaxParts(n int) *Builder {
	b.config.MaxParts = n
	return b
}

// WithCyclePause sets the wait before re-arming after a cycle that played nothing.
func (b *Builder) WithCyclePause(ms int) *Builder {
	b.config.CyclePauseMs = ms
	return b
}

// WithSourceURL sets the part URL template.
func (b *Builder) WithSourceURL(template string) *Builder {
	b.config.Source.URL = template
	return b
}

// WithHeader adds a request header sent with every part download.
func (b *Builder) WithHeader(key, value string) *Builder {
	if b.config.Source.Headers == nil {
		b.config.Source.Headers = map[string]string{}
	}
	b.config.Source.Headers[key] = value
	return b
}

// WithRetry sets the fetch attempts and the delay between them.
// Attempts below 1 will be forced to 1.
func (b *Builder) WithRetry(attempts, backoffMs int) *Builder {
	b.config.Source.Attempts = attempts
	b.config.Source.BackoffMs = backoffMs
	return b
}

// WithDefaultFPS sets the frame rate used when a part declares none.
func (b *Builder) WithDefaultFPS(fps int) *Builder {
	b.config.DefaultFPS = fps
	return b
}

// WithDisplaySize sets the terminal area in cells.
func (b *Builder) WithDisplaySize(cols, rows int) *Builder {
	b.config.Display = DisplayConfig{Cols: cols, Rows: rows}
	return b
}

// WithTrigger sets the start signal kind.
func (b *Builder) WithTrigger(kind string) *Builder {
	b.config.Trigger.Kind = kind
	return b
}

// WithGPIO selects the GPIO trigger on the given value file.
func (b *Builder) WithGPIO(path string, activeLow bool) *Builder {
	b.config.Trigger.Kind = TriggerGPIO
	b.config.Trigger.GPIOPath = path
	b.config.Trigger.ActiveLow = activeLow
	return b
}

// WithMQTTBroker sets the broker address.
func (b *Builder) WithMQTTBroker(broker string) *Builder {
	b.config.MQTT.Broker = broker
	return b
}

// WithMQTTTrigger selects the MQTT trigger on the given topic.
func (b *Builder) WithMQTTTrigger(topic string) *Builder {
	b.config.Trigger.Kind = TriggerMQTT
	b.config.MQTT.TriggerTopic = topic
	return b
}

// WithStatsTopic enables per-part stats publication.
func (b *Builder) WithStatsTopic(topic string) *Builder {
	b.config.MQTT.StatsTopic = topic
	return b
}

// WithDebugDir enables frame snapshots every n frames under dir.
func (b *Builder) WithDebugDir(dir string, every int) *Builder {
	b.config.DebugDir = dir
	b.config.SnapshotEvery = every
	return b
}

// WithLogLevel sets the log level name.
func (b *Builder) WithLogLevel(level string) *Builder {
	b.config.LogLevel = level
	return b
}
