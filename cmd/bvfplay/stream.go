package main

import (
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/bvfplay/pkg/adapters/ggrenderer"
	"github.com/user/bvfplay/pkg/adapters/gpiosensor"
	"github.com/user/bvfplay/pkg/adapters/httpfetcher"
	"github.com/user/bvfplay/pkg/adapters/leveltrigger"
	"github.com/user/bvfplay/pkg/adapters/mqttlink"
	"github.com/user/bvfplay/pkg/adapters/osfilesystem"
	"github.com/user/bvfplay/pkg/config"
	"github.com/user/bvfplay/pkg/orchestrator"
	"github.com/user/bvfplay/pkg/ports"
	"github.com/user/bvfplay/pkg/stages/fetch"
	"github.com/user/bvfplay/pkg/stages/play"
	"github.com/user/bvfplay/pkg/summarizer"
)

func streamCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   l10n.T("YAML configuration file"),
			EnvVars: []string{"BVFPLAY_CONFIG"},
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: l10n.T("Play a single cycle immediately and exit"),
		},

		// Source
		&cli.StringFlag{
			Name:     "source",
			Aliases:  []string{"u"},
			Usage:    l10n.T("Part URL or path template with the part index, e.g. https://host/part-%03d.bvf"),
			EnvVars:  []string{"BVFPLAY_SOURCE"},
			Category: l10n.T(categorySource),
		},
		&cli.StringFlag{
			Name:     "part-dir",
			Usage:    l10n.T("Directory holding parts while they play"),
			EnvVars:  []string{"BVFPLAY_PART_DIR"},
			Category: l10n.T(categorySource),
		},
		&cli.IntFlag{
			Name:     "max-parts",
			Usage:    l10n.T("Stop each cycle after this many parts (0 = unlimited)"),
			Category: l10n.T(categorySource),
		},
		&cli.IntFlag{
			Name:     "attempts",
			Usage:    l10n.T("Fetch attempts per part"),
			Category: l10n.T(categorySource),
		},

		// Playback
		&cli.IntFlag{
			Name:     "fps",
			Usage:    l10n.T("Frame rate used when a part declares none"),
			Category: l10n.T(categoryPlayback),
		},
		&cli.IntFlag{
			Name:     "cols",
			Usage:    l10n.T("Display width in cells"),
			Category: l10n.T(categoryPlayback),
		},
		&cli.IntFlag{
			Name:     "rows",
			Usage:    l10n.T("Display height in cells"),
			Category: l10n.T(categoryPlayback),
		},

		// Trigger
		&cli.StringFlag{
			Name:     "trigger",
			Usage:    l10n.T("Start signal (gpio, mqtt, none)"),
			EnvVars:  []string{"BVFPLAY_TRIGGER"},
			Category: l10n.T(categoryTrigger),
		},
		&cli.StringFlag{
			Name:     "gpio-path",
			Usage:    l10n.T("GPIO value file of the start signal"),
			EnvVars:  []string{"BVFPLAY_GPIO_PATH"},
			Category: l10n.T(categoryTrigger),
		},
		&cli.BoolFlag{
			Name:     "active-low",
			Usage:    l10n.T("Treat a low GPIO level as the start signal"),
			Category: l10n.T(categoryTrigger),
		},

		// MQTT
		&cli.StringFlag{
			Name:     "mqtt-broker",
			Usage:    l10n.T("MQTT broker address (host:port)"),
			EnvVars:  []string{"BVFPLAY_MQTT_BROKER"},
			Category: l10n.T(categoryMQTT),
		},
		&cli.StringFlag{
			Name:     "mqtt-topic",
			Usage:    l10n.T("MQTT topic carrying the start signal"),
			Category: l10n.T(categoryMQTT),
		},
		&cli.StringFlag{
			Name:     "stats-topic",
			Usage:    l10n.T("MQTT topic to publish part statistics to"),
			Category: l10n.T(categoryMQTT),
		},
		&cli.StringFlag{
			Name:     "mqtt-username",
			EnvVars:  []string{"BVFPLAY_MQTT_USERNAME"},
			Usage:    l10n.T("MQTT username"),
			Category: l10n.T(categoryMQTT),
		},
		&cli.StringFlag{
			Name:     "mqtt-password",
			EnvVars:  []string{"BVFPLAY_MQTT_PASSWORD"},
			Usage:    l10n.T("MQTT password"),
			Category: l10n.T(categoryMQTT),
		},
	}
	flags = append(flags, debugFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:   "stream",
		Usage:  l10n.T("Fetch and play a part sequence on every start signal"),
		Flags:  flags,
		Action: runStream,
	}
}

// buildConfig loads the configuration file, if any, and applies flag overrides.
func buildConfig(c *cli.Context) (config.Config, error) {
	base := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return base, fmt.Errorf("load config: %w", err)
		}
		base = loaded
	}

	b := config.NewBuilder().From(base)
	if c.IsSet("source") {
		b.WithSourceURL(c.String("source"))
	}
	if c.IsSet("part-dir") {
		b.WithPartDir(c.String("part-dir"))
	}
	if c.IsSet("max-parts") {
		b.WithMaxParts(c.Int("max-parts"))
	}
	if c.IsSet("attempts") {
		b.WithRetry(c.Int("attempts"), base.Source.BackoffMs)
	}
	if c.IsSet("fps") {
		b.WithDefaultFPS(c.Int("fps"))
	}
	if c.IsSet("cols") || c.IsSet("rows") {
		cols, rows := base.Display.Cols, base.Display.Rows
		if c.IsSet("cols") {
			cols = c.Int("cols")
		}
		if c.IsSet("rows") {
			rows = c.Int("rows")
		}
		b.WithDisplaySize(cols, rows)
	}
	if c.IsSet("trigger") {
		b.WithTrigger(c.String("trigger"))
	}
	if c.IsSet("gpio-path") || c.IsSet("active-low") {
		path := base.Trigger.GPIOPath
		if c.IsSet("gpio-path") {
			path = c.String("gpio-path")
		}
		b.WithGPIO(path, c.Bool("active-low"))
	}
	if c.IsSet("mqtt-broker") {
		b.WithMQTTBroker(c.String("mqtt-broker"))
	}
	if c.IsSet("mqtt-topic") {
		b.WithMQTTTrigger(c.String("mqtt-topic"))
	}
	if c.IsSet("stats-topic") {
		b.WithStatsTopic(c.String("stats-topic"))
	}
	if c.IsSet("debug-dir") || c.IsSet("snapshot-every") {
		dir, every := base.DebugDir, base.SnapshotEvery
		if c.IsSet("debug-dir") {
			dir = c.String("debug-dir")
		}
		if c.IsSet("snapshot-every") {
			every = c.Int("snapshot-every")
		}
		b.WithDebugDir(dir, every)
	}
	if c.IsSet("log-level") {
		b.WithLogLevel(c.String("log-level"))
	}

	cfg := b.Build()
	if c.IsSet("mqtt-username") {
		cfg.MQTT.Username = c.String("mqtt-username")
	}
	if c.IsSet("mqtt-password") {
		cfg.MQTT.Password = c.String("mqtt-password")
	}
	if c.IsSet("snapshot-scale") {
		cfg.SnapshotScale = c.Int("snapshot-scale")
	}
	if c.Bool("once") && !c.IsSet("trigger") {
		cfg.Trigger.Kind = config.TriggerNone
	}
	return cfg, cfg.Validate()
}

func runStream(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	if cfg.Source.URL == "" {
		return cli.Exit(l10n.T("A part source is required (--source or source.url)"), 2)
	}

	log := newLogger(c, cfg.LogLevel)
	ctx, cancel := withInterrupt(c.Context, log)
	defer cancel()

	fs := osfilesystem.New()
	clock := ports.SystemClock{}
	if err := fs.MkdirAll(cfg.PartDir); err != nil {
		return fmt.Errorf("create part directory: %w", err)
	}

	var fetcher ports.Fetcher
	if isRemote(cfg.Source.URL) {
		hf, err := httpfetcher.New(cfg.Source.URL, cfg.HTTPOptions())
		if err != nil {
			return err
		}
		fetcher = hf
	} else {
		if !strings.Contains(cfg.Source.URL, "%") {
			return cli.Exit(l10n.T("The part source must contain the part index, e.g. part-%03d.bvf"), 2)
		}
		fetcher = &fileFetcher{template: cfg.Source.URL, fs: fs}
	}

	renderer := ggrenderer.New(cfg.SnapshotScale)
	sink, err := newSink(cfg.DebugDir, fs, renderer)
	if err != nil {
		return err
	}

	var client mqtt.Client
	if cfg.UsesMQTT() {
		client, err = mqttlink.Connect(cfg.MQTTOptions(), log)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
	}

	var reporter ports.StatsReporter
	if cfg.MQTT.StatsTopic != "" {
		reporter = mqttlink.NewReporter(client, cfg.MQTT.StatsTopic, cfg.MQTT.QoS, 0)
	}

	var trigger ports.Trigger
	switch cfg.Trigger.Kind {
	case config.TriggerNone:
		trigger = immediateTrigger{clock: clock}
	case config.TriggerGPIO:
		sensor := gpiosensor.New(fs, cfg.Trigger.GPIOPath, cfg.Trigger.ActiveLow)
		trigger = leveltrigger.New(sensor, clock, log, cfg.TriggerOptions())
	case config.TriggerMQTT:
		timeout := cfg.MQTTOptions().Timeout
		sensor, err := mqttlink.NewSensor(client, cfg.MQTT.TriggerTopic, cfg.MQTT.QoS, timeout, log)
		if err != nil {
			return err
		}
		defer sensor.Close()
		trigger = leveltrigger.New(sensor, clock, log, cfg.TriggerOptions())
	}

	display := newTerminal(c.App.Writer, cfg.Display.Cols, cfg.Display.Rows)
	defer display.Close()

	fetchStage := fetch.New(fetcher, fs, log, cfg.FetchOptions())
	playStage := play.New(display, clock, renderer, sink, log, cfg.PlayOptions())
	orch := orchestrator.New(fetchStage, playStage, trigger, display, fs, clock, sink, reporter, log, cfg.ToOrchestratorConfig())

	if path := c.String("summary"); path != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
		settings := summarizer.Settings{
			DefaultFPS:    cfg.DefaultFPS,
			FetchAttempts: cfg.Source.Attempts,
			MaxParts:      cfg.MaxParts,
			Trigger:       cfg.Trigger.Kind,
		}
		orch.OnCycle(func(result orchestrator.CycleResult) {
			s := summarizer.NewBuilder().WithCycle(result).WithSource(cfg.Source.URL).WithSettings(settings).Build()
			if err := writer.Write(path, s); err != nil {
				log.Error(l10n.F("Failed to write summary: %s", err))
				return
			}
			log.Info(l10n.F("Summary saved to %s", path))
		})
	}

	if c.Bool("once") {
		result, err := orch.RunOnce(ctx)
		if err != nil {
			return nil
		}
		if result.Outcome != orchestrator.Exhausted {
			return cli.Exit(l10n.F("Playback cycle ended early: %s", result.Outcome), 1)
		}
		return nil
	}
	return orch.Run(ctx)
}
