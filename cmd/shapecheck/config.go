package main

import (
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/typeguard/errors"
)

// Config is the optional YAML configuration file.
type Config struct {
	Log         LogConfig `yaml:"log"`
	Color       string    `yaml:"color"`       // auto, always, never
	Parallelism int       `yaml:"parallelism"` // concurrent documents in check
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

func defaultConfig() Config {
	return Config{
		Log:         LogConfig{Level: "warn", Format: "console"},
		Color:       "auto",
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindParse, err, "read config "+path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindParse, err, "parse config "+path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidValue).
			Path("color").
			Actual(c.Color).
			Expected("auto | always | never").
			Build()
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidValue).
			Path("log", "format").
			Actual(c.Log.Format).
			Expected("console | json").
			Build()
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidValue, err, "log.level")
	}
	if c.Parallelism < 1 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidValue).
			Path("parallelism").
			Detail("must be at least 1, got %d", c.Parallelism).
			Build()
	}
	return nil
}

// newLogger builds the zap logger described by the config, writing to w.
func (c Config) newLogger(w io.Writer) *zap.Logger {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if c.Log.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

// colorEnabled resolves the color setting for the given output.
func (c Config) colorEnabled(out io.Writer) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
