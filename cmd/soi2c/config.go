package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
)

// Input formats.
const (
	FormatAuto    = "auto"
	FormatCSV     = "csv"
	FormatCapture = "capture"
)

// Config holds the settings shared by the soi2c subcommands.
// It can be loaded from a YAML file; explicit flags take precedence.
type Config struct {
	// Address is the Notecard's I2C address. 0 selects the default.
	Address uint8 `yaml:"address"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Format is the input format: auto, csv or capture.
	Format string `yaml:"format"`

	// ProtocolLog is the path of a .nlog file to record decoded traffic in.
	ProtocolLog string `yaml:"protocol_log"`

	// LogFrames also records raw bus frames in the protocol log.
	LogFrames bool `yaml:"log_frames"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatAuto,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Address > bus.MaxAddress {
		return fmt.Errorf("address 0x%02X exceeds 7 bits", c.Address)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Format {
	case FormatAuto, FormatCSV, FormatCapture:
	default:
		return fmt.Errorf("unknown format %q (must be auto, csv, or capture)", c.Format)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// newLogger returns a text logger writing to w at the config's level.
func (c *Config) newLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// commonFlags are the flags every subcommand accepts.
type commonFlags struct {
	configPath string
	address    uint
	logLevel   string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.UintVar(&f.address, "address", uint(0x17), "Notecard I2C address (0 selects 0x17)")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// resolve loads the config file, if any, and applies the flags that were
// set explicitly on fs. apply handles subcommand-specific flags.
func (f *commonFlags) resolve(fs *flag.FlagSet, apply func(cfg *Config, name string) error) (Config, error) {
	cfg := DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = LoadConfig(f.configPath); err != nil {
			return cfg, err
		}
	}

	var errs []error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "address":
			if f.address > bus.MaxAddress {
				errs = append(errs, fmt.Errorf("address 0x%X exceeds 7 bits", f.address))
				return
			}
			cfg.Address = uint8(f.address)
		case "log-level":
			cfg.LogLevel = strings.ToLower(f.logLevel)
		default:
			if apply != nil {
				if err := apply(&cfg, fl.Name); err != nil {
					errs = append(errs, err)
				}
			}
		}
	})
	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
