package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config describes one stress run. It is read from a YAML file and then
// overridden by any flag given on the command line.
type Config struct {
	Duration       time.Duration `yaml:"duration"`
	Entities       int           `yaml:"entities"`
	Capacity       int           `yaml:"capacity"`
	Systems        int           `yaml:"systems"`
	Workers        int           `yaml:"workers"`
	Churn          int           `yaml:"churn"`
	Seed           uint64        `yaml:"seed"`
	LogLevel       string        `yaml:"log_level"`
	Profile        string        `yaml:"profile"`
	ProfilePath    string        `yaml:"profile_path"`
	GCPauseMetrics bool          `yaml:"gc_pause_metrics"`
}

func DefaultConfig() Config {
	return Config{
		Duration:    10 * time.Second,
		Entities:    10000,
		Systems:     50,
		Workers:     1,
		Churn:       100,
		Seed:        1,
		LogLevel:    "info",
		ProfilePath: ".",
	}
}

// LoadConfig decodes the YAML file at path over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig reads -config, if given, then applies the flags that were set
// explicitly on top of it.
func parseConfig(args []string) (Config, error) {
	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)

	defaults := DefaultConfig()
	configPath := fs.String("config", "", "Path to a YAML config file.")
	duration := fs.Duration("duration", defaults.Duration, "The total duration the test should run for.")
	entities := fs.Int("entities", defaults.Entities, "The initial number of entities to create per world.")
	capacity := fs.Int("capacity", defaults.Capacity, "Initial entity capacity per world (0 for the library default).")
	systems := fs.Int("systems", defaults.Systems, "The number of generated systems per world.")
	workers := fs.Int("workers", defaults.Workers, "The number of independent worlds to run concurrently.")
	churn := fs.Int("churn", defaults.Churn, "Entities deleted and respawned per frame.")
	seed := fs.Uint64("seed", defaults.Seed, "Random seed; worker i uses seed+i.")
	logLevel := fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error.")
	profile := fs.String("profile", defaults.Profile, "Profile mode: cpu, mem or empty for none.")
	profilePath := fs.String("profile-path", defaults.ProfilePath, "Directory for profile output.")
	gcPauseMetrics := fs.Bool("gc-pause-metrics", defaults.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaults
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Duration = *duration
		case "entities":
			cfg.Entities = *entities
		case "capacity":
			cfg.Capacity = *capacity
		case "systems":
			cfg.Systems = *systems
		case "workers":
			cfg.Workers = *workers
		case "churn":
			cfg.Churn = *churn
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		case "profile":
			cfg.Profile = *profile
		case "profile-path":
			cfg.ProfilePath = *profilePath
		case "gc-pause-metrics":
			cfg.GCPauseMetrics = *gcPauseMetrics
		}
	})

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Duration <= 0:
		return errors.New("duration must be positive")
	case c.Entities < 0:
		return errors.New("entities must not be negative")
	case c.Capacity < 0:
		return errors.New("capacity must not be negative")
	case c.Systems < 0:
		return errors.New("systems must not be negative")
	case c.Workers < 1:
		return errors.New("workers must be at least 1")
	case c.Churn < 0:
		return errors.New("churn must not be negative")
	}

	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("unknown profile mode %q", c.Profile)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}
