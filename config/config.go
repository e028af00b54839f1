// Package config layers an optional YAML file and EPG_* environment
// variables over the built-in defaults.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"ayna-epg/consts"
	"ayna-epg/logger"
)

const envPrefix = "EPG"

var (
	ErrBadTemplate  = errors.New("schedule url template must contain exactly one %s")
	ErrNoOutputPath = errors.New("output path is empty")
	ErrBadLogLevel  = errors.New("invalid log level")
)

// Files are probed in order; the first one that exists wins.
var Files = []string{"epg.yaml", "epg.yml"}

type Config struct {
	MetadataURL         string        `yaml:"metadataUrl" envconfig:"METADATA_URL"`
	ScheduleURLTemplate string        `yaml:"scheduleUrlTemplate" envconfig:"SCHEDULE_URL_TEMPLATE"`
	OutputPath          string        `yaml:"outputPath" envconfig:"OUTPUT_PATH"`
	UserAgent           string        `yaml:"userAgent" envconfig:"USER_AGENT"`
	HTTPTimeout         time.Duration `yaml:"httpTimeout" envconfig:"HTTP_TIMEOUT"`
	Log                 LogConfig     `yaml:"log" envconfig:"LOG"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Pretty bool   `yaml:"pretty" envconfig:"PRETTY"`
	File   string `yaml:"file" envconfig:"FILE"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		MetadataURL:         consts.METADATA_URL,
		ScheduleURLTemplate: consts.SCHEDULE_URL_TEMPLATE,
		OutputPath:          consts.OUTPUT_PATH,
		UserAgent:           consts.UA,
		Log: LogConfig{
			Level: logger.LevelInfo,
		},
	}
}

// Load applies the first config file found in Files, then the environment.
func Load() (*Config, error) {
	path, _ := lo.Find(Files, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})
	return LoadFile(path)
}

// LoadFile is Load with an explicit file path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.With("config_file", path).Wrap(err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, oops.With("config_file", path).Wrap(err)
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.Count(c.ScheduleURLTemplate, "%s") != 1 || strings.Count(c.ScheduleURLTemplate, "%") != 1 {
		return oops.With("template", c.ScheduleURLTemplate).Wrap(ErrBadTemplate)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return ErrNoOutputPath
	}
	levels := []string{logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelError}
	if !lo.Contains(levels, c.Log.Level) {
		return oops.With("level", c.Log.Level).Wrap(ErrBadLogLevel)
	}
	return nil
}
