package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/arloliu/pcproof/entity"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
)

const envLogLevel = "PCPTOOL_LOG_LEVEL"

type fileConfig struct {
	Varint         string `toml:"varint"`
	Compression    string `toml:"compression"`
	LogLevel       string `toml:"log_level"`
	RawBlock       bool   `toml:"raw_block"`
	MaxEntities    int    `toml:"max_entities"`
	MaxPayloadSize int    `toml:"max_payload_size"`
	HistoryFile    string `toml:"history_file"`
}

type config struct {
	Varint         format.VarintType
	Compression    format.CompressionType
	LogLevel       zerolog.Level
	RawBlock       bool
	MaxEntities    int
	MaxPayloadSize int
	HistoryFile    string
}

func defaultConfig() config {
	return config{
		Varint:      format.VarintBase128,
		Compression: format.CompressionZstd,
		LogLevel:    zerolog.InfoLevel,
	}
}

// loadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load pcptool config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load pcptool config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("varint") {
		if err := cfg.setVarint(raw.Varint); err != nil {
			return config{}, err
		}
	}

	if meta.IsDefined("compression") {
		if err := cfg.setCompression(raw.Compression); err != nil {
			return config{}, err
		}
	}

	if meta.IsDefined("log_level") {
		if err := cfg.setLogLevel(raw.LogLevel); err != nil {
			return config{}, err
		}
	}

	if meta.IsDefined("raw_block") {
		cfg.RawBlock = raw.RawBlock
	}

	if meta.IsDefined("max_entities") {
		cfg.MaxEntities = raw.MaxEntities
	}

	if meta.IsDefined("max_payload_size") {
		cfg.MaxPayloadSize = raw.MaxPayloadSize
	}

	if meta.IsDefined("history_file") {
		cfg.HistoryFile = strings.TrimSpace(raw.HistoryFile)
	}

	return cfg, nil
}

// applyEnv overrides cfg from the environment.
func (c *config) applyEnv(getenv func(string) string) error {
	if level := getenv(envLogLevel); level != "" {
		if err := c.setLogLevel(level); err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
	}

	return nil
}

func (c *config) setVarint(name string) error {
	v, ok := format.ParseVarintType(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return fmt.Errorf("parse varint %q: %w", name, errs.ErrInvalidVarintType)
	}
	c.Varint = v

	return nil
}

func (c *config) setCompression(name string) error {
	v, ok := format.ParseCompressionType(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return fmt.Errorf("parse compression %q: %w", name, errs.ErrInvalidCompression)
	}
	c.Compression = v

	return nil
}

func (c *config) setLogLevel(name string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return fmt.Errorf("parse log_level: %w", err)
	}
	c.LogLevel = level

	return nil
}

// codecOptions maps cfg onto entity codec options. Zero limits are left unset.
func (c config) codecOptions() []entity.Option {
	opts := []entity.Option{entity.WithVarint(c.Varint)}
	if c.MaxEntities > 0 {
		opts = append(opts, entity.WithMaxEntities(c.MaxEntities))
	}
	if c.MaxPayloadSize > 0 {
		opts = append(opts, entity.WithMaxPayloadSize(c.MaxPayloadSize))
	}

	return opts
}
