package main

import (
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the process configuration. Precedence, lowest to highest:
// defaults, config file, environment (HOST, PORT, DOCROOT), flags.
type Config struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Root         string `toml:"root"`
	Index        string `toml:"index"`
	DrainSeconds int    `toml:"drain_seconds"`

	TFTP     bool   `toml:"tftp"`
	TFTPAddr string `toml:"tftp_addr"`
	NFS      bool   `toml:"nfs"`
	NFSAddr  string `toml:"nfs_addr"`
}

func defaultConfig() Config {
	return Config{
		Host:         "",
		Port:         8000,
		Root:         ".",
		Index:        "index.html",
		DrainSeconds: 10,
		TFTPAddr:     ":69",
		NFSAddr:      ":2049",
	}
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT=%q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("DOCROOT"); v != "" {
		cfg.Root = v
	}
	return nil
}
