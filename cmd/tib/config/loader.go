// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the tib configuration from a YAML file with
// environment-variable overrides for the credentials that should never sit
// in a file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the config at path, creating a default file on first run, and
// applies environment overrides. The result is returned by value so callers
// own their copy.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefault(path); err != nil {
			return Config{}, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers TIB_* environment variables over the file values.
// Credentials are the usual case; the listen address helps in containers.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TIB_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TIB_ANALYTICS_URL"); v != "" {
		cfg.Analytics.BaseURL = v
	}
	if v := os.Getenv("TIB_ANALYTICS_USERNAME"); v != "" {
		cfg.Analytics.Username = v
	}
	if v := os.Getenv("TIB_ANALYTICS_PASSWORD"); v != "" {
		cfg.Analytics.Password = v
	}
	if v := os.Getenv("TIB_MAIL_USERNAME"); v != "" {
		cfg.Mail.Username = v
	}
	if v := os.Getenv("TIB_MAIL_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("TIB_MAIL_ADMINS"); v != "" {
		cfg.Mail.Admins = strings.Split(v, ",")
	}
	if v := os.Getenv("TIB_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
}

func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	fmt.Printf("First run detected, creating the config at %s\n", path)
	return os.WriteFile(path, data, 0644)
}
