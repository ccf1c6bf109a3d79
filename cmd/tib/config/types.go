// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

// Config is the full tib configuration tree, loaded once at startup and
// passed explicitly to the services that need each slice of it.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Mail      MailConfig      `yaml:"mail"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// TextRoot is the directory where submitted texts are written before
	// they are attached to an analytics project.
	TextRoot string `yaml:"text_root"`
}

type AnalyticsConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TopProjectFolder and TopDataFolder name the service's top-level
	// folders under which each account keeps its own subfolder.
	TopProjectFolder string `yaml:"top_project_folder"`
	TopDataFolder    string `yaml:"top_data_folder"`
	DataFolder       string `yaml:"data_folder"`

	// ProjectConfigXML is pushed verbatim to every new project.
	ProjectConfigXML string `yaml:"project_config_xml"`

	// ThemeSize controls theme clustering granularity on the concept map.
	ThemeSize int `yaml:"theme_size"`
}

type MailConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	Admins   []string `yaml:"admins"`
}

type FeedbackConfig struct {
	// Path is the BadgerDB directory for feedback submissions.
	Path string `yaml:"path"`
}

type TelemetryConfig struct {
	// OTLPEndpoint is the gRPC collector address. Empty disables tracing.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Dir enables daily log files when set.
	Dir string `yaml:"dir"`
}

// Default returns a config suitable for local development.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":8080",
			TextRoot: "/tmp/tib",
		},
		Analytics: AnalyticsConfig{
			BaseURL:          "http://localhost:8090/lex",
			TopProjectFolder: "userprojects",
			TopDataFolder:    "userdata",
			ThemeSize:        33,
		},
		Mail: MailConfig{
			Port: 587,
		},
		Feedback: FeedbackConfig{
			Path: "/tmp/tib/feedback",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
