// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tib", "tib.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 33, cfg.Analytics.ThemeSize)

	_, err = os.Stat(path)
	assert.NoError(t, err, "default config file should have been written")
}

func TestLoadParsesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tib.yaml")
	content := `
server:
  addr: ":9999"
  text_root: /data/texts
analytics:
  base_url: http://lex.internal:8090
  theme_size: 50
mail:
  admins:
    - ops@textisbeautiful.net
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "/data/texts", cfg.Server.TextRoot)
	assert.Equal(t, "http://lex.internal:8090", cfg.Analytics.BaseURL)
	assert.Equal(t, 50, cfg.Analytics.ThemeSize)
	assert.Equal(t, []string{"ops@textisbeautiful.net"}, cfg.Mail.Admins)
	// Values absent from the file keep their defaults.
	assert.Equal(t, "userprojects", cfg.Analytics.TopProjectFolder)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tib.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analytics:\n  username: filefred\n"), 0644))

	t.Setenv("TIB_ANALYTICS_USERNAME", "envfred")
	t.Setenv("TIB_ANALYTICS_PASSWORD", "hunter2")
	t.Setenv("TIB_MAIL_ADMINS", "a@example.com,b@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "envfred", cfg.Analytics.Username)
	assert.Equal(t, "hunter2", cfg.Analytics.Password)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Mail.Admins)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tib.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
