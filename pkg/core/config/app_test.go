package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAppEnv, envAppServiceName, envAppServiceVersion, envConfigFile, envConfigDir} {
		t.Setenv(key, "")
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	// Arrange
	clearAppEnv(t)

	// Act
	cfg, err := LoadAppConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, defaultServiceName, cfg.ServiceName)
	assert.Equal(t, defaultServiceVersion, cfg.ServiceVersion)
	assert.Equal(t, defaultEnvironment, cfg.Environment)
	assert.Equal(t, filepath.Join(defaultConfigDir, "config.local.yaml"), cfg.ConfigFile)
}

func TestLoadAppConfig_FromEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected AppConfig
	}{
		{
			name: "explicit config file",
			env: map[string]string{
				envAppEnv:            "staging",
				envAppServiceName:    "orders-publisher",
				envAppServiceVersion: "1.2.3",
				envConfigFile:        "/etc/schemapub/config.yaml",
			},
			expected: AppConfig{
				ServiceName:    "orders-publisher",
				ServiceVersion: "1.2.3",
				Environment:    "staging",
				ConfigFile:     "/etc/schemapub/config.yaml",
			},
		},
		{
			name: "config dir combined with environment",
			env: map[string]string{
				envAppEnv:    "pro",
				envConfigDir: "/opt/config",
			},
			expected: AppConfig{
				ServiceName:    defaultServiceName,
				ServiceVersion: defaultServiceVersion,
				Environment:    "pro",
				ConfigFile:     filepath.Join("/opt/config", "config.pro.yaml"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			clearAppEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			// Act
			cfg, err := LoadAppConfig()

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestLoadAppConfig_RejectsFileWithoutExtension(t *testing.T) {
	// Arrange
	clearAppEnv(t)
	t.Setenv(envConfigFile, "/etc/schemapub/config")

	// Act
	_, err := LoadAppConfig()

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), envConfigFile)
}
