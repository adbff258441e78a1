// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets DOTCTL_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("DOTCTL_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

// withConfig is a helper that sets up a test config and executes a test function.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()
	cleanup := setupTestConfig(t, testFile)
	defer cleanup()
	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "nvim", cfg.Data["editor"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				lapse, ok := cfg.Data["lapse"].(map[string]interface{})
				assert.True(t, ok, "lapse should be a map")
				assert.Equal(t, 20, lapse["speed"])
				assert.Equal(t, "fast", lapse["preset"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "dotfiles", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				tags, ok := cfg.Data["tags"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, tags, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("DOTCTL_CFG_FILE", "/nonexistent/path/dotctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("DOTCTL_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		got, err := GetString("lapse.preset")
		assert.NoError(t, err)
		assert.Equal(t, "fast", got)

		got, err = GetString("lapse.missing", "quality")
		assert.NoError(t, err)
		assert.Equal(t, "quality", got)

		_, err = GetString("lapse.missing")
		assert.Error(t, err)

		_, err = GetString("lapse.speed")
		assert.Error(t, err, "int is not a string")
	})
}

func TestGetIntAndFloat(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		i, err := GetInt("lapse.speed")
		assert.NoError(t, err)
		assert.Equal(t, 20, i)

		i, err = GetInt("tone.carrier")
		assert.NoError(t, err)
		assert.Equal(t, 180, i)

		f, err := GetFloat("tone.carrier")
		assert.NoError(t, err)
		assert.InDelta(t, 180.5, f, 0.0001)

		f, err = GetFloat("tone.beat")
		assert.NoError(t, err)
		assert.InDelta(t, 8.0, f, 0.0001)

		f, err = GetFloat("tone.volume", 0.3)
		assert.NoError(t, err)
		assert.InDelta(t, 0.3, f, 0.0001)

		_, err = GetInt("lapse.preset")
		assert.Error(t, err)
	})
}

func TestGetBool(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		b, err := GetBool("backup.push")
		assert.NoError(t, err)
		assert.False(t, b)

		b, err = GetBool("backup.missing", true)
		assert.NoError(t, err)
		assert.True(t, b)

		_, err = GetBool("backup.dir")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		got, err := GetStringSlice("tags")
		assert.NoError(t, err)
		assert.Equal(t, []string{"shell", "nvim"}, got)

		got, err = GetStringSlice("missing", []string{"x"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"x"}, got)

		_, err = GetStringSlice("name")
		assert.Error(t, err)
	})
}

func TestNamespaceFallback(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		Config.Namespace = "lapse"

		got, err := GetString("preset")
		assert.NoError(t, err)
		assert.Equal(t, "fast", got)

		// Fully qualified keys still resolve with a namespace set.
		f, err := GetFloat("tone.beat")
		assert.NoError(t, err)
		assert.InDelta(t, 8.0, f, 0.0001)
	})
}

func TestDecode(t *testing.T) {
	withConfig(t, "targets.yaml", func(t *testing.T) {
		var targets []struct {
			Name       string   `yaml:"name"`
			ThemesDir  string   `yaml:"themes_dir"`
			Reload     []string `yaml:"reload"`
			RequireEnv string   `yaml:"require_env"`
		}

		found, err := Decode("theme.targets", &targets)
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, targets, 2)
		assert.Equal(t, "kitty", targets[0].Name)
		assert.Equal(t, "{current}", targets[0].Reload[5])
		assert.Equal(t, "TMUX", targets[1].RequireEnv)

		found, err = Decode("theme.missing", &targets)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dotctl.env")
	require.NoError(t, os.WriteFile(path, []byte("DOTCTL_TEST_ONE=one\nDOTCTL_TEST_TWO=two\n"), 0o600))

	t.Setenv("DOTCTL_ENV_FILE", path)
	t.Setenv("DOTCTL_TEST_TWO", "preset")
	// Registered for cleanup so LoadEnv's value does not leak.
	t.Setenv("DOTCTL_TEST_ONE", "")
	require.NoError(t, os.Unsetenv("DOTCTL_TEST_ONE"))

	require.NoError(t, LoadEnv())
	assert.Equal(t, "one", os.Getenv("DOTCTL_TEST_ONE"))
	assert.Equal(t, "preset", os.Getenv("DOTCTL_TEST_TWO"), "existing env wins")
}

func TestLoadEnv_MissingFile(t *testing.T) {
	t.Setenv("DOTCTL_ENV_FILE", filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, LoadEnv())
}
