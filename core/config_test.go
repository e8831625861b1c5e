// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/wlvk/core"
)

// isolateEnv clears the configuration variables for the duration of a
// test, .env files loaded by the test included.
func isolateEnv(c *qt.C) {
	for _, key := range []string{core.EnvDebug, core.EnvExtensions, core.EnvLayers, core.EnvLoaderLayers} {
		key := key
		old, ok := os.LookupEnv(key)
		os.Unsetenv(key)
		c.Cleanup(func() {
			if ok {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadInstanceConfigurationDefaults(t *testing.T) {
	c := qt.New(t)
	isolateEnv(c)

	cfg, err := core.LoadInstanceConfiguration()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DebugMode, qt.Equals, false)
	c.Assert(cfg.Extensions, qt.HasLen, 0)
	c.Assert(cfg.Layers, qt.HasLen, 0)
}

func TestLoadInstanceConfigurationEnvironment(t *testing.T) {
	c := qt.New(t)
	isolateEnv(c)
	os.Setenv(core.EnvDebug, "true")
	os.Setenv(core.EnvExtensions, "VK_KHR_surface, VK_KHR_wayland_surface,")
	os.Setenv(core.EnvLayers, "VK_LAYER_MESA_device_select")
	os.Setenv(core.EnvLoaderLayers, "VK_LAYER_a"+string(os.PathListSeparator)+"VK_LAYER_b")

	cfg, err := core.LoadInstanceConfiguration()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, core.InstanceConfiguration{
		DebugMode:    true,
		Extensions:   []string{"VK_KHR_surface", "VK_KHR_wayland_surface"},
		Layers:       []string{"VK_LAYER_MESA_device_select"},
		LoaderLayers: []string{"VK_LAYER_a", "VK_LAYER_b"},
	})
}

func TestLoadInstanceConfigurationFile(t *testing.T) {
	c := qt.New(t)
	isolateEnv(c)
	os.Setenv(core.EnvLayers, "VK_LAYER_from_env")

	file := filepath.Join(c.TempDir(), "wlvk.env")
	err := os.WriteFile(file, []byte("WLVK_EXTENSIONS=VK_KHR_display\nWLVK_LAYERS=VK_LAYER_from_file\n"), 0o600)
	c.Assert(err, qt.IsNil)

	cfg, err := core.LoadInstanceConfiguration(file)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Extensions, qt.DeepEquals, []string{"VK_KHR_display"})
	// The environment wins over files.
	c.Assert(cfg.Layers, qt.DeepEquals, []string{"VK_LAYER_from_env"})
}

func TestLoadInstanceConfigurationMissingFile(t *testing.T) {
	c := qt.New(t)
	isolateEnv(c)

	_, err := core.LoadInstanceConfiguration(filepath.Join(c.TempDir(), "absent.env"))
	c.Assert(errors.Is(err, os.ErrNotExist), qt.Equals, true)
}

func TestLoadInstanceConfigurationInvalidDebug(t *testing.T) {
	c := qt.New(t)
	isolateEnv(c)
	os.Setenv(core.EnvDebug, "sometimes")

	_, err := core.LoadInstanceConfiguration()
	var cfgErr *core.ConfigError
	c.Assert(errors.As(err, &cfgErr), qt.Equals, true)
	c.Assert(cfgErr.Key, qt.Equals, core.EnvDebug)
	c.Assert(errors.Is(err, strconv.ErrSyntax), qt.Equals, true)
}
