// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadInstanceConfiguration.
const (
	EnvDebug      = "WLVK_DEBUG"
	EnvExtensions = "WLVK_EXTENSIONS"
	EnvLayers     = "WLVK_LAYERS"

	// EnvLoaderLayers is read, never written: the Vulkan loader enables
	// the layers it lists on its own.
	EnvLoaderLayers = "VK_INSTANCE_LAYERS"
)

var staticResources = packr.NewBox("./resources")

// InstanceConfiguration describes the instance an application wants.
type InstanceConfiguration struct {
	// DebugMode adds the validation layer and the debug utils extension.
	DebugMode  bool
	Extensions []string
	Layers     []string

	// LoaderLayers are the layers VK_INSTANCE_LAYERS makes the loader
	// enable behind this package's back. Informational only.
	LoaderLayers []string
}

// LoadInstanceConfiguration reads the configuration from the environment.
// Variables missing from the environment are taken from the given .env
// files, then from the bundled defaults.
func LoadInstanceConfiguration(files ...string) (InstanceConfiguration, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return InstanceConfiguration{}, err
		}
	}
	defaults, err := loadDefaults()
	if err != nil {
		return InstanceConfiguration{}, err
	}
	// envy caches the environment, pick up what the files just set.
	envy.Reload()

	cfg := InstanceConfiguration{
		Extensions:   splitList(envy.Get(EnvExtensions, defaults[EnvExtensions])),
		Layers:       splitList(envy.Get(EnvLayers, defaults[EnvLayers])),
		LoaderLayers: filepath.SplitList(envy.Get(EnvLoaderLayers, "")),
	}
	if debug := strings.TrimSpace(envy.Get(EnvDebug, defaults[EnvDebug])); debug != "" {
		if cfg.DebugMode, err = strconv.ParseBool(debug); err != nil {
			return InstanceConfiguration{}, &ConfigError{Key: EnvDebug, Value: debug, Err: err}
		}
	}
	return cfg, nil
}

func loadDefaults() (map[string]string, error) {
	resource, err := staticResources.FindString("defaults.env")
	if err != nil {
		return nil, err
	}
	return godotenv.Parse(strings.NewReader(resource))
}

// Builder returns an InstanceBuilder requesting everything cfg asks for.
func (cfg InstanceConfiguration) Builder(l Loader) *InstanceBuilder {
	b := NewInstanceBuilder(l).
		WithExtensions(cfg.Extensions...).
		WithLayers(cfg.Layers...)
	if cfg.DebugMode {
		b.WithLayer(ValidationLayerName).WithExtension(DebugUtilsExtensionName)
	}
	return b
}

// ConfigError is an environment variable holding an unusable value.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return "invalid " + e.Key + "=" + strconv.Quote(e.Value) + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
