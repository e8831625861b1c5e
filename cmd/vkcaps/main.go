// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/wlvk/core"
	"github.com/devblok/wlvk/device"
	"github.com/devblok/wlvk/format"
)

var (
	output  = flag.String("o", "", "Write the report to a file, lz4 compressed when it ends in .lz4")
	devices = flag.Bool("devices", true, "Create an instance and describe physical devices")
	verbose = flag.Bool("v", false, "Verbose logging")
)

// Capabilities is what the loader and its drivers offer.
type Capabilities struct {
	Extensions      []string                    `json:"extensions"`
	Layers          []string                    `json:"layers"`
	LayerExtensions map[string][]string         `json:"layerExtensions,omitempty"`
	ShmFormats      []string                    `json:"shmFormats"`
	Devices         []device.PhysicalDeviceInfo `json:"devices,omitempty"`
}

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	loader, err := core.Load()
	if err != nil {
		log.Fatal(err)
	}

	caps, err := collect(loader, *devices)
	if err != nil {
		log.Fatal(err)
	}

	if err := write(*output, caps); err != nil {
		log.Fatal(err)
	}
}

func collect(l core.Loader, withDevices bool) (*Capabilities, error) {
	var (
		caps Capabilities
		err  error
	)
	if caps.Extensions, err = core.EnumerateExtensions(l); err != nil {
		return nil, err
	}
	if caps.Layers, err = core.EnumerateLayers(l); err != nil {
		return nil, err
	}
	for _, layer := range caps.Layers {
		exts, err := core.EnumerateLayerExtensions(l, layer)
		if err != nil {
			log.WithField("layer", layer).Warn(err)
			continue
		}
		if len(exts) == 0 {
			continue
		}
		if caps.LayerExtensions == nil {
			caps.LayerExtensions = make(map[string][]string)
		}
		caps.LayerExtensions[layer] = exts
	}
	for _, f := range format.ShmFormats() {
		caps.ShmFormats = append(caps.ShmFormats, f.String())
	}

	if !withDevices {
		return &caps, nil
	}

	instance, err := core.NewInstanceBuilder(l).Build()
	if err != nil {
		return nil, err
	}
	defer instance.Release()

	if caps.Devices, err = device.Enumerate(instance); err != nil {
		return nil, err
	}
	return &caps, nil
}

func write(path string, caps *Capabilities) error {
	if path == "" {
		return encode(os.Stdout, caps)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".lz4") {
		if err := encode(f, caps); err != nil {
			return err
		}
		return f.Close()
	}

	zw := lz4.NewWriter(f)
	if err := encode(zw, caps); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	log.WithField("file", path).Debug("wrote compressed report")
	return f.Close()
}

func encode(w io.Writer, caps *Capabilities) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(caps)
}
