// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/wlvk/core"
	"github.com/devblok/wlvk/core/renderer"
	"github.com/devblok/wlvk/device"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile = flag.String("env", "", "Read configuration from this .env file as well")
	useSDL  = flag.Bool("sdl", false, "Load Vulkan through SDL and request its surface extensions")
	debug   = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	verbose = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := core.LoadInstanceConfiguration(files...)
	if err != nil {
		log.Fatal(err)
	}
	cfg.DebugMode = cfg.DebugMode || *debug
	if len(cfg.LoaderLayers) > 0 {
		log.WithField("layers", cfg.LoaderLayers).Info("loader enables layers from " + core.EnvLoaderLayers)
	}

	var (
		loader     core.Loader
		extensions []string
	)
	if *useSDL {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			log.Fatal(err)
		}
		defer sdl.Quit()

		if err := sdl.VulkanLoadLibrary(""); err != nil {
			log.Fatal(err)
		}
		defer sdl.VulkanUnloadLibrary()

		// SDL only reports surface extensions for a Vulkan window.
		window, err := sdl.CreateWindow("wlvk",
			sdl.WINDOWPOS_UNDEFINED,
			sdl.WINDOWPOS_UNDEFINED,
			1, 1,
			sdl.WINDOW_VULKAN|sdl.WINDOW_HIDDEN)
		if err != nil {
			log.Fatal(err)
		}
		extensions = window.VulkanGetInstanceExtensions()
		window.Destroy()

		if loader, err = core.LoadFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr()); err != nil {
			log.Fatal(err)
		}
	} else if loader, err = core.Load(); err != nil {
		log.Fatal(err)
	}

	if err := run(loader, cfg, extensions); err != nil {
		log.Fatal(err)
	}
}

func run(l core.Loader, cfg core.InstanceConfiguration, extensions []string) error {
	instance, err := cfg.Builder(l).
		WithExtensions(extensions...).
		Build()
	if err != nil {
		return err
	}
	defer instance.Release()

	log.WithFields(log.Fields{
		"extensions": instance.Extensions(),
		"layers":     instance.Layers(),
	}).Info("vulkan instance created")

	devices, err := device.Enumerate(instance)
	if err != nil {
		return err
	}
	for _, dev := range devices {
		log.WithFields(log.Fields{
			"name":   dev.Name,
			"api":    dev.APIVersion,
			"memory": dev.Memory,
		}).Info("physical device")
	}

	vkRenderer, err := renderer.NewVulkanRenderer(instance, renderer.Configuration{})
	if err != nil {
		return err
	}
	defer vkRenderer.Release()

	for _, f := range vkRenderer.ShmFormats() {
		vf, _, _ := vkRenderer.ViewFormat(f)
		log.WithField("format", vf).Debug(f)
	}
	log.WithField("count", len(vkRenderer.ShmFormats())).Info("wl_shm formats supported")
	return nil
}
