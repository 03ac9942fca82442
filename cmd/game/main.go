package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"impulse-scene/internal/commands"
	"impulse-scene/internal/config"
)

func main() {
	reg := commands.NewRegistry(os.Stderr)
	registerCLI(reg)

	args := os.Args[1:]
	// "game" and "game -variant bunny" both mean run.
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		args = append([]string{"run"}, args...)
	}
	if args[0] == "help" {
		reg.Usage()
		return
	}
	if err := reg.Execute(args); err != nil {
		if errors.Is(err, commands.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "game:", err)
		os.Exit(1)
	}
}

// registerCLI adds the process-level subcommands: run, config and fetch.
func registerCLI(reg *commands.Registry) {
	runFS := commands.NewFlagSet("run")
	var ro runOptions
	runFS.StringVar(&ro.configPath, "config", config.ConfigPath, "settings file")
	runFS.StringVar(&ro.variant, "variant", "", "scene variant (overrides the file and "+config.EnvVariant+")")
	runFS.Int64Var(&ro.seed, "seed", 0, "random seed for jitter and colours (0 = time based)")
	reg.Register("run", "open the scene window (default)", runFS, func() error {
		return runScene(ro)
	})

	cfgFS := commands.NewFlagSet("config")
	cfgPath := cfgFS.String("config", config.ConfigPath, "settings file to write")
	force := cfgFS.Bool("force", false, "overwrite an existing file")
	reg.Register("config", "write the default settings file", cfgFS, func() error {
		return writeDefaultConfig(*cfgPath, *force)
	})

	fetchFS := commands.NewFlagSet("fetch")
	fetchCfg := fetchFS.String("config", config.ConfigPath, "settings file")
	fetchVariant := fetchFS.String("variant", "", "variant whose model_url to download")
	reg.Register("fetch", "download a variant's remote model into the cache", fetchFS, func() error {
		return fetchModel(*fetchCfg, *fetchVariant)
	})
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use -force to overwrite)", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}
