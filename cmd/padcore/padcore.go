package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/padcore/padcore/internal/cmd"
	"github.com/padcore/padcore/internal/configpaths"
	"github.com/padcore/padcore/internal/log"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("padcore"),
		kong.Description("Game-controller input backend"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order;
		// flags and environment override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFile, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	if closeFile != nil {
		defer func() { _ = closeFile.Close() }()
	}

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config-file=") {
			return a[len("--config-file="):]
		}
		if a == "--config-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("PADCORE_CONFIG")
}
