// Package cmd defines the padcore CLI commands.
package cmd

// LogConfig groups the logging flags shared by all commands.
type LogConfig struct {
	Level string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"PADCORE_LOG_LEVEL"`
	File  string `help:"Write logs to this file instead of the console" env:"PADCORE_LOG_FILE"`
}

// CLI is the root kong command tree.
type CLI struct {
	ConfigFile string    `name:"config-file" help:"Path to a config file" env:"PADCORE_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Monitor MonitorCommand `cmd:"" help:"Stream controller events to the console"`
	Devices DevicesCommand `cmd:"" help:"List attached controllers"`
	Config  ConfigCommand  `cmd:"" help:"Manage configuration files"`
}
