package main

import (
	"fmt"
	"os"

	"github.com/agentforge/agentforge/src/config"
	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `short:"c" help:"Path to config file (defaults to the XDG config dir)"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides config"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the HTTP ingress (default)"`
	Prompt  PromptCmd  `cmd:"" help:"Send a single message from the terminal"`
	Migrate MigrateCmd `cmd:"" help:"Database migrations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("agentforge"),
		kong.Description("Conversational financial assistant backed by Ghostfolio"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path and applies CLI-level overrides.
func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		return nil, err
	}

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	return cfg, nil
}
