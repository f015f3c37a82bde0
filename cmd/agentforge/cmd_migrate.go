package main

import (
	"fmt"

	"github.com/agentforge/agentforge/src/config"
	"github.com/agentforge/agentforge/src/storage"
	"github.com/alecthomas/kong"
)

// MigrateCmd manages database migrations
type MigrateCmd struct {
	Up MigrateUpCmd `cmd:"" help:"Run pending migrations"`
}

// MigrateUpCmd runs pending migrations
type MigrateUpCmd struct {
	DBPath string `help:"Database path (defaults to config)"`
}

// Run executes the migrate up command
func (c *MigrateUpCmd) Run(ctx *kong.Context, cli *CLI) error {
	dbPath := c.DBPath
	if dbPath == "" {
		cfg, err := loadConfig(cli)
		if err != nil {
			return err
		}
		dbPath = cfg.Storage.DatabasePath
		if dbPath == "" {
			dbPath = config.DefaultDatabasePath()
		}
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Database ready: %s (migrations applied on open)\n", dbPath)
	return nil
}
