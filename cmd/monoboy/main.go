// monoboy shows a 160x144 four-shade handheld screen on a 400x240 1-bit
// panel, with the crank standing in for START and SELECT.
//
// Usage:
//
//	monoboy run                 - Open the window
//	monoboy headless            - Run frames without a window, report a checksum
//	monoboy info <rom>          - Show a ROM header and its save name
//	monoboy saves               - List stored saves
//	monoboy import <file>       - Copy a ROM or save into storage
//
// Global flags:
//
//	--config <path>     - Config YAML (default: ~/.monoboy/config.yaml, ./monoboy.yaml)
//	--data-dir <path>   - Where rom.gb and saves live
//	--storage dir|sqlite
//	--log-level <lvl>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/config"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/storage"
)

var (
	flagConfig   string
	flagDataDir  string
	flagStorage  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "monoboy",
	Short:         "Game Boy screen on a 1-bit display",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory holding rom.gb and saves")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Save storage: dir or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(importCmd)
}

// loadConfig applies command-line overrides on top of the config file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagStorage != "" {
		cfg.Storage = flagStorage
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "monoboy",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

// store is a save collaborator that may hold resources.
type store interface {
	savebridge.FS
	List(ext string) ([]savebridge.FileInfo, error)
	io.Closer
}

type dirStore struct{ *storage.Dir }

func (dirStore) Close() error { return nil }

func openStore(cfg config.Config) (store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		d, err := storage.OpenDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return dirStore{d}, nil
	}
}
