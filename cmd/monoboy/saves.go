package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List stored saves",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		files, err := st.List(savebridge.Ext)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "No saves yet.")
			return nil
		}
		for _, f := range files {
			fmt.Fprintf(out, "%-24s %8d bytes\n", f.Name, f.Size)
		}
		return nil
	},
}

var importName string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Copy a ROM or save file into storage",
	Long: `Copy a file into the configured storage. Without --name a .gb file is
stored under the configured rom_name and anything else under its base name.

Examples:
  monoboy import tetris.gb --storage sqlite
  monoboy import TETRIS.sav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		name := importName
		if name == "" {
			name = filepath.Base(args[0])
			if filepath.Ext(name) == ".gb" {
				name = cfg.ROMName
			}
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		f, err := st.Open(name, savebridge.Write)
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%d bytes)\n", name, len(data))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "Name to store the file under")
}
