package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/cart"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
)

var infoCmd = &cobra.Command{
	Use:   "info <rom>",
	Short: "Show a ROM header and its save name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		h, err := cart.ParseHeader(rom)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Title:     %q\n", h.Title)
		fmt.Fprintf(out, "Type:      %s (%#02x)\n", h.CartTypeStr, h.CartType)
		fmt.Fprintf(out, "ROM:       %d bytes\n", h.ROMSizeBytes)
		fmt.Fprintf(out, "RAM:       %d bytes (battery: %v)\n", h.RAMSizeBytes, h.Battery)
		fmt.Fprintf(out, "Logo:      %v\n", h.LogoOK)
		fmt.Fprintf(out, "Checksum:  %v\n", cart.HeaderChecksumOK(rom))
		fmt.Fprintf(out, "Save file: %s\n", savebridge.FileName(h.Identity()))
		return nil
	},
}
