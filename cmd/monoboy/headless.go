package main

import (
	"fmt"
	"hash/crc32"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/preview"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/session"
)

var (
	flagFrames  int
	flagPNGOut  string
	flagExpect  string
	flagPreview bool
	flagCrop    bool
	flagCrank   []float64
	flagSave    bool
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run frames without a window",
	Long: `Run the session for a number of frames and report the CRC32 of the
packed panel buffer.

Examples:
  monoboy headless --frames 120 --preview
  monoboy headless --frames 120 --expect 1a2b3c4d
  monoboy headless --crank 15,15,0,-15 --save`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagFrames, "frames", 120, "Frames to run")
	headlessCmd.Flags().StringVar(&flagPNGOut, "outpng", "", "Write the last panel to PNG at path")
	headlessCmd.Flags().StringVar(&flagExpect, "expect", "", "Assert panel CRC32 (hex)")
	headlessCmd.Flags().BoolVar(&flagPreview, "preview", false, "Print the last panel to the terminal")
	headlessCmd.Flags().BoolVar(&flagCrop, "crop", false, "Preview only the scaled image")
	headlessCmd.Flags().Float64SliceVar(&flagCrank, "crank", nil, "Crank degrees for the first frames")
	headlessCmd.Flags().BoolVar(&flagSave, "save", false, "Save battery RAM after the last frame")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := openSession(cfg, st, logger)
	if err != nil {
		return err
	}

	frames := flagFrames
	if frames <= 0 {
		frames = 1
	}
	panel := display.NewPanel()
	start := time.Now()
	for i := 0; i < frames; i++ {
		var in session.Input
		if i < len(flagCrank) {
			in.Crank = flagCrank[i]
		}
		sess.Update(in, panel)
	}
	dur := time.Since(start)

	var last display.Buffer
	var rows display.RowRange
	panel.Present(func(fb *display.Buffer, r display.RowRange) {
		last, rows = *fb, r
	})
	crc := crc32.ChecksumIEEE(last[:])
	logger.Info("headless",
		"frames", frames,
		"elapsed", dur.Truncate(time.Millisecond),
		"fps", fmt.Sprintf("%.2f", float64(frames)/dur.Seconds()),
		"rows", fmt.Sprintf("%d-%d", rows.First, rows.Last),
		"crc32", fmt.Sprintf("%08x", crc),
	)

	if flagPreview {
		title := "monoboy"
		if h := sess.Header(); h != nil {
			title += " - " + h.Title
		}
		if sess.HasROM() {
			fmt.Println(preview.Render(&last, preview.Options{Crop: flagCrop, Title: title}))
		} else {
			fmt.Println(preview.Message(session.NoROMText(cfg.ROMName), title))
		}
	}

	if flagPNGOut != "" {
		if err := writePNG(&last, flagPNGOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		logger.Info("wrote", "path", flagPNGOut)
	}

	if flagSave {
		if err := sess.Save(); err != nil {
			logger.Error("save failed", "err", err)
			return err
		}
	}

	return checkCRC(logger, crc, flagExpect)
}

func checkCRC(logger *log.Logger, crc uint32, expect string) error {
	if expect == "" {
		return nil
	}
	// allow with/without 0x, upper/lowercase
	want := strings.TrimPrefix(strings.ToLower(expect), "0x")
	got := fmt.Sprintf("%08x", crc)
	if got != want {
		return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
	}
	logger.Debug("checksum ok", "crc32", got)
	return nil
}

func writePNG(fb *display.Buffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.Image())
}
