package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/config"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/session"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the window",
	Long: `Open a window showing the 400x240 panel.

Controls:
  Arrows       - D-pad
  Z / X        - A / B
  Mouse wheel  - Crank (forward = START, back = SELECT)
  , / .        - Crank back / forward
  F5           - Save
  F12          - Screenshot
  Esc          - Menu`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func openSession(cfg config.Config, st store, logger session.Logger) (*session.Session, error) {
	return session.Open(st, logger, session.Options{
		ROMName: cfg.ROMName,
		NewCore: session.MachineFactory(emu.Config{
			SkipBootScroll: cfg.SkipBootScroll,
			PanStep:        cfg.PanStep,
		}),
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
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

	app, err := ui.NewApp(ui.Config{
		Title:                "monoboy",
		Scale:                cfg.WindowScale,
		ROMName:              cfg.ROMName,
		CrankDegreesPerNotch: cfg.CrankDegreesPerNotch,
		Keys: ui.KeyNames{
			A:            cfg.Keys.A,
			B:            cfg.Keys.B,
			Start:        cfg.Keys.Start,
			Select:       cfg.Keys.Select,
			CrankForward: cfg.Keys.CrankForward,
			CrankBack:    cfg.Keys.CrankBack,
		},
	}, sess, logger)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		logger.Error("session ended", "err", err)
		return err
	}
	return nil
}
