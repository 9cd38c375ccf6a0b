package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shout/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Mirror desktop notifications as terminal banners",
	Long: `Watch the session bus and show every desktop notification as a banner
in the terminal. Each notification replaces the banner on screen.

The notifications are observed, not claimed: the running notification daemon
(shoutd, dunst, mako) still shows them as usual.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	tuiLogger, closer, err := tui.OpenLog(logLevel())
	if err != nil {
		logger.Warn("logging to file disabled", "error", err)
		tuiLogger = logger
	} else {
		defer closer.Close()
	}
	return tui.RunWatch(cfg, tuiLogger)
}
