package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shout/internal/tui"
)

var demoOpts struct {
	title    string
	subtitle string
	image    string
	duration time.Duration
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show banners over the terminal",
	Long: `Present drop-down banners in the terminal.

The first banner appears as soon as the terminal size is known. Without
--title and --subtitle the demo cycles through sample content.

Mouse:
  click        Run the banner action and dismiss it
  drag down    Reveal the full subtitle, release past the threshold to open
  drag up      Fling the banner away

Key bindings:
  n           New banner
  i           New banner with an image
  d           Dismiss the current banner
  r           Simulate a rotation
  ↑/↓         Scroll the event log
  ?           Show help
  q           Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoOpts.title, "title", "", "Banner title")
	demoCmd.Flags().StringVar(&demoOpts.subtitle, "subtitle", "", "Banner subtitle")
	demoCmd.Flags().StringVar(&demoOpts.image, "image", "", "Image file shown at the leading edge")
	demoCmd.Flags().DurationVar(&demoOpts.duration, "duration", 0,
		"Time before a banner dismisses itself (default: timeouts.normal)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	tuiLogger, closer, err := tui.OpenLog(logLevel())
	if err != nil {
		logger.Warn("logging to file disabled", "error", err)
		tuiLogger = logger
	} else {
		defer closer.Close()
	}

	return tui.RunDemo(cfg, tui.DemoOptions{
		Title:    demoOpts.title,
		Subtitle: demoOpts.subtitle,
		Image:    demoOpts.image,
		Duration: demoOpts.duration,
	}, tuiLogger)
}
