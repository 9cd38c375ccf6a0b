package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shout/internal/dbus"
)

var sendOpts struct {
	title    string
	subtitle string
	image    string
	appName  string
	urgency  string
	duration time.Duration
	action   string
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a desktop notification",
	Long: `Send a notification over D-Bus to the running notification server.

With shoutd running the notification is shown as a drop-down banner: the
title and subtitle map to the summary and body, --image to the image-path
hint and --duration to the expiry timeout.`,
	Example: `  shout send --title "Build finished" --subtitle "All tests passed"
  shout send --title "Disk full" --urgency critical --duration 10s`,
	RunE: runSend,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the running notification server",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(infoCmd)

	sendCmd.Flags().StringVarP(&sendOpts.title, "title", "t", "", "Banner title (notification summary)")
	sendCmd.Flags().StringVarP(&sendOpts.subtitle, "subtitle", "s", "", "Banner subtitle (notification body)")
	sendCmd.Flags().StringVar(&sendOpts.image, "image", "", "Image file or icon name")
	sendCmd.Flags().StringVar(&sendOpts.appName, "app-name", "shout", "Application name")
	sendCmd.Flags().StringVarP(&sendOpts.urgency, "urgency", "u", "normal", "Urgency: low, normal or critical")
	sendCmd.Flags().DurationVarP(&sendOpts.duration, "duration", "d", 0,
		"Display time (default: the server's timeout for the urgency)")
	sendCmd.Flags().StringVar(&sendOpts.action, "action", "", "Label of the default action")
}

func runSend(cmd *cobra.Command, args []string) error {
	if sendOpts.title == "" && sendOpts.subtitle == "" {
		return fmt.Errorf("--title or --subtitle is required")
	}
	msg, err := buildMessage()
	if err != nil {
		return err
	}

	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := client.Send(ctx, msg)
	if err != nil {
		return err
	}
	logger.Debug("notification sent", "id", id, "urgency", msg.Urgency)

	shown := "the server default"
	if msg.Timeout > 0 {
		shown = humanizeDuration(msg.Timeout)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent notification %s, shown for %s\n", humanize.Comma(int64(id)), shown)
	return nil
}

func buildMessage() (dbus.Message, error) {
	urgency, err := parseUrgency(sendOpts.urgency)
	if err != nil {
		return dbus.Message{}, err
	}
	msg := dbus.Message{
		AppName: sendOpts.appName,
		Summary: sendOpts.title,
		Body:    sendOpts.subtitle,
		Urgency: urgency,
		Timeout: sendOpts.duration,
	}
	switch {
	case sendOpts.image == "":
	case strings.ContainsRune(sendOpts.image, filepath.Separator):
		path, err := filepath.Abs(sendOpts.image)
		if err != nil {
			return dbus.Message{}, fmt.Errorf("invalid image path: %w", err)
		}
		msg.ImagePath = path
	default:
		msg.AppIcon = sendOpts.image
	}
	if sendOpts.action != "" {
		msg.Actions = []dbus.Action{{Key: "default", Label: sendOpts.action}}
	}
	return msg, nil
}

// parseUrgency converts an urgency name to its D-Bus level.
func parseUrgency(s string) (byte, error) {
	switch strings.ToLower(s) {
	case "low", "0":
		return dbus.UrgencyLow, nil
	case "", "normal", "1":
		return dbus.UrgencyNormal, nil
	case "critical", "2":
		return dbus.UrgencyCritical, nil
	default:
		return 0, fmt.Errorf("invalid urgency %q (must be low, normal or critical)", s)
	}
}

func humanizeDuration(d time.Duration) string {
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", ""))
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := client.ServerInformation(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "name:    %s\n", info.Name)
	fmt.Fprintf(out, "vendor:  %s\n", info.Vendor)
	fmt.Fprintf(out, "version: %s\n", info.Version)
	fmt.Fprintf(out, "spec:    %s\n", info.SpecVersion)
	return nil
}
