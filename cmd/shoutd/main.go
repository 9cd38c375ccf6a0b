// Package main is the entry point for the shoutd banner daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/shout/internal/audio"
	"github.com/jmylchreest/shout/internal/banner"
	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/daemon"
	"github.com/jmylchreest/shout/internal/dbus"
	"github.com/jmylchreest/shout/internal/display"
)

const (
	appID   = "io.github.jmylchreest.shoutd"
	appName = "shoutd"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/shout/shout.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("shoutd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		path = config.ConfigPath()
	}
	os.Exit(run(path, logger))
}

// run owns the GTK application and returns its exit status.
func run(configPath string, logger *slog.Logger) int {
	logger.Info("starting shoutd", "version", version)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	app := adw.NewApplication(appID, 0)

	// Shared between the GTK main loop and the signal handler
	var (
		dbusServer       *dbus.NotificationServer
		displayManager   *display.Manager
		styles           *display.StyleLoader
		chime            *audio.Chime
		configWatcher    *daemon.ConfigWatcher
		themeWatcher     *daemon.FileWatcher
		internalNotifier *daemon.InternalNotifier
		running          atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := func() {
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if themeWatcher != nil {
			_ = themeWatcher.Stop()
		}
		if chime != nil {
			chime.Close()
		}
		if displayManager != nil {
			displayManager.Stop()
		}
		if dbusServer != nil {
			_ = dbusServer.Stop()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		styles = display.NewStyleLoader(logger)
		if err := styles.Load(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme, using default", "error", err)
		}

		chime = audio.NewChime(cfg, audio.NewPlayer(logger), logger)
		chime.Preload()

		displayManager = display.NewManager(&app.Application, cfg, logger)
		if err := displayManager.Start(); err != nil {
			logger.Error("failed to start display manager", "error", err)
			app.Quit()
			return
		}

		dbusServer = dbus.NewNotificationServer(logger)
		dbusServer.SetServerInfo(dbus.ServerInfo{
			Name:        appName,
			Vendor:      "shout",
			Version:     version,
			SpecVersion: "1.2",
		})

		dispatcher := daemon.NewDispatcher(cfg, displayManager, dbusServer, logger)
		dispatcher.SetChime(chime)
		displayManager.OnDismiss(func(a banner.Announcement, reason banner.DismissReason) {
			dispatcher.HandleDismissed(a, reason)
		})

		// D-Bus calls arrive on the bus goroutine; banners live on the main loop
		dbusServer.SetNotifyHandler(func(n *dbus.DBusNotification, id uint32) {
			glib.IdleAdd(func() {
				dispatcher.HandleNotify(n, id)
			})
		})
		dbusServer.SetCloseHandler(func(id uint32) {
			glib.IdleAdd(func() {
				dispatcher.HandleClose(id)
			})
		})

		if err := dbusServer.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			displayManager.Stop()
			app.Quit()
			return
		}

		internalNotifier = daemon.NewInternalNotifier(logger)
		internalNotifier.SetNotifyHandler(dbusServer.NotifyInternal)
		dispatcher.SetNotifier(internalNotifier)

		themeWatcher = watchTheme(ctx, styles, internalNotifier, logger)

		configWatcher, err = daemon.NewConfigWatcher(configPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.Config) {
				glib.IdleAdd(func() {
					dispatcher.SetConfig(newConfig)
					displayManager.UpdateConfig(newConfig)
					chime.UpdateConfig(newConfig)

					if newConfig.Theme.Name != cfg.Theme.Name {
						if err := styles.Load(newConfig.Theme.Name); err != nil {
							internalNotifier.NotifyThemeError(err)
						} else {
							internalNotifier.NotifyThemeReloaded(newConfig.Theme.Name)
						}
						if themeWatcher != nil {
							_ = themeWatcher.Stop()
						}
						themeWatcher = watchTheme(ctx, styles, internalNotifier, logger)
					}

					cfg = newConfig
					internalNotifier.NotifyConfigReloaded()
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				internalNotifier.NotifyConfigError(err)
			})
			if err := configWatcher.Start(ctx, cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		logger.Info("shoutd ready", "dbus_interface", dbus.DBusInterface, "config", configPath)
		internalNotifier.NotifyStartup(version)

		// GTK apps quit when their last window closes; the banner window is
		// hidden between banners
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		stop()
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}
	logger.Info("shoutd stopped")
	return 0
}

// watchTheme reloads the theme CSS when its file changes. Bundled themes
// have no file and are not watched.
func watchTheme(ctx context.Context, styles *display.StyleLoader, notifier *daemon.InternalNotifier, logger *slog.Logger) *daemon.FileWatcher {
	path := styles.Path()
	if path == "" {
		return nil
	}
	w, err := daemon.NewFileWatcher(path, logger)
	if err != nil {
		logger.Warn("failed to create theme watcher", "path", path, "error", err)
		return nil
	}
	w.SetChangeCallback(func() {
		glib.IdleAdd(func() {
			changed, err := styles.Reload()
			switch {
			case err != nil:
				notifier.NotifyThemeError(err)
			case changed:
				notifier.NotifyThemeReloaded(styles.Theme().Name)
			}
		})
	})
	if err := w.Start(ctx); err != nil {
		logger.Warn("failed to start theme watcher", "path", path, "error", err)
		return nil
	}
	return w
}
