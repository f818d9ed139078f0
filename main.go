// Package main provides the entry point for the PastePad application.
package main

import (
	"log/slog"
	"os"
	"time"

	"pastepad/internal/app"
	"pastepad/ui/mainwindow"
	"pastepad/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "PastePad"

func main() {
	cfg, err := app.LoadConfig(app.ConfigDir())
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("starting", "app", appTitle)

	fyneApp := fyneapp.NewWithID("dev.pastepad")
	fyneApp.Settings().SetTheme(&app.PastePadTheme{})

	appState := app.NewState(cfg)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.SetTitle(appTitle)

	setupHotReload(win, cfg.AutosaveInterval)

	win.ShowAndRun()
}

// setupHotReload configures the autosave ticker and automatic restart
// detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow, tick time.Duration) {
	reloader := app.NewHotReloader(tick)
	if reloader == nil {
		slog.Warn("hot reload: unable to determine executable path")
		return
	}

	slog.Debug("hot reload watching",
		"path", reloader.ExecPath(),
		"modified", reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		slog.Info("hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				win.SavePreferences()
				slog.Info("hot reload: restarting")
				if err := reloader.Restart(); err != nil {
					slog.Error("hot reload: restart failed", "error", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
