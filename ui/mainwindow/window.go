// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pastepad/internal/app"
	"pastepad/internal/ingest"
	"pastepad/internal/version"
	"pastepad/ui/board"
	"pastepad/ui/panels"
	"pastepad/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	board     *board.Board
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	pinItem  *fyne.MenuItem
	viewMenu *fyne.Menu

	shortcuts []fyne.Shortcut
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("PastePad")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupInputHandlers()

	w := appPrefs.Int(prefs.KeyWindowWidth, state.Config.WindowWidth)
	h := appPrefs.Int(prefs.KeyWindowHeight, state.Config.WindowHeight)
	win.Resize(fyne.NewSize(float32(w), float32(h)))

	win.SetCloseIntercept(func() {
		mw.teardownInputHandlers()
		mw.SavePreferences()
		mw.app.Quit()
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.board = board.New(mw.state.Canvas)
	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	boardArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.board.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		boardArea,
	)
	split.SetOffset(0.22) // Side panel takes 22% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.board.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.board.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.board.FitToView)
	actualBtn := widget.NewButton("1:1", func() { mw.board.SetZoom(1.0) })

	zoomLabel := widget.NewLabel("100%")
	mw.board.OnZoomChange(func(zoom float64) {
		zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		zoomLabel,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Images...", mw.onImportImages),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.state.Undo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", mw.state.Copy),
		fyne.NewMenuItem("Paste", mw.state.Paste),
		fyne.NewMenuItem("Delete", mw.state.DeleteSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select None", mw.state.Canvas.SelectNone),
	)

	mw.pinItem = fyne.NewMenuItem("Pin Window", mw.onTogglePin)
	mw.pinItem.Checked = mw.prefs.Bool(prefs.KeyPinWindow, false)

	mw.viewMenu = fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.board.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.board.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.board.SetZoom(1.0) }),
		fyne.NewMenuItem("Fit Canvas", mw.board.FitToView),
		fyne.NewMenuItemSeparator(),
		mw.pinItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, mw.viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventCanvasChanged, func(interface{}) {
		mw.board.Refresh()
	})

	mw.state.On(app.EventStatus, func(data interface{}) {
		if msg, ok := data.(string); ok {
			mw.updateStatus(msg)
		}
	})

	mw.state.On(app.EventPinChanged, func(data interface{}) {
		if pinned, ok := data.(bool); ok {
			mw.pinItem.Checked = pinned
			mw.viewMenu.Refresh()
		}
	})
}

// setupInputHandlers installs the window-level shortcut, key, and drop
// handlers. They are removed again in teardownInputHandlers when the
// window closes.
func (mw *MainWindow) setupInputHandlers() {
	c := mw.Canvas()

	register := func(sc fyne.Shortcut, handler func()) {
		c.AddShortcut(sc, func(fyne.Shortcut) {
			if mw.textInputFocused() {
				return
			}
			handler()
		})
		mw.shortcuts = append(mw.shortcuts, sc)
	}

	mod := fyne.KeyModifierControl
	register(&desktop.CustomShortcut{KeyName: fyne.KeyV, Modifier: mod}, mw.state.Paste)
	register(&desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: mod}, mw.state.Copy)
	register(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod}, mw.state.Undo)

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if mw.textInputFocused() {
			return
		}
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.state.DeleteSelected()
		case fyne.KeyEscape:
			mw.state.Canvas.SelectNone()
		}
	})

	mw.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		mw.onDropped(uris)
	})
}

// teardownInputHandlers releases every window-level handler installed by
// setupInputHandlers.
func (mw *MainWindow) teardownInputHandlers() {
	c := mw.Canvas()
	for _, sc := range mw.shortcuts {
		c.RemoveShortcut(sc)
	}
	mw.shortcuts = nil
	c.SetOnTypedKey(nil)
	mw.SetOnDropped(nil)
}

// textInputFocused reports whether a text-entry widget currently holds
// focus; canvas shortcuts are suppressed while it does.
func (mw *MainWindow) textInputFocused() bool {
	switch mw.Canvas().Focused().(type) {
	case *widget.Entry:
		return true
	}
	return false
}

// onDropped routes dropped files into the ingestion batch. Only entries
// with an image media type are attempted; everything else is skipped
// silently and does not count as a failure.
func (mw *MainWindow) onDropped(uris []fyne.URI) {
	var blobs []ingest.NamedBlob
	for _, uri := range uris {
		if !strings.HasPrefix(uri.MimeType(), "image/") {
			continue
		}
		data, err := os.ReadFile(uri.Path())
		if err != nil {
			// Unreadable file: counts as a failed item in the batch.
			blobs = append(blobs, ingest.NamedBlob{Name: uri.Name()})
			continue
		}
		blobs = append(blobs, ingest.NamedBlob{Name: uri.Name(), Data: data})
	}
	mw.state.Drop(blobs)
}

// updateStatus shows a transient message with a timestamp in the status bar.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(time.Now().Format("15:04:05") + "  " + text)
}

// getLastDir returns the last used import directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastImport)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastImport, filepath.Dir(filePath))
}

// SavePreferences persists the current preferences to disk.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetInt(prefs.KeyWindowWidth, int(size.Width))
		mw.prefs.SetInt(prefs.KeyWindowHeight, int(size.Height))
	}
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Could not save preferences")
	}
}

// SavePreferencesIfChanged persists preferences only when dirty. Called
// periodically from the autosave ticker.
func (mw *MainWindow) SavePreferencesIfChanged() {
	_ = mw.prefs.SaveIfDirty()
}

// Menu action handlers

func (mw *MainWindow) onImportImages() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			dialog.ShowError(readErr, mw.Window)
			return
		}
		mw.state.Drop([]ingest.NamedBlob{{Name: reader.URI().Name(), Data: data}})
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp",
	}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onTogglePin() {
	pinned := !mw.prefs.Bool(prefs.KeyPinWindow, false)
	mw.prefs.SetBool(prefs.KeyPinWindow, pinned)
	mw.state.Emit(app.EventPinChanged, pinned)
	if pinned {
		mw.updateStatus("Window pinned")
	} else {
		mw.updateStatus("Window unpinned")
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About PastePad",
		fmt.Sprintf("PastePad v%s\n\n"+
			"An image scratch canvas with a task list.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
