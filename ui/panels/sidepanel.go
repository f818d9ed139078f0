// Package panels provides the side panel tabs: the task list and the
// canvas inspector.
package panels

import (
	"pastepad/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel holds the tabbed side panel.
type SidePanel struct {
	state *app.State
	tabs  *container.AppTabs

	tasks     *TasksPanel
	inspector *InspectorPanel
}

// NewSidePanel creates the side panel with its tabs.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.tasks = NewTasksPanel(state)
	sp.inspector = NewInspectorPanel(state)

	sp.tabs = container.NewAppTabs(
		container.NewTabItem("Tasks", sp.tasks.Container()),
		container.NewTabItem("Canvas", sp.inspector.Container()),
	)
	return sp
}

// Container returns the panel for embedding in layouts.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.tabs
}
