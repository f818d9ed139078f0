package panels

import (
	"log/slog"

	"pastepad/internal/app"
	"pastepad/internal/tasks"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TasksPanel is the task list tab: add entry on top, the list below, and a
// clear-done button at the bottom.
type TasksPanel struct {
	state *app.State

	entry   *widget.Entry
	list    *widget.List
	content fyne.CanvasObject

	// cached rows backing the list widget
	rows []tasks.Task
}

// NewTasksPanel builds the task tab. When the task store is unavailable the
// tab degrades to a notice label.
func NewTasksPanel(state *app.State) *TasksPanel {
	tp := &TasksPanel{state: state}

	if state.Tasks == nil {
		tp.content = container.NewCenter(widget.NewLabel("Task list unavailable"))
		return tp
	}

	tp.entry = widget.NewEntry()
	tp.entry.SetPlaceHolder("New task...")
	tp.entry.OnSubmitted = func(string) { tp.addTask() }
	addBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), tp.addTask)

	tp.list = widget.NewList(
		func() int { return len(tp.rows) },
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			del := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewBorder(nil, nil, check, del, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(tp.rows) {
				return
			}
			row := tp.rows[id]
			border := obj.(*fyne.Container)
			check := border.Objects[1].(*widget.Check)
			del := border.Objects[2].(*widget.Button)
			label := border.Objects[0].(*widget.Label)

			label.SetText(row.Title)
			check.OnChanged = nil
			check.SetChecked(row.Done)
			check.OnChanged = func(done bool) { tp.setDone(row.ID, done) }
			del.OnTapped = func() { tp.deleteTask(row.ID) }
		},
	)

	clearBtn := widget.NewButton("Clear Done", tp.clearDone)

	tp.content = container.NewBorder(
		container.NewBorder(nil, nil, nil, addBtn, tp.entry), // top
		clearBtn, // bottom
		nil, nil,
		tp.list,
	)

	state.On(app.EventTasksChanged, func(interface{}) {
		tp.reload()
	})
	tp.reload()

	return tp
}

// Container returns the tab content.
func (tp *TasksPanel) Container() fyne.CanvasObject {
	return tp.content
}

func (tp *TasksPanel) reload() {
	rows, err := tp.state.Tasks.List()
	if err != nil {
		slog.Error("task list failed", "error", err)
		return
	}
	tp.rows = rows
	tp.list.Refresh()
}

func (tp *TasksPanel) addTask() {
	title := tp.entry.Text
	if title == "" {
		return
	}
	if _, err := tp.state.Tasks.Add(title); err != nil {
		slog.Error("task add failed", "error", err)
		tp.state.Status("Could not add task")
		return
	}
	tp.entry.SetText("")
	tp.state.Emit(app.EventTasksChanged, nil)
}

func (tp *TasksPanel) setDone(id string, done bool) {
	if err := tp.state.Tasks.SetDone(id, done); err != nil {
		slog.Error("task update failed", "id", id, "error", err)
		return
	}
	tp.state.Emit(app.EventTasksChanged, nil)
}

func (tp *TasksPanel) deleteTask(id string) {
	if err := tp.state.Tasks.Delete(id); err != nil {
		slog.Error("task delete failed", "id", id, "error", err)
		return
	}
	tp.state.Emit(app.EventTasksChanged, nil)
}

func (tp *TasksPanel) clearDone() {
	n, err := tp.state.Tasks.ClearDone()
	if err != nil {
		slog.Error("clear done failed", "error", err)
		return
	}
	if n > 0 {
		tp.state.Status("%d tasks cleared", n)
		tp.state.Emit(app.EventTasksChanged, nil)
	}
}
