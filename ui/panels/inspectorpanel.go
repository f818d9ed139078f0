package panels

import (
	"fmt"

	"pastepad/internal/app"
	"pastepad/internal/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// InspectorPanel is the canvas tab: item count, selected item details, and
// a clear-canvas action.
type InspectorPanel struct {
	state *app.State

	countLabel *widget.Label
	selLabel   *widget.Label
	content    fyne.CanvasObject
}

// NewInspectorPanel builds the canvas inspector tab.
func NewInspectorPanel(state *app.State) *InspectorPanel {
	ip := &InspectorPanel{
		state:      state,
		countLabel: widget.NewLabel(""),
		selLabel:   widget.NewLabel(""),
	}
	ip.selLabel.Wrapping = fyne.TextWrapWord

	clearBtn := widget.NewButton("Clear Canvas", func() {
		state.Canvas.ClearItems()
		state.Status("Canvas cleared")
	})

	ip.content = container.NewVBox(
		ip.countLabel,
		widget.NewSeparator(),
		ip.selLabel,
		clearBtn,
	)

	state.On(app.EventCanvasChanged, func(interface{}) {
		ip.update()
	})
	ip.update()

	return ip
}

// Container returns the tab content.
func (ip *InspectorPanel) Container() fyne.CanvasObject {
	return ip.content
}

func (ip *InspectorPanel) update() {
	st := ip.state.Canvas.Store().State()
	ip.countLabel.SetText(fmt.Sprintf("Items: %d / %d", len(st.Items), canvas.MaxItems))

	sel := st.Selected()
	if sel == nil {
		ip.selLabel.SetText("No selection")
		return
	}
	ip.selLabel.SetText(fmt.Sprintf(
		"%s image\n%dx%d px natural\nat (%d, %d)  %dx%d",
		sel.Origin, sel.NaturalWidth, sel.NaturalHeight,
		sel.X, sel.Y, sel.W, sel.H,
	))
}
