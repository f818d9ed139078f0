// Package board provides the canvas surface widget: rendering, pan/zoom,
// and pointer routing into the interaction controller.
package board

import (
	"image"

	"pastepad/internal/canvas"
	"pastepad/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 8.0
	zoomStep = 1.25

	// handleScreenPad is the hit/draw radius of a resize handle in screen
	// pixels; it is divided by zoom so handles stay grabbable at any scale.
	handleScreenPad = 6.0
)

// Board displays the 2000x2000 canvas surface with pan, zoom, and
// drag/resize interaction.
type Board struct {
	widget.BaseWidget

	ctrl *canvas.Controller

	raster  *fynecanvas.Raster
	zoom    float64
	scroll  *zoomScroll
	content *boardContent
	imgSize fyne.Size

	cache *imageCache

	onZoomChange func(zoom float64)
}

// New creates a board over the given controller.
func New(ctrl *canvas.Controller) *Board {
	b := &Board{
		ctrl:  ctrl,
		zoom:  1.0,
		cache: newImageCache(),
	}

	b.raster = fynecanvas.NewRaster(b.draw)
	b.raster.ScaleMode = fynecanvas.ImageScalePixels

	b.content = newBoardContent(b)
	b.scroll = newZoomScroll(b.content, b)

	b.ExtendBaseWidget(b)
	b.updateContentSize()
	return b
}

// Container returns the board container for embedding in layouts.
func (b *Board) Container() fyne.CanvasObject {
	return b.scroll
}

// Refresh redraws the surface and reports the visible viewport to the
// controller.
func (b *Board) Refresh() {
	b.cache.Prune(b.ctrl.Store().State())
	b.reportViewport()
	b.raster.Refresh()
}

// Zoom returns the current zoom level.
func (b *Board) Zoom() float64 {
	return b.zoom
}

// SetZoom sets the zoom level, clamped to the supported range.
func (b *Board) SetZoom(zoom float64) {
	b.zoom = geometry.Clamp(zoom, minZoom, maxZoom)
	b.updateContentSize()
	if b.onZoomChange != nil {
		b.onZoomChange(b.zoom)
	}
}

// ZoomIn increases the zoom level.
func (b *Board) ZoomIn() {
	b.SetZoom(b.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (b *Board) ZoomOut() {
	b.SetZoom(b.zoom / zoomStep)
}

// FitToView adjusts zoom so the whole canvas fits in the visible area.
func (b *Board) FitToView() {
	viewSize := b.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}
	zoomX := float64(viewSize.Width) / canvas.Width
	zoomY := float64(viewSize.Height) / canvas.Height
	if zoomY < zoomX {
		zoomX = zoomY
	}
	b.SetZoom(zoomX * 0.95) // Leave a small margin
}

// OnZoomChange sets a callback for zoom changes.
func (b *Board) OnZoomChange(callback func(zoom float64)) {
	b.onZoomChange = callback
}

// toCanvas converts a pointer position (viewport-relative) to canvas
// coordinates.
func (b *Board) toCanvas(pos fyne.Position) geometry.Point2D {
	off := b.scroll.Offset()
	return geometry.Point2D{
		X: float64(pos.X+off.X) / b.zoom,
		Y: float64(pos.Y+off.Y) / b.zoom,
	}
}

// reportViewport tells the controller which canvas region is visible so new
// items are placed around its center.
func (b *Board) reportViewport() {
	off := b.scroll.Offset()
	size := b.scroll.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	view := geometry.Rect{
		X:      float64(off.X) / b.zoom,
		Y:      float64(off.Y) / b.zoom,
		Width:  float64(size.Width) / b.zoom,
		Height: float64(size.Height) / b.zoom,
	}
	if view.X+view.Width > canvas.Width {
		view.Width = canvas.Width - view.X
	}
	if view.Y+view.Height > canvas.Height {
		view.Height = canvas.Height - view.Y
	}
	b.ctrl.SetViewport(view)
}

// updateContentSize resizes the raster to the zoomed canvas extent.
func (b *Board) updateContentSize() {
	b.imgSize = fyne.NewSize(
		float32(canvas.Width*b.zoom),
		float32(canvas.Height*b.zoom),
	)
	b.raster.SetMinSize(b.imgSize)
	b.raster.Resize(b.imgSize)
	if b.content != nil {
		b.content.Resize(b.imgSize)
		b.content.Refresh()
	}
	if b.scroll != nil {
		b.scroll.Refresh()
	}
	b.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{board: b}
}

type boardRenderer struct {
	board *Board
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.board.scroll.Resize(size)
	r.board.reportViewport()
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *boardRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.scroll}
}

func (r *boardRenderer) Destroy() {}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	board  *Board
}

func newZoomScroll(content fyne.CanvasObject, board *Board) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, board: board}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.board.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.board.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// boardContent wraps the raster and forwards mouse events to the
// controller in canvas coordinates.
type boardContent struct {
	widget.BaseWidget
	board *Board
}

var (
	_ desktop.Mouseable = (*boardContent)(nil)
	_ fyne.Draggable    = (*boardContent)(nil)
)

func newBoardContent(b *Board) *boardContent {
	bc := &boardContent{board: b}
	bc.ExtendBaseWidget(bc)
	return bc
}

func (bc *boardContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(bc.board.raster)
}

func (bc *boardContent) MinSize() fyne.Size {
	return bc.board.raster.MinSize()
}

func (bc *boardContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pad := handleScreenPad / bc.board.zoom
	bc.board.ctrl.PointerDown(bc.board.toCanvas(ev.Position), pad)
	bc.board.Refresh()
}

func (bc *boardContent) MouseUp(ev *desktop.MouseEvent) {
	bc.board.ctrl.PointerUp()
	bc.board.Refresh()
}

func (bc *boardContent) Dragged(ev *fyne.DragEvent) {
	bc.board.ctrl.PointerMove(bc.board.toCanvas(ev.Position))
}

func (bc *boardContent) DragEnd() {
	bc.board.ctrl.PointerUp()
	bc.board.Refresh()
}

func (bc *boardContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		bc.board.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		bc.board.ZoomOut()
	}
}

// imageCache holds decoded item payloads keyed by item id so the raster
// does not re-decode PNG bytes on every frame.
type imageCache struct {
	images map[string]image.Image
}

func newImageCache() *imageCache {
	return &imageCache{images: make(map[string]image.Image)}
}

// Prune drops cache entries for items no longer on the canvas.
func (c *imageCache) Prune(s *canvas.State) {
	if len(c.images) == 0 {
		return
	}
	live := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		live[it.ID] = true
	}
	for id := range c.images {
		if !live[id] {
			delete(c.images, id)
		}
	}
}
