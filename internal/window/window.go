package window

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/shadow"
	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/theme"
)

const frameDropThreshold = 5

// Window is the desktop frontend: a toolbar, the canvas and a status bar.
type Window struct {
	title       string
	width       int
	height      int
	exportScale float64
	saveDir     string
	copyExport  bool
	theme       *theme.Theme
	fonts       *raster.Fonts
	notifier    *notify.Notifier
	ctrlOpts    []sketch.Option
	onClose     func()
}

type Option func(*Window)

func WithTitle(title string) Option { return func(w *Window) { w.title = title } }

// WithCanvasSize sets the logical canvas size in pixels.
func WithCanvasSize(width, height int) Option {
	return func(w *Window) { w.width, w.height = width, height }
}

func WithExportScale(scale float64) Option { return func(w *Window) { w.exportScale = scale } }

// WithSaveDir sets where exports are written.
func WithSaveDir(dir string) Option { return func(w *Window) { w.saveDir = dir } }

// WithCopyOnExport also places every saved export on the clipboard.
func WithCopyOnExport(enabled bool) Option { return func(w *Window) { w.copyExport = enabled } }

func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

func WithFonts(f *raster.Fonts) Option { return func(w *Window) { w.fonts = f } }

func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// WithControllerOptions passes options through to the sketch controller.
func WithControllerOptions(opts ...sketch.Option) Option {
	return func(w *Window) { w.ctrlOpts = append(w.ctrlOpts, opts...) }
}

func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

func New(opts ...Option) *Window {
	w := &Window{
		title:  "Sketchpad",
		width:  256,
		height: 256,
	}
	for _, o := range opts {
		o(w)
	}
	if w.theme == nil {
		w.theme = theme.Default()
	}
	if w.fonts == nil {
		f, err := raster.DefaultFonts()
		if err != nil {
			log.Printf("fonts: %v", err)
		}
		w.fonts = f
	}
	return w
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() { driver.Main(w.Main) }

func (w *Window) Main(s screen.Screen) {
	if w.onClose != nil {
		defer w.onClose()
	}
	m := newModel(w.width, w.height, w.fonts, w.ctrlOpts)
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: m.winW, Height: m.winH, Title: w.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()

	exporter := sketch.NewExporter(w.width, w.height, raster.NewSurfaceFactory(w.fonts))
	if w.exportScale > 0 {
		exporter.Scale = w.exportScale
	}
	exporting := false
	m.onExport = func(copyOnly bool) {
		if exporting {
			m.flash("export already running")
			return
		}
		// Render on the event loop so the scene is not read concurrently.
		img, err := exporter.Render(m.ctrl.Scene())
		if err != nil {
			m.flash("export failed: " + err.Error())
			return
		}
		exporting = true
		go func() { win.Send(w.export(img, copyOnly)) }()
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		p := &painter{theme: w.theme, fonts: w.fonts, cache: map[string]*Button{}}
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			p.drawFrame(ctx, s, win, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			m.resize(e.WidthPx, e.HeightPx)
			win.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := m.snapshot()
			offerFrame(paintCh, st)
			if st.message != "" {
				// repaint once the message has expired
				until := m.messageUntil
				time.AfterFunc(time.Until(until)+10*time.Millisecond, func() { win.Send(paint.Event{}) })
			}
		case mouse.Event:
			if m.handleMouse(e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			if m.handleKey(e) {
				win.Send(paint.Event{})
			}
			if m.quit {
				return
			}
		case exportDone:
			exporting = false
			if e.err != nil {
				log.Printf("export: %v", e.err)
			}
			m.flash(e.message())
			win.Send(paint.Event{})
		case error:
			log.Print(e)
		}
	}
}

// export saves and copies an already rendered image. It runs off the
// event loop.
func (w *Window) export(img image.Image, copyOnly bool) exportDone {
	data, err := encodeExport(img)
	if err != nil {
		return exportDone{err: err}
	}
	var done exportDone
	if !copyOnly {
		path, err := saveExport(w.saveDir, data)
		if err != nil {
			return exportDone{err: err}
		}
		done.path = path
		if w.notifier != nil {
			w.notifier.Export(path, img)
		}
	}
	if copyOnly || w.copyExport {
		if err := clipboard.WritePNG(data); err != nil {
			if copyOnly {
				return exportDone{err: err}
			}
			log.Printf("copy export: %v", err)
			return done
		}
		done.copied = true
		if w.notifier != nil {
			w.notifier.Copy(sketch.ExportFilename)
		}
	}
	return done
}

// paintState is everything one frame needs, copied off the event loop.
type paintState struct {
	width, height int
	canvas        *image.RGBA
	zoom          float64
	buttons       []buttonView
	hover         int
	readout       string
	prompting     bool
	prompt        string
	message       string
}

// painter owns the button caches. It is only used by the paint goroutine.
type painter struct {
	theme  *theme.Theme
	fonts  *raster.Fonts
	cache  map[string]*Button
	shadow shadow.Cache
}

func (p *painter) button(v buttonView, r image.Rectangle) *Button {
	b, ok := p.cache[v.Label]
	if !ok {
		b = &Button{Label: v.Label, Action: v.Action}
		p.cache[v.Label] = b
	}
	b.Selected = v.Selected
	b.SetRect(r)
	return b
}

func (p *painter) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	p.render(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// render composes a frame into dst.
func (p *painter) render(ctx context.Context, dst *image.RGBA, st paintState) {
	th := p.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, toolbarWidth, st.height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	cw, ch := st.canvas.Bounds().Dx(), st.canvas.Bounds().Dy()
	cr := canvasRect(cw, ch, st.zoom)
	p.shadow.DrawRect(dst, cr, shadow.Card())
	draw.Draw(dst, cr, &image.Uniform{th.CanvasBackground}, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(dst, cr, st.canvas, st.canvas.Bounds(), draw.Over, nil)
	strokeRect(dst, cr.Inset(-1), th.CanvasBorder)
	if ctx.Err() != nil {
		return
	}

	for i, r := range buttonRects(len(st.buttons)) {
		state := StateDefault
		if i == st.hover {
			state = StateHover
		}
		p.button(st.buttons[i], r).Draw(dst, state, th, p.fonts)
	}
	if ctx.Err() != nil {
		return
	}

	status := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	draw.Draw(dst, status, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	if st.readout != "" && p.fonts != nil {
		_, asc, desc, err := p.fonts.MeasureText(st.readout, 12)
		if err == nil {
			y := status.Min.Y + (bottomHeight-asc-desc)/2 + asc
			if err := p.fonts.DrawString(dst, th.Foreground, 12, fixed.P(toolbarWidth+margin, y), st.readout); err != nil {
				log.Printf("status: %v", err)
			}
		}
	}

	if st.prompting {
		r := image.Rect(cr.Min.X, cr.Min.Y, cr.Max.X, cr.Min.Y+40).Intersect(dst.Bounds())
		draw.Draw(dst, r, &image.Uniform{th.PromptBackground}, image.Point{}, draw.Src)
		strokeRect(dst, r, th.ButtonBorder)
		drawLabel(dst, r, "sticker: "+st.prompt+"|", th.ButtonText, p.fonts, 16)
	}

	if st.message != "" {
		w := st.width / 2
		r := image.Rect((st.width-w)/2, st.height/2-16, (st.width+w)/2, st.height/2+16)
		draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
		strokeRect(dst, r, color.Black)
		drawLabel(dst, r, st.message, color.Black, p.fonts, 13)
	}
}

// offerFrame queues st on ch, replacing any frame still waiting. It never
// blocks, even when the painter drains ch concurrently.
func offerFrame(ch chan paintState, st paintState) {
	for {
		select {
		case ch <- st:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
