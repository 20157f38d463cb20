// Package web serves the sketching surface to a browser. Every page load
// opens a websocket session with its own scene; the server renders frames
// and the page only displays them and forwards pointer input.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/example/sketchpad/assets"
	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/sketch"
	"github.com/example/sketchpad/internal/theme"
)

//go:embed static/index.html
var static embed.FS

// Options configures sessions created by the server.
type Options struct {
	Width       int
	Height      int
	ExportScale float64
	Fonts       *raster.Fonts
	Theme       *theme.Theme
	// Controller options applied to every new session. They must not
	// share mutable state such as a rand source between sessions.
	Controller []sketch.Option
}

// Server hosts the page, the session sockets and the export endpoints.
type Server struct {
	opts     Options
	page     *template.Template
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// New prepares a server. Zero sizes fall back to 256x256.
func New(opts Options) (*Server, error) {
	if opts.Width <= 0 {
		opts.Width = 256
	}
	if opts.Height <= 0 {
		opts.Height = 256
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Fonts == nil {
		f, err := raster.DefaultFonts()
		if err != nil {
			return nil, err
		}
		opts.Fonts = f
	}
	page, err := template.ParseFS(static, "static/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Server{
		opts:     opts,
		page:     page,
		sessions: make(map[string]*Session),
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleSocket)
	mux.HandleFunc("/export.png", s.handleExportPNG)
	mux.HandleFunc("/export.pdf", s.handleExportPDF)
	mux.HandleFunc("/favicon.svg", handleIcon)
	return mux
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Session returns a live session by id.
func (s *Server) Session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Sessions reports how many sockets are connected.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) open() *Session {
	sess := NewSession(s.opts)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Server) close(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
}

type pageData struct {
	Width, Height int
	Theme         map[string]template.CSS
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := pageData{Width: s.opts.Width, Height: s.opts.Height, Theme: map[string]template.CSS{}}
	for _, key := range theme.Fields() {
		c, _ := theme.Get(s.opts.Theme, key)
		data.Theme[key] = template.CSS(raster.Hex(c))
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		log.Printf("render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sess := s.open()
	defer s.close(sess)

	hello, err := sess.Hello()
	if err != nil {
		log.Printf("session %s: %v", sess.ID, err)
		return
	}
	if err := writeAll(conn, hello); err != nil {
		return
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("session %s: %v", sess.ID, err)
			}
			return
		}
		msgs, err := sess.Apply(cmd)
		if err != nil {
			msgs = append(msgs, Message{Type: MsgError, Error: err.Error()})
		}
		if err := writeAll(conn, msgs); err != nil {
			log.Printf("session %s: write: %v", sess.ID, err)
			return
		}
	}
}

func writeAll(conn *websocket.Conn, msgs []Message) error {
	for _, m := range msgs {
		if err := conn.WriteJSON(m); err != nil {
			return err
		}
	}
	return nil
}

func handleIcon(w http.ResponseWriter, r *http.Request) {
	data, err := assets.IconSVG()
	if err != nil {
		log.Printf("icon: %v", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=86400")
	_, _ = w.Write(data)
}

func (s *Server) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "image/png", sketch.ExportFilename, (*Session).WritePNG)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "application/pdf", export.PDFFilename, (*Session).WritePDF)
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, contentType, filename string, write func(*Session, io.Writer) error) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}
	sess, ok := s.Session(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := write(sess, &buf); err != nil {
		log.Printf("export %s: %v", filename, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}
