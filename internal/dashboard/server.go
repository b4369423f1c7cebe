// Package dashboard hosts the launch dashboard: an HTML page, JSON and CSV
// endpoints for one-shot selections, a standalone chart export and a
// WebSocket channel that pushes refreshed figures as the controls change.
package dashboard

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/render"
	"github.com/example/launchdash/internal/selection"
)

// DefaultTitle heads the page when no title is configured.
const DefaultTitle = "SpaceX Launch Records Dashboard"

// Settings describe what the dashboard shows.
type Settings struct {
	Title  string
	Range  selection.RangeControl
	Render render.Options
}

// Option configures the dashboard server.
type Option func(*Server)

// WithReadyHook is called with the bound address once the listener is open.
func WithReadyHook(fn func(addr string)) Option {
	return func(s *Server) {
		if s == nil {
			return
		}
		s.onReady = fn
	}
}

// WithClock overrides the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if s == nil || now == nil {
			return
		}
		s.now = now
	}
}

// Server serves one loaded dataset.
type Server struct {
	addr     string
	ds       *dataset.Dataset
	settings Settings
	logger   logr.Logger
	hub      *hub
	metrics  *metrics
	upgrader websocket.Upgrader
	page     *template.Template
	onReady  func(string)
	now      func() time.Time
}

// New prepares a server for ds. A zero Range is derived from the dataset
// bounds.
func New(addr string, ds *dataset.Dataset, settings Settings, logger logr.Logger, opts ...Option) *Server {
	if settings.Title == "" {
		settings.Title = DefaultTitle
	}
	if settings.Range.Step == 0 {
		settings.Range = selection.NewRangeControl(ds.Bounds(), selection.DefaultStep, nil, nil)
	}
	server := &Server{
		addr:     addr,
		ds:       ds,
		settings: settings,
		logger:   logger,
		hub:      newHub(logger),
		metrics:  newMetrics(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		page: template.Must(template.New("dashboard").Parse(dashboardHTML)),
		now:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(server)
		}
	}
	return server
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/meta", s.handleMeta)
	mux.HandleFunc("/api/figures", s.handleFigures)
	mux.HandleFunc("/api/view.csv", s.handleViewCSV)
	mux.HandleFunc("/export/dashboard.html", s.handleExport)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", s.metrics.handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "ok")
	})
	return mux
}

// Run serves until ctx is cancelled, then shuts down and disconnects every
// websocket client.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.hub.Close()
		return err
	})

	s.logger.V(1).Info("dashboard listener ready", "addr", ln.Addr().String(), "records", s.ds.Len())
	if s.onReady != nil {
		s.onReady(ln.Addr().String())
	}
	return g.Wait()
}

type hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  logr.Logger
}

func newHub(logger logr.Logger) *hub {
	return &hub{clients: make(map[*client]struct{}), logger: logger}
}

func (h *hub) Register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) Unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.Close()
}

func (h *hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
}

const (
	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

// pongWait bounds how long a connection may stay silent. Pings go out at
// nine tenths of it so an idle browser keeps answering.
var pongWait = 60 * time.Second

func pingPeriod() time.Duration {
	return pongWait * 9 / 10
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	logger logr.Logger

	mu     sync.Mutex
	closed bool
}

func newClient(conn *websocket.Conn, logger logr.Logger) *client {
	return &client{
		conn:   conn,
		send:   make(chan []byte, 256),
		logger: logger,
	}
}

// enqueue hands msg to the write loop. It reports false once the client is
// closed or its buffer is full.
func (c *client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod())
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Error(err, "write dashboard websocket message")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.logger.V(1).Info("dashboard websocket ping failed", "error", err.Error())
				return
			}
		}
	}
}

// readLoop hands every text frame to handle until the connection fails.
func (c *client) readLoop(handle func([]byte), onClose func()) {
	defer func() {
		if onClose != nil {
			onClose()
		}
	}()
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if kind == websocket.TextMessage && handle != nil {
			handle(msg)
		}
	}
}

func (c *client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

//go:embed templates/dashboard.html
var dashboardHTML string
