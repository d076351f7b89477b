// Package preview serves a generated artifact set over HTTP so the output
// can be inspected without writing it to disk. It watches the source
// configuration and rebuilds on change, pushing a reload notice to connected
// WebSocket clients.
package preview

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"

	"github.com/blueprintkit/blueprint/internal/artifact"
	"github.com/blueprintkit/blueprint/internal/build"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/event"
	"github.com/blueprintkit/blueprint/internal/eventbus"
)

// Server holds the latest build of one configuration file and the clients
// waiting on rebuild notices.
type Server struct {
	ConfigPath string
	Port       int

	bus *eventbus.Bus

	mu   sync.RWMutex
	set  *artifact.Set
	cfg  *config.AppConfig
	err  error // last rebuild failure, cleared on success
	subs map[chan reloadNotice]bool
}

type reloadNotice struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

// New returns a preview server for the given configuration file.
func New(configPath string, port int) *Server {
	return &Server{
		ConfigPath: configPath,
		Port:       port,
		bus:        eventbus.New(64),
		subs:       map[chan reloadNotice]bool{},
	}
}

// Run builds once, starts the watcher, and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.bus.Subscribe("log", eventbus.NewLogConsumer())
	s.bus.Subscribe("ws-notify", eventbus.HandlerFunc(s.notify))
	s.bus.Start(ctx)

	if err := s.rebuild(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory, not the file: editors replace files on save and
	// a file watch dies with the old inode.
	if err := watcher.Add(filepath.Dir(s.ConfigPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.ConfigPath), err)
	}
	go s.watch(ctx, watcher)

	r := chi.NewRouter()
	s.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", s.Port)
	log.Printf("preview: serving %s on %s", s.ConfigPath, addr)

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()
	return server.ListenAndServe()
}

// RegisterRoutes registers the preview HTTP and WebSocket routes.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/preview", func(r chi.Router) {
		r.Get("/ws", s.serveWS)

		r.Get("/artifacts", func(w http.ResponseWriter, req *http.Request) {
			s.mu.RLock()
			defer s.mu.RUnlock()
			if s.err != nil {
				writeError(w, http.StatusUnprocessableEntity, "INVALID_CONFIG", s.err.Error())
				return
			}
			writeJSON(w, http.StatusOK, struct {
				Paths           []string          `json:"paths"`
				Dependencies    map[string]string `json:"dependencies"`
				DevDependencies map[string]string `json:"dev_dependencies"`
				Instructions    []string          `json:"instructions"`
			}{s.set.Paths(), s.set.Dependencies, s.set.DevDependencies, s.set.Instructions})
		})

		r.Get("/artifacts/*", func(w http.ResponseWriter, req *http.Request) {
			path := strings.TrimPrefix(chi.URLParam(req, "*"), "/")
			s.mu.RLock()
			defer s.mu.RUnlock()
			if s.set == nil {
				http.NotFound(w, req)
				return
			}
			a, ok := s.set.Get(path)
			if !ok {
				writeError(w, http.StatusNotFound, "NOT_FOUND", "no artifact at "+path)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, a.Content)
		})

		r.Get("/config", func(w http.ResponseWriter, req *http.Request) {
			s.mu.RLock()
			defer s.mu.RUnlock()
			writeJSON(w, http.StatusOK, s.cfg)
		})
	})
}

// serveWS upgrades and streams reload notices until the client goes away.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("preview: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	ch := make(chan reloadNotice, 4)
	s.subscribe(ch)
	defer s.unsubscribe(ch)

	if err := wsjson.Write(ctx, conn, reloadNotice{Type: "hello"}); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case notice := <-ch:
			if err := wsjson.Write(ctx, conn, notice); err != nil {
				return
			}
		}
	}
}

func (s *Server) subscribe(ch chan reloadNotice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[ch] = true
}

func (s *Server) unsubscribe(ch chan reloadNotice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, ch)
}

// notify translates generation events into reload notices for connected
// WebSocket clients.
func (s *Server) notify(_ context.Context, evt event.Event) error {
	var notice reloadNotice
	switch evt.Type {
	case "build_succeeded":
		notice = reloadNotice{Type: "reload"}
	case "build_failed":
		notice = reloadNotice{Type: "error", Error: evt.Summary}
	default:
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- notice:
		default:
			// Slow client; it will catch up on the next notice.
		}
	}
	return nil
}

// watch rebuilds whenever the config file is written and notifies clients.
func (s *Server) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	target := filepath.Clean(s.ConfigPath)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := s.rebuild(ctx); err != nil {
				log.Printf("preview: rebuild: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("preview: watcher: %v", err)
		}
	}
}

// rebuild reloads the config and regenerates, swapping in the new set on
// success and keeping the previous one on failure. Outcomes are published
// on the bus.
func (s *Server) rebuild(ctx context.Context) error {
	start := time.Now()
	s.bus.Publish(ctx, event.NewBuildStarted(s.ConfigPath))

	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		s.setError(err)
		s.bus.Publish(ctx, event.NewBuildFailed(s.ConfigPath, err))
		return err
	}
	set, err := build.Build(&cfg)
	if err != nil {
		s.setError(err)
		s.bus.Publish(ctx, event.NewBuildFailed(s.ConfigPath, err))
		return err
	}

	s.mu.Lock()
	s.cfg = &cfg
	s.set = set
	s.err = nil
	s.mu.Unlock()

	s.bus.Publish(ctx, event.NewBuildSucceeded(s.ConfigPath, len(set.Artifacts), time.Since(start)))
	return nil
}

func (s *Server) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
