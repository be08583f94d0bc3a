package devtools

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/ggoodman/devtools-bridge/inspector"
)

// ProtocolVersion is the CDP version advertised by /json/version.
const ProtocolVersion = "1.3"

const (
	defaultBrowser      = "devtools-bridge"
	defaultOutboxSize   = 1024
	defaultReadLimit    = 16 << 20
	defaultWriteTimeout = 10 * time.Second
)

var (
	// ErrPageExists is returned by AddPage when the page id is already taken.
	ErrPageExists = errors.New("page already registered")
	// ErrPageMissing is returned by AddPage for a page without a Target.
	ErrPageMissing = errors.New("page target is required")
)

var _ http.Handler = (*Server)(nil)

// Page is a debuggable target advertised to frontends.
type Page struct {
	// ID is the path segment of the page's socket. Generated when empty.
	ID          string
	Title       string
	Description string
	URL         string
	// Target creates the sessions of sockets opened on this page.
	Target *inspector.Target
	// Metadata is handed to every session of this page.
	Metadata inspector.SessionMetadata
}

// Server is the HTTP handler for discovery and page sockets.
type Server struct {
	router chi.Router
	log    *slog.Logger

	browser        string
	outboxSize     int
	readLimit      int64
	writeTimeout   time.Duration
	originPatterns []string
	corsOrigins    []string

	mu    sync.RWMutex
	pages map[string]Page
	order []string
}

// NewServer constructs a Server with no pages.
func NewServer(opts ...Option) *Server {
	s := &Server{
		log:          slog.Default(),
		browser:      defaultBrowser,
		outboxSize:   defaultOutboxSize,
		readLimit:    defaultReadLimit,
		writeTimeout: defaultWriteTimeout,
		corsOrigins:  []string{"*"},
		pages:        make(map[string]Page),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}))
		r.Get("/json/version", s.handleVersion)
		r.Get("/json", s.handleList)
		r.Get("/json/list", s.handleList)
	})
	r.Get("/devtools/page/{id}", s.handleSocket)
	s.router = r
	return s
}

// AddPage registers p and returns its ID.
func (s *Server) AddPage(p Page) (string, error) {
	if p.Target == nil {
		return "", ErrPageMissing
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[p.ID]; ok {
		return "", ErrPageExists
	}
	s.pages[p.ID] = p
	s.order = append(s.order, p.ID)
	s.log.Info("page registered", slog.String("page_id", p.ID), slog.String("title", p.Title))
	return p.ID, nil
}

// RemovePage unregisters a page. Open sockets are not affected.
func (s *Server) RemovePage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return
	}
	delete(s.pages, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Server) page(id string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[id]
	return p, ok
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type versionResponse struct {
	Browser         string `json:"Browser"`
	ProtocolVersion string `json:"Protocol-Version"`
}

// PageDescriptor is one entry of /json/list.
type PageDescriptor struct {
	Description          string `json:"description"`
	DevtoolsFrontendURL  string `json:"devtoolsFrontendUrl"`
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Type                 string `json:"type"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, versionResponse{Browser: s.browser, ProtocolVersion: ProtocolVersion})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}

	s.mu.RLock()
	list := make([]PageDescriptor, 0, len(s.order))
	for _, id := range s.order {
		p := s.pages[id]
		wsPath := r.Host + "/devtools/page/" + id
		list = append(list, PageDescriptor{
			Description:          p.Description,
			DevtoolsFrontendURL:  "devtools://devtools/bundled/inspector.html?" + scheme + "=" + wsPath,
			ID:                   id,
			Title:                p.Title,
			Type:                 "page",
			URL:                  p.URL,
			WebSocketDebuggerURL: scheme + "://" + wsPath,
		})
	}
	s.mu.RUnlock()

	writeJSON(w, list)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
