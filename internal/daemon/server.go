package daemon

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"videocolors/internal/colortrack"
	"videocolors/internal/config"
)

// Version is reported by /health. Overridden at link time for releases.
var Version = "0.1.0"

// Server stores all in-memory state and exposes HTTP handlers.
type Server struct {
	mu           sync.RWMutex
	config       Config
	folders      map[string]Folder
	videos       map[string]*Video
	jobs         map[string]*Job
	jobCancel    map[string]context.CancelFunc
	folderByPath map[string]string
	videoByPath  map[string]string
	sink         SinkState
	colorsRoot   string
	sinkClient   *SinkClient
	opener       colortrack.Opener
	logger       *zap.Logger
	jobsWG       sync.WaitGroup
	stateless    bool
	cleanupDirs  []string
	cleanupOnce  sync.Once
}

// NewServer builds a server that decodes videos with opener. Colors are
// written below cfg.ColorsRoot, or below a temporary directory in stateless
// mode.
func NewServer(cfg *config.Config, opener colortrack.Opener, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	colorsRoot := cfg.ColorsRoot
	if cfg.StatelessMode {
		if tmp, err := os.MkdirTemp("", "colortrack-colors-"); err == nil {
			colorsRoot = tmp
		} else {
			logger.Warn("stateless mode: temp dir unavailable, using colors root", zap.Error(err))
		}
	}
	if colorsRoot == "" {
		colorsRoot = "colors"
	}

	cleanupDirs := []string{}
	if cfg.StatelessMode {
		cleanupDirs = append(cleanupDirs, colorsRoot)
	}

	var sinkClient *SinkClient
	authStatus := "disabled"
	if cfg.SinkURL != "" {
		sinkClient = NewSinkClient(cfg.SinkURL)
		authStatus = "missing_token"
	}

	return &Server{
		config: Config{
			Workers:         cfg.Workers,
			Executor:        cfg.Executor,
			ColorMode:       cfg.ColorMode,
			MinChunkSeconds: cfg.MinChunkSeconds,
			SinkURL:         cfg.SinkURL,
			SinkAuthStatus:  authStatus,
			Stateless:       cfg.StatelessMode,
		},
		folders:      make(map[string]Folder),
		videos:       make(map[string]*Video),
		jobs:         make(map[string]*Job),
		jobCancel:    make(map[string]context.CancelFunc),
		folderByPath: make(map[string]string),
		videoByPath:  make(map[string]string),
		sink: SinkState{
			Status: SinkStatus{URL: cfg.SinkURL},
		},
		colorsRoot:  colorsRoot,
		sinkClient:  sinkClient,
		opener:      opener,
		logger:      logger,
		stateless:   cfg.StatelessMode,
		cleanupDirs: cleanupDirs,
	}
}

// Routes returns the HTTP handler for all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.logRequestMiddleware)

	// CORS to allow local client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger docs
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.MethodFunc(http.MethodGet, "/config", s.handleConfig)
	r.MethodFunc(http.MethodPut, "/config", s.handleConfig)

	r.MethodFunc(http.MethodGet, "/folders", s.handleFolders)
	r.MethodFunc(http.MethodPost, "/folders", s.handleFolders)

	r.MethodFunc(http.MethodGet, "/videos", s.handleVideos)
	r.MethodFunc(http.MethodPost, "/videos", s.handleVideos)
	r.Route("/videos/{videoID}", func(r chi.Router) {
		r.MethodFunc(http.MethodGet, "/", s.handleGetVideo)
		r.MethodFunc(http.MethodPost, "/extract", s.handleExtract)
		r.MethodFunc(http.MethodPost, "/cancel", s.handleCancel)
		r.MethodFunc(http.MethodGet, "/colors", s.handleColors)
		r.MethodFunc(http.MethodGet, "/barcode", s.handleBarcode)
		r.MethodFunc(http.MethodGet, "/file", s.handleVideoFile)
	})

	r.MethodFunc(http.MethodGet, "/jobs", s.handleJobs)

	r.MethodFunc(http.MethodGet, "/sink/status", s.handleSinkStatus)
	r.MethodFunc(http.MethodPost, "/sink/auth", s.handleSinkAuth)

	return r
}

// Shutdown cancels running jobs and waits for them to settle, or for ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, cancel := range s.jobCancel {
		cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.jobsWG.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cleanup removes temporary data when stateless mode is enabled.
func (s *Server) Cleanup() {
	if !s.stateless {
		return
	}
	s.cleanupOnce.Do(func() {
		for _, dir := range s.cleanupDirs {
			_ = os.RemoveAll(dir)
		}
	})
}
