package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxMapBytes = 1 << 20

// Server exposes the planner over HTTP. The current grid can be swapped at
// runtime; queries in flight keep the planner they started with.
type Server struct {
	router   *way.Router
	upgrader websocket.Upgrader
	opts     []Option

	mu      sync.RWMutex
	planner *Planner
}

type RouteRequest struct {
	Source      Cell `json:"source"`
	Destination Cell `json:"destination"`
}

type RouteResponse struct {
	ID           string        `json:"id"`
	Path         []Cell        `json:"path"`
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Steps        int           `json:"steps"`
	Cost         float64       `json:"cost"`
	Expanded     int           `json:"expanded"`
	Verification *Verification `json:"verification,omitempty"`
}

// NewServer creates a server answering queries on g
func NewServer(g *Grid, opts ...Option) *Server {
	s := &Server{
		opts:    opts,
		planner: NewPlanner(g, opts...),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/health", withCORS(s.healthHandler))
	s.router.HandleFunc("GET", "/grid", withCORS(s.gridHandler))
	s.router.HandleFunc("POST", "/grid", withCORS(s.loadGridHandler))
	s.router.HandleFunc("GET", "/grid/render", withCORS(s.renderGridHandler))
	s.router.HandleFunc("GET", "/grid/edges", withCORS(s.edgesHandler))
	s.router.HandleFunc("POST", "/route", withCORS(s.routeHandler))
	s.router.HandleFunc("GET", "/watch", s.watchHandler)
	s.router.HandleFunc("OPTIONS", "/...", withCORS(func(w http.ResponseWriter, r *http.Request) {}))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) current() *Planner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planner
}

// withCORS opens every grid-planner endpoint to browser clients on any origin
// and answers preflight requests without reaching the handler.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method != http.MethodOptions {
			next(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("failed to encode response: %v", err)
	}
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	g := s.current().Grid()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"height":    g.Height(),
		"width":     g.Width(),
		"obstacles": g.ObstacleCount(),
	})
}

// GET /grid - Current grid as 0/1 rows
func (s *Server) gridHandler(w http.ResponseWriter, r *http.Request) {
	g := s.current().Grid()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"height": g.Height(),
		"width":  g.Width(),
		"rows":   FormatRows(g),
	})
}

// GET /grid/render - Current grid as glyphs
func (s *Server) renderGridHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, RenderMap(s.current().Grid(), false))
}

// GET /grid/edges - Adjacency edges for visualization
func (s *Server) edgesHandler(w http.ResponseWriter, r *http.Request) {
	edges := s.current().Grid().Edges()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"edges":    edges,
		"numEdges": len(edges),
	})
}

// POST /grid - Replace the grid. YAML or JSON bodies are read as map
// documents, anything else as text rows. Documents posted here may not name
// an obstacles file; the server never reads paths taken from a request.
func (s *Server) loadGridHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("🗺️  Load grid request received")

	data, err := io.ReadAll(io.LimitReader(r.Body, maxMapBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var terrain [][]Terrain
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "yaml") || strings.Contains(contentType, "json") {
		terrain, err = ParseMapDocument(data, "")
	} else {
		terrain, err = ParseTextMap(bytes.NewReader(data))
	}
	if err != nil {
		log.Warnf("❌ Invalid map: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	g, err := BuildGrid(terrain)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	s.mu.Lock()
	s.planner = NewPlanner(g, s.opts...)
	s.mu.Unlock()

	log.Printf("✅ Grid replaced: %dx%d, %d obstacles", g.Height(), g.Width(), g.ObstacleCount())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"height":    g.Height(),
		"width":     g.Width(),
		"obstacles": g.ObstacleCount(),
	})
}

// POST /route - Shortest path between two cells
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.current().Route(req.Source, req.Destination)
	response := RouteResponse{
		ID:           result.ID,
		Path:         []Cell{},
		Success:      result.Found,
		Expanded:     result.Expanded,
		Verification: result.Verification,
	}
	if result.Path != nil {
		response.Path = result.Path.Cells
		response.Steps = result.Path.Steps
		response.Cost = result.Path.Cost
	}

	switch {
	case errors.Is(err, ErrOutOfBounds):
		response.Success = false
		response.Message = err.Error()
		writeJSON(w, http.StatusBadRequest, response)
	case errors.Is(err, ErrInconsistentVerification):
		response.Message = err.Error()
		writeJSON(w, http.StatusUnprocessableEntity, response)
	case err != nil:
		response.Success = false
		response.Message = err.Error()
		writeJSON(w, http.StatusInternalServerError, response)
	case !result.Found:
		response.Message = ErrUnreachable.Error()
		writeJSON(w, http.StatusOK, response)
	default:
		writeJSON(w, http.StatusOK, response)
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := NewServer(grid, cfg.PlannerOptions()...)

		log.Println("========================================")
		log.Println("🚀 Grid Planner Server")
		log.Println("========================================")
		log.Printf("Grid: %dx%d, %d obstacles", grid.Height(), grid.Width(), grid.ObstacleCount())
		log.Println("Endpoints:")
		log.Println("  GET  /health        - Check server status")
		log.Println("  GET  /grid          - Current grid as 0/1 rows")
		log.Println("  POST /grid          - Replace the grid (text, YAML or JSON)")
		log.Println("  GET  /grid/render   - Current grid as glyphs")
		log.Println("  GET  /grid/edges    - Adjacency edges for visualization")
		log.Println("  POST /route         - Shortest path between two cells")
		log.Println("  GET  /watch         - Websocket stream of a search")
		log.Printf("Server starting on %s", cfg.ListenAddr)

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           s,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagCfg.ListenAddr, "addr", DefaultListenAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}
