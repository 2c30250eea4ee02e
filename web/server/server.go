package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Server handles web requests for the tiled raytracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for JSON scene files
	staticDir string
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		staticDir: "static/",
	}
}

// RenderRequest holds the parameters shared by render and inspect requests
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene ID (e.g., "default" or "file:two-spheres")
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	TileSize int    `json:"tileSize"` // Tile edge length in pixels
	Workers  int    `json:"workers"`  // Parallel workers (0 = CPU count)
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes followed by the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		log.Printf("Error listing scenes: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to list scenes")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseCommonSceneParams parses the scene ID and image size
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 16, 2000); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene opens the requested scene at the requested size
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	return scene.Open(req.Scene, s.scenesDir, req.Width, req.Height)
}

// renderConfig maps request parameters onto the renderer's configuration
func (req *RenderRequest) renderConfig() renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.TileSize = req.TileSize
	config.NumWorkers = req.Workers
	return config
}

// writeJSONError writes an {"error": message} body with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
