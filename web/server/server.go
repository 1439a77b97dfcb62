package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-pixel-tracer/pkg/config"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

// Request limits shared by /api/render and /api/inspect
const (
	DefaultWidth  = 400
	DefaultHeight = 200
	MinDimension  = 16
	MaxDimension  = 2000
)

// Server handles web requests for the progressive path tracer
type Server struct {
	port      int
	scenesDir string
	logger    *zap.Logger
}

// NewServer creates a new web server. Scene files are read from scenesDir;
// an empty dir serves only the built-in scene.
func NewServer(port int, scenesDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{port: port, scenesDir: scenesDir, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene         string  `json:"scene"`         // Scene ID from /api/scenes
	Width         int     `json:"width"`         // Image width
	Height        int     `json:"height"`        // Image height
	Aperture      float64 `json:"aperture"`      // Lens aperture, 0 for a pinhole
	FocalPlane    float64 `json:"focalPlane"`    // Distance to the plane in focus
	Frames        int     `json:"frames"`        // Frames accumulated per pixel
	Passes        int     `json:"passes"`        // Progressive passes
	MaxPathLength int     `json:"maxPathLength"` // Path vertices per sample
	Seed          int64   `json:"seed"`          // Frame seed sequence seed
	AntiAlias     bool    `json:"antiAlias"`     // Jitter samples inside the pixel
}

// Config applies the request on top of the default render settings
func (req *RenderRequest) Config() config.Config {
	cfg := config.Default()
	cfg.Render.Scene = req.Scene
	cfg.Render.Width = req.Width
	cfg.Render.Height = req.Height
	cfg.Render.Frames = req.Frames
	cfg.Render.Passes = req.Passes
	cfg.Render.MaxPathLength = req.MaxPathLength
	cfg.Render.Seed = req.Seed
	cfg.Render.AntiAlias = req.AntiAlias
	cfg.Camera.Aperture = req.Aperture
	cfg.Camera.FocalPlane = req.FocalPlane
	return cfg
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

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
	s.logger.Info("starting web server", zap.String("addr", "http://localhost"+addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scene and the scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.logger.Error("failed to list scenes", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// openScene resolves a scene ID from /api/scenes. Only the built-in scene
// and files listed in the scenes directory can be opened.
func (s *Server) openScene(id string) (*scene.Scene, error) {
	if id == scene.DefaultSceneID {
		return scene.NewDefaultScene(), nil
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return scene.LoadFile(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", id)
}

// parseCommonSceneParams parses the parameters that select a scene and a
// view of it
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneID
	}

	defaults := config.Default()

	var err error
	if req.Width, err = parseIntParam(query, "width", DefaultWidth, MinDimension, MaxDimension); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", DefaultHeight, MinDimension, MaxDimension); err != nil {
		return err
	}
	if req.Aperture, err = parseFloatParam(query, "aperture", defaults.Camera.Aperture, 0, 10); err != nil {
		return err
	}
	if req.FocalPlane, err = parseFloatParam(query, "focalPlane", defaults.Camera.FocalPlane, 0.01, 10000); err != nil {
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
