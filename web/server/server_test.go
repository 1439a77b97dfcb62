package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pixel-tracer/pkg/scene"
)

const testSceneFile = `# Scene: Single Light
# Group: Test Scenes

[[sphere]]
center = [0.0, 0.0, -5.0]
radius = 1.0
[sphere.material]
emission = [4.0, 4.0, 4.0]
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "single-light.toml"), []byte(testSceneFile), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return NewServer(0, dir, nil)
}

func get(t *testing.T, s *Server, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if query != nil {
		target += "?" + query.Encode()
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scenes", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var response scene.ScenesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Scenes[0].ID != scene.DefaultSceneID {
		t.Errorf("Expected built-in scene first, got %q", response.Groups[0].Scenes[0].ID)
	}
	if got := response.Groups[1].Scenes[0].ID; got != "file:single-light" {
		t.Errorf("Expected file:single-light, got %q", got)
	}
}

func TestOpenScene(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		id         string
		primitives int
		wantErr    bool
	}{
		{scene.DefaultSceneID, 8, false},
		{"file:single-light", 1, false},
		{"file:missing", 0, true},
		{"../../etc/passwd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			sceneObj, err := s.openScene(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if sceneObj.GetPrimitiveCount() != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, sceneObj.GetPrimitiveCount())
			}
		})
	}
}

func TestParseRenderRequest(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, req *RenderRequest)
	}{
		{
			name:  "defaults",
			query: "",
			check: func(t *testing.T, req *RenderRequest) {
				if req.Scene != scene.DefaultSceneID || req.Width != DefaultWidth || req.Height != DefaultHeight {
					t.Errorf("Unexpected defaults: %+v", req)
				}
				if req.Frames != 50 || req.Passes != 7 || req.MaxPathLength != 3 || !req.AntiAlias {
					t.Errorf("Unexpected render defaults: %+v", req)
				}
			},
		},
		{
			name:  "overrides",
			query: "scene=file:single-light&width=64&height=32&frames=4&passes=2&maxPathLength=5&seed=9&antiAlias=false&aperture=0.2&focalPlane=6",
			check: func(t *testing.T, req *RenderRequest) {
				want := RenderRequest{
					Scene: "file:single-light", Width: 64, Height: 32, Frames: 4, Passes: 2,
					MaxPathLength: 5, Seed: 9, AntiAlias: false, Aperture: 0.2, FocalPlane: 6,
				}
				if *req != want {
					t.Errorf("Got %+v, want %+v", *req, want)
				}
			},
		},
		{name: "width too small", query: "width=4", wantErr: true},
		{name: "frames not a number", query: "frames=many", wantErr: true},
		{name: "negative aperture", query: "aperture=-1", wantErr: true},
		{name: "bad bool", query: "antiAlias=maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil)
			req, err := s.parseRenderRequest(r)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, req)
		})
	}
}

func TestHandleRender_StreamsPassesAndTiles(t *testing.T) {
	query := url.Values{
		"width":         {"32"},
		"height":        {"16"},
		"frames":        {"2"},
		"passes":        {"2"},
		"maxPathLength": {"2"},
	}
	rec := get(t, newTestServer(t), "/api/render", query)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	body := rec.Body.String()
	for _, event := range []string{"event: tile", "event: passComplete", "event: complete"} {
		if !strings.Contains(body, event) {
			t.Errorf("Expected %q in stream", event)
		}
	}
	if strings.Contains(body, "event: error") {
		t.Errorf("Unexpected error event in stream: %s", body)
	}

	if got := strings.Count(body, "event: passComplete"); got != 2 {
		t.Errorf("Expected 2 pass events, got %d", got)
	}

	// The last pass reports every pixel at the full frame count
	var last PassUpdate
	for _, line := range strings.Split(body, "\n") {
		if data, ok := strings.CutPrefix(line, "data: "); ok && strings.Contains(data, `"event":"passComplete"`) {
			if err := json.Unmarshal([]byte(data), &last); err != nil {
				t.Fatalf("Invalid pass update JSON: %v", err)
			}
		}
	}
	if !last.IsLast || last.MinSamples != 2 || last.TotalPixels != 32*16 || last.PrimitiveCount != 8 {
		t.Errorf("Unexpected final pass update: %+v", last)
	}
	if last.ImageData == "" {
		t.Error("Expected image data in final pass update")
	}
	if last.AverageVariance < 0 || last.AverageLuminance < 0 || last.AverageLuminance > 1 {
		t.Errorf("Unexpected noise stats: variance %g luminance %g", last.AverageVariance, last.AverageLuminance)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"invalid width", url.Values{"width": {"1"}}},
		{"unknown scene", url.Values{"scene": {"file:missing"}, "width": {"16"}, "height": {"16"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := get(t, newTestServer(t), "/api/render", tt.query).Body.String()
			if !strings.Contains(body, "event: error") {
				t.Errorf("Expected error event, got %q", body)
			}
			if strings.Contains(body, "event: complete") {
				t.Error("Did not expect a complete event")
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name         string
		query        url.Values
		status       int
		hit          bool
		geometryType string
		materialType string
	}{
		{
			name:   "center hits glossy sphere",
			query:  url.Values{"width": {"400"}, "height": {"200"}, "x": {"200"}, "y": {"100"}},
			status: http.StatusOK, hit: true, geometryType: "sphere", materialType: "phong",
		},
		{
			name:   "top left corner hits left wall",
			query:  url.Values{"width": {"400"}, "height": {"200"}, "x": {"0"}, "y": {"0"}},
			status: http.StatusOK, hit: true, geometryType: "plane", materialType: "phong",
		},
		{
			name:   "emitter in scene file",
			query:  url.Values{"scene": {"file:single-light"}, "width": {"64"}, "height": {"32"}, "x": {"32"}, "y": {"16"}},
			status: http.StatusOK, hit: true, geometryType: "sphere", materialType: "emissive",
		},
		{
			name:   "miss in scene file",
			query:  url.Values{"scene": {"file:single-light"}, "width": {"64"}, "height": {"32"}, "x": {"0"}, "y": {"0"}},
			status: http.StatusOK, hit: false,
		},
		{
			name:   "out of bounds",
			query:  url.Values{"width": {"400"}, "height": {"200"}, "x": {"400"}, "y": {"0"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing coordinate",
			query:  url.Values{"width": {"400"}, "height": {"200"}, "x": {"10"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown scene",
			query:  url.Values{"scene": {"nope"}, "x": {"1"}, "y": {"1"}},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/inspect", tt.query)
			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}

			var response InspectResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if response.Hit != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, response.Hit)
			}
			if !tt.hit {
				return
			}
			if response.GeometryType != tt.geometryType || response.MaterialType != tt.materialType {
				t.Errorf("Got %s/%s, want %s/%s", response.GeometryType, response.MaterialType, tt.geometryType, tt.materialType)
			}
			if response.Distance <= 0 {
				t.Errorf("Expected positive distance, got %g", response.Distance)
			}
		})
	}
}
