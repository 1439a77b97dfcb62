package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-pixel-tracer/pkg/core"
	"github.com/df07/go-pixel-tracer/pkg/geometry"
	"github.com/df07/go-pixel-tracer/pkg/integrator"
	"github.com/df07/go-pixel-tracer/pkg/material"
	"github.com/df07/go-pixel-tracer/pkg/renderer"
	"github.com/df07/go-pixel-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult describes the first primitive along an inspection ray
type InspectResult struct {
	Hit       bool
	HitInfo   geometry.HitInfo
	Primitive geometry.Primitive
}

func triple(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	channel := func(c float64) int {
		return int(min(max(c, 0), 1) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(v.X), channel(v.Y), channel(v.Z))
}

// extractMaterialInfo classifies a material and lists its parameters
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"emission":   triple(mat.Emission),
		"diffuse":    triple(mat.Diffuse),
		"specular":   triple(mat.Specular),
		"glossiness": mat.Glossiness,
	}

	switch {
	case mat.IsEmissive():
		properties["color"] = hexColor(mat.Emission)
		return "emissive", properties
	case mat.Specular == (core.Vec3{}):
		properties["color"] = hexColor(mat.Diffuse)
		return "diffuse", properties
	default:
		properties["color"] = hexColor(mat.Diffuse)
		return "phong", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := p.(type) {
	case *geometry.Sphere:
		properties["center"] = triple(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["normal"] = triple(geom.Normal)
		properties["d"] = geom.D
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the ray through the center of pixel (pixelX, pixelY),
// counted from the top-left, and returns the first primitive hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, height, pixelX, pixelY int) InspectResult {
	ray := camera.CenterRay(renderer.FragCoord(pixelX, pixelY, height))

	hit, primitive := sceneObj.IntersectPrimitive(ray, integrator.TMin, integrator.TMax)
	if !hit.Hit {
		return InspectResult{Hit: false}
	}
	return InspectResult{Hit: true, HitInfo: hit, Primitive: primitive}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, inspectReq.Width-1)
	if err != nil || pixelX < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, inspectReq.Height-1)
	if err != nil || pixelY < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	cfg := inspectReq.Config()
	cameraConfig := cfg.CameraConfig()
	if err := cameraConfig.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.openScene(inspectReq.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	camera := renderer.NewCamera(cameraConfig, inspectReq.Width, inspectReq.Height)
	result := inspectPixel(sceneObj, camera, inspectReq.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitInfo.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Primitive)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        triple(result.HitInfo.Position),
		Normal:       triple(result.HitInfo.Normal),
		Distance:     result.HitInfo.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
