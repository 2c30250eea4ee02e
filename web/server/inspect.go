package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Eye          [3]float64             `json:"eye"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Color        [3]float64             `json:"color"` // Shaded, unclamped color at the hit
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult is the hit found by an inspection ray
type InspectResult struct {
	Hit      bool
	ObjectID scene.ObjectID
	Info     geometry.HitInfo
	Color    core.Color
}

// inspectPixel casts the ray through the center of the given pixel and
// returns information about the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)

	phong := integrator.NewPhongIntegrator()
	info, ok := phong.Trace(ray, sceneObj)
	if !ok {
		return InspectResult{Hit: false}
	}

	result := InspectResult{
		Hit:   true,
		Info:  info,
		Color: info.Object.Material().LightingAll(sceneObj.GetLights(), info.Point, info.Eye, info.Normal),
	}
	for i, obj := range sceneObj.GetObjects() {
		if obj == info.Object {
			result.ObjectID = scene.ObjectID(i)
			break
		}
	}
	return result
}

// extractMaterialInfo describes a Phong material for display
func (s *Server) extractMaterialInfo(mat material.Phong) map[string]interface{} {
	return map[string]interface{}{
		"color":     tuple3(mat.Color.R, mat.Color.G, mat.Color.B),
		"hex":       colorHex(mat.Color),
		"ambient":   mat.Ambient,
		"diffuse":   mat.Diffuse,
		"specular":  mat.Specular,
		"shininess": mat.Shininess,
	}
}

// extractGeometryInfo describes the shape of an object for display
func (s *Server) extractGeometryInfo(obj *geometry.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	shape := obj.Shape()
	switch shape.Kind {
	case geometry.KindSphere:
		position := obj.Position()
		properties["center"] = tuple3(position.X, position.Y, position.Z)
		properties["radius"] = shape.Radius
	}

	// World-space origin of the object
	origin := obj.Transform().MultiplyTuple(obj.Position())
	properties["worldCenter"] = tuple3(origin.X, origin.Y, origin.Z)

	return shape.Kind.String(), properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scene: %v", err))
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, ObjectID: -1})
		return
	}

	info := result.Info
	geometryType, geometryProps := s.extractGeometryInfo(info.Object)

	response := InspectResponse{
		Hit:          true,
		ObjectID:     int(result.ObjectID),
		GeometryType: geometryType,
		Point:        tuple3(info.Point.X, info.Point.Y, info.Point.Z),
		Normal:       tuple3(info.Normal.X, info.Normal.Y, info.Normal.Z),
		Eye:          tuple3(info.Eye.X, info.Eye.Y, info.Eye.Z),
		Distance:     info.T,
		Inside:       info.Inside,
		Color:        tuple3(result.Color.R, result.Color.G, result.Color.B),
		Properties: map[string]interface{}{
			"material": s.extractMaterialInfo(info.Object.Material()),
			"geometry": geometryProps,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func tuple3(x, y, z float64) [3]float64 {
	return [3]float64{x, y, z}
}

// colorHex formats a color as #rrggbb after clamping to [0,1]
func colorHex(c core.Color) string {
	clamped := c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x",
		int(clamped.R*255+0.5), int(clamped.G*255+0.5), int(clamped.B*255+0.5))
}
