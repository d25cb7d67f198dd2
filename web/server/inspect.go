package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// InspectResponse describes the object seen through a pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	PixelColor   string                 `json:"pixelColor"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractSurfaceInfo describes the object type and its surface
func extractSurfaceInfo(obj geometry.Object) (string, map[string]interface{}) {
	surface := obj.Surface()
	properties := map[string]interface{}{
		"color":        hexColor(surface.Color.ToRGB24()),
		"albedo":       [3]float64{surface.Color.X, surface.Color.Y, surface.Color.Z},
		"reflectivity": surface.Reflectivity,
	}

	switch o := obj.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{o.Center.X, o.Center.Y, o.Center.Z}
		properties["radius"] = o.Radius
		return "sphere", properties
	case *geometry.Plane:
		properties["normal"] = [3]float64{o.Normal.X, o.Normal.Y, o.Normal.Z}
		return "plane", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts the primary ray through the center of pixel (x, y)
func inspectPixel(rt *renderer.Raytracer, sceneObj *scene.Scene, x, y int) InspectResponse {
	ray := rt.PrimaryRay(float64(x), float64(y))
	response := InspectResponse{
		PixelColor: hexColor(rt.RenderPixel(x, y).ToRGB24()),
	}

	obj, distance, ok := sceneObj.HitAny(ray)
	if !ok {
		return response
	}

	point := ray.At(distance)
	normal := obj.NormalAt(point)
	response.Hit = true
	response.GeometryType, response.Properties = extractSurfaceInfo(obj)
	response.Point = [3]float64{point.X, point.Y, point.Z}
	response.Normal = [3]float64{normal.X, normal.Y, normal.Z}
	response.Distance = distance
	return response
}

// handleInspect reports which object is visible at a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, NewWebLogger("inspect-"+uuid.NewString(), nil))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(inspectPixel(pipeline.Raytracer, pipeline.Scene, x, y))
}

func hexColor(rgb uint32) string {
	return fmt.Sprintf("#%06x", rgb)
}
