package web

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/goccy/go-json"

	"borough-recommender/services"
)

// mapScript feeds the shared Leaflet script. Boundaries is inlined GeoJSON,
// or null to fetch /geojson at runtime.
type mapScript struct {
	View       template.JS
	Boundaries template.JS
}

func mapArgs(view template.JS) mapScript {
	return mapScript{View: view, Boundaries: template.JS("null")}
}

// RenderMapPage renders a standalone map document with the borough
// boundaries inlined, suitable for loading from disk.
func RenderMapPage(view *services.MapView, geojson []byte) ([]byte, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	viewJSON, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("web: encode map view: %w", err)
	}
	args := mapArgs(template.JS(viewJSON))
	if len(geojson) > 0 {
		if !json.Valid(geojson) {
			return nil, fmt.Errorf("web: boundaries are not valid JSON")
		}
		args.Boundaries = template.JS(geojson)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "map.html", args); err != nil {
		return nil, fmt.Errorf("web: render map page: %w", err)
	}
	return buf.Bytes(), nil
}
