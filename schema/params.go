package schema

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

var errNotFinite = errors.New("not a finite number")

// Params is the set of values exposed on the debug panel.
type Params struct {
	Color          string  `json:"color" yaml:"color"`
	LightColor     string  `json:"lightColor" yaml:"light_color"`
	LightX         float64 `json:"lightX" yaml:"light_x"`
	LightY         float64 `json:"lightY" yaml:"light_y"`
	LightZ         float64 `json:"lightZ" yaml:"light_z"`
	LightIntensity float64 `json:"lightIntensity" yaml:"light_intensity"`
	EnableRotate   bool    `json:"enableRotate" yaml:"enable_rotate"`
}

func DefaultParams() Params {
	return Params{
		Color:          "#59cfff",
		LightColor:     "#fffdd1",
		LightX:         19.4,
		LightY:         20,
		LightZ:         6.6,
		LightIntensity: 80,
		EnableRotate:   true,
	}
}

// Override replaces fields present in the query string. Unknown keys are
// ignored so that a page URL can carry unrelated parameters.
func (p *Params) Override(values url.Values) error {
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		value := list[len(list)-1]
		var err error
		switch key {
		case "color":
			p.Color = value
		case "lightColor":
			p.LightColor = value
		case "x":
			p.LightX, err = parseFinite(value)
		case "y":
			p.LightY, err = parseFinite(value)
		case "z":
			p.LightZ, err = parseFinite(value)
		case "intensity":
			p.LightIntensity, err = parseFinite(value)
		case "enableRotate":
			p.EnableRotate, err = strconv.ParseBool(value)
		}
		if err != nil {
			return fmt.Errorf("invalid query parameter %q: %w", key, err)
		}
	}
	return nil
}

// ManifestFile is the manifest's name next to the page.
const ManifestFile = "diorama.json"

// Manifest describes what the viewer should load.
type Manifest struct {
	Environment   string  `json:"environment" yaml:"environment"`
	Model         string  `json:"model" yaml:"model"`
	MaxPixelRatio float64 `json:"maxPixelRatio" yaml:"max_pixel_ratio"`
	Params        Params  `json:"params" yaml:"params"`
}

func DefaultManifest() Manifest {
	return Manifest{
		Environment:   "assets/envmap.hdr",
		Model:         "assets/Jeep_done.fbx",
		MaxPixelRatio: 2,
		Params:        DefaultParams(),
	}
}

func parseFinite(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
