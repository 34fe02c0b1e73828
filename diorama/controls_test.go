package diorama

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/mokiat/gomath/dprec"
)

func TestPanelLayout(t *testing.T) {
	app, _, _ := newTestApplication(t)
	panel := app.Panel()

	var keys []string
	for _, c := range panel.Controls() {
		keys = append(keys, controlKey(c))
	}
	want := []string{"color", "enableRotate", "LightColor", "restartAnimation", "Light/x", "Light/y", "Light/z", "Light/intensity"}
	if !slices.Equal(keys, want) {
		t.Errorf("expected controls %v, got %v", want, keys)
	}
	if folders := panel.Folders(); !slices.Equal(folders, []string{"Light"}) {
		t.Errorf("expected folders [Light], got %v", folders)
	}

	c, ok := panel.Lookup("Light/intensity")
	if !ok {
		t.Fatal("intensity control missing")
	}
	intensity, ok := c.(*NumberControl)
	if !ok {
		t.Fatalf("expected number control, got %T", c)
	}
	if intensity.Range != LightIntensityRange {
		t.Errorf("unexpected range %+v", intensity.Range)
	}
	if intensity.Get() != 80 {
		t.Errorf("expected initial intensity 80, got %v", intensity.Get())
	}
}

func TestBackgroundColorControl(t *testing.T) {
	app, _, _ := newTestApplication(t)
	panel := app.Panel()

	for _, hex := range []string{"#ff0000", "#123456", "#59cfff", "#ffffff"} {
		if err := panel.Set("color", hex); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := MustParseColor(hex)
		scene := app.Scene()
		if scene.Background != want {
			t.Errorf("%s: background %v", hex, scene.Background)
		}
		if scene.Fog.Color != want {
			t.Errorf("%s: fog %v", hex, scene.Fog.Color)
		}
		if app.Ground().Material.Color != want {
			t.Errorf("%s: ground %v", hex, app.Ground().Material.Color)
		}
		if scene.Fog.Density != 0.1 {
			t.Errorf("%s: fog density changed to %v", hex, scene.Fog.Density)
		}
		if app.Params().Color != hex {
			t.Errorf("%s: params not updated: %s", hex, app.Params().Color)
		}
	}
}

func TestColorControlRejectsMalformed(t *testing.T) {
	app, _, _ := newTestApplication(t)
	before := app.Scene().Background

	if err := app.Panel().Set("color", "cyan"); err == nil {
		t.Fatal("expected error for malformed color")
	}
	if app.Scene().Background != before {
		t.Error("background changed after a rejected value")
	}
	if app.Params().Color != "#59cfff" {
		t.Errorf("params changed after a rejected value: %s", app.Params().Color)
	}
}

func TestLightColorControl(t *testing.T) {
	app, _, _ := newTestApplication(t)
	background := app.Scene().Background

	if err := app.Panel().Set("LightColor", "#ff8800"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Light().Color != MustParseColor("#ff8800") {
		t.Errorf("unexpected light color %v", app.Light().Color)
	}
	if app.Scene().Background != background {
		t.Error("light color must not affect the background")
	}
}

func TestLightIntensityControlClamps(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{300, 300},
		{150.5, 150.5},
		{-1, 0},
		{300.01, 300},
		{1e9, 300},
		{math.Inf(1), 300},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	app, _, _ := newTestApplication(t)
	for _, tt := range tests {
		if err := app.Panel().Set("Light/intensity", tt.value); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app.Light().Intensity != tt.want {
			t.Errorf("set %v: expected %v, got %v", tt.value, tt.want, app.Light().Intensity)
		}
	}
}

func TestLightPositionClampsNonFinite(t *testing.T) {
	app, _, _ := newTestApplication(t)
	app.SetLightPosition(dprec.NewVec3(math.NaN(), math.Inf(1), math.Inf(-1)))

	position := app.Light().Position
	if position.X != LightPositionRange.Min || position.Y != 20 || position.Z != -20 {
		t.Errorf("unexpected light position %+v", position)
	}
	if params := app.Params(); math.IsNaN(params.LightX) {
		t.Error("NaN leaked into params")
	}
}

func TestLightPositionControls(t *testing.T) {
	app, _, _ := newTestApplication(t)
	panel := app.Panel()

	if err := panel.Set("Light/x", -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := panel.Set("Light/y", 25.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := panel.Set("Light/z", 3.25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	position := app.Light().Position
	if position.X != -5 || position.Y != 20 || position.Z != 3.25 {
		t.Errorf("unexpected light position %+v", position)
	}
	params := app.Params()
	if params.LightX != -5 || params.LightY != 20 || params.LightZ != 3.25 {
		t.Errorf("params out of sync: %+v", params)
	}
	c, _ := panel.Lookup("Light/y")
	if got := c.(*NumberControl).Get(); got != 20 {
		t.Errorf("control reads %v", got)
	}
}

func TestAutoRotateControl(t *testing.T) {
	app, _, _ := newTestApplication(t)
	app.Frame()

	if err := app.Panel().Set("enableRotate", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	position := app.Camera().Position
	for range 5 {
		app.Frame()
	}
	if app.Camera().Position != position {
		t.Error("camera kept orbiting with auto rotate off")
	}

	if err := app.Panel().Set("enableRotate", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app.Frame()
	if app.Camera().Position == position {
		t.Error("camera did not resume orbiting")
	}
}

func TestPanelSetErrors(t *testing.T) {
	app, _, _ := newTestApplication(t)
	panel := app.Panel()

	if err := panel.Set("Light/w", 1.0); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("expected ErrUnknownControl, got %v", err)
	}
	tests := []struct {
		key   string
		value any
	}{
		{"color", 12},
		{"Light/x", "12"},
		{"enableRotate", "yes"},
	}
	for _, tt := range tests {
		if err := panel.Set(tt.key, tt.value); !errors.Is(err, ErrControlKind) {
			t.Errorf("%s=%v: expected ErrControlKind, got %v", tt.key, tt.value, err)
		}
	}
}

func TestPanelDuplicateControlPanics(t *testing.T) {
	panel := NewPanel()
	panel.AddToggle("", "flag", func() bool { return false }, func(bool) {})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate control")
		}
	}()
	panel.AddToggle("", "flag", func() bool { return false }, func(bool) {})
}
