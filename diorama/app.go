package diorama

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/lacking/util/async"
	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/schema"
)

type Options struct {
	Manifest schema.Manifest
	Viewport Viewport
	Renderer Renderer
	Loader   AssetLoader
	Logger   *zap.Logger

	// MaxPixelRatio overrides the cap from the manifest.
	MaxPixelRatio opt.T[float64]

	// Now replaces the wall clock, mostly for tests.
	Now func() time.Time
}

// Application owns the whole scene for the lifetime of the page. Every
// method must be called from the render loop goroutine; asset completions
// are funneled there through the worker.
type Application struct {
	logger   *zap.Logger
	renderer Renderer
	loader   AssetLoader
	worker   *async.Worker
	clock    *Clock

	maxPixelRatio float64
	viewport      Viewport

	scene   *Scene
	camera  *Camera
	orbit   *OrbitController
	ground  *Ground
	ambient *AmbientLight
	light   *PointLight

	environment *Asset[*Environment]
	model       *Asset[*Model]
	loaded      *Model

	params schema.Params
	panel  *Panel
	frames uint64
}

func NewApplication(options Options) (*Application, error) {
	if options.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if options.Loader == nil {
		return nil, errors.New("asset loader is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxPixelRatio := options.Manifest.MaxPixelRatio
	if options.MaxPixelRatio.Specified {
		maxPixelRatio = options.MaxPixelRatio.Value
	}
	if maxPixelRatio <= 0 {
		maxPixelRatio = DefaultMaxPixelRatio
	}

	app := &Application{
		logger:        logger,
		renderer:      options.Renderer,
		loader:        options.Loader,
		worker:        NewWorker(),
		clock:         NewClock(options.Now),
		maxPixelRatio: maxPixelRatio,

		scene:   NewScene(),
		camera:  NewCamera(options.Viewport),
		ground:  NewGround(),
		ambient: NewAmbientLight(),
		light:   NewPointLight(),

		environment: NewAsset[*Environment](options.Manifest.Environment),
		model:       NewAsset[*Model](options.Manifest.Model),

		params: schema.DefaultParams(),
	}
	app.orbit = NewOrbitController(app.camera)

	app.scene.Add(app.camera)
	app.scene.Add(app.ambient)
	app.scene.Add(app.light)
	app.scene.Add(app.ground)

	if err := app.ApplyParams(options.Manifest.Params); err != nil {
		return nil, err
	}
	app.panel = app.bindControls()
	app.Resize(options.Viewport)
	return app, nil
}

func (a *Application) Scene() *Scene { return a.scene }
func (a *Application) Camera() *Camera { return a.camera }
func (a *Application) Orbit() *OrbitController { return a.orbit }
func (a *Application) Ground() *Ground { return a.ground }
func (a *Application) Light() *PointLight { return a.light }
func (a *Application) Panel() *Panel { return a.panel }
func (a *Application) Params() schema.Params { return a.params }
func (a *Application) Worker() Worker { return a.worker }
func (a *Application) Viewport() Viewport { return a.viewport }
func (a *Application) Frames() uint64 { return a.frames }
func (a *Application) EnvironmentAsset() *Asset[*Environment] { return a.environment }
func (a *Application) ModelAsset() *Asset[*Model] { return a.model }

// Ready reports whether the model has loaded. It turns true once and stays
// true.
func (a *Application) Ready() bool {
	return a.loaded != nil
}

// Start begins loading both assets. Calling it again has no effect.
func (a *Application) Start() {
	if a.environment.State() == AssetNotLoaded {
		a.logger.Info("Loading environment", zap.String("path", a.environment.Path))
		a.environment.Track(a.worker,
			a.loader.LoadEnvironment(a.environment.Path),
			a.AttachEnvironment,
			a.assetDone(a.environment.Path),
		)
	}
	if a.model.State() == AssetNotLoaded {
		a.logger.Info("Loading model", zap.String("path", a.model.Path))
		a.model.Track(a.worker,
			a.loader.LoadModel(a.model.Path),
			a.AttachModel,
			a.assetDone(a.model.Path),
		)
	}
}

func (a *Application) assetDone(path string) func(error) {
	return func(err error) {
		switch {
		case err == nil:
			a.logger.Info("Asset loaded", zap.String("path", path))
		case errors.Is(err, ErrAlreadyLoaded):
			a.logger.Warn("Ignoring repeated asset completion", zap.String("path", path), zap.Error(err))
		default:
			a.logger.Error("Asset failed", zap.String("path", path), zap.Error(err))
		}
	}
}

// AttachEnvironment records the environment map on the scene and installs
// it on the ground material. The model is not lit by it.
func (a *Application) AttachEnvironment(env *Environment) error {
	if a.scene.Environment != nil {
		return ErrAlreadyLoaded
	}
	a.scene.Environment = env
	a.ground.Material.EnvMap = env
	a.logger.Debug("Environment attached",
		zap.Int("width", env.Width),
		zap.Int("height", env.Height),
	)
	return nil
}

// AttachModel normalizes the model, starts its animation and inserts it into
// the scene. It succeeds once.
func (a *Application) AttachModel(model *Model) error {
	if a.loaded != nil {
		return ErrAlreadyLoaded
	}
	if model.Driver == nil || len(model.Clips) == 0 {
		return ErrNoAnimation
	}
	if model.ID == uuid.Nil {
		name := model.Name
		if name == "" {
			name = "Model"
		}
		model.Node = newNode(name)
	}
	model.Path = a.model.Path
	model.Position = dprec.NewVec3(0, 1, 0)
	model.Scale = dprec.NewVec3(0.01, 0.01, 0.01)
	model.CastShadow = true
	model.Metalness = 0
	model.Roughness = 1
	if !a.scene.Add(model) {
		return ErrAlreadyLoaded
	}
	model.Driver.Play()
	a.loaded = model
	return nil
}

// RestartAnimation rewinds the model's clip to zero and plays it again.
func (a *Application) RestartAnimation() {
	if a.loaded == nil {
		return
	}
	a.loaded.Driver.Stop()
	a.loaded.Driver.Play()
}

// Frame runs one iteration of the render loop.
func (a *Application) Frame() {
	drain(a.worker)

	elapsed := a.clock.Delta()
	if a.loaded != nil {
		a.loaded.Driver.Update(elapsed)
	}
	a.orbit.Update(a.camera, elapsed)
	a.renderer.Render(a.scene, a.camera)
	a.frames++
}

// Resize adapts the camera projection and the render target to the viewport.
func (a *Application) Resize(viewport Viewport) {
	a.viewport = viewport
	a.camera.SetViewport(viewport)
	a.renderer.SetSize(viewport.Width, viewport.Height)
	a.renderer.SetPixelRatio(viewport.PixelRatio(a.maxPixelRatio))
	a.logger.Debug("Viewport resized",
		zap.Int("width", viewport.Width),
		zap.Int("height", viewport.Height),
		zap.Float64("aspect", a.camera.Aspect()),
	)
}

// ApplyParams replaces the whole parameter set. Colors are validated before
// anything changes.
func (a *Application) ApplyParams(params schema.Params) error {
	if _, err := ParseColor(params.Color); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := ParseColor(params.LightColor); err != nil {
		return fmt.Errorf("light: %w", err)
	}
	_ = a.SetBackgroundColor(params.Color)
	_ = a.SetLightColor(params.LightColor)
	a.SetLightPosition(dprec.NewVec3(params.LightX, params.LightY, params.LightZ))
	a.SetLightIntensity(params.LightIntensity)
	a.SetAutoRotate(params.EnableRotate)
	return nil
}

// SetBackgroundColor recolors the background, the fog and the ground with
// the same linear color. Fog density is preserved.
func (a *Application) SetBackgroundColor(hex string) error {
	color, err := ParseColor(hex)
	if err != nil {
		return err
	}
	a.params.Color = hex
	a.scene.Background = color
	a.scene.Fog = Fog{
		Color:   color,
		Density: a.scene.Fog.Density,
	}
	a.ground.Material.Color = color
	return nil
}

func (a *Application) SetLightColor(hex string) error {
	color, err := ParseColor(hex)
	if err != nil {
		return err
	}
	a.params.LightColor = hex
	a.light.Color = color
	return nil
}

func (a *Application) SetLightPosition(position dprec.Vec3) {
	position = dprec.NewVec3(
		LightPositionRange.Clamp(position.X),
		LightPositionRange.Clamp(position.Y),
		LightPositionRange.Clamp(position.Z),
	)
	a.params.LightX = position.X
	a.params.LightY = position.Y
	a.params.LightZ = position.Z
	a.light.Position = position
}

func (a *Application) SetLightIntensity(intensity float64) {
	intensity = LightIntensityRange.Clamp(intensity)
	a.params.LightIntensity = intensity
	a.light.Intensity = intensity
}

func (a *Application) SetAutoRotate(enabled bool) {
	a.params.EnableRotate = enabled
	a.orbit.AutoRotate = enabled
}

func (a *Application) bindControls() *Panel {
	panel := NewPanel()
	panel.AddColor("", "color",
		func() string { return a.params.Color },
		a.SetBackgroundColor,
	)
	panel.AddToggle("", "enableRotate",
		func() bool { return a.params.EnableRotate },
		a.SetAutoRotate,
	)
	panel.AddColor("", "LightColor",
		func() string { return a.params.LightColor },
		a.SetLightColor,
	)
	panel.AddAction("", "restartAnimation", a.RestartAnimation)

	axis := func(name string, field *float64, set func(dprec.Vec3, float64) dprec.Vec3) {
		panel.AddNumber("Light", name, LightPositionRange, 0.1,
			func() float64 { return *field },
			func(v float64) { a.SetLightPosition(set(a.light.Position, v)) },
		)
	}
	axis("x", &a.params.LightX, func(p dprec.Vec3, v float64) dprec.Vec3 { p.X = v; return p })
	axis("y", &a.params.LightY, func(p dprec.Vec3, v float64) dprec.Vec3 { p.Y = v; return p })
	axis("z", &a.params.LightZ, func(p dprec.Vec3, v float64) dprec.Vec3 { p.Z = v; return p })
	panel.AddNumber("Light", "intensity", LightIntensityRange, 1,
		func() float64 { return a.params.LightIntensity },
		a.SetLightIntensity,
	)
	return panel
}
