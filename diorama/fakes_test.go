package diorama

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mokiat/lacking/util/async"
	"go.uber.org/zap/zaptest"

	"github.com/nobonobo/jeep-diorama/schema"
)

type fakeRenderer struct {
	width, height int
	pixelRatio    float64
	renders       int
	children      [][]uuid.UUID
}

func (r *fakeRenderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *fakeRenderer) SetPixelRatio(ratio float64) {
	r.pixelRatio = ratio
}

func (r *fakeRenderer) Render(scene *Scene, camera *Camera) {
	r.renders++
	var ids []uuid.UUID
	for _, child := range scene.Children() {
		ids = append(ids, child.Base().ID)
	}
	r.children = append(r.children, ids)
}

type fakeDriver struct {
	playing bool
	time    time.Duration
	updates []time.Duration
}

func (d *fakeDriver) Play() {
	d.playing = true
}

func (d *fakeDriver) Stop() {
	d.playing = false
	d.time = 0
}

func (d *fakeDriver) Playing() bool {
	return d.playing
}

func (d *fakeDriver) Update(elapsed time.Duration) {
	d.updates = append(d.updates, elapsed)
	if d.playing {
		d.time += elapsed
	}
}

func (d *fakeDriver) Time() time.Duration {
	return d.time
}

// fakeLoader completes each load when a value is sent on the matching
// channel: nil succeeds, anything else fails.
type fakeLoader struct {
	environment chan error
	model       chan error
	clips       []string
	driver      *fakeDriver
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		environment: make(chan error, 1),
		model:       make(chan error, 1),
		clips:       []string{"Drive"},
		driver:      &fakeDriver{},
	}
}

func (l *fakeLoader) LoadEnvironment(path string) async.Promise[*Environment] {
	env := &Environment{Path: path, Width: 2048, Height: 1024}
	return async.InjectionPromise(async.NewFuncOperation(func() error {
		return <-l.environment
	}), env)
}

func (l *fakeLoader) LoadModel(path string) async.Promise[*Model] {
	model := &Model{Node: newNode("Jeep"), Clips: l.clips}
	if l.driver != nil {
		model.Driver = l.driver
	}
	return async.InjectionPromise(async.NewFuncOperation(func() error {
		return <-l.model
	}), model)
}

// steppedClock advances by step on every reading.
func steppedClock(step time.Duration) func() time.Time {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func newTestApplication(t *testing.T) (*Application, *fakeRenderer, *fakeLoader) {
	t.Helper()
	renderer := &fakeRenderer{}
	loader := newFakeLoader()
	app, err := NewApplication(Options{
		Manifest: schema.DefaultManifest(),
		Viewport: Viewport{Width: 1280, Height: 720, DevicePixelRatio: 1},
		Renderer: renderer,
		Loader:   loader,
		Logger:   zaptest.NewLogger(t),
		Now:      steppedClock(16 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	return app, renderer, loader
}

// frameUntil runs frames until cond holds or the deadline passes.
func frameUntil(t *testing.T, app *Application, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached before deadline")
		}
		app.Frame()
		time.Sleep(time.Millisecond)
	}
}

func countChildren[T Object](scene *Scene) int {
	count := 0
	for _, child := range scene.Children() {
		if _, ok := child.(T); ok {
			count++
		}
	}
	return count
}
