package diorama

import (
	"time"

	"github.com/mokiat/lacking/util/async"
)

// Renderer draws the scene. Implementations mirror the scene state into
// their own objects on every Render call. Draw failures are not reported.
type Renderer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
	Render(scene *Scene, camera *Camera)
}

// AssetLoader starts asynchronous asset loads. Promises may complete on any
// goroutine.
type AssetLoader interface {
	// LoadEnvironment fetches an equirectangular HDR image and returns a
	// prefiltered environment map.
	LoadEnvironment(path string) async.Promise[*Environment]

	// LoadModel fetches an animated model. The returned model carries a
	// driver bound to its first clip, not yet playing.
	LoadModel(path string) async.Promise[*Model]
}

// AnimationDriver advances a model's animation clip.
type AnimationDriver interface {
	Play()
	// Stop halts playback and rewinds to the start of the clip.
	Stop()
	Playing() bool
	Update(elapsed time.Duration)
	Time() time.Duration
}
