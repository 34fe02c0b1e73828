//go:build js

package three

import (
	"fmt"
	"path"
	"strings"
	"syscall/js"

	"github.com/mokiat/lacking/util/async"
	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/diorama"
)

var _ diorama.AssetLoader = (*Loader)(nil)

// Loader fetches assets with the three.js loaders. Progress of every file
// is reported through a shared LoadingManager.
type Loader struct {
	logger   *zap.Logger
	renderer js.Value
	manager  js.Value
	handlers []js.Func
}

func NewLoader(renderer *Renderer, logger *zap.Logger) *Loader {
	l := &Loader{
		logger:   logger,
		renderer: renderer.Value(),
		manager:  THREE.Get("LoadingManager").New(),
	}
	l.manager.Set("onStart", l.callback(func(args []js.Value) {
		logger.Info("Loading started",
			zap.String("url", args[0].String()),
			zap.Int("loaded", args[1].Int()),
			zap.Int("total", args[2].Int()),
		)
	}))
	l.manager.Set("onProgress", l.callback(func(args []js.Value) {
		logger.Debug("Loading progress",
			zap.String("url", args[0].String()),
			zap.Int("loaded", args[1].Int()),
			zap.Int("total", args[2].Int()),
		)
	}))
	l.manager.Set("onLoad", l.callback(func(args []js.Value) {
		logger.Info("Loading complete")
	}))
	l.manager.Set("onError", l.callback(func(args []js.Value) {
		logger.Warn("Loading failed", zap.String("url", args[0].String()))
	}))
	return l
}

func (l *Loader) callback(fn func(args []js.Value)) js.Func {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args)
		return nil
	})
	l.handlers = append(l.handlers, f)
	return f
}

// LoadEnvironment decodes an RGBE image in float precision and prefilters it
// into a PMREM cube texture.
func (l *Loader) LoadEnvironment(url string) async.Promise[*diorama.Environment] {
	env := &diorama.Environment{Path: url}
	return async.InjectionPromise(async.NewFuncOperation(func() error {
		loader := THREE.Get("RGBELoader").New(l.manager)
		loader.Call("setDataType", THREE.Get("FloatType"))
		texture, err := Await(loader.Call("loadAsync", url))
		if err != nil {
			return fmt.Errorf("failed to load environment %s: %w", url, err)
		}
		texture.Set("mapping", THREE.Get("EquirectangularReflectionMapping"))

		pmrem := THREE.Get("PMREMGenerator").New(l.renderer)
		pmrem.Call("compileEquirectangularShader")
		target := pmrem.Call("fromEquirectangular", texture)
		pmrem.Call("dispose")

		image := texture.Get("image")
		env.Width = image.Get("width").Int()
		env.Height = image.Get("height").Int()
		env.Handle = target.Get("texture")
		texture.Call("dispose")
		return nil
	}), env)
}

// LoadModel loads an FBX or glTF file. The driver is bound to the first
// clip; a model without clips comes back without a driver.
func (l *Loader) LoadModel(url string) async.Promise[*diorama.Model] {
	model := &diorama.Model{Path: url}
	return async.InjectionPromise(async.NewFuncOperation(func() error {
		root, clips, err := l.loadModel(url)
		if err != nil {
			return fmt.Errorf("failed to load model %s: %w", url, err)
		}
		for i := range clips.Length() {
			model.Clips = append(model.Clips, clips.Index(i).Get("name").String())
		}
		if len(model.Clips) > 0 {
			model.Driver = newMixerDriver(root, clips.Index(0))
		}
		model.Name = root.Get("name").String()
		model.Handle = root
		return nil
	}), model)
}

func (l *Loader) loadModel(url string) (root, clips js.Value, err error) {
	switch ext := strings.ToLower(path.Ext(url)); ext {
	case ".fbx":
		group, err := Await(THREE.Get("FBXLoader").New(l.manager).Call("loadAsync", url))
		if err != nil {
			return js.Value{}, js.Value{}, err
		}
		return group, group.Get("animations"), nil
	case ".gltf", ".glb":
		gltf, err := Await(THREE.Get("GLTFLoader").New(l.manager).Call("loadAsync", url))
		if err != nil {
			return js.Value{}, js.Value{}, err
		}
		return gltf.Get("scene"), gltf.Get("animations"), nil
	default:
		return js.Value{}, js.Value{}, fmt.Errorf("unsupported model format %q", ext)
	}
}
