//go:build js

package three

import (
	"syscall/js"

	"github.com/google/uuid"

	"github.com/nobonobo/jeep-diorama/diorama"
)

var _ diorama.Renderer = (*Renderer)(nil)

// Renderer mirrors a diorama scene into three.js objects, keyed by node ID.
type Renderer struct {
	renderer js.Value
	scene    js.Value
	objects  map[uuid.UUID]js.Value

	projectionVersion int
	loop              js.Func
}

func NewRenderer(canvas js.Value) *Renderer {
	renderer := THREE.Get("WebGLRenderer").New(map[string]any{
		"canvas":    canvas,
		"antialias": true,
	})
	shadowMap := renderer.Get("shadowMap")
	shadowMap.Set("enabled", true)
	shadowMap.Set("type", THREE.Get("PCFSoftShadowMap"))
	renderer.Set("toneMapping", THREE.Get("ACESFilmicToneMapping"))
	renderer.Set("outputColorSpace", THREE.Get("SRGBColorSpace"))

	return &Renderer{
		renderer: renderer,
		scene:    THREE.Get("Scene").New(),
		objects:  make(map[uuid.UUID]js.Value),
	}
}

// Value returns the underlying WebGLRenderer.
func (r *Renderer) Value() js.Value {
	return r.renderer
}

func (r *Renderer) SetSize(width, height int) {
	r.renderer.Call("setSize", width, height)
}

func (r *Renderer) SetPixelRatio(ratio float64) {
	r.renderer.Call("setPixelRatio", ratio)
}

// SetAnimationLoop calls frame on every display refresh.
func (r *Renderer) SetAnimationLoop(frame func()) {
	r.loop = js.FuncOf(func(this js.Value, args []js.Value) any {
		frame()
		return nil
	})
	r.renderer.Call("setAnimationLoop", r.loop)
}

func (r *Renderer) Render(scene *diorama.Scene, camera *diorama.Camera) {
	r.syncScene(scene)
	for _, child := range scene.Children() {
		r.syncObject(child)
	}
	r.renderer.Call("render", r.scene, r.object(camera))
}

func (r *Renderer) syncScene(scene *diorama.Scene) {
	background := r.scene.Get("background")
	if !background.Truthy() {
		background = THREE.Get("Color").New()
		r.scene.Set("background", background)
	}
	setColor(background, scene.Background)

	fog := r.scene.Get("fog")
	if !fog.Truthy() {
		fog = THREE.Get("FogExp2").New(0xffffff, scene.Fog.Density)
		r.scene.Set("fog", fog)
	}
	setColor(fog.Get("color"), scene.Fog.Color)
	fog.Set("density", scene.Fog.Density)
}

func (r *Renderer) object(obj diorama.Object) js.Value {
	node := obj.Base()
	if value, ok := r.objects[node.ID]; ok {
		return value
	}
	value := r.create(obj)
	value.Set("name", node.Name)
	r.objects[node.ID] = value
	r.scene.Call("add", value)
	return value
}

func (r *Renderer) create(obj diorama.Object) js.Value {
	switch obj := obj.(type) {
	case *diorama.Camera:
		return THREE.Get("OrthographicCamera").New(obj.Left, obj.Right, obj.Top, obj.Bottom, obj.Near, obj.Far)
	case *diorama.AmbientLight:
		return THREE.Get("AmbientLight").New()
	case *diorama.PointLight:
		light := THREE.Get("PointLight").New()
		light.Get("shadow").Get("mapSize").Call("set", 1024, 1024)
		return light
	case *diorama.Ground:
		geometry := THREE.Get("BoxGeometry").New(obj.Width, obj.Height, obj.Depth)
		material := THREE.Get("MeshStandardMaterial").New()
		return THREE.Get("Mesh").New(geometry, material)
	case *diorama.Model:
		root := obj.Handle.(js.Value)
		configureModel(root, obj)
		return root
	default:
		return THREE.Get("Object3D").New()
	}
}

func (r *Renderer) syncObject(obj diorama.Object) {
	value := r.object(obj)
	node := obj.Base()
	value.Get("position").Call("set", node.Position.X, node.Position.Y, node.Position.Z)
	value.Get("scale").Call("set", node.Scale.X, node.Scale.Y, node.Scale.Z)
	value.Set("castShadow", node.CastShadow)
	value.Set("receiveShadow", node.ReceiveShadow)

	switch obj := obj.(type) {
	case *diorama.Camera:
		if obj.ProjectionVersion != r.projectionVersion {
			r.projectionVersion = obj.ProjectionVersion
			value.Set("left", obj.Left)
			value.Set("right", obj.Right)
			value.Set("top", obj.Top)
			value.Set("bottom", obj.Bottom)
			value.Set("near", obj.Near)
			value.Set("far", obj.Far)
			value.Set("zoom", obj.Zoom)
			value.Call("updateProjectionMatrix")
		}
		value.Call("lookAt", obj.Target.X, obj.Target.Y, obj.Target.Z)
	case *diorama.AmbientLight:
		setColor(value.Get("color"), obj.Color)
		value.Set("intensity", obj.Intensity)
	case *diorama.PointLight:
		setColor(value.Get("color"), obj.Color)
		value.Set("intensity", obj.Intensity)
		value.Set("distance", obj.Distance)
	case *diorama.Ground:
		material := value.Get("material")
		setColor(material.Get("color"), obj.Material.Color)
		material.Set("metalness", obj.Material.Metalness)
		material.Set("roughness", obj.Material.Roughness)
		material.Set("flatShading", obj.Material.FlatShading)
		material.Set("envMapIntensity", obj.Material.EnvIntensity)
		envMap := handle(obj.Material.EnvMap)
		if !material.Get("envMap").Equal(envMap) {
			material.Set("envMap", envMap)
			material.Set("needsUpdate", true)
		}
	}
}

// configureModel applies the shadow and surface settings to every mesh
// below root.
func configureModel(root js.Value, model *diorama.Model) {
	visit := js.FuncOf(func(this js.Value, args []js.Value) any {
		child := args[0]
		if !child.Get("isMesh").Truthy() {
			return nil
		}
		child.Set("castShadow", model.CastShadow)
		materials := child.Get("material")
		if materials.InstanceOf(js.Global().Get("Array")) {
			for i := range materials.Length() {
				configureMaterial(materials.Index(i), model)
			}
		} else {
			configureMaterial(materials, model)
		}
		return nil
	})
	defer visit.Release()
	root.Call("traverse", visit)
}

func configureMaterial(material js.Value, model *diorama.Model) {
	if !material.Truthy() {
		return
	}
	material.Set("metalness", model.Metalness)
	material.Set("roughness", model.Roughness)
}

// setColor assigns a linear color. three.js treats setRGB input as the
// linear working color space.
func setColor(target js.Value, color diorama.Color) {
	target.Call("setRGB", color.R, color.G, color.B)
}

func handle(env *diorama.Environment) js.Value {
	if env == nil {
		return js.Null()
	}
	if value, ok := env.Handle.(js.Value); ok {
		return value
	}
	return js.Null()
}
