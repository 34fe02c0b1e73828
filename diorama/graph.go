package diorama

import (
	"github.com/google/uuid"
	"github.com/mokiat/gomath/dprec"
)

// Node holds the state shared by every object in the scene graph. The ID is
// assigned on creation and never changes.
type Node struct {
	ID            uuid.UUID
	Name          string
	Position      dprec.Vec3
	Scale         dprec.Vec3
	CastShadow    bool
	ReceiveShadow bool
}

func newNode(name string) Node {
	return Node{
		ID:    uuid.New(),
		Name:  name,
		Scale: dprec.NewVec3(1, 1, 1),
	}
}

// Object is anything that can be attached to the scene root.
type Object interface {
	Base() *Node
}

func (n *Node) Base() *Node {
	return n
}

// Fog is exponential squared fog.
type Fog struct {
	Color   Color
	Density float64
}

// Material is a physically based surface description.
type Material struct {
	Color        Color
	Metalness    float64
	Roughness    float64
	FlatShading  bool
	EnvMap       *Environment
	EnvIntensity float64
}

// Environment is a prefiltered environment map produced from an HDR image.
// Handle is owned by the rendering backend.
type Environment struct {
	Path   string
	Width  int
	Height int
	Handle any
}

// Ground is a flat box the model stands on.
type Ground struct {
	Node
	Width, Height, Depth float64
	Material             Material
}

func NewGround() *Ground {
	result := &Ground{
		Node:   newNode("Ground"),
		Width:  50,
		Height: 1,
		Depth:  50,
		Material: Material{
			Color:        MustParseColor("#59cfff"),
			Metalness:    0,
			Roughness:    1,
			FlatShading:  true,
			EnvIntensity: 1,
		},
	}
	result.ReceiveShadow = true
	return result
}

type AmbientLight struct {
	Node
	Color     Color
	Intensity float64
}

func NewAmbientLight() *AmbientLight {
	return &AmbientLight{
		Node:      newNode("AmbientLight"),
		Color:     MustParseColor("#fffdd1"),
		Intensity: 0.2,
	}
}

type PointLight struct {
	Node
	Color     Color
	Intensity float64
	Distance  float64
}

func NewPointLight() *PointLight {
	result := &PointLight{
		Node:      newNode("PointLight"),
		Color:     MustParseColor("#fffdd1"),
		Intensity: 80,
		Distance:  100,
	}
	result.Position = dprec.NewVec3(19.4, 20, 6.6)
	result.CastShadow = true
	return result
}

// Model is a loaded, animated asset. Handle is the backend object and Driver
// plays its first animation clip.
type Model struct {
	Node
	Path      string
	Clips     []string
	Metalness float64
	Roughness float64
	Driver    AnimationDriver
	Handle    any
}

// Scene is the root of the scene graph.
type Scene struct {
	Background  Color
	Fog         Fog
	Environment *Environment

	children []Object
	index    map[uuid.UUID]Object
}

func NewScene() *Scene {
	return &Scene{
		Background: MustParseColor("#59cfff"),
		Fog: Fog{
			Color:   MustParseColor("#89cff0"),
			Density: 0.1,
		},
		index: make(map[uuid.UUID]Object),
	}
}

// Add attaches the object to the root. Adding an object that is already
// present, or a second model, is a no-op and reports false.
func (s *Scene) Add(obj Object) bool {
	id := obj.Base().ID
	if _, ok := s.index[id]; ok {
		return false
	}
	if _, ok := obj.(*Model); ok && s.Model() != nil {
		return false
	}
	s.children = append(s.children, obj)
	s.index[id] = obj
	return true
}

// Children returns the objects attached to the root in insertion order.
func (s *Scene) Children() []Object {
	return s.children
}

// Model returns the loaded model or nil.
func (s *Scene) Model() *Model {
	for _, child := range s.children {
		if model, ok := child.(*Model); ok {
			return model
		}
	}
	return nil
}
