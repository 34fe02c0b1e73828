package diorama

import (
	"errors"
	"fmt"
	"math"
	"path"
)

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrControlKind    = errors.New("value does not match control kind")
)

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max float64
}

// Clamp maps value into the range. NaN maps to Min.
func (r Range) Clamp(value float64) float64 {
	if math.IsNaN(value) {
		return r.Min
	}
	return max(r.Min, min(r.Max, value))
}

var (
	LightPositionRange  = Range{Min: -20, Max: 20}
	LightIntensityRange = Range{Min: 0, Max: 300}
)

// Control is one entry of the debug panel.
type Control interface {
	Name() string
	Folder() string
}

type controlInfo struct {
	name   string
	folder string
}

func (c controlInfo) Name() string {
	return c.name
}

func (c controlInfo) Folder() string {
	return c.folder
}

// ColorControl edits an sRGB hex color.
type ColorControl struct {
	controlInfo
	read  func() string
	write func(string) error
}

func (c *ColorControl) Get() string {
	return c.read()
}

func (c *ColorControl) Set(hex string) error {
	return c.write(hex)
}

// NumberControl edits a value bounded by Range. Set clamps, so values
// outside the range never reach the target.
type NumberControl struct {
	controlInfo
	Range Range
	Step  float64
	read  func() float64
	write func(float64)
}

func (c *NumberControl) Get() float64 {
	return c.read()
}

func (c *NumberControl) Set(value float64) {
	c.write(c.Range.Clamp(value))
}

type ToggleControl struct {
	controlInfo
	read  func() bool
	write func(bool)
}

func (c *ToggleControl) Get() bool {
	return c.read()
}

func (c *ToggleControl) Set(value bool) {
	c.write(value)
}

// ActionControl is a button.
type ActionControl struct {
	controlInfo
	run func()
}

func (c *ActionControl) Run() {
	c.run()
}

// Panel is an ordered table of controls addressed by "folder/name", or by
// name alone for controls at the top level.
type Panel struct {
	controls []Control
	index    map[string]Control
}

func NewPanel() *Panel {
	return &Panel{
		index: make(map[string]Control),
	}
}

func controlKey(c Control) string {
	return path.Join(c.Folder(), c.Name())
}

func (p *Panel) add(c Control) {
	key := controlKey(c)
	if _, ok := p.index[key]; ok {
		panic(fmt.Sprintf("duplicate control %q", key))
	}
	p.controls = append(p.controls, c)
	p.index[key] = c
}

func (p *Panel) AddColor(folder, name string, read func() string, write func(string) error) *ColorControl {
	result := &ColorControl{
		controlInfo: controlInfo{name: name, folder: folder},
		read:        read,
		write:       write,
	}
	p.add(result)
	return result
}

func (p *Panel) AddNumber(folder, name string, r Range, step float64, read func() float64, write func(float64)) *NumberControl {
	result := &NumberControl{
		controlInfo: controlInfo{name: name, folder: folder},
		Range:       r,
		Step:        step,
		read:        read,
		write:       write,
	}
	p.add(result)
	return result
}

func (p *Panel) AddToggle(folder, name string, read func() bool, write func(bool)) *ToggleControl {
	result := &ToggleControl{
		controlInfo: controlInfo{name: name, folder: folder},
		read:        read,
		write:       write,
	}
	p.add(result)
	return result
}

func (p *Panel) AddAction(folder, name string, run func()) *ActionControl {
	result := &ActionControl{
		controlInfo: controlInfo{name: name, folder: folder},
		run:         run,
	}
	p.add(result)
	return result
}

// Controls returns every control in registration order.
func (p *Panel) Controls() []Control {
	return p.controls
}

// Folders returns the distinct non-empty folder names in registration order.
func (p *Panel) Folders() []string {
	var result []string
	seen := make(map[string]bool)
	for _, c := range p.controls {
		if c.Folder() == "" || seen[c.Folder()] {
			continue
		}
		seen[c.Folder()] = true
		result = append(result, c.Folder())
	}
	return result
}

func (p *Panel) Lookup(key string) (Control, bool) {
	c, ok := p.index[key]
	return c, ok
}

// Set writes a dynamically typed value to the control at key. Actions ignore
// the value.
func (p *Panel) Set(key string, value any) error {
	c, ok := p.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, key)
	}
	switch c := c.(type) {
	case *ColorControl:
		hex, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %q expects a color string, got %T", ErrControlKind, key, value)
		}
		return c.Set(hex)
	case *NumberControl:
		switch v := value.(type) {
		case float64:
			c.Set(v)
		case int:
			c.Set(float64(v))
		default:
			return fmt.Errorf("%w: %q expects a number, got %T", ErrControlKind, key, value)
		}
	case *ToggleControl:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %q expects a boolean, got %T", ErrControlKind, key, value)
		}
		c.Set(v)
	case *ActionControl:
		c.Run()
	}
	return nil
}
