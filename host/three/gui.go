//go:build js

package three

import (
	"path"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/diorama"
)

// Panel is the dat.gui view of a diorama.Panel. Every edit goes through
// diorama.Panel.Set; the widget is then reset to the value the application
// kept, so clamped or rejected input never stays on screen.
type Panel struct {
	gui      js.Value
	logger   *zap.Logger
	handlers []js.Func
}

func NewPanel(panel *diorama.Panel, logger *zap.Logger) *Panel {
	p := &Panel{
		gui:    dat.Get("GUI").New(),
		logger: logger,
	}
	folders := map[string]js.Value{"": p.gui}
	for _, name := range panel.Folders() {
		folders[name] = p.gui.Call("addFolder", name)
	}
	for _, control := range panel.Controls() {
		p.add(panel, folders[control.Folder()], control)
	}
	return p
}

func (p *Panel) add(panel *diorama.Panel, parent js.Value, control diorama.Control) {
	key := path.Join(control.Folder(), control.Name())
	name := control.Name()
	target := js.Global().Get("Object").New()

	var widget js.Value
	var refresh func()
	var convert func(js.Value) any
	switch control := control.(type) {
	case *diorama.ColorControl:
		refresh = func() { target.Set(name, control.Get()) }
		refresh()
		widget = parent.Call("addColor", target, name)
		convert = func(v js.Value) any { return v.String() }
	case *diorama.NumberControl:
		refresh = func() { target.Set(name, control.Get()) }
		refresh()
		widget = parent.Call("add", target, name, control.Range.Min, control.Range.Max, control.Step)
		convert = func(v js.Value) any { return v.Float() }
	case *diorama.ToggleControl:
		refresh = func() { target.Set(name, control.Get()) }
		refresh()
		widget = parent.Call("add", target, name)
		convert = func(v js.Value) any { return v.Bool() }
	case *diorama.ActionControl:
		run := p.handler(func(args []js.Value) { control.Run() })
		target.Set(name, run)
		parent.Call("add", target, name)
		return
	default:
		p.logger.Warn("Skipping unsupported control", zap.String("control", key))
		return
	}

	widget.Call("onChange", p.handler(func(args []js.Value) {
		if err := panel.Set(key, convert(args[0])); err != nil {
			p.logger.Warn("Rejected control value", zap.String("control", key), zap.Error(err))
		}
		refresh()
		widget.Call("updateDisplay")
	}))
}

func (p *Panel) handler(fn func(args []js.Value)) js.Func {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args)
		return nil
	})
	p.handlers = append(p.handlers, f)
	return f
}
