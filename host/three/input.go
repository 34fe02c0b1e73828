//go:build js

package three

import (
	"syscall/js"

	"github.com/nobonobo/jeep-diorama/diorama"
)

// Input forwards pointer drags on the canvas to the orbit controller and
// window resizes to the application.
type Input struct {
	canvas   js.Value
	app      *diorama.Application
	lastX    float64
	lastY    float64
	pointer  int
	handlers []js.Func
}

func BindInput(canvas js.Value, app *diorama.Application) *Input {
	in := &Input{
		canvas:  canvas,
		app:     app,
		pointer: -1,
	}
	canvas.Get("style").Set("touchAction", "none")
	in.listen(canvas, "pointerdown", in.onPointerDown)
	in.listen(canvas, "pointermove", in.onPointerMove)
	in.listen(canvas, "pointerup", in.onPointerUp)
	in.listen(canvas, "pointercancel", in.onPointerUp)
	in.listen(window, "resize", func(js.Value) {
		app.Resize(CurrentViewport())
	})
	return in
}

func (in *Input) listen(target js.Value, event string, fn func(event js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	in.handlers = append(in.handlers, f)
	target.Call("addEventListener", event, f)
}

func (in *Input) onPointerDown(event js.Value) {
	if in.pointer >= 0 || event.Get("button").Int() != 0 {
		return
	}
	in.pointer = event.Get("pointerId").Int()
	in.canvas.Call("setPointerCapture", in.pointer)
	in.lastX = event.Get("clientX").Float()
	in.lastY = event.Get("clientY").Float()
	in.app.Orbit().BeginDrag()
}

func (in *Input) onPointerMove(event js.Value) {
	if event.Get("pointerId").Int() != in.pointer {
		return
	}
	x := event.Get("clientX").Float()
	y := event.Get("clientY").Float()
	in.app.Orbit().HandleDrag(x-in.lastX, y-in.lastY, in.canvas.Get("clientHeight").Int())
	in.lastX = x
	in.lastY = y
}

func (in *Input) onPointerUp(event js.Value) {
	if event.Get("pointerId").Int() != in.pointer {
		return
	}
	if in.canvas.Call("hasPointerCapture", in.pointer).Bool() {
		in.canvas.Call("releasePointerCapture", in.pointer)
	}
	in.pointer = -1
	in.app.Orbit().EndDrag()
}
