//go:build js

package three

import (
	"encoding/json"
	"fmt"
	"net/url"
	"syscall/js"

	"github.com/nobonobo/jeep-diorama/diorama"
)

var (
	document = js.Global().Get("document")
	window   = js.Global().Get("window")
	location = js.Global().Get("location")
	THREE    = js.Global().Get("THREE")
	dat      = js.Global().Get("dat")
)

// QueryParams returns the page URL query.
func QueryParams() url.Values {
	u, err := url.Parse(location.Get("href").String())
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}

// Canvas returns the first element matching selector.
func Canvas(selector string) (js.Value, error) {
	canvas := document.Call("querySelector", selector)
	if !canvas.Truthy() {
		return js.Value{}, fmt.Errorf("element %q not found", selector)
	}
	return canvas, nil
}

// CurrentViewport reads the window size and the device pixel ratio.
func CurrentViewport() diorama.Viewport {
	return diorama.Viewport{
		Width:            window.Get("innerWidth").Int(),
		Height:           window.Get("innerHeight").Int(),
		DevicePixelRatio: window.Get("devicePixelRatio").Float(),
	}
}

// Await blocks the calling goroutine until the JS promise settles. It must
// not be called from inside a js.Func callback.
func Await(promise js.Value) (js.Value, error) {
	type result struct {
		value js.Value
		err   error
	}
	done := make(chan result, 1)
	onFulfilled := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- result{value: args[0]}
		return nil
	})
	onRejected := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- result{err: js.Error{Value: args[0]}}
		return nil
	})
	defer onFulfilled.Release()
	defer onRejected.Release()

	promise.Call("then", onFulfilled, onRejected)
	r := <-done
	return r.value, r.err
}

// FetchJSON downloads a document relative to the page and decodes it into v.
func FetchJSON(path string, v any) error {
	resp, err := Await(window.Call("fetch", path))
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	if !resp.Get("ok").Bool() {
		return fmt.Errorf("fetching %s: status %d", path, resp.Get("status").Int())
	}
	text, err := Await(resp.Call("text"))
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(text.String()), v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
