//go:build js

package three

import (
	"syscall/js"
	"time"

	"github.com/nobonobo/jeep-diorama/diorama"
)

var _ diorama.AnimationDriver = (*mixerDriver)(nil)

// mixerDriver plays one clip through an AnimationMixer.
type mixerDriver struct {
	mixer   js.Value
	action  js.Value
	playing bool
}

func newMixerDriver(root, clip js.Value) *mixerDriver {
	mixer := THREE.Get("AnimationMixer").New(root)
	return &mixerDriver{
		mixer:  mixer,
		action: mixer.Call("clipAction", clip),
	}
}

func (d *mixerDriver) Play() {
	d.action.Call("play")
	d.playing = true
}

// Stop also resets the action time to zero.
func (d *mixerDriver) Stop() {
	d.action.Call("stop")
	d.playing = false
}

func (d *mixerDriver) Playing() bool {
	return d.playing
}

func (d *mixerDriver) Update(elapsed time.Duration) {
	d.mixer.Call("update", elapsed.Seconds())
}

func (d *mixerDriver) Time() time.Duration {
	return time.Duration(d.action.Get("time").Float() * float64(time.Second))
}
