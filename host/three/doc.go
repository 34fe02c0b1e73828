// Package three draws a diorama scene in the browser with three.js and
// exposes its controls through dat.gui. It is only built for GOOS=js; the
// page must publish the THREE namespace (with RGBELoader, FBXLoader and
// GLTFLoader merged in) and dat.GUI as globals before the module starts.
package three
