// Package process kills a browser process together with its children.
// The launcher's own cleanup only signals the top-level Chrome process,
// which can leave renderer processes behind after a batch run.
package process
