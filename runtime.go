package syphon

import (
	"sync"

	"github.com/gogpu/syphon/internal/native"
)

var (
	runtimeMu sync.RWMutex
	runtime   native.API = native.Default()
)

// Available reports whether the Syphon framework is usable in this build.
// It is true only on macOS with cgo enabled.
//
// Nothing in this package requires checking Available first: when it is
// false, constructors return [ErrUnavailable] and every query reports its
// documented empty result, so calling code needs no platform conditionals.
func Available() bool {
	return nativeAPI().Available()
}

// nativeAPI returns the active native runtime. Wrappers capture it at
// construction so an object stays bound to the runtime that created it.
func nativeAPI() native.API {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	return runtime
}

// setRuntime swaps the native runtime and returns the previous one. Tests use
// it to install an instrumented in-memory implementation; nil restores the
// platform default.
func setRuntime(a native.API) native.API {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	prev := runtime
	if a == nil {
		a = native.Default()
	}
	runtime = a
	return prev
}
