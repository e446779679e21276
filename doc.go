// Package syphon shares GPU video frames between macOS applications through
// the Syphon framework.
//
// # Overview
//
// syphon wraps Syphon's reference-counted Objective-C objects in Go values
// with explicit ownership: constructors return objects the caller must
// Close, directory lookups return borrowed descriptions the directory owns,
// and Clone turns a borrowed description into an owned one. Servers publish
// OpenGL or Metal textures; clients receive them zero-copy from any process
// on the machine.
//
// # Quick Start
//
//	import "github.com/gogpu/syphon"
//
//	// Publish frames from an existing CGL context
//	server, err := syphon.NewOpenGLServer("output", ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer server.Close()
//	server.PublishFrameTexture(tex, syphon.TextureTargetRectangle,
//	    syphon.Rect{W: 512, H: 512}, syphon.Size{W: 512, H: 512}, false)
//
//	// Receive frames from the first advertised server
//	dir := syphon.SharedDirectory()
//	if dir.Count() > 0 {
//	    client, err := syphon.NewOpenGLClient(dir.At(0), ctx, nil, func() {
//	        // new frame; signal the render goroutine
//	    })
//	    ...
//	}
//
// # Ownership
//
// Every object that holds a native reference satisfies io.Closer. Close is
// idempotent, releases exactly once, and nothing in this package runs a
// finalizer: frames, clients and servers live until their Close. Borrowed
// ServerDescriptions from ServerDirectory.At and ServerDirectory.Servers
// are the one exception, they are owned by the directory and valid only
// until it next changes; Clone the ones to keep.
//
// # Platform Support
//
// Syphon exists only on macOS. The package compiles everywhere: on other
// platforms, or with cgo disabled, Available reports false, constructors
// return ErrUnavailable and every query reports its documented empty
// result, so calling code needs no build tags. Building on macOS requires
// Syphon.framework; point cgo at it with
//
//	CGO_CFLAGS="-F/path/to/frameworks" \
//	CGO_LDFLAGS="-F/path/to/frameworks -Wl,-rpath,/path/to/frameworks" \
//	go build
//
// # Threading
//
// All exported methods are safe for concurrent use. Frame handlers run on
// threads owned by the framework; see FrameHandler. OpenGL calls follow GL
// threading rules: publish and FrameImage require the right CGL context
// current on the calling thread.
package syphon

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
