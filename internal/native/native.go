// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native is the boundary between the safe wrapper types in the root
// package and the Syphon framework itself.
//
// Every Syphon object crosses this boundary as an opaque Handle. The API
// interface mirrors the C glue surface (syphon_glue.h) one function per
// method, so the real binding stays a mechanical translation and a test
// double can stand in for the whole framework. Reference-count rules are the
// framework's: the caller of a *Release method must hold exactly one
// ownership of the handle, and no handle may be used after its release.
//
// Default returns the binding for the current platform: the cgo binding on
// darwin with cgo enabled, otherwise Unavailable, which reports every
// operation as absent without touching any native state.
package native

// Handle is an opaque reference to a framework-owned object: a server
// directory, a server description, a server, a client or a frame image.
// The zero Handle is "no object".
//
// Handles are plain words, never pointers into Go memory, so they may be
// stored, compared and passed to the framework freely.
type Handle uintptr

// API is the full operation surface of the frame-sharing framework.
//
// Implementations must be safe for concurrent use: the root package calls
// into the API from the caller's goroutine while the framework may deliver
// new-frame notifications on threads of its own.
//
// All string-returning methods report ok=false when the underlying field is
// absent. All Handle-returning methods report the zero Handle on failure.
type API interface {
	// Available reports whether the framework is present on this system.
	// When false, no other method may be called; the root package gates
	// every entry point on it.
	Available() bool

	// DirectoryShared returns the process-wide server directory.
	DirectoryShared() Handle
	// DirectoryServerCount returns the number of servers the directory
	// currently knows about.
	DirectoryServerCount(dir Handle) int
	// DirectoryServerAt returns the description at index. The result is
	// borrowed: it is valid only until the directory refreshes and must
	// not be released unless retained first.
	DirectoryServerAt(dir Handle, index int) Handle

	// DescriptionUUID, DescriptionName and DescriptionAppName copy one
	// string field out of a description. The returned string is an
	// independent Go string; any framework-allocated scratch storage is
	// freed before returning.
	DescriptionUUID(desc Handle) (string, bool)
	DescriptionName(desc Handle) (string, bool)
	DescriptionAppName(desc Handle) (string, bool)
	// DescriptionRetain increments the description's reference count.
	DescriptionRetain(desc Handle)
	// DescriptionRelease decrements it. Calling this on a description
	// that was never retained is a caller error with framework-defined
	// consequences; the wrapper layer never does it.
	DescriptionRelease(desc Handle)

	// GLServerCreate creates an OpenGL server publishing under name on the
	// given CGL context. Returns the zero Handle on failure.
	GLServerCreate(name string, context uintptr, options map[string]string) Handle
	GLServerHasClients(server Handle) bool
	// GLServerDescription returns a retained description of the server;
	// the caller owns the retain.
	GLServerDescription(server Handle) Handle
	GLServerPublish(server Handle, tex, target uint32, x, y, w, h, texW, texH float64, flipped bool)
	GLServerBindToDrawFrame(server Handle, w, h float64) bool
	GLServerUnbindAndPublish(server Handle)
	GLServerStop(server Handle)
	GLServerRelease(server Handle)

	// GLClientCreate subscribes to the server identified by desc. onFrame,
	// when non-nil, is invoked for every new frame on an arbitrary
	// framework thread until GLClientStop returns. The implementation owns
	// whatever pinning the callback needs and undoes it during stop.
	GLClientCreate(desc Handle, context uintptr, options map[string]string, onFrame func()) Handle
	GLClientIsValid(client Handle) bool
	GLClientHasNewFrame(client Handle) bool
	// GLClientFrameImage returns the current frame as an owned image
	// handle, or the zero Handle if no frame is ready.
	GLClientFrameImage(client Handle) Handle
	// GLClientStop stops the subscription. After it returns, onFrame is
	// never invoked again.
	GLClientStop(client Handle)
	GLClientRelease(client Handle)

	GLImageTextureName(image Handle) uint32
	GLImageTextureSize(image Handle) (w, h float64)
	GLImageRelease(image Handle)

	// MetalServerCreate creates a Metal server publishing under name on
	// the given MTLDevice. Returns the zero Handle on failure.
	MetalServerCreate(name string, device uintptr, options map[string]string) Handle
	MetalServerHasClients(server Handle) bool
	MetalServerDescription(server Handle) Handle
	// MetalServerPublish enqueues the copy of texture's region into the
	// given command buffer. Committing the command buffer remains the
	// caller's responsibility.
	MetalServerPublish(server Handle, texture, commandBuffer uintptr, x, y, w, h float64, flipped bool)
	// MetalServerFrameImage returns the most recently published frame as
	// an owned texture handle, or the zero Handle.
	MetalServerFrameImage(server Handle) Handle
	MetalServerStop(server Handle)
	MetalServerRelease(server Handle)

	// MetalClientCreate mirrors GLClientCreate for a Metal device.
	MetalClientCreate(desc Handle, device uintptr, options map[string]string, onFrame func()) Handle
	MetalClientIsValid(client Handle) bool
	MetalClientHasNewFrame(client Handle) bool
	MetalClientFrameImage(client Handle) Handle
	MetalClientStop(client Handle)
	MetalClientRelease(client Handle)

	// MetalTexturePointer returns the raw MTLTexture pointer backing an
	// owned texture handle, for handing to Metal code.
	MetalTexturePointer(texture Handle) uintptr
	MetalTextureRelease(texture Handle)
}
