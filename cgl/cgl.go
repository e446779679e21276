// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cgl creates headless CGL contexts and RGBA8 rectangle textures.
//
// It exists for programs that want to publish or read Syphon frames without
// owning a window: integration tests, capture tools and the examples in this
// repository. It is not a general OpenGL binding; rendering code should use
// a real GL package and only share the resulting context handle.
//
// Everything here requires macOS with cgo. On other platforms Available
// reports false, constructors return [ErrUnavailable] and the remaining
// functions are no-ops.
package cgl

import "errors"

// Context is an opaque CGLContextObj. The zero value is no context.
type Context uintptr

var (
	// ErrUnavailable is returned when CGL is not usable in this build.
	ErrUnavailable = errors.New("cgl: not available on this platform")

	// ErrCreateFailed is returned when the system refuses a context or
	// texture, typically because no OpenGL renderer is present.
	ErrCreateFailed = errors.New("cgl: create failed")
)
